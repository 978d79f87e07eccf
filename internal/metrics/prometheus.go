package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromRecorder implements Recorder on top of a Prometheus registry.
type PromRecorder struct {
	loginEmailsSent     prometheus.Counter
	loginEmailsRejected prometheus.Counter
	loginsSucceeded     prometheus.Counter
	loginTokensUnknown  prometheus.Counter
	mailDuration        prometheus.Histogram
	listsCreated        *prometheus.CounterVec
	itemsAdded          prometheus.Counter
	itemsRejected       *prometheus.CounterVec
	listsShared         prometheus.Counter
	sharesRejected      prometheus.Counter
}

// NewPrometheus creates a PromRecorder and registers its collectors.
func NewPrometheus(reg prometheus.Registerer) *PromRecorder {
	p := &PromRecorder{
		loginEmailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listling_login_emails_sent_total",
			Help: "Login link emails handed to the mailer.",
		}),
		loginEmailsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listling_login_emails_rejected_total",
			Help: "Login requests rejected for a malformed email address.",
		}),
		loginsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listling_logins_succeeded_total",
			Help: "Token resolutions that established an identity.",
		}),
		loginTokensUnknown: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listling_login_tokens_unknown_total",
			Help: "Token presentations that resolved to no identity.",
		}),
		mailDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "listling_mail_send_duration_seconds",
			Help:    "Outbound mail delivery latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		listsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "listling_lists_created_total",
			Help: "Lists created, by ownership.",
		}, []string{"owned"}),
		itemsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listling_items_added_total",
			Help: "Items appended to lists.",
		}),
		itemsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "listling_items_rejected_total",
			Help: "Item submissions rejected by validation, by reason.",
		}, []string{"reason"}),
		listsShared: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listling_lists_shared_total",
			Help: "Sharing grants added to lists.",
		}),
		sharesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "listling_shares_rejected_total",
			Help: "Share requests rejected for an invalid or unknown recipient.",
		}),
	}

	reg.MustRegister(
		p.loginEmailsSent,
		p.loginEmailsRejected,
		p.loginsSucceeded,
		p.loginTokensUnknown,
		p.mailDuration,
		p.listsCreated,
		p.itemsAdded,
		p.itemsRejected,
		p.listsShared,
		p.sharesRejected,
	)

	return p
}

// IncLoginEmailSent increments the sent login email counter.
func (p *PromRecorder) IncLoginEmailSent() { p.loginEmailsSent.Inc() }

// IncLoginEmailRejected increments the rejected login email counter.
func (p *PromRecorder) IncLoginEmailRejected() { p.loginEmailsRejected.Inc() }

// IncLoginSucceeded increments the successful login counter.
func (p *PromRecorder) IncLoginSucceeded() { p.loginsSucceeded.Inc() }

// IncLoginTokenUnknown increments the unknown token counter.
func (p *PromRecorder) IncLoginTokenUnknown() { p.loginTokensUnknown.Inc() }

// ObserveMailDuration records a mail delivery duration.
func (p *PromRecorder) ObserveMailDuration(duration time.Duration) {
	p.mailDuration.Observe(duration.Seconds())
}

// IncListCreated increments the list creation counter.
func (p *PromRecorder) IncListCreated(owned bool) {
	label := "false"
	if owned {
		label = "true"
	}
	p.listsCreated.WithLabelValues(label).Inc()
}

// IncItemAdded increments the item counter.
func (p *PromRecorder) IncItemAdded() { p.itemsAdded.Inc() }

// IncItemRejected increments an item rejection counter.
func (p *PromRecorder) IncItemRejected(reason string) {
	p.itemsRejected.WithLabelValues(reason).Inc()
}

// IncListShared increments the share counter.
func (p *PromRecorder) IncListShared() { p.listsShared.Inc() }

// IncShareRejected increments the rejected share counter.
func (p *PromRecorder) IncShareRejected() { p.sharesRejected.Inc() }
