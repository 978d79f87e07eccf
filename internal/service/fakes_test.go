package service

import (
	"context"
	"sync"

	"github.com/listling/listling/internal/model"
	"github.com/listling/listling/internal/repository"
)

// fakeStore is an in-memory implementation of the repository interfaces.
type fakeStore struct {
	mu     sync.Mutex
	users  map[string]*model.User  // keyed by email
	tokens map[string]*model.Token // keyed by value
	lists  map[string]*model.List
	items  map[string][]*model.Item // keyed by list ID
	shares map[string][]string      // list ID -> user IDs in grant order
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[string]*model.User),
		tokens: make(map[string]*model.Token),
		lists:  make(map[string]*model.List),
		items:  make(map[string][]*model.Item),
		shares: make(map[string][]string),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return repository.ErrEmailExists
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) GetOrCreateUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[email]; ok {
		return user, nil
	}
	user := &model.User{ID: "user-" + email, Email: email}
	f.users[email] = user
	return user, nil
}

func (f *fakeStore) CreateToken(_ context.Context, token *model.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token.Value] = token
	return nil
}

func (f *fakeStore) ConsumeToken(_ context.Context, value string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token, ok := f.tokens[value]
	if !ok {
		return "", repository.ErrTokenNotFound
	}
	delete(f.tokens, value)
	return token.Email, nil
}

func (f *fakeStore) CreateListWithFirstItem(_ context.Context, list *model.List, first *model.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *list
	stored.Items = nil
	f.lists[list.ID] = &stored
	f.items[list.ID] = []*model.Item{first}
	return nil
}

func (f *fakeStore) GetListByID(_ context.Context, id string) (*model.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list, ok := f.lists[id]
	if !ok {
		return nil, repository.ErrListNotFound
	}
	copied := *list
	return &copied, nil
}

func (f *fakeStore) ListsOwnedBy(_ context.Context, userID string) ([]*model.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var owned []*model.List
	for _, list := range f.lists {
		if list.OwnerID != nil && *list.OwnerID == userID {
			copied := *list
			owned = append(owned, &copied)
		}
	}
	return owned, nil
}

func (f *fakeStore) AddItem(_ context.Context, item *model.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items[item.ListID] {
		if existing.Text == item.Text {
			return repository.ErrDuplicateItem
		}
	}
	f.items[item.ListID] = append(f.items[item.ListID], item)
	return nil
}

func (f *fakeStore) ListItems(_ context.Context, listID string) ([]*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.Item(nil), f.items[listID]...), nil
}

func (f *fakeStore) HasItemText(_ context.Context, listID, text string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items[listID] {
		if item.Text == text {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) AddShare(_ context.Context, listID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.shares[listID] {
		if existing == userID {
			return nil
		}
	}
	f.shares[listID] = append(f.shares[listID], userID)
	return nil
}

func (f *fakeStore) SharedWith(_ context.Context, listID string) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []*model.User
	for _, userID := range f.shares[listID] {
		for _, user := range f.users {
			if user.ID == userID {
				users = append(users, user)
			}
		}
	}
	return users, nil
}

// sentMail records one delivery handed to the fake mailer.
type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeMailer records messages and optionally fails every send.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) lastSent() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}, false
	}
	return m.sent[len(m.sent)-1], true
}
