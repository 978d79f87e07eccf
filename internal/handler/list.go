package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/listling/listling/internal/auth"
	"github.com/listling/listling/internal/middleware"
	"github.com/listling/listling/internal/model"
	"github.com/listling/listling/internal/service"
)

// ListHandler manages list, item and sharing endpoints.
type ListHandler struct {
	lists  *service.ListService
	logger *slog.Logger
}

// NewListHandler creates a new ListHandler.
func NewListHandler(lists *service.ListService, logger *slog.Logger) *ListHandler {
	return &ListHandler{lists: lists, logger: logger}
}

// listResponse is the JSON shape of a list.
type listResponse struct {
	ID         string         `json:"id"`
	OwnerEmail string         `json:"owner_email,omitempty"`
	Items      []itemResponse `json:"items"`
	SharedWith []string       `json:"shared_with,omitempty"`
}

// itemResponse is the JSON shape of an item.
type itemResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// CreateList creates a new list with its first item. The current identity,
// if any, becomes the owner; anonymous visitors get an ownerless list.
//
// POST /api/lists
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, MsgEmptyItem)
		return
	}

	owner := auth.UserFromContext(r.Context())

	list, err := h.lists.CreateNew(r.Context(), req.Text, owner)
	if err != nil {
		if errors.Is(err, service.ErrEmptyItemText) {
			writeError(w, http.StatusBadRequest, MsgEmptyItem)
			return
		}
		h.serverError(w, r, "create list failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, toListResponse(list, owner))
}

// GetList returns a list with its items.
//
// GET /api/lists/{listID}
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	list, err := h.lists.GetList(r.Context(), chi.URLParam(r, "listID"))
	if err != nil {
		if errors.Is(err, service.ErrListNotFound) {
			NotFound(w, r)
			return
		}
		h.serverError(w, r, "get list failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toListResponse(list, nil))
}

// AddItem appends an item to an existing list.
//
// POST /api/lists/{listID}/items
func (h *ListHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, MsgEmptyItem)
		return
	}

	item, err := h.lists.AddItem(r.Context(), chi.URLParam(r, "listID"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListNotFound):
			NotFound(w, r)
		case errors.Is(err, service.ErrEmptyItemText):
			writeError(w, http.StatusBadRequest, MsgEmptyItem)
		case errors.Is(err, service.ErrDuplicateItemText):
			writeError(w, http.StatusBadRequest, MsgDuplicateItem)
		default:
			h.serverError(w, r, "add item failed", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, itemResponse{ID: item.ID, Text: item.Text})
}

// ShareList grants another registered identity access to the list.
// Invalid and unknown recipients get the same failure message.
//
// POST /api/lists/{listID}/share
func (h *ListHandler) ShareList(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShareeEmail string `json:"sharee_email"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, MsgShareFail)
		return
	}

	err := h.lists.Share(r.Context(), chi.URLParam(r, "listID"), req.ShareeEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListNotFound):
			NotFound(w, r)
		case errors.Is(err, service.ErrShareRecipient):
			writeError(w, http.StatusBadRequest, MsgShareFail)
		default:
			h.serverError(w, r, "share list failed", err)
		}
		return
	}

	writeMessage(w, http.StatusOK, MsgShareSuccess)
}

// MyLists returns the lists owned by the current identity.
//
// GET /api/my/lists
func (h *ListHandler) MyLists(w http.ResponseWriter, r *http.Request) {
	owner := auth.UserFromContext(r.Context())
	if owner == nil {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}

	lists, err := h.lists.MyLists(r.Context(), owner)
	if err != nil {
		h.serverError(w, r, "list owned lists failed", err)
		return
	}

	resp := make([]listResponse, 0, len(lists))
	for _, list := range lists {
		resp = append(resp, toListResponse(list, owner))
	}

	writeJSON(w, http.StatusOK, resp)
}

// serverError logs err and writes a generic 500 response.
func (h *ListHandler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg,
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("error", err.Error()),
	)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// toListResponse converts a list to its JSON shape. owner is used only to
// label ownership when the caller already holds the owning identity.
func toListResponse(list *model.List, owner *model.User) listResponse {
	resp := listResponse{
		ID:    list.ID,
		Items: make([]itemResponse, 0, len(list.Items)),
	}
	if owner != nil && list.Owned() && *list.OwnerID == owner.ID {
		resp.OwnerEmail = owner.Email
	}
	for _, item := range list.Items {
		resp.Items = append(resp.Items, itemResponse{ID: item.ID, Text: item.Text})
	}
	for _, sharee := range list.SharedWith {
		resp.SharedWith = append(resp.SharedWith, sharee.Email)
	}
	return resp
}
