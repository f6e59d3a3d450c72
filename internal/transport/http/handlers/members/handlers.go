package membershandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gatelog/internal/domain/auth"
	"gatelog/internal/domain/members"
	"gatelog/internal/transport/http/api"
	"gatelog/internal/transport/http/middleware"
)

type Handler struct {
	Members *members.Service
}

func NewHandler(memberSvc *members.Service) *Handler {
	return &Handler{Members: memberSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/members", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
		r.Patch("/{id}/password", h.handleChangePassword)
	})
}

// requireMember rejects anonymous requests; every registry route needs a
// signed-in member.
func requireMember(w http.ResponseWriter, r *http.Request) (middleware.MemberContext, bool) {
	member, ok := middleware.GetMember(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return middleware.MemberContext{}, false
	}
	return member, true
}

// canEdit allows directors and above to edit anyone, and a member to edit
// itself.
func canEdit(actor middleware.MemberContext, targetID string) bool {
	if auth.CanManageMembers(actor.Level) {
		return true
	}
	return actor.MemberID == targetID
}

func failFromErr(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, members.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "member not found", reqID)
	case errors.Is(err, members.ErrMissingFields),
		errors.Is(err, members.ErrInvalidRegistration),
		errors.Is(err, members.ErrInvalidBadge),
		errors.Is(err, members.ErrRegistrationTaken),
		errors.Is(err, members.ErrBadgeTaken),
		errors.Is(err, members.ErrEmptyPassword):
		api.Fail(w, http.StatusBadRequest, "invalid_member", err.Error(), reqID)
	default:
		slog.Error("member operation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal", "member operation failed", reqID)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := requireMember(w, r); !ok {
		return
	}

	list, err := h.Members.List(r.Context())
	if err != nil {
		failFromErr(w, err, reqID)
		return
	}
	if list == nil {
		list = []members.Member{}
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, ok := requireMember(w, r)
	if !ok {
		return
	}
	if !auth.CanManageMembers(actor.Level) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", reqID)
		return
	}

	var payload members.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	member, err := h.Members.Create(r.Context(), payload)
	if err != nil {
		failFromErr(w, err, reqID)
		return
	}
	api.Created(w, member, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if _, ok := requireMember(w, r); !ok {
		return
	}

	member, err := h.Members.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		failFromErr(w, err, reqID)
		return
	}
	api.Success(w, member, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, ok := requireMember(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if !canEdit(actor, id) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", reqID)
		return
	}

	var payload members.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	member, err := h.Members.Update(r.Context(), id, payload)
	if err != nil {
		failFromErr(w, err, reqID)
		return
	}
	api.Success(w, member, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, ok := requireMember(w, r)
	if !ok {
		return
	}
	if !auth.CanManageMembers(actor.Level) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", reqID)
		return
	}

	if err := h.Members.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		failFromErr(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"result": "deleted"}, reqID)
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	actor, ok := requireMember(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if !canEdit(actor, id) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", reqID)
		return
	}

	var payload changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	if err := h.Members.ChangePassword(r.Context(), id, payload.Password); err != nil {
		failFromErr(w, err, reqID)
		return
	}
	api.Success(w, map[string]string{"result": "password changed"}, reqID)
}
