package authhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"gatelog/internal/domain/auth"
	"gatelog/internal/domain/members"
	"gatelog/internal/transport/http/api"
	"gatelog/internal/transport/http/middleware"
)

type Handler struct {
	Members *members.Service
	Secret  string
}

func NewHandler(memberSvc *members.Service, secret string) *Handler {
	return &Handler{Members: memberSvc, Secret: secret}
}

type loginRequest struct {
	Registration string `json:"registration"`
	Password     string `json:"password"`
}

type loginResponse struct {
	Token  string         `json:"token"`
	Member members.Member `json:"member"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	member, err := h.Members.FindByRegistration(r.Context(), payload.Registration)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	}
	if err := auth.CheckPassword(member.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		MemberID: member.ID,
		Name:     member.Name,
		Level:    member.Level,
	}, 12*time.Hour)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "could not issue token", reqID)
		return
	}

	api.Success(w, loginResponse{Token: token, Member: member}, reqID)
}
