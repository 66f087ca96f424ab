package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"isp-admin/internal/middleware"
	"isp-admin/internal/model"
	"isp-admin/internal/service"
	"isp-admin/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("Invalid JSON body"))
		return
	}

	var fields []apierror.FieldError
	if strings.TrimSpace(payload.Username) == "" {
		fields = append(fields, apierror.FieldError{Field: "username", Message: "Username is required"})
	}
	if payload.Password == "" {
		fields = append(fields, apierror.FieldError{Field: "password", Message: "Password is required"})
	}
	if len(fields) > 0 {
		writeError(w, apierror.Validation(fields...))
		return
	}

	result, err := h.service.Authenticate(r.Context(), strings.TrimSpace(payload.Username), payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Me echoes the identity decoded from the bearer token; no lookup is needed.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("Authentication required", "No authorization header provided"))
		return
	}

	writeJSON(w, http.StatusOK, model.AuthUser{
		ID:       identity.UserID,
		Username: identity.Username,
		Role:     identity.Role,
	})
}
