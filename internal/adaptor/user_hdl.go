package adaptor

import (
	"errors"
	"io"
	"net/http"

	"eventora-client/internal/gateway"
	"eventora-client/internal/usecase"
	"eventora-client/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	users     gateway.UsersGateway
	lifecycle usecase.LifecycleService
	log       *zap.Logger
}

func NewUserHandler(users gateway.UsersGateway, lifecycle usecase.LifecycleService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		users:     users,
		lifecycle: lifecycle,
		log:       log.With(zap.String("handler", "user")),
	}
}

// GetProfile handles GET /api/users/profile (protected)
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.users.GetProfile(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

// UpdateProfile handles PUT /api/users/profile (protected)
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil || len(payload) == 0 {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	profile, err := h.users.UpdateProfile(r.Context(), payload)
	if err != nil {
		h.handleServiceError(w, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

// GetDashboard handles GET /api/users/dashboard (protected)
func (h *UserHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.users.GetDashboard(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get dashboard")
		return
	}

	utils.ResponseSuccess(w, "success", dashboard)
}

// ExportData handles GET /api/users/export (protected)
func (h *UserHandler) ExportData(w http.ResponseWriter, r *http.Request) {
	data, err := h.lifecycle.ExportUserData(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "export user data")
		return
	}

	utils.ResponseSuccess(w, "success", data)
}

// DeactivateAccount handles PATCH /api/users/account/deactivate (protected)
func (h *UserHandler) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.lifecycle.DeactivateAccount(r.Context()); err != nil {
		h.handleServiceError(w, err, "deactivate account")
		return
	}

	utils.ResponseSuccess(w, "Account deactivated", nil)
}

// DeleteAccount handles DELETE /api/users/account (protected)
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.lifecycle.DeleteAccount(r.Context()); err != nil {
		h.handleServiceError(w, err, "delete account")
		return
	}

	utils.ResponseSuccess(w, "Account deleted", nil)
}

// handleServiceError maps account operation failures onto the response
// envelope
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, gateway.ErrUnauthorized):
		h.log.Warn(operation+" failed - not authenticated",
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, "Please log in to continue")

	case errors.Is(err, gateway.ErrNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Account not found")

	default:
		if apiErr, ok := gateway.AsAPIError(err); ok {
			h.log.Warn(operation+" rejected by backend",
				zap.Error(err),
				zap.String("operation", operation))
			utils.ResponseBadRequest(w, apiErr.Message, nil)
			return
		}

		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadGateway(w, "Account service is unavailable, please try again")
	}
}
