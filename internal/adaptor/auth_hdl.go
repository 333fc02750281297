package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"eventora-client/internal/dto/request"
	"eventora-client/internal/dto/response"
	"eventora-client/internal/gateway"
	"eventora-client/internal/usecase"
	"eventora-client/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	auth    gateway.AuthGateway
	session usecase.SessionService
	log     *zap.Logger
}

func NewAuthHandler(auth gateway.AuthGateway, session usecase.SessionService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		session: session,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Login handles POST /api/auth/login (public)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err, "login")
		return
	}

	h.issueCredential(w, result)
}

// Signup handles POST /api/auth/signup (public). The payload is relayed
// untouched; the backend owns the signup rules.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil || len(payload) == 0 {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.auth.Signup(r.Context(), payload)
	if err != nil {
		h.handleServiceError(w, err, "signup")
		return
	}

	h.issueCredential(w, result)
}

// VerifyOTP handles POST /api/auth/verify-otp (public)
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.auth.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		h.handleServiceError(w, err, "verify OTP")
		return
	}

	h.issueCredential(w, result)
}

// ResendOTP handles POST /api/auth/resend-otp (public)
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req request.ResendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.auth.ResendOTP(r.Context(), req.Email); err != nil {
		h.handleServiceError(w, err, "resend OTP")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ForgotPassword handles POST /api/auth/forgot-password (public)
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		h.handleServiceError(w, err, "forgot password")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ResetPassword handles POST /api/auth/reset-password (public)
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		h.handleServiceError(w, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GoogleLogin handles POST /api/auth/google (public)
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req request.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.auth.GoogleLogin(r.Context(), req.TokenID)
	if err != nil {
		h.handleServiceError(w, err, "google login")
		return
	}

	h.issueCredential(w, result)
}

// Logout handles POST /api/auth/logout (protected). The backend call is
// best-effort; the local session is cleared regardless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		h.log.Warn("Backend logout failed, clearing local session anyway", zap.Error(err))
	}

	if err := h.session.Clear(); err != nil {
		h.log.Error("Failed to clear session", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to end session")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// issueCredential persists a freshly issued token and hands back the
// pending booking intent, if one was parked before the login redirect.
// Flows that end without a token (signup pending OTP) just relay the
// backend payload.
func (h *AuthHandler) issueCredential(w http.ResponseWriter, result *gateway.AuthResult) {
	view := response.AuthView{
		Token: result.Token,
		Data:  result.Data,
	}

	if result.Token != "" {
		if err := h.session.SaveCredential(result.Token); err != nil {
			h.log.Error("Failed to persist credential", zap.Error(err))
			utils.ResponseInternalError(w, "Failed to start session")
			return
		}
		view.Resume = h.session.ConsumeIntent()
	}

	utils.ResponseSuccess(w, "success", view)
}

// handleServiceError maps auth failures onto the response envelope
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, gateway.ErrUnauthorized):
		h.log.Warn(operation+" failed - invalid credentials",
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, "Invalid email or password")

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
		utils.ResponseBadGateway(w, "Authentication service is unavailable, please try again")
	}
}
