package http

import (
	"net/http"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/service"
)

// Endpoint classes for rate-limit bookkeeping. Each class holds its own
// window so abuse of one flow cannot lock out another.
const (
	limitClassLogin          = "login"
	limitClassVerification   = "send-verification"
	limitClassRegister       = "register"
	limitClassForgotPassword = "forgot-password"
	limitClassResetPassword  = "reset-password"
	limitClassChangePassword = "change-password"
)

type AuthHandler struct {
	authSvc service.AuthService
	limiter service.RateLimiter
}

func NewAuthHandler(authSvc service.AuthService, limiter service.RateLimiter) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, limiter: limiter}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Account *domain.Account `json:"account"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(r.Context(), limitClassLogin, clientAddr(r)) {
		respondError(w, r, service.ErrRateLimited)
		return
	}

	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, service.ErrInvalidCredentials)
		return
	}

	token, account, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{Token: token, Account: account})
}

// VerifySession echoes the authenticated account id. The middleware has
// already re-checked the live account state.
func (h *AuthHandler) VerifySession(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"account_id": claims.AccountID,
		"role":       claims.Role,
		"email":      claims.Email,
	})
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) SendVerification(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(r.Context(), limitClassVerification, clientAddr(r)) {
		respondError(w, r, service.ErrRateLimited)
		return
	}

	var req emailRequest
	if err := decodeBody(r, &req); err != nil || req.Email == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "email is required"})
		return
	}

	if err := h.authSvc.SendVerification(r.Context(), req.Email); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "verification code sent"})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(r.Context(), limitClassRegister, clientAddr(r)) {
		respondError(w, r, service.ErrRateLimited)
		return
	}

	var input service.RegisterInput
	if err := decodeBody(r, &input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if input.Email == "" || input.Password == "" || input.Code == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "email, password and code are required"})
		return
	}

	account, err := h.authSvc.Register(r.Context(), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(r.Context(), limitClassForgotPassword, clientAddr(r)) {
		respondError(w, r, service.ErrRateLimited)
		return
	}

	var req emailRequest
	if err := decodeBody(r, &req); err != nil || req.Email == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "email is required"})
		return
	}

	if err := h.authSvc.ForgotPassword(r.Context(), req.Email); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "if the email is registered, a reset code was sent"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(r.Context(), limitClassResetPassword, clientAddr(r)) {
		respondError(w, r, service.ErrRateLimited)
		return
	}

	var req resetPasswordRequest
	if err := decodeBody(r, &req); err != nil || req.Email == "" || req.Code == "" || req.NewPassword == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "email, code and new_password are required"})
		return
	}

	if err := h.authSvc.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

type initiateChangeRequest struct {
	CurrentPassword string `json:"current_password"`
}

func (h *AuthHandler) InitiatePasswordChange(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())
	if !h.limiter.Allow(r.Context(), limitClassChangePassword, claims.AccountID) {
		respondError(w, r, service.ErrRateLimited)
		return
	}

	var req initiateChangeRequest
	if err := decodeBody(r, &req); err != nil || req.CurrentPassword == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "current_password is required"})
		return
	}

	if err := h.authSvc.InitiatePasswordChange(r.Context(), claims.AccountID, req.CurrentPassword); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "confirmation code sent"})
}

type confirmChangeRequest struct {
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) ConfirmPasswordChange(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())
	if !h.limiter.Allow(r.Context(), limitClassChangePassword, claims.AccountID) {
		respondError(w, r, service.ErrRateLimited)
		return
	}

	var req confirmChangeRequest
	if err := decodeBody(r, &req); err != nil || req.Code == "" || req.NewPassword == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "code and new_password are required"})
		return
	}

	if err := h.authSvc.ConfirmPasswordChange(r.Context(), claims.AccountID, req.Code, req.NewPassword); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
