package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles everything NewRouter needs to register the API surface.
type Handlers struct {
	Auth       *AuthHandler
	Accounts   *AccountHandler
	Pickups    *PickupHandler
	Redemption *RedemptionHandler
	Ledger     *LedgerHandler
	Settings   *SettingsHandler
}

// NewRouter wires the full route table under /api/v1.
func NewRouter(h Handlers, auth *AuthMiddleware) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	// Auth flows. Login, signup and the password flows are anonymous;
	// verify and password change need a live session.
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/verify", auth.Require(h.Auth.VerifySession)).Methods("GET")
	api.HandleFunc("/auth/send-verification", h.Auth.SendVerification).Methods("POST")
	api.HandleFunc("/auth/register", h.Auth.Register).Methods("POST")
	api.HandleFunc("/auth/forgot-password", h.Auth.ForgotPassword).Methods("POST")
	api.HandleFunc("/auth/reset-password", h.Auth.ResetPassword).Methods("POST")
	api.HandleFunc("/auth/change-password/initiate", auth.Require(h.Auth.InitiatePasswordChange)).Methods("POST")
	api.HandleFunc("/auth/change-password/confirm", auth.Require(h.Auth.ConfirmPasswordChange)).Methods("POST")

	// Accounts.
	api.HandleFunc("/users", auth.Require(h.Accounts.List)).Methods("GET")
	api.HandleFunc("/users", auth.RequirePrivileged(h.Accounts.Create)).Methods("POST")
	api.HandleFunc("/users/{id}", auth.Require(h.Accounts.Get)).Methods("GET")
	api.HandleFunc("/users/{id}", auth.Require(h.Accounts.Update)).Methods("PUT")

	// Pickups.
	api.HandleFunc("/pickups", auth.Require(h.Pickups.List)).Methods("GET")
	api.HandleFunc("/pickups", auth.Require(h.Pickups.Create)).Methods("POST")
	api.HandleFunc("/pickups/{id}", auth.Require(h.Pickups.Update)).Methods("PUT")

	// Redemptions.
	api.HandleFunc("/redemption", auth.Require(h.Redemption.List)).Methods("GET")
	api.HandleFunc("/redemption", auth.Require(h.Redemption.Create)).Methods("POST")
	api.HandleFunc("/redemption/{id}", auth.RequirePrivileged(h.Redemption.UpdateStatus)).Methods("PUT")

	// Ledger.
	api.HandleFunc("/ledger/balance", auth.Require(h.Ledger.GetBalance)).Methods("GET")
	api.HandleFunc("/ledger", auth.Require(h.Ledger.ListEntries)).Methods("GET")

	// Platform settings.
	api.HandleFunc("/settings", auth.RequirePrivileged(h.Settings.Get)).Methods("GET")
	api.HandleFunc("/settings", auth.RequirePrivileged(h.Settings.Update)).Methods("PUT")

	return router
}
