package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/service"
)

type AccountHandler struct {
	accountSvc service.AccountService
}

func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())

	views, err := h.accountSvc.List(r.Context(), claims.Role, claims.AccountID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": views})
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())
	targetID := mux.Vars(r)["id"]

	view, err := h.accountSvc.Get(r.Context(), claims.Role, claims.AccountID, targetID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())

	var input service.CreateAccountInput
	if err := decodeBody(r, &input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if input.Email == "" || input.Password == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "email and password are required"})
		return
	}

	account, err := h.accountSvc.Create(r.Context(), claims.Role, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())
	targetID := mux.Vars(r)["id"]

	var patch domain.ProfilePatch
	if err := decodeBody(r, &patch); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	account, err := h.accountSvc.Update(r.Context(), claims.Role, claims.AccountID, targetID, &patch)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}
