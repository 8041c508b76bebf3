package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zoneboy/zilcycler/internal/service"
)

type PickupHandler struct {
	pickupSvc service.PickupService
}

func NewPickupHandler(pickupSvc service.PickupService) *PickupHandler {
	return &PickupHandler{pickupSvc: pickupSvc}
}

func (h *PickupHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())

	pickups, err := h.pickupSvc.List(r.Context(), claims.Role, claims.AccountID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"pickups": pickups})
}

func (h *PickupHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())

	var input service.CreatePickupInput
	if err := decodeBody(r, &input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if input.Material == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "material is required"})
		return
	}

	pickup, err := h.pickupSvc.Create(r.Context(), claims.AccountID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, pickup)
}

func (h *PickupHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())

	pickupID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid pickup id"})
		return
	}

	var input service.UpdatePickupInput
	if err := decodeBody(r, &input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	pickup, err := h.pickupSvc.Update(r.Context(), claims.Role, claims.AccountID, pickupID, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, pickup)
}
