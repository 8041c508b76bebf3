package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zoneboy/zilcycler/internal/domain"
	"github.com/zoneboy/zilcycler/internal/service"
)

type RedemptionHandler struct {
	redemptionSvc service.RedemptionService
}

func NewRedemptionHandler(redemptionSvc service.RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{redemptionSvc: redemptionSvc}
}

func (h *RedemptionHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())

	redemptions, err := h.redemptionSvc.List(r.Context(), claims.Role, claims.AccountID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"redemptions": redemptions})
}

type createRedemptionRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
	Note   string `json:"note"`
}

func (h *RedemptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())

	var req createRedemptionRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Amount <= 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "amount must be positive"})
		return
	}

	redemption, err := h.redemptionSvc.Create(r.Context(), claims.AccountID, req.Amount, req.Method, req.Note)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, redemption)
}

type updateRedemptionRequest struct {
	Status domain.RedemptionStatus `json:"status"`
}

func (h *RedemptionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())

	redemptionID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid redemption id"})
		return
	}

	var req updateRedemptionRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	redemption, err := h.redemptionSvc.UpdateStatus(r.Context(), claims.Role, redemptionID, req.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, redemption)
}
