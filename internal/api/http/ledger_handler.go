package http

import (
	"net/http"
	"strconv"

	"github.com/zoneboy/zilcycler/internal/service"
)

type LedgerHandler struct {
	ledgerSvc service.LedgerService
}

func NewLedgerHandler(ledgerSvc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())

	balance, err := h.ledgerSvc.GetBalance(r.Context(), claims.AccountID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}

func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	claims, _ := SessionFromContext(r.Context())

	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	entries, total, err := h.ledgerSvc.GetEntries(r.Context(), claims.AccountID, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"total":   total,
		"page":    page,
	})
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}
