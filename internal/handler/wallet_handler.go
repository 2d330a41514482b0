package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"problem-hunt-api/internal/model"
	"problem-hunt-api/internal/service"
	"problem-hunt-api/pkg/apierror"
)

type WalletHandler struct {
	service *service.WalletService
}

func NewWalletHandler(service *service.WalletService) *WalletHandler {
	return &WalletHandler{service: service}
}

func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	wallets, err := h.service.List(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, wallets)
}

func (h *WalletHandler) Add(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.AddWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	wallet, err := h.service.Add(r.Context(), claims.Subject, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, wallet)
}

func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	walletID := strings.TrimSpace(chi.URLParam(r, "wallet_id"))
	if walletID == "" {
		writeError(w, apierror.BadRequest("wallet_id is required"))
		return
	}

	if err := h.service.Delete(r.Context(), claims.Subject, walletID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"deleted": walletID})
}
