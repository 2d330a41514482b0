package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"problem-hunt-api/internal/model"
	"problem-hunt-api/internal/service"
	"problem-hunt-api/pkg/apierror"
)

type TipHandler struct {
	service *service.TipService
}

func NewTipHandler(service *service.TipService) *TipHandler {
	return &TipHandler{service: service}
}

func (h *TipHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CreateTipRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	tip, err := h.service.Create(r.Context(), claims.Subject, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tip)
}
