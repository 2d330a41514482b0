package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"problem-hunt-api/internal/model"
	"problem-hunt-api/internal/service"
	"problem-hunt-api/pkg/apierror"
)

type ProposalHandler struct {
	service *service.ProposalService
}

func NewProposalHandler(service *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{service: service}
}

func (h *ProposalHandler) ListForProblem(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	list, err := h.service.ListForProblem(r.Context(), chi.URLParam(r, "id"), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CreateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	proposal, err := h.service.Create(r.Context(), claims.Subject, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, proposal)
}

func (h *ProposalHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	list, err := h.service.ListForUser(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}
