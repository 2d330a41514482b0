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

type ProblemHandler struct {
	service *service.ProblemService
}

func NewProblemHandler(service *service.ProblemService) *ProblemHandler {
	return &ProblemHandler{service: service}
}

func (h *ProblemHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CreateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	problem, err := h.service.Create(r.Context(), claims.Subject, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, problem)
}

func (h *ProblemHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, offset := pageParams(r)

	list, err := h.service.List(r.Context(), service.ListProblemsOptions{
		Category: strings.TrimSpace(query.Get("category")),
		SortBy:   strings.TrimSpace(query.Get("sortBy")),
		Search:   strings.TrimSpace(query.Get("q")),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *ProblemHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	limit, offset := pageParams(r)
	sortBy := strings.TrimSpace(r.URL.Query().Get("sortBy"))

	list, err := h.service.ListByAuthor(r.Context(), claims.Subject, sortBy, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *ProblemHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (h *ProblemHandler) Get(w http.ResponseWriter, r *http.Request) {
	problem, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	problem, err := h.service.Update(r.Context(), claims.Subject, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), claims.Subject, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DeletedResponse{Message: "problem deleted successfully", ID: id})
}

func (h *ProblemHandler) Upvote(w http.ResponseWriter, r *http.Request) {
	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	upvote, err := h.service.Upvote(r.Context(), claims.Subject, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, upvote)
}

func (h *ProblemHandler) RemoveUpvote(w http.ResponseWriter, r *http.Request) {
	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.RemoveUpvote(r.Context(), claims.Subject, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DeletedResponse{Message: "upvote removed", ID: id})
}
