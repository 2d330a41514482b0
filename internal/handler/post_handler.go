package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"problem-hunt-api/internal/model"
	"problem-hunt-api/internal/service"
	"problem-hunt-api/pkg/apierror"
)

type PostHandler struct {
	service *service.PostService
}

func NewPostHandler(service *service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	post, err := h.service.Create(r.Context(), claims.Subject, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	limit, offset := pageParams(r)

	list, err := h.service.List(r.Context(), claims.Subject, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := callerClaims(r)
	if err != nil {
		writeError(w, err)
		return
	}

	postID := chi.URLParam(r, "post_id")
	if err := h.service.Delete(r.Context(), claims.Subject, postID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DeletedResponse{Message: "post deleted successfully", ID: postID})
}
