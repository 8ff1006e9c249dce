package entity

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/notas/internal/entity"
	"github.com/MrJamesThe3rd/notas/internal/http/render"
)

type Handler struct {
	svc *entity.Service
}

func NewHandler(svc *entity.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts /{type}, where type is "stores" or "suppliers".
func (h *Handler) Routes(r chi.Router) {
	r.Post("/{type}", h.register)
	r.Get("/{type}", h.list)
}

type registerRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}

type entityResponse struct {
	ID    int64       `json:"id"`
	Type  entity.Type `json:"type"`
	Name  string      `json:"name"`
	TaxID string      `json:"tax_id"`
}

func toResponse(e *entity.Entity) entityResponse {
	return entityResponse{ID: e.ID, Type: e.Type, Name: e.Name, TaxID: e.TaxID}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	t, err := entity.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Register(r.Context(), t, req.Name, req.TaxID)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	t, err := entity.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	entities, err := h.svc.List(r.Context(), t)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]entityResponse, 0, len(entities))
	for _, e := range entities {
		resp = append(resp, toResponse(e))
	}

	render.JSON(w, http.StatusOK, resp)
}
