package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"social-care-go/internal/domain/person"
)

type createPersonRequest struct {
	Name      string     `json:"name"`
	BirthDate *time.Time `json:"birth_date"`
}

type createProfessionalRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type createUnitRequest struct {
	Name string `json:"name"`
}

type personResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type professionalResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type unitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toPersonResponse(p *person.Person) personResponse {
	return personResponse{ID: p.ID, Name: p.Name, BirthDate: p.BirthDate, CreatedAt: p.CreatedAt}
}

func (h *Handlers) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req createPersonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	p := &person.Person{
		ID:        uuid.NewString(),
		Name:      req.Name,
		BirthDate: req.BirthDate,
	}
	if err := h.Directory.CreatePerson(r.Context(), p); err != nil {
		h.respondDomainError(w, "directory.create_person", err)
		return
	}

	writeJSON(w, http.StatusCreated, toPersonResponse(p))
}

func (h *Handlers) GetPerson(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "id")

	p, err := h.Directory.FindPerson(r.Context(), personID)
	if err != nil {
		h.respondDomainError(w, "directory.get_person", err, "person_id", personID)
		return
	}

	writeJSON(w, http.StatusOK, toPersonResponse(p))
}

func (h *Handlers) CreateProfessional(w http.ResponseWriter, r *http.Request) {
	var req createProfessionalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	p := &person.Professional{
		ID:   uuid.NewString(),
		Name: req.Name,
		Role: req.Role,
	}
	if err := h.Directory.CreateProfessional(r.Context(), p); err != nil {
		h.respondDomainError(w, "directory.create_professional", err)
		return
	}

	writeJSON(w, http.StatusCreated, professionalResponse{ID: p.ID, Name: p.Name, Role: p.Role, CreatedAt: p.CreatedAt})
}

func (h *Handlers) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req createUnitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	u := &person.Unit{
		ID:   uuid.NewString(),
		Name: req.Name,
	}
	if err := h.Directory.CreateUnit(r.Context(), u); err != nil {
		h.respondDomainError(w, "directory.create_unit", err)
		return
	}

	writeJSON(w, http.StatusCreated, unitResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt})
}
