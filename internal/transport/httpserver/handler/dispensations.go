package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"social-care-go/internal/domain/benefit"
	"social-care-go/internal/transport/httpserver/middleware"
)

type dispensationItemRequest struct {
	BenefitID string          `json:"benefit_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type createDispensationRequest struct {
	PersonID       string                    `json:"person_id"`
	FamilyID       *string                   `json:"family_id"`
	UnitID         string                    `json:"unit_id"`
	ProfessionalID string                    `json:"professional_id"`
	Items          []dispensationItemRequest `json:"items"`
}

type dispensationReasonRequest struct {
	Reason string `json:"reason"`
}

type dispensationItemResponse struct {
	ID        string `json:"id"`
	BenefitID string `json:"benefit_id"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

type dispensationResponse struct {
	ID             string                     `json:"id"`
	Situation      string                     `json:"situation"`
	PersonID       string                     `json:"person_id"`
	FamilyID       *string                    `json:"family_id,omitempty"`
	UnitID         string                     `json:"unit_id"`
	ProfessionalID string                     `json:"professional_id"`
	Items          []dispensationItemResponse `json:"items"`
	Total          string                     `json:"total"`
	CreatedAt      time.Time                  `json:"created_at"`
	AuthorizedAt   *time.Time                 `json:"authorized_at,omitempty"`
	RejectedAt     *time.Time                 `json:"rejected_at,omitempty"`
	RejectReason   *string                    `json:"reject_reason,omitempty"`
	CancelledAt    *time.Time                 `json:"cancelled_at,omitempty"`
	CancelReason   *string                    `json:"cancel_reason,omitempty"`
	DuplicateAlert bool                       `json:"duplicate_alert,omitempty"`
}

func toDispensationResponse(d *benefit.Dispensation, duplicateAlert bool) dispensationResponse {
	items := make([]dispensationItemResponse, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, dispensationItemResponse{
			ID:        item.ID,
			BenefitID: item.BenefitID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Total:     item.Total.StringFixed(2),
		})
	}
	return dispensationResponse{
		ID:             d.ID,
		Situation:      string(d.Situation),
		PersonID:       d.PersonID,
		FamilyID:       d.FamilyID,
		UnitID:         d.UnitID,
		ProfessionalID: d.ProfessionalID,
		Items:          items,
		Total:          d.Total().StringFixed(2),
		CreatedAt:      d.CreatedAt,
		AuthorizedAt:   d.AuthorizedAt,
		RejectedAt:     d.RejectedAt,
		RejectReason:   d.RejectReason,
		CancelledAt:    d.CancelledAt,
		CancelReason:   d.CancelReason,
		DuplicateAlert: duplicateAlert,
	}
}

func (h *Handlers) CreateDispensation(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.ActorFromContext(r.Context())

	var req createDispensationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.PersonID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "person_id is required")
		return
	}

	items := make([]benefit.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, benefit.ItemInput{
			BenefitID: item.BenefitID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	result, err := h.Benefits.Create(r.Context(), benefit.CreateInput{
		PersonID:       req.PersonID,
		FamilyID:       req.FamilyID,
		UnitID:         req.UnitID,
		ProfessionalID: req.ProfessionalID,
		Items:          items,
	}, actorID)
	if err != nil {
		h.respondDomainError(w, "dispensations.create", err, "person_id", req.PersonID)
		return
	}

	h.recorder.RecordDispensation("created")
	writeJSON(w, http.StatusCreated, toDispensationResponse(result.Dispensation, result.DuplicateAlert))
}

func (h *Handlers) GetDispensation(w http.ResponseWriter, r *http.Request) {
	dispensationID := chi.URLParam(r, "id")

	d, err := h.Benefits.Get(r.Context(), dispensationID)
	if err != nil {
		h.respondDomainError(w, "dispensations.get", err, "dispensation_id", dispensationID)
		return
	}

	writeJSON(w, http.StatusOK, toDispensationResponse(d, false))
}

func (h *Handlers) ListDispensations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, err := parseIntParam(query.Get("limit"), 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	filter := benefit.ListFilter{
		UnitID:   optional(query.Get("unit_id")),
		PersonID: optional(query.Get("person_id")),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := query.Get("situation"); raw != "" {
		situation := benefit.Situation(raw)
		filter.Situation = &situation
	}

	dispensations, err := h.Benefits.List(r.Context(), filter)
	if err != nil {
		h.respondDomainError(w, "dispensations.list", err)
		return
	}

	out := make([]dispensationResponse, 0, len(dispensations))
	for i := range dispensations {
		out = append(out, toDispensationResponse(&dispensations[i], false))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) AuthorizeDispensation(w http.ResponseWriter, r *http.Request) {
	dispensationID := chi.URLParam(r, "id")
	actorID, _ := middleware.ActorFromContext(r.Context())

	d, err := h.Benefits.Authorize(r.Context(), dispensationID, actorID)
	if err != nil {
		h.respondDomainError(w, "dispensations.authorize", err, "dispensation_id", dispensationID)
		return
	}

	h.recorder.RecordDispensation("authorized")
	writeJSON(w, http.StatusOK, toDispensationResponse(d, false))
}

func (h *Handlers) RejectDispensation(w http.ResponseWriter, r *http.Request) {
	dispensationID := chi.URLParam(r, "id")
	actorID, _ := middleware.ActorFromContext(r.Context())

	var req dispensationReasonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	d, err := h.Benefits.Reject(r.Context(), dispensationID, actorID, req.Reason)
	if err != nil {
		h.respondDomainError(w, "dispensations.reject", err, "dispensation_id", dispensationID)
		return
	}

	h.recorder.RecordDispensation("rejected")
	writeJSON(w, http.StatusOK, toDispensationResponse(d, false))
}

func (h *Handlers) CancelDispensation(w http.ResponseWriter, r *http.Request) {
	dispensationID := chi.URLParam(r, "id")
	actorID, _ := middleware.ActorFromContext(r.Context())

	var req dispensationReasonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	d, err := h.Benefits.Cancel(r.Context(), dispensationID, actorID, req.Reason)
	if err != nil {
		h.respondDomainError(w, "dispensations.cancel", err, "dispensation_id", dispensationID)
		return
	}

	h.recorder.RecordDispensation("cancelled")
	writeJSON(w, http.StatusOK, toDispensationResponse(d, false))
}
