package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"social-care-go/internal/domain/attendance"
	"social-care-go/internal/transport/httpserver/middleware"
)

type createAttendanceRequest struct {
	Type            string    `json:"type"`
	UnitID          string    `json:"unit_id"`
	OccurredAt      time.Time `json:"occurred_at"`
	FamilyID        *string   `json:"family_id"`
	ServiceID       *string   `json:"service_id"`
	GroupID         *string   `json:"group_id"`
	ProgramID       *string   `json:"program_id"`
	Notes           *string   `json:"notes"`
	ParticipantIDs  []string  `json:"participant_ids"`
	ProfessionalIDs []string  `json:"professional_ids"`
	ReasonIDs       []string  `json:"reason_ids"`
}

type updateAttendanceRequest struct {
	UnitID     *string    `json:"unit_id"`
	OccurredAt *time.Time `json:"occurred_at"`
	FamilyID   *string    `json:"family_id"`
	ServiceID  *string    `json:"service_id"`
	GroupID    *string    `json:"group_id"`
	ProgramID  *string    `json:"program_id"`
	Notes      *string    `json:"notes"`
}

type addParticipantRequest struct {
	PersonID string `json:"person_id"`
}

type addAttendanceProfessionalRequest struct {
	ProfessionalID string `json:"professional_id"`
}

type addReasonRequest struct {
	ReasonID string `json:"reason_id"`
}

type attendanceResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	UnitID        string    `json:"unit_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	FamilyID      *string   `json:"family_id,omitempty"`
	ServiceID     *string   `json:"service_id,omitempty"`
	GroupID       *string   `json:"group_id,omitempty"`
	ProgramID     *string   `json:"program_id,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	Participants  []string  `json:"participants"`
	Professionals []string  `json:"professionals"`
	Reasons       []string  `json:"reasons"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by"`
	UpdatedBy     *string   `json:"updated_by,omitempty"`
}

func toAttendanceResponse(r *attendance.Record) attendanceResponse {
	participants := make([]string, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, p.PersonID)
	}
	professionals := make([]string, 0, len(r.Professionals))
	for _, p := range r.Professionals {
		professionals = append(professionals, p.ProfessionalID)
	}
	reasons := make([]string, 0, len(r.Reasons))
	for _, reason := range r.Reasons {
		reasons = append(reasons, reason.ReasonID)
	}
	return attendanceResponse{
		ID:            r.ID,
		Type:          string(r.Type),
		UnitID:        r.UnitID,
		OccurredAt:    r.OccurredAt,
		FamilyID:      r.FamilyID,
		ServiceID:     r.ServiceID,
		GroupID:       r.GroupID,
		ProgramID:     r.ProgramID,
		Notes:         r.Notes,
		Participants:  participants,
		Professionals: professionals,
		Reasons:       reasons,
		CreatedAt:     r.CreatedAt,
		CreatedBy:     r.CreatedBy,
		UpdatedBy:     r.UpdatedBy,
	}
}

func (h *Handlers) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.ActorFromContext(r.Context())

	var req createAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.OccurredAt.IsZero() {
		writeError(w, http.StatusBadRequest, "invalid_request", "occurred_at is required")
		return
	}

	record, err := h.Attendances.Create(r.Context(), attendance.CreateInput{
		Type:            attendance.Type(req.Type),
		UnitID:          req.UnitID,
		OccurredAt:      req.OccurredAt,
		FamilyID:        req.FamilyID,
		ServiceID:       req.ServiceID,
		GroupID:         req.GroupID,
		ProgramID:       req.ProgramID,
		Notes:           req.Notes,
		ParticipantIDs:  req.ParticipantIDs,
		ProfessionalIDs: req.ProfessionalIDs,
		ReasonIDs:       req.ReasonIDs,
	}, actorID)
	if err != nil {
		h.respondDomainError(w, "attendances.create", err, "type", req.Type, "unit_id", req.UnitID)
		return
	}

	h.recorder.RecordAttendance(string(record.Type))
	writeJSON(w, http.StatusCreated, toAttendanceResponse(record))
}

func (h *Handlers) GetAttendance(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")

	record, err := h.Attendances.Get(r.Context(), recordID)
	if err != nil {
		h.respondDomainError(w, "attendances.get", err, "record_id", recordID)
		return
	}

	writeJSON(w, http.StatusOK, toAttendanceResponse(record))
}

func (h *Handlers) ListAttendances(w http.ResponseWriter, r *http.Request) {
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

	filter := attendance.ListFilter{
		UnitID: optional(query.Get("unit_id")),
		Limit:  limit,
		Offset: offset,
	}
	if raw := query.Get("type"); raw != "" {
		t := attendance.Type(raw)
		if !t.Known() {
			writeError(w, http.StatusBadRequest, "invalid_request", "unknown attendance type")
			return
		}
		filter.Type = &t
	}
	from, err := parseTimeParam(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid from date")
		return
	}
	filter.From = from
	to, err := parseTimeParam(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid to date")
		return
	}
	filter.To = to

	records, err := h.Attendances.List(r.Context(), filter)
	if err != nil {
		h.respondDomainError(w, "attendances.list", err)
		return
	}

	out := make([]attendanceResponse, 0, len(records))
	for i := range records {
		out = append(out, toAttendanceResponse(&records[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	actorID, _ := middleware.ActorFromContext(r.Context())

	var req updateAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	record, err := h.Attendances.UpdateCore(r.Context(), recordID, attendance.UpdateInput{
		UnitID:     req.UnitID,
		OccurredAt: req.OccurredAt,
		FamilyID:   req.FamilyID,
		ServiceID:  req.ServiceID,
		GroupID:    req.GroupID,
		ProgramID:  req.ProgramID,
		Notes:      req.Notes,
	}, actorID)
	if err != nil {
		h.respondDomainError(w, "attendances.update", err, "record_id", recordID)
		return
	}

	writeJSON(w, http.StatusOK, toAttendanceResponse(record))
}

func (h *Handlers) AddAttendanceParticipant(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	actorID, _ := middleware.ActorFromContext(r.Context())

	var req addParticipantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.PersonID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "person_id is required")
		return
	}

	record, err := h.Attendances.AddParticipant(r.Context(), recordID, req.PersonID, actorID)
	if err != nil {
		h.respondDomainError(w, "attendances.add_participant", err, "record_id", recordID, "person_id", req.PersonID)
		return
	}

	writeJSON(w, http.StatusOK, toAttendanceResponse(record))
}

func (h *Handlers) AddAttendanceProfessional(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	actorID, _ := middleware.ActorFromContext(r.Context())

	var req addAttendanceProfessionalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.ProfessionalID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "professional_id is required")
		return
	}

	record, err := h.Attendances.AddProfessional(r.Context(), recordID, req.ProfessionalID, actorID)
	if err != nil {
		h.respondDomainError(w, "attendances.add_professional", err, "record_id", recordID, "professional_id", req.ProfessionalID)
		return
	}

	writeJSON(w, http.StatusOK, toAttendanceResponse(record))
}

func (h *Handlers) AddAttendanceReason(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	actorID, _ := middleware.ActorFromContext(r.Context())

	var req addReasonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.ReasonID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "reason_id is required")
		return
	}

	record, err := h.Attendances.AddReason(r.Context(), recordID, req.ReasonID, actorID)
	if err != nil {
		h.respondDomainError(w, "attendances.add_reason", err, "record_id", recordID, "reason_id", req.ReasonID)
		return
	}

	writeJSON(w, http.StatusOK, toAttendanceResponse(record))
}
