package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	familydomain "social-care-go/internal/domain/family"
	"social-care-go/internal/transport/httpserver/middleware"
)

type createFamilyRequest struct {
	ResponsiblePersonID string  `json:"responsible_person_id"`
	Kinship             string  `json:"kinship"`
	Address             *string `json:"address"`
	DwellingType        *string `json:"dwelling_type"`
}

type addMemberRequest struct {
	PersonID string `json:"person_id"`
	Kinship  string `json:"kinship"`
}

type removeMemberRequest struct {
	Reason string `json:"reason"`
}

type transferResponsibilityRequest struct {
	PersonID string `json:"person_id"`
}

type addIncomeRequest struct {
	PersonID   *string         `json:"person_id"`
	CategoryID string          `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
}

type addExpenseRequest struct {
	CategoryID string          `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
}

type attachVulnerabilityRequest struct {
	TypeID         string     `json:"type_id"`
	IdentifiedDate *time.Time `json:"identified_date"`
	ProfessionalID *string    `json:"professional_id"`
	Notes          *string    `json:"notes"`
}

type resolveVulnerabilityRequest struct {
	ResolvedDate *time.Time `json:"resolved_date"`
}

type memberResponse struct {
	ID            string     `json:"id"`
	PersonID      string     `json:"person_id"`
	Kinship       string     `json:"kinship"`
	IsResponsible bool       `json:"is_responsible"`
	EntryDate     time.Time  `json:"entry_date"`
	ExitDate      *time.Time `json:"exit_date,omitempty"`
	ExitReason    *string    `json:"exit_reason,omitempty"`
}

type familyResponse struct {
	ID            string           `json:"id"`
	Code          string           `json:"code"`
	ResponsibleID string           `json:"responsible_id"`
	Address       *string          `json:"address,omitempty"`
	DwellingType  *string          `json:"dwelling_type,omitempty"`
	Members       []memberResponse `json:"members"`
	CreatedAt     time.Time        `json:"created_at"`
}

type incomeResponse struct {
	ID         string  `json:"id"`
	FamilyID   string  `json:"family_id"`
	PersonID   *string `json:"person_id,omitempty"`
	CategoryID string  `json:"category_id"`
	Amount     string  `json:"amount"`
}

type expenseResponse struct {
	ID         string `json:"id"`
	FamilyID   string `json:"family_id"`
	CategoryID string `json:"category_id"`
	Amount     string `json:"amount"`
}

type vulnerabilityResponse struct {
	ID             string     `json:"id"`
	FamilyID       string     `json:"family_id"`
	TypeID         string     `json:"type_id"`
	IdentifiedDate time.Time  `json:"identified_date"`
	ResolvedDate   *time.Time `json:"resolved_date,omitempty"`
	ProfessionalID *string    `json:"professional_id,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

func toVulnerabilityResponse(v *familydomain.Vulnerability) vulnerabilityResponse {
	return vulnerabilityResponse{
		ID:             v.ID,
		FamilyID:       v.FamilyID,
		TypeID:         v.TypeID,
		IdentifiedDate: v.IdentifiedDate,
		ResolvedDate:   v.ResolvedDate,
		ProfessionalID: v.ProfessionalID,
		Notes:          v.Notes,
	}
}

type incomeSummaryResponse struct {
	TotalIncome     string `json:"total_income"`
	PerCapitaIncome string `json:"per_capita_income"`
	ActiveMembers   int    `json:"active_members"`
	PovertyBand     string `json:"poverty_band"`
}

func toFamilyResponse(f *familydomain.Family) familyResponse {
	members := make([]memberResponse, 0, len(f.Members))
	for _, m := range f.Members {
		members = append(members, memberResponse{
			ID:            m.ID,
			PersonID:      m.PersonID,
			Kinship:       m.Kinship,
			IsResponsible: m.IsResponsible,
			EntryDate:     m.EntryDate,
			ExitDate:      m.ExitDate,
			ExitReason:    m.ExitReason,
		})
	}
	return familyResponse{
		ID:            f.ID,
		Code:          f.Code,
		ResponsibleID: f.ResponsibleID,
		Address:       f.Address,
		DwellingType:  f.DwellingType,
		Members:       members,
		CreatedAt:     f.CreatedAt,
	}
}

func (h *Handlers) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req createFamilyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.ResponsiblePersonID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "responsible_person_id is required")
		return
	}

	result, err := h.Families.CreateFamily(r.Context(), familydomain.CreateFamilyInput{
		ResponsiblePersonID: req.ResponsiblePersonID,
		Kinship:             req.Kinship,
		Address:             req.Address,
		DwellingType:        req.DwellingType,
	})
	if err != nil {
		h.respondDomainError(w, "families.create", err, "person_id", req.ResponsiblePersonID)
		return
	}

	writeJSON(w, http.StatusCreated, toFamilyResponse(result))
}

func (h *Handlers) GetFamily(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")

	result, err := h.Families.GetFamily(r.Context(), familyID)
	if err != nil {
		h.respondDomainError(w, "families.get", err, "family_id", familyID)
		return
	}

	writeJSON(w, http.StatusOK, toFamilyResponse(result))
}

func (h *Handlers) GetFamilyIncomeSummary(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")

	f, err := h.Families.GetFamily(r.Context(), familyID)
	if err != nil {
		h.respondDomainError(w, "families.income_summary", err, "family_id", familyID)
		return
	}

	cfg, err := h.Settings.Current(r.Context())
	if err != nil {
		h.respondDomainError(w, "families.income_summary: settings", err)
		return
	}

	perCapita := familydomain.PerCapitaIncome(f)
	writeJSON(w, http.StatusOK, incomeSummaryResponse{
		TotalIncome:     familydomain.TotalIncome(f).StringFixed(2),
		PerCapitaIncome: perCapita.StringFixed(2),
		ActiveMembers:   len(f.ActiveMembers()),
		PovertyBand:     string(familydomain.ClassifyPoverty(perCapita, cfg.PovertyLine, cfg.ExtremePovertyLine)),
	})
}

func (h *Handlers) AddFamilyMember(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")
	actorID, _ := middleware.ActorFromContext(r.Context())

	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.PersonID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "person_id is required")
		return
	}

	result, err := h.Families.AddMember(r.Context(), familyID, req.PersonID, req.Kinship, actorID)
	if err != nil {
		h.respondDomainError(w, "families.add_member", err, "family_id", familyID, "person_id", req.PersonID)
		return
	}

	h.recorder.RecordMemberChange("added")
	writeJSON(w, http.StatusCreated, toFamilyResponse(result))
}

func (h *Handlers) RemoveFamilyMember(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")
	personID := chi.URLParam(r, "person_id")
	actorID, _ := middleware.ActorFromContext(r.Context())

	var req removeMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	result, err := h.Families.RemoveMember(r.Context(), familyID, personID, req.Reason, actorID)
	if err != nil {
		h.respondDomainError(w, "families.remove_member", err, "family_id", familyID, "person_id", personID)
		return
	}

	h.recorder.RecordMemberChange("removed")
	writeJSON(w, http.StatusOK, toFamilyResponse(result))
}

func (h *Handlers) TransferResponsibility(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")
	actorID, _ := middleware.ActorFromContext(r.Context())

	var req transferResponsibilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.PersonID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "person_id is required")
		return
	}

	result, err := h.Families.TransferResponsibility(r.Context(), familyID, req.PersonID, actorID)
	if err != nil {
		h.respondDomainError(w, "families.transfer_responsibility", err, "family_id", familyID, "person_id", req.PersonID)
		return
	}

	h.recorder.RecordMemberChange("responsibility_transferred")
	writeJSON(w, http.StatusOK, toFamilyResponse(result))
}

func (h *Handlers) AddFamilyIncome(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")

	var req addIncomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	income, err := h.Families.AddIncome(r.Context(), familyID, familydomain.AddIncomeInput{
		PersonID:   req.PersonID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
	})
	if err != nil {
		h.respondDomainError(w, "families.add_income", err, "family_id", familyID)
		return
	}

	writeJSON(w, http.StatusCreated, incomeResponse{
		ID:         income.ID,
		FamilyID:   income.FamilyID,
		PersonID:   income.PersonID,
		CategoryID: income.CategoryID,
		Amount:     income.Amount.StringFixed(2),
	})
}

func (h *Handlers) AddFamilyExpense(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")

	var req addExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	expense, err := h.Families.AddExpense(r.Context(), familyID, familydomain.AddExpenseInput{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
	})
	if err != nil {
		h.respondDomainError(w, "families.add_expense", err, "family_id", familyID)
		return
	}

	writeJSON(w, http.StatusCreated, expenseResponse{
		ID:         expense.ID,
		FamilyID:   expense.FamilyID,
		CategoryID: expense.CategoryID,
		Amount:     expense.Amount.StringFixed(2),
	})
}

func (h *Handlers) AttachVulnerability(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")

	var req attachVulnerabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	in := familydomain.AttachVulnerabilityInput{
		TypeID:         req.TypeID,
		ProfessionalID: req.ProfessionalID,
		Notes:          req.Notes,
	}
	if req.IdentifiedDate != nil {
		in.IdentifiedDate = *req.IdentifiedDate
	}

	v, err := h.Families.AttachVulnerability(r.Context(), familyID, in)
	if err != nil {
		h.respondDomainError(w, "families.attach_vulnerability", err, "family_id", familyID)
		return
	}

	writeJSON(w, http.StatusCreated, toVulnerabilityResponse(v))
}

func (h *Handlers) ResolveVulnerability(w http.ResponseWriter, r *http.Request) {
	vulnerabilityID := chi.URLParam(r, "id")

	var req resolveVulnerabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	resolvedDate := time.Time{}
	if req.ResolvedDate != nil {
		resolvedDate = *req.ResolvedDate
	}

	v, err := h.Families.ResolveVulnerability(r.Context(), vulnerabilityID, resolvedDate)
	if err != nil {
		h.respondDomainError(w, "families.resolve_vulnerability", err, "vulnerability_id", vulnerabilityID)
		return
	}

	writeJSON(w, http.StatusOK, toVulnerabilityResponse(v))
}
