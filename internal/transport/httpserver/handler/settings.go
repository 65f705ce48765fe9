package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"social-care-go/internal/domain/settings"
	"social-care-go/internal/transport/httpserver/middleware"
)

type updateSettingsRequest struct {
	IndividualEditWindowHours  *int             `json:"individual_edit_window_hours"`
	PovertyLine                *decimal.Decimal `json:"poverty_line"`
	ExtremePovertyLine         *decimal.Decimal `json:"extreme_poverty_line"`
	RestrictCollectiveToFamily *bool            `json:"restrict_collective_to_family"`
	DuplicateBenefitAlert      *bool            `json:"duplicate_benefit_alert"`
}

type settingsResponse struct {
	IndividualEditWindowHours  int       `json:"individual_edit_window_hours"`
	PovertyLine                string    `json:"poverty_line"`
	ExtremePovertyLine         string    `json:"extreme_poverty_line"`
	RestrictCollectiveToFamily bool      `json:"restrict_collective_to_family"`
	DuplicateBenefitAlert      bool      `json:"duplicate_benefit_alert"`
	UpdatedAt                  time.Time `json:"updated_at"`
	UpdatedBy                  *string   `json:"updated_by,omitempty"`
}

func toSettingsResponse(s *settings.Settings) settingsResponse {
	return settingsResponse{
		IndividualEditWindowHours:  s.IndividualEditWindowHours,
		PovertyLine:                s.PovertyLine.StringFixed(2),
		ExtremePovertyLine:         s.ExtremePovertyLine.StringFixed(2),
		RestrictCollectiveToFamily: s.RestrictCollectiveToFamily,
		DuplicateBenefitAlert:      s.DuplicateBenefitAlert,
		UpdatedAt:                  s.UpdatedAt,
		UpdatedBy:                  s.UpdatedBy,
	}
}

func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	current, err := h.Settings.Current(r.Context())
	if err != nil {
		h.respondDomainError(w, "settings.get", err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(current))
}

func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.ActorFromContext(r.Context())

	var req updateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	updated, err := h.Settings.Update(r.Context(), settings.UpdatePatch{
		IndividualEditWindowHours:  req.IndividualEditWindowHours,
		PovertyLine:                req.PovertyLine,
		ExtremePovertyLine:         req.ExtremePovertyLine,
		RestrictCollectiveToFamily: req.RestrictCollectiveToFamily,
		DuplicateBenefitAlert:      req.DuplicateBenefitAlert,
	}, actorID)
	if err != nil {
		h.respondDomainError(w, "settings.update", err)
		return
	}

	writeJSON(w, http.StatusOK, toSettingsResponse(updated))
}
