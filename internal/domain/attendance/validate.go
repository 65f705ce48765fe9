package attendance

// validateComposition checks the type-dependent shape of a record before
// any persist. familyMembers holds the active member person ids of the
// referenced family and may be nil when no family is set; it is only
// consulted for the collective-restriction rule.
func validateComposition(r *Record, restrictCollective bool, familyMembers map[string]struct{}) error {
	if r.UnitID == "" {
		return ErrUnitRequired
	}
	if r.OccurredAt.IsZero() {
		return ErrOccurredAtRequired
	}
	if len(r.Professionals) == 0 {
		return ErrProfessionalRequired
	}

	switch r.Type {
	case TypeIndividual:
		if len(r.Participants) != 1 {
			return ErrExactlyOneParticipant
		}
	case TypeFamiliar:
		if r.FamilyID == nil {
			return ErrFamilyRequired
		}
	case TypeGrupo:
		if r.GroupID == nil {
			return ErrGroupRequired
		}
	case TypeColetivo:
		if len(r.Participants) == 0 {
			return ErrParticipantRequired
		}
		if restrictCollective && r.FamilyID != nil {
			for _, p := range r.Participants {
				if _, ok := familyMembers[p.PersonID]; !ok {
					return ErrParticipantNotFamilyMember
				}
			}
		}
	default:
		return ErrUnknownType
	}

	return nil
}
