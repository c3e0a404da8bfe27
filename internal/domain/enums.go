package domain

import "fmt"

// TreatmentCategory is the closed set of treatment forms the engine handles.
// Free-text labels from upstream are parsed through ParseTreatmentCategory so
// an unknown form can never fall through a dispatch silently.
type TreatmentCategory string

const (
	CategoryFoot   TreatmentCategory = "Fodbehandling"
	CategoryDental TreatmentCategory = "Tandbehandling"
)

// ParseTreatmentCategory maps an upstream category label to its enum value.
// An unrecognized label means the case record itself cannot be trusted.
func ParseTreatmentCategory(label string) (TreatmentCategory, error) {
	switch TreatmentCategory(label) {
	case CategoryFoot:
		return CategoryFoot, nil
	case CategoryDental:
		return CategoryDental, nil
	default:
		return "", &DataIntegrityError{Op: "parse-category", Detail: fmt.Sprintf("unsupported treatment category %q", label)}
	}
}

// InsuranceGroup is the citizen's Sygeforsikring "danmark" membership tier.
type InsuranceGroup string

const (
	GroupOne       InsuranceGroup = "Gruppe 1"
	GroupTwo       InsuranceGroup = "Gruppe 2"
	GroupFive      InsuranceGroup = "Gruppe 5"
	GroupNonMember InsuranceGroup = "Ikke medlem"
	GroupUnknown   InsuranceGroup = "Ukendt"
)

// StatusReason is the terminal status of a case evaluation. The values are
// the exact Danish texts the downstream KP flow keys on, so they must not be
// reworded.
type StatusReason string

const (
	ReasonFutureTreatmentDate StatusReason = "Behandlingsdato er i fremtiden!"
	ReasonStaleTreatmentDate  StatusReason = "Behandlingsdato er ældre end 3 år!"
	ReasonUnknownInsurance    StatusReason = "Kunne ikke finde borgers Sygesikring Danmark medlemsstatus"
	ReasonZeroAllowance       StatusReason = "Borgers helbredsprocent er 0"
	ReasonNoCaseFound         StatusReason = "Der er ikke fundet en sag for behandlingen"
	ReasonPreviouslyPaid      StatusReason = "Tidligere udbetalt"
	ReasonPossiblyPaid        StatusReason = "Måske tidligere udbetalt"

	// ReasonStandard is the single success status.
	ReasonStandard StatusReason = "Standard"
)

// ManualMessage returns the operator-facing text used when a rejected case is
// routed to manual review, and whether such a routing text exists for the
// reason. The wording (including the upstream misspelling of "Sygesikring")
// matches the mail templates the caseworkers already know.
func (r StatusReason) ManualMessage(category TreatmentCategory) (string, bool) {
	switch r {
	case ReasonNoCaseFound:
		return fmt.Sprintf("Robotten kunne ikke finde en %s sag hos borgeren i KP, og er derfor sendt til manuel behandling", category), true
	case ReasonPreviouslyPaid:
		return "Robotten fandt en tidligere udbetaling for samme behandling hos borgeren i KP, og er derfor sendt til manuel behandling", true
	case ReasonZeroAllowance:
		return "Robotten fandt ingen helbredsprocent hos borgeren i KP, og er derfor sendt til manuel behandling", true
	case ReasonUnknownInsurance:
		return "Robotten kunne ikke finde borgerens medlems status af Sygesirking Danmark i KP, og er derfor sendt til manuel behandling", true
	default:
		return "", false
	}
}
