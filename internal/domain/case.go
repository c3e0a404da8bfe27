package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Case is the unit of work: one submitted receipt for one citizen, assembled
// from the per-case data drop. It is built fresh per invocation and never
// persisted.
type Case struct {
	ID                int               `json:"id"`
	TreatmentDate     time.Time         `json:"treatment_date"`
	Category          TreatmentCategory `json:"treatment_category"`
	HasProviderNumber bool              `json:"has_provider_number"`
	HasInsuranceShare bool              `json:"has_insurance_share"`
	Lines             []TreatmentLine   `json:"treatments"`
}

// TreatmentLine is one billed item on the receipt. Subsidy is filled in by
// the calculator; it stays nil when the citizen's insurance group does not
// cover the treatment or a named exception applies.
type TreatmentLine struct {
	Name    string           `json:"name"`
	Price   decimal.Decimal  `json:"price"`
	Subsidy *decimal.Decimal `json:"insurance_subsidy,omitempty"`
}

// InsuranceFacts holds the pension-system facts needed by the engine: the
// free-text insurance membership description and the date-scoped health
// allowance percentages.
type InsuranceFacts struct {
	InsuranceGroupText string            `json:"insurance_group_text"`
	AllowancePeriods   []AllowancePeriod `json:"allowance_periods"`
}

// CaseData bundles the four independent source fetches the engine evaluates.
// All reads happen before evaluation starts; the engine itself is pure.
type CaseData struct {
	Case      Case
	Catalog   []TreatmentCatalogEntry
	Insurance InsuranceFacts
	Registry  []CaseRegistryEntry
	Payouts   []PayoutRecord
}

// Result is the terminal outcome of one evaluation. Field names mirror the
// output record the RPA flow writes back to the tracking list.
type Result struct {
	Eligible       bool               `json:"status"`
	Reason         StatusReason       `json:"status_message"`
	TotalPrice     decimal.Decimal    `json:"total_price"`
	AllowancePct   decimal.Decimal    `json:"health_pct"`
	InsuranceGroup InsuranceGroup     `json:"insurance_group_denmark"`
	Extended       bool               `json:"extended"`
	Lines          []TreatmentLine    `json:"treatments,omitempty"`
	MatchedCase    *CaseRegistryEntry `json:"found_case,omitempty"`
}
