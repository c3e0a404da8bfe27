package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TreatmentCatalogEntry is one row of the approved-treatment price list,
// keyed by (category, treatment name, year). Year is kept as the string the
// list stores it in.
type TreatmentCatalogEntry struct {
	ID       int               `json:"id"`
	Category TreatmentCategory `json:"treatment_category"`
	Name     string            `json:"name"`
	MaxPrice decimal.Decimal   `json:"max_price"`
	Percent  decimal.Decimal   `json:"percent"`
	Year     string            `json:"year"`
	Groups   []InsuranceGroup  `json:"groups"`
}

// CoversGroup reports whether the entry's insurance share applies to the
// given membership group.
func (e TreatmentCatalogEntry) CoversGroup(g InsuranceGroup) bool {
	for _, have := range e.Groups {
		if have == g {
			return true
		}
	}
	return false
}

// AllowancePeriod is one date-scoped health allowance percentage from the
// pension facts. Periods are taken in table order and are not checked for
// overlap; the first period containing a date wins.
type AllowancePeriod struct {
	ValidFrom time.Time       `json:"valid_from"`
	ValidTo   time.Time       `json:"valid_to"`
	Percent   decimal.Decimal `json:"percent"`
}

// Contains reports whether t falls within the period, both ends inclusive.
func (p AllowancePeriod) Contains(t time.Time) bool {
	return !t.Before(p.ValidFrom) && !t.After(p.ValidTo)
}

// CaseRegistryEntry is one row of the KP case overview for the citizen.
// GrantStart and GrantEnd are nil when the source value was absent or
// unparseable, matching the lenient date handling upstream.
type CaseRegistryEntry struct {
	Title      string     `json:"Titel"`
	CaseType   string     `json:"Sagstype"`
	GrantStart *time.Time `json:"grant_start"`
	GrantEnd   *time.Time `json:"grant_end"`
	Status     string     `json:"Status"`
}

// ActiveOn reports whether the grant window covers t: the start must be
// known and strictly before t, the end absent or strictly after t.
func (e CaseRegistryEntry) ActiveOn(t time.Time) bool {
	if e.GrantStart == nil || !e.GrantStart.Before(t) {
		return false
	}
	return e.GrantEnd == nil || e.GrantEnd.After(t)
}

// PayoutRecord is one historical payout ledger row. The amount is kept in
// its locale-formatted source form ("1.234,56 kr.") and parsed only when the
// duplicate check needs it.
type PayoutRecord struct {
	Name   string `json:"Navn"`
	Amount string `json:"Beløb"`
}
