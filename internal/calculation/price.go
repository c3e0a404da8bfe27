package calculation

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/nyborg-rpa/helbredstillaeg/internal/domain"
)

// computeTotal walks the treatment lines in input order, subtracts the
// per-line insurance share, applies the allowance percentage valid on the
// treatment date and rounds the result up to the nearest øre. The rounding
// direction is policy, not arithmetic convenience: the citizen is never
// short-changed by a fraction.
func (e *Engine) computeTotal(data *domain.CaseData, res *domain.Result) error {
	year := strconv.Itoa(data.Case.TreatmentDate.Year())
	total := decimal.Zero

	res.Lines = make([]domain.TreatmentLine, len(data.Case.Lines))
	copy(res.Lines, data.Case.Lines)

	for i := range res.Lines {
		line := &res.Lines[i]
		total = total.Add(line.Price)

		// A foot-treatment main item billed by a clinic without a
		// provider number carries no insurance share at all.
		if line.Name == string(domain.CategoryFoot) && !data.Case.HasProviderNumber {
			continue
		}

		entry, err := findCatalogEntry(data.Catalog, data.Case.Category, line.Name, year)
		if err != nil {
			return err
		}
		if !entry.CoversGroup(res.InsuranceGroup) {
			continue
		}

		subsidy := decimal.Min(line.Price.Mul(entry.Percent), entry.MaxPrice)
		line.Subsidy = &subsidy
		total = total.Sub(subsidy)
	}

	// First allowance period containing the treatment date wins, in table
	// order; overlaps are not validated. No period means 0%.
	pct := decimal.Zero
	for _, period := range data.Insurance.AllowancePeriods {
		if period.Contains(data.Case.TreatmentDate) {
			pct = period.Percent
			break
		}
	}

	res.AllowancePct = pct
	res.TotalPrice = total.Mul(pct).RoundCeil(2)
	return nil
}

// findCatalogEntry requires exactly one price-list row for the key; zero or
// several mean the list itself is broken and the case cannot be decided.
func findCatalogEntry(catalog []domain.TreatmentCatalogEntry, category domain.TreatmentCategory, name, year string) (domain.TreatmentCatalogEntry, error) {
	var found []domain.TreatmentCatalogEntry
	for _, entry := range catalog {
		if entry.Category == category && entry.Name == name && entry.Year == year {
			found = append(found, entry)
		}
	}
	if len(found) != 1 {
		return domain.TreatmentCatalogEntry{}, &domain.DataIntegrityError{
			Op:     "catalog-lookup",
			Detail: fmt.Sprintf("expected exactly one match for treatment %q in %s, found %d", name, year, len(found)),
		}
	}
	return found[0], nil
}
