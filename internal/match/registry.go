package match

import (
	"time"

	"github.com/nyborg-rpa/helbredstillaeg/internal/domain"
)

// FindCases returns, in input order, the registry entries whose title
// mentions the treatment type, whose case type matches the keyword policy,
// and whose grant window covers the treatment date.
func FindCases(entries []domain.CaseRegistryEntry, kw Keywords, treatmentDate time.Time) []domain.CaseRegistryEntry {
	var found []domain.CaseRegistryEntry
	for _, e := range entries {
		if !kw.TypePattern.MatchString(e.Title) {
			continue
		}
		if !kw.CaseTypePattern.MatchString(e.CaseType) {
			continue
		}
		if !e.ActiveOn(treatmentDate) {
			continue
		}
		found = append(found, e)
	}
	return found
}
