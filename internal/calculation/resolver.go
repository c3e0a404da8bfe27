package calculation

import (
	"fmt"
	"time"

	"github.com/nyborg-rpa/helbredstillaeg/internal/domain"
	"github.com/nyborg-rpa/helbredstillaeg/internal/match"
)

// findGrantedCase looks up the KP grant covering the treatment. Absence is a
// normal business outcome (nil, nil); ambiguity is an operator problem and
// therefore fatal, since picking one of several plausible grants silently
// could pay out against the wrong case.
func (e *Engine) findGrantedCase(registry []domain.CaseRegistryEntry, kw match.Keywords, treatmentDate time.Time) (*domain.CaseRegistryEntry, error) {
	found := match.FindCases(registry, kw, treatmentDate)
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return &found[0], nil
	default:
		return nil, &domain.DataIntegrityError{
			Op:     "case-lookup",
			Detail: fmt.Sprintf("found %d grants matching %q for treatment date %s", len(found), kw.CaseTypePattern.String(), treatmentDate.Format("2006-01-02")),
		}
	}
}
