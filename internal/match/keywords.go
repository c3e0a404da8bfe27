// Package match holds the fuzzy-text policy the KP reconciliation relies on:
// which keywords identify a treatment type in case titles and payout names,
// which case type a grant must carry, and how ledger rows are compared
// against the current case. The patterns encode real (if fragile) business
// policy, so they live in one place with their own tests.
package match

import (
	"fmt"
	"regexp"

	"github.com/nyborg-rpa/helbredstillaeg/internal/domain"
)

// Keywords is the registry/ledger search policy derived from a case's
// treatment category and insurance-share flag.
type Keywords struct {
	// TypePattern matches mentions of the treatment type in free text
	// (case titles, payout names).
	TypePattern *regexp.Regexp

	// CaseTypePattern matches the required grant case type.
	CaseTypePattern *regexp.Regexp

	// Extended is set when the case must be held against an extended
	// health allowance grant instead of an ordinary one.
	Extended bool
}

var (
	footTypePattern   = regexp.MustCompile(`(?i)fodb|fodp`)
	dentalTypePattern = regexp.MustCompile(`(?i)tand`)

	ordinaryCasePattern = regexp.MustCompile(`(?i)almindeligt helbredstillæg`)
	extendedCasePattern = regexp.MustCompile(`(?i)udvidet helbredstillæg`)
)

// DeriveKeywords returns the search policy for a category. Foot treatment
// without an insurance share is held against an extended allowance grant;
// dental treatment always against an ordinary one.
func DeriveKeywords(category domain.TreatmentCategory, hasInsuranceShare bool) (Keywords, error) {
	switch category {
	case domain.CategoryFoot:
		kw := Keywords{TypePattern: footTypePattern, CaseTypePattern: ordinaryCasePattern}
		if !hasInsuranceShare {
			kw.CaseTypePattern = extendedCasePattern
			kw.Extended = true
		}
		return kw, nil
	case domain.CategoryDental:
		return Keywords{TypePattern: dentalTypePattern, CaseTypePattern: ordinaryCasePattern}, nil
	default:
		return Keywords{}, &domain.DataIntegrityError{Op: "derive-keywords", Detail: fmt.Sprintf("no keyword policy for category %q", category)}
	}
}
