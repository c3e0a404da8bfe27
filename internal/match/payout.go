package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nyborg-rpa/helbredstillaeg/internal/domain"
	"github.com/nyborg-rpa/helbredstillaeg/pkg/dateutil"
)

// PayoutVerdict is the outcome of scanning the payout ledger for a possible
// duplicate of the current case.
type PayoutVerdict int

const (
	// VerdictClear means no prior payout matches the case.
	VerdictClear PayoutVerdict = iota

	// VerdictPaid means a ledger row names the same treatment type with a
	// date equal to the treatment date.
	VerdictPaid

	// VerdictPossiblyPaid means a ledger row names the treatment type
	// without a recognizable date, but its amount equals the computed
	// total to the øre. Uncertain, so it routes to manual review rather
	// than a hard duplicate.
	VerdictPossiblyPaid
)

// ScanPayouts checks the ledger for payouts of the same treatment. Rows are
// scanned in input order and the first hit decides; a keyword-matching row
// with an unparseable amount is a data-integrity fault.
func ScanPayouts(records []domain.PayoutRecord, kw Keywords, treatmentDate time.Time, total decimal.Decimal) (PayoutVerdict, error) {
	for _, rec := range records {
		if !kw.TypePattern.MatchString(rec.Name) {
			continue
		}

		amount, err := ParseAmount(rec.Amount)
		if err != nil {
			return VerdictClear, &domain.DataIntegrityError{
				Op:     "scan-payouts",
				Detail: fmt.Sprintf("cannot parse amount %q on payout %q: %v", rec.Amount, rec.Name, err),
			}
		}

		date, ok := dateutil.ExtractDate(rec.Name)
		if !ok {
			if amount.Equal(total) {
				return VerdictPossiblyPaid, nil
			}
			continue
		}
		if date.Equal(treatmentDate) {
			return VerdictPaid, nil
		}
	}
	return VerdictClear, nil
}

// ParseAmount converts a Danish-formatted currency string ("1.234,56 kr.")
// into a decimal: currency suffix stripped, thousands dots removed, decimal
// comma converted.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(s, "\u00a0", " ")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, "kr.")
	cleaned = strings.TrimSuffix(cleaned, "kr")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	return decimal.NewFromString(cleaned)
}
