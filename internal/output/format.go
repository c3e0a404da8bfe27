package output

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Formatter renders an envelope into bytes for stdout.
type Formatter interface {
	Format(env Envelope) ([]byte, error)
	Name() string
}

// GetFormatterByName returns the formatter registered under name, or nil.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "json":
		return JSONFormatter{}
	case "text":
		return TextFormatter{}
	default:
		return nil
	}
}

// JSONFormatter emits the envelope as indented JSON, the form the RPA flow
// writes back to the tracking list.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(env Envelope) ([]byte, error) {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// TextFormatter emits a short operator-readable summary.
type TextFormatter struct{}

func (TextFormatter) Name() string { return "text" }

func (TextFormatter) Format(env Envelope) ([]byte, error) {
	res := env.Result
	var b strings.Builder

	fmt.Fprintf(&b, "Sag %d (kørsel %s)\n", env.CaseID, env.RunID)
	if res.Eligible {
		fmt.Fprintf(&b, "Status: godkendt (%s)\n", res.Reason)
	} else {
		fmt.Fprintf(&b, "Status: afvist: %s\n", res.Reason)
	}
	fmt.Fprintf(&b, "Beløb: %s kr.\n", res.TotalPrice.StringFixed(2))
	fmt.Fprintf(&b, "Helbredsprocent: %s%%\n", res.AllowancePct.Mul(hundred).StringFixed(0))
	fmt.Fprintf(&b, "Sygeforsikring danmark: %s\n", res.InsuranceGroup)
	if res.Extended {
		b.WriteString("Udvidet helbredstillæg\n")
	}
	if res.MatchedCase != nil {
		fmt.Fprintf(&b, "Bevilget sag: %s (%s)\n", res.MatchedCase.Title, res.MatchedCase.CaseType)
	}
	return []byte(b.String()), nil
}
