// Package calculation implements the helbredstillæg eligibility decision:
// membership and date gates, the insurance-adjusted treatment total, the
// allowance percentage, and the duplicate-payment check against the KP case
// overview and payout ledger.
package calculation

import (
	"time"

	"go.uber.org/zap"

	"github.com/nyborg-rpa/helbredstillaeg/internal/domain"
	"github.com/nyborg-rpa/helbredstillaeg/internal/match"
)

// Engine evaluates one assembled case. The reference time is injected so
// the date gates are reproducible; the engine holds no other state and the
// same input always yields the same result.
type Engine struct {
	now    time.Time
	logger *zap.Logger
}

// NewEngine creates an engine that evaluates cases as of the given time.
func NewEngine(now time.Time, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{now: now, logger: logger}
}

// Evaluate runs the full decision over a case bundle. Business rejections
// are normal results with Eligible=false and a specific reason; a non-nil
// error means the input data is inconsistent and no decision can be trusted.
func (e *Engine) Evaluate(data *domain.CaseData) (*domain.Result, error) {
	res := &domain.Result{}

	// Membership gate: the free-text insurance description must resolve
	// to a known group before anything else is worth computing.
	e.logger.Debug("checking insurance group", zap.String("text", data.Insurance.InsuranceGroupText))
	res.InsuranceGroup = ParseInsuranceGroup(data.Insurance.InsuranceGroupText)
	if res.InsuranceGroup == domain.GroupUnknown {
		return e.reject(res, domain.ReasonUnknownInsurance), nil
	}

	// Date gates: strictly future dates are rejected, as are dates
	// strictly older than three years. Exactly three years old and
	// exactly now both pass.
	treatmentDate := data.Case.TreatmentDate
	e.logger.Debug("checking treatment date", zap.Time("treatment_date", treatmentDate))
	if treatmentDate.After(e.now) {
		return e.reject(res, domain.ReasonFutureTreatmentDate), nil
	}
	if treatmentDate.Before(e.now.AddDate(-3, 0, 0)) {
		return e.reject(res, domain.ReasonStaleTreatmentDate), nil
	}

	e.logger.Debug("calculating payment")
	if err := e.computeTotal(data, res); err != nil {
		return nil, err
	}
	e.logger.Debug("calculated total price",
		zap.String("total_price", res.TotalPrice.String()),
		zap.String("health_pct", res.AllowancePct.String()))
	if res.TotalPrice.IsZero() {
		return e.reject(res, domain.ReasonZeroAllowance), nil
	}

	keywords, err := match.DeriveKeywords(data.Case.Category, data.Case.HasInsuranceShare)
	if err != nil {
		return nil, err
	}
	res.Extended = keywords.Extended

	e.logger.Debug("checking for available case")
	matched, err := e.findGrantedCase(data.Registry, keywords, treatmentDate)
	if err != nil {
		return nil, err
	}
	if matched == nil {
		return e.reject(res, domain.ReasonNoCaseFound), nil
	}

	e.logger.Debug("checking previous payments", zap.Int("ledger_rows", len(data.Payouts)))
	verdict, err := match.ScanPayouts(data.Payouts, keywords, treatmentDate, res.TotalPrice)
	if err != nil {
		return nil, err
	}
	switch verdict {
	case match.VerdictPaid:
		return e.reject(res, domain.ReasonPreviouslyPaid), nil
	case match.VerdictPossiblyPaid:
		return e.reject(res, domain.ReasonPossiblyPaid), nil
	}

	res.Eligible = true
	res.Reason = domain.ReasonStandard
	res.MatchedCase = matched
	e.logger.Info("case approved",
		zap.String("total_price", res.TotalPrice.StringFixed(2)),
		zap.Bool("extended", res.Extended))
	return res, nil
}

func (e *Engine) reject(res *domain.Result, reason domain.StatusReason) *domain.Result {
	res.Eligible = false
	res.Reason = reason
	e.logger.Info("case rejected", zap.String("reason", string(reason)))
	return res
}
