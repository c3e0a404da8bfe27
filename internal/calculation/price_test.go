package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyborg-rpa/helbredstillaeg/internal/domain"
)

func TestComputeTotalRoundsUpToNearestOere(t *testing.T) {
	tests := []struct {
		name  string
		price decimal.Decimal
		pct   decimal.Decimal
		want  string
	}{
		{"fraction rounds up", decimal.NewFromFloat(12.341), decimal.NewFromInt(1), "12.35"},
		{"third of a krone", decimal.NewFromInt(100), decimal.NewFromFloat(0.333), "33.30"},
		{"exact amount unchanged", decimal.NewFromInt(700), decimal.NewFromFloat(0.75), "525.00"},
		{"never rounds down", decimal.NewFromFloat(0.011), decimal.NewFromInt(1), "0.02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A foot line without a provider number skips the catalog,
			// so the raw price flows straight into the allowance step.
			data := &domain.CaseData{
				Case: domain.Case{
					TreatmentDate:     time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
					Category:          domain.CategoryFoot,
					HasProviderNumber: false,
					Lines: []domain.TreatmentLine{
						{Name: "Fodbehandling", Price: tt.price},
					},
				},
				Insurance: domain.InsuranceFacts{
					AllowancePeriods: []domain.AllowancePeriod{
						{
							ValidFrom: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
							ValidTo:   time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
							Percent:   tt.pct,
						},
					},
				},
			}

			res := &domain.Result{InsuranceGroup: domain.GroupOne}
			engine := NewEngine(evalNow, nil)
			require.NoError(t, engine.computeTotal(data, res))
			assert.Equal(t, tt.want, res.TotalPrice.StringFixed(2))
		})
	}
}

func TestComputeTotalProviderNumberException(t *testing.T) {
	data := footCaseData()
	data.Case.HasProviderNumber = false
	// Remove the second line; the catalog must not even be consulted for
	// the excepted main treatment.
	data.Case.Lines = data.Case.Lines[:1]
	data.Catalog = nil

	res := &domain.Result{InsuranceGroup: domain.GroupOne}
	engine := NewEngine(evalNow, nil)
	require.NoError(t, engine.computeTotal(data, res))

	// 500 * 0.75, no insurance share subtracted
	assert.Equal(t, "375.00", res.TotalPrice.StringFixed(2))
	assert.Nil(t, res.Lines[0].Subsidy)
}

func TestComputeTotalSubsidyCappedAtMaxPrice(t *testing.T) {
	data := footCaseData()
	data.Case.Lines = data.Case.Lines[:1]

	res := &domain.Result{InsuranceGroup: domain.GroupOne}
	engine := NewEngine(evalNow, nil)
	require.NoError(t, engine.computeTotal(data, res))

	// min(500 * 0.5, 100) = 100, so (500-100) * 0.75 = 300.00
	require.NotNil(t, res.Lines[0].Subsidy)
	assert.Equal(t, "100", res.Lines[0].Subsidy.String())
	assert.Equal(t, "300.00", res.TotalPrice.StringFixed(2))
}

func TestComputeTotalUncoveredGroupGetsNoSubsidy(t *testing.T) {
	data := footCaseData()
	data.Case.Lines = data.Case.Lines[1:]

	res := &domain.Result{InsuranceGroup: domain.GroupOne}
	engine := NewEngine(evalNow, nil)
	require.NoError(t, engine.computeTotal(data, res))

	// Gruppe 1 is not in the entry's group set: full price counts.
	assert.Equal(t, "225.00", res.TotalPrice.StringFixed(2))
	assert.Nil(t, res.Lines[0].Subsidy)
}

func TestComputeTotalDoesNotMutateInput(t *testing.T) {
	data := footCaseData()

	res := &domain.Result{InsuranceGroup: domain.GroupOne}
	engine := NewEngine(evalNow, nil)
	require.NoError(t, engine.computeTotal(data, res))

	assert.Nil(t, data.Case.Lines[0].Subsidy, "input lines must stay untouched")
	require.NotNil(t, res.Lines[0].Subsidy)
}
