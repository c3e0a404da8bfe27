package match

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyborg-rpa/helbredstillaeg/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func TestDeriveKeywords(t *testing.T) {
	t.Run("foot with insurance share", func(t *testing.T) {
		kw, err := DeriveKeywords(domain.CategoryFoot, true)
		require.NoError(t, err)
		assert.False(t, kw.Extended)
		assert.True(t, kw.TypePattern.MatchString("Fodbehandling"))
		assert.True(t, kw.TypePattern.MatchString("FODPLEJE"))
		assert.False(t, kw.TypePattern.MatchString("Tandrensning"))
		assert.True(t, kw.CaseTypePattern.MatchString("Almindeligt helbredstillæg"))
		assert.False(t, kw.CaseTypePattern.MatchString("Udvidet helbredstillæg"))
	})

	t.Run("foot without insurance share", func(t *testing.T) {
		kw, err := DeriveKeywords(domain.CategoryFoot, false)
		require.NoError(t, err)
		assert.True(t, kw.Extended)
		assert.True(t, kw.CaseTypePattern.MatchString("Udvidet helbredstillæg"))
		assert.False(t, kw.CaseTypePattern.MatchString("Almindeligt helbredstillæg"))
	})

	t.Run("dental ignores insurance share", func(t *testing.T) {
		kw, err := DeriveKeywords(domain.CategoryDental, false)
		require.NoError(t, err)
		assert.False(t, kw.Extended)
		assert.True(t, kw.TypePattern.MatchString("Tandbehandling"))
		assert.True(t, kw.CaseTypePattern.MatchString("almindeligt helbredstillæg"))
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := DeriveKeywords(domain.TreatmentCategory("Fysioterapi"), true)
		var integrity *domain.DataIntegrityError
		assert.True(t, errors.As(err, &integrity))
	})
}

func TestFindCases(t *testing.T) {
	kw, err := DeriveKeywords(domain.CategoryFoot, true)
	require.NoError(t, err)

	treatmentDate := day(2025, time.March, 10)
	entries := []domain.CaseRegistryEntry{
		{Title: "Fodbehandling", CaseType: "Almindeligt helbredstillæg", GrantStart: dayPtr(2024, time.January, 1)},
		{Title: "Fodpleje", CaseType: "Udvidet helbredstillæg", GrantStart: dayPtr(2024, time.January, 1)},
		{Title: "Tandbehandling", CaseType: "Almindeligt helbredstillæg", GrantStart: dayPtr(2024, time.January, 1)},
		{Title: "Fodbehandling", CaseType: "Almindeligt helbredstillæg", GrantStart: dayPtr(2025, time.April, 1)},
		{Title: "Fodbehandling", CaseType: "Almindeligt helbredstillæg", GrantStart: dayPtr(2024, time.January, 1), GrantEnd: dayPtr(2025, time.January, 1)},
		{Title: "Fodbehandling", CaseType: "Almindeligt helbredstillæg"},
	}

	found := FindCases(entries, kw, treatmentDate)
	require.Len(t, found, 1)
	assert.Equal(t, entries[0], found[0])
}

func TestFindCasesGrantBoundariesAreStrict(t *testing.T) {
	kw, err := DeriveKeywords(domain.CategoryFoot, true)
	require.NoError(t, err)

	treatmentDate := day(2025, time.March, 10)

	t.Run("start equal to treatment date excluded", func(t *testing.T) {
		entries := []domain.CaseRegistryEntry{
			{Title: "Fodbehandling", CaseType: "Almindeligt helbredstillæg", GrantStart: dayPtr(2025, time.March, 10)},
		}
		assert.Empty(t, FindCases(entries, kw, treatmentDate))
	})

	t.Run("end equal to treatment date excluded", func(t *testing.T) {
		entries := []domain.CaseRegistryEntry{
			{Title: "Fodbehandling", CaseType: "Almindeligt helbredstillæg", GrantStart: dayPtr(2024, time.January, 1), GrantEnd: dayPtr(2025, time.March, 10)},
		}
		assert.Empty(t, FindCases(entries, kw, treatmentDate))
	})

	t.Run("open-ended grant included", func(t *testing.T) {
		entries := []domain.CaseRegistryEntry{
			{Title: "Fodbehandling", CaseType: "Almindeligt helbredstillæg", GrantStart: dayPtr(2024, time.January, 1)},
		}
		assert.Len(t, FindCases(entries, kw, treatmentDate), 1)
	})
}

func TestScanPayouts(t *testing.T) {
	kw, err := DeriveKeywords(domain.CategoryFoot, true)
	require.NoError(t, err)

	treatmentDate := day(2025, time.March, 10)
	total := decimal.NewFromFloat(525.00)

	tests := []struct {
		name    string
		records []domain.PayoutRecord
		want    PayoutVerdict
	}{
		{
			name: "date match is a hard duplicate",
			records: []domain.PayoutRecord{
				{Name: "Fodbehandling 10-03-2025", Amount: "525,00 kr."},
			},
			want: VerdictPaid,
		},
		{
			name: "date match wins even when amount differs",
			records: []domain.PayoutRecord{
				{Name: "Fodpleje 10.03.25", Amount: "1,00 kr."},
			},
			want: VerdictPaid,
		},
		{
			name: "no date but equal amount is uncertain",
			records: []domain.PayoutRecord{
				{Name: "Fodbehandling kvittering", Amount: "525,00 kr."},
			},
			want: VerdictPossiblyPaid,
		},
		{
			name: "no date and different amount is clear",
			records: []domain.PayoutRecord{
				{Name: "Fodbehandling kvittering", Amount: "400,00 kr."},
			},
			want: VerdictClear,
		},
		{
			name: "other treatment types are skipped",
			records: []domain.PayoutRecord{
				{Name: "Tandrensning 10-03-2025", Amount: "525,00 kr."},
			},
			want: VerdictClear,
		},
		{
			name: "different date is clear",
			records: []domain.PayoutRecord{
				{Name: "Fodbehandling 09-03-2025", Amount: "525,00 kr."},
			},
			want: VerdictClear,
		},
		{
			name:    "empty ledger",
			records: nil,
			want:    VerdictClear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScanPayouts(tt.records, kw, treatmentDate, total)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Scanning is idempotent: the same ledger yields the same verdict.
			again, err := ScanPayouts(tt.records, kw, treatmentDate, total)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestScanPayoutsUnparseableAmountIsFatal(t *testing.T) {
	kw, err := DeriveKeywords(domain.CategoryFoot, true)
	require.NoError(t, err)

	records := []domain.PayoutRecord{
		{Name: "Fodbehandling 10-03-2025", Amount: "ukendt"},
	}
	_, err = ScanPayouts(records, kw, day(2025, time.March, 10), decimal.NewFromInt(100))
	require.Error(t, err)

	var integrity *domain.DataIntegrityError
	assert.True(t, errors.As(err, &integrity))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full locale format", "1.234,56\u00a0kr.", "1234.56"},
		{"regular space before suffix", "525,00 kr.", "525"},
		{"no suffix", "1.000,00", "1000"},
		{"plain amount", "42,50", "42.5"},
		{"suffix without dot", "99,95 kr", "99.95"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	t.Run("garbage is an error", func(t *testing.T) {
		_, err := ParseAmount("ukendt beløb")
		assert.Error(t, err)
	})
}
