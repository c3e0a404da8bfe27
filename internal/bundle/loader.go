// Package bundle assembles a normalized case record from the per-case JSON
// documents the upstream RPA flow drops on disk: the tracking-list item, the
// treatment price list, the citizen's pension facts and personal data, the
// case overview and the payout ledger.
package bundle

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/nyborg-rpa/helbredstillaeg/internal/domain"
	"github.com/nyborg-rpa/helbredstillaeg/pkg/dateutil"
)

const (
	fileCaseItem     = "sharepoint.json"
	fileCatalog      = "sharepoint_treatments.json"
	filePersonalInfo = "kp_personoplysninger.json"
	filePensionFacts = "kp_pensionsfakta.json"
	fileCaseOverview = "kp_sagsoversigt.json"
	filePayoutLedger = "kp_udbetaling.json"
)

// Loader reads case data drops from a root directory laid out as
// <root>/<case id>/<document>.json.
type Loader struct {
	root string
}

// NewLoader creates a loader over the given data root.
func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Load reads and normalizes all documents for one case. A missing document
// yields a *domain.MissingDataError; malformed content that the engine could
// not trust yields a *domain.DataIntegrityError.
func (l *Loader) Load(caseID int) (*domain.CaseData, error) {
	dir := filepath.Join(l.root, strconv.Itoa(caseID))

	var item caseItemDocument
	if err := l.readJSON(dir, fileCaseItem, "case item", &item); err != nil {
		return nil, err
	}
	var catalog catalogDocument
	if err := l.readJSON(dir, fileCatalog, "treatment catalog", &catalog); err != nil {
		return nil, err
	}
	var personal personalInfoDocument
	if err := l.readJSON(dir, filePersonalInfo, "personal info", &personal); err != nil {
		return nil, err
	}
	var facts pensionFactsDocument
	if err := l.readJSON(dir, filePensionFacts, "pension facts", &facts); err != nil {
		return nil, err
	}
	var overview []caseOverviewItem
	if err := l.readJSON(dir, fileCaseOverview, "case overview", &overview); err != nil {
		return nil, err
	}
	var ledger []payoutItem
	if err := l.readJSON(dir, filePayoutLedger, "payout ledger", &ledger); err != nil {
		return nil, err
	}

	c, err := item.toDomain(caseID)
	if err != nil {
		return nil, err
	}
	periods, err := facts.allowancePeriods()
	if err != nil {
		return nil, err
	}

	data := &domain.CaseData{
		Case: c,
		Insurance: domain.InsuranceFacts{
			InsuranceGroupText: personal.InsuranceGroupText,
			AllowancePeriods:   periods,
		},
	}
	for _, row := range catalog.Value {
		data.Catalog = append(data.Catalog, row.toDomain())
	}
	for _, row := range overview {
		data.Registry = append(data.Registry, row.toDomain())
	}
	for _, row := range ledger {
		data.Payouts = append(data.Payouts, domain.PayoutRecord{Name: row.Name, Amount: row.Amount})
	}
	return data, nil
}

// readJSON reads one document, tolerating the UTF-8 BOM the upstream writer
// prepends (it saves as utf-8-sig).
func (l *Loader) readJSON(dir, name, source string, v any) error {
	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return &domain.MissingDataError{Source: source, Path: path, Err: err}
	}
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding %s from %s: %w", source, path, err)
	}
	return nil
}

// odataValue is the {"Value": ...} wrapper SharePoint puts around choice and
// lookup columns.
type odataValue struct {
	Value string `json:"Value"`
}

type caseItemDocument struct {
	TreatmentDate     string     `json:"Behandlingsdato"`
	TreatmentForm     odataValue `json:"Behandlingsform"`
	HasProviderNumber bool       `json:"HarYdernummer_x003f_"`
	HasInsuranceShare bool       `json:"HarSygesikringsandel_x003f_"`
	// Treatments is a JSON-encoded array stored as a string column.
	Treatments string `json:"Behandlinger"`
}

type treatmentItem struct {
	Name  string          `json:"Behandling"`
	Price decimal.Decimal `json:"Pris"`
}

func (d caseItemDocument) toDomain(caseID int) (domain.Case, error) {
	date, err := time.Parse("2006-01-02", d.TreatmentDate)
	if err != nil {
		return domain.Case{}, fmt.Errorf("parsing treatment date %q: %w", d.TreatmentDate, err)
	}
	category, err := domain.ParseTreatmentCategory(d.TreatmentForm.Value)
	if err != nil {
		return domain.Case{}, err
	}

	var items []treatmentItem
	if err := json.Unmarshal([]byte(d.Treatments), &items); err != nil {
		return domain.Case{}, fmt.Errorf("decoding embedded treatment lines: %w", err)
	}
	lines := make([]domain.TreatmentLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.TreatmentLine{Name: it.Name, Price: it.Price})
	}

	return domain.Case{
		ID:                caseID,
		TreatmentDate:     date,
		Category:          category,
		HasProviderNumber: d.HasProviderNumber,
		HasInsuranceShare: d.HasInsuranceShare,
		Lines:             lines,
	}, nil
}

type catalogDocument struct {
	Value []catalogItem `json:"value"`
}

type catalogItem struct {
	ID       int             `json:"ID"`
	Form     odataValue      `json:"Behandlingsform"`
	Name     string          `json:"Behandling"`
	MaxPrice decimal.Decimal `json:"MaksPris"`
	Percent  decimal.Decimal `json:"Procent"`
	Year     odataValue      `json:"OData__x00c5_r"`
	Groups   []odataValue    `json:"Grupper"`
}

func (c catalogItem) toDomain() domain.TreatmentCatalogEntry {
	groups := make([]domain.InsuranceGroup, 0, len(c.Groups))
	for _, g := range c.Groups {
		groups = append(groups, domain.InsuranceGroup(g.Value))
	}
	return domain.TreatmentCatalogEntry{
		ID:       c.ID,
		Category: domain.TreatmentCategory(c.Form.Value),
		Name:     c.Name,
		MaxPrice: c.MaxPrice,
		Percent:  c.Percent,
		Year:     c.Year.Value,
		Groups:   groups,
	}
}

type personalInfoDocument struct {
	InsuranceGroupText string `json:"Sygeforsikring danmark (gruppe)"`
}

type pensionFactsDocument struct {
	AllowancePeriods []allowancePeriodItem `json:"Helbredstillægsprocent"`
}

type allowancePeriodItem struct {
	ValidFrom string `json:"Gyldig_Fra"`
	ValidTo   string `json:"Gyldig_Til"`
	Percent   string `json:"Helbredsprocent"`
}

func (d pensionFactsDocument) allowancePeriods() ([]domain.AllowancePeriod, error) {
	periods := make([]domain.AllowancePeriod, 0, len(d.AllowancePeriods))
	for _, p := range d.AllowancePeriods {
		from, err := dateutil.ParseDayFirst(p.ValidFrom)
		if err != nil {
			return nil, fmt.Errorf("parsing allowance period start %q: %w", p.ValidFrom, err)
		}
		to, err := dateutil.ParseDayFirst(p.ValidTo)
		if err != nil {
			return nil, fmt.Errorf("parsing allowance period end %q: %w", p.ValidTo, err)
		}
		pct, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(p.Percent), "%"))
		if err != nil {
			return nil, fmt.Errorf("parsing allowance percentage %q: %w", p.Percent, err)
		}
		periods = append(periods, domain.AllowancePeriod{
			ValidFrom: from,
			ValidTo:   to,
			Percent:   pct.Div(decimal.NewFromInt(100)),
		})
	}
	return periods, nil
}

type caseOverviewItem struct {
	Title      string `json:"Titel"`
	CaseType   string `json:"Sagstype"`
	GrantStart string `json:"Beviling start"`
	GrantEnd   string `json:"Beviling slut"`
	Status     string `json:"Status"`
}

func (c caseOverviewItem) toDomain() domain.CaseRegistryEntry {
	return domain.CaseRegistryEntry{
		Title:      c.Title,
		CaseType:   c.CaseType,
		GrantStart: parseLenientDate(c.GrantStart),
		GrantEnd:   parseLenientDate(c.GrantEnd),
		Status:     c.Status,
	}
}

// parseLenientDate mirrors the tolerant upstream handling of grant dates:
// absent or unparseable values become nil instead of failing the load.
func parseLenientDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

type payoutItem struct {
	Name   string `json:"Navn"`
	Amount string `json:"Beløb"`
}
