package reference

import (
	"fmt"
	"io"
	"os"
	"time"

	"tirs/internal/domain"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// bondRow mirrors the reference CSV. Dates and decimals arrive as strings
// and are validated during conversion.
type bondRow struct {
	Ticker          string `csv:"Ticker"`
	Name            string `csv:"Nombre"`
	MaturityDate    string `csv:"Vencimiento"`
	FinalPayoff     string `csv:"Valor_Nominal"`
	AnnualRealRate  string `csv:"Tasa_Real_Anual"`
	CouponFrequency int    `csv:"Frecuencia_Cupon"`
	IssueCERIndex   string `csv:"CER_Emision"`
	IssueDate       string `csv:"Fecha_Emision"`
	Type            string `csv:"Tipo"`
}

// LoadBonds reads bond reference data from a CSV reader. Rows missing a
// ticker or a parseable maturity are rejected, not skipped; bad static
// data should fail loudly at startup.
func LoadBonds(r io.Reader) ([]domain.BondStaticInfo, error) {
	rows := []bondRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse bond reference csv: %w", err)
	}

	bonds := make([]domain.BondStaticInfo, 0, len(rows))
	for i, row := range rows {
		bond, err := row.toBond()
		if err != nil {
			return nil, fmt.Errorf("invalid bond reference row %d (%s): %w", i+1, row.Ticker, err)
		}
		bonds = append(bonds, bond)
	}

	return bonds, nil
}

func LoadBondsFile(path string) ([]domain.BondStaticInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bond reference file: %w", err)
	}
	defer f.Close()

	return LoadBonds(f)
}

func (row bondRow) toBond() (domain.BondStaticInfo, error) {
	if row.Ticker == "" {
		return domain.BondStaticInfo{}, fmt.Errorf("missing ticker")
	}

	maturity, err := time.Parse(dateLayout, row.MaturityDate)
	if err != nil {
		return domain.BondStaticInfo{}, fmt.Errorf("invalid maturity date %q: %w", row.MaturityDate, err)
	}

	payoff, err := decimal.NewFromString(row.FinalPayoff)
	if err != nil {
		return domain.BondStaticInfo{}, fmt.Errorf("invalid final payoff %q: %w", row.FinalPayoff, err)
	}

	bondType, err := domain.BondTypeFromString(row.Type)
	if err != nil {
		return domain.BondStaticInfo{}, err
	}

	bond := domain.BondStaticInfo{
		Ticker:          row.Ticker,
		Name:            row.Name,
		MaturityDate:    maturity.UTC(),
		FinalPayoff:     payoff,
		Type:            bondType,
		CouponFrequency: row.CouponFrequency,
	}

	if row.AnnualRealRate != "" {
		rate, err := decimal.NewFromString(row.AnnualRealRate)
		if err != nil {
			return domain.BondStaticInfo{}, fmt.Errorf("invalid annual real rate %q: %w", row.AnnualRealRate, err)
		}
		bond.AnnualRealRate = rate
	}

	if row.IssueCERIndex != "" {
		index, err := decimal.NewFromString(row.IssueCERIndex)
		if err != nil {
			return domain.BondStaticInfo{}, fmt.Errorf("invalid issue CER index %q: %w", row.IssueCERIndex, err)
		}
		bond.IssueCERIndex = index
	}

	if row.IssueDate != "" {
		issued, err := time.Parse(dateLayout, row.IssueDate)
		if err != nil {
			return domain.BondStaticInfo{}, fmt.Errorf("invalid issue date %q: %w", row.IssueDate, err)
		}
		bond.IssueDate = issued.UTC()
	}

	return bond, nil
}
