package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"tirs/internal/calculator"
	"tirs/internal/domain"
	"tirs/internal/repository"
	"tirs/internal/util"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TIRRow is one instrument's outcome in a batch run.
type TIRRow struct {
	Ticker          string             `json:"ticker"`
	Type            domain.BondType    `json:"type"`
	Price           decimal.Decimal    `json:"price"`
	Rates           domain.YieldResult `json:"rates"`
	MaturityDate    time.Time          `json:"maturityDate"`
	YearsToMaturity decimal.Decimal    `json:"yearsToMaturity"`
}

// TIRSummary aggregates a run. Rates are plain floats: summary statistics
// are for display, not further compounding.
type TIRSummary struct {
	TotalBonds      int     `json:"totalBonds"`
	BondsWithPrices int     `json:"bondsWithPrices"`
	BondsWithTIR    int     `json:"bondsWithTir"`
	AvgTIR          float64 `json:"avgTir"`
	MaxTIR          float64 `json:"maxTir"`
	MinTIR          float64 `json:"minTir"`
	StdevTIR        float64 `json:"stdevTir"`
}

type TIRRunResult struct {
	RunID   uuid.UUID  `json:"runId"`
	Rows    []TIRRow   `json:"rows"`
	Summary TIRSummary `json:"summary"`
}

type TIRRunService interface {
	// Run prices every reference bond and solves its bundle. Instruments
	// without a price or with a failed solve are skipped, not fabricated.
	Run(ctx context.Context, settlement time.Time) (*TIRRunResult, error)

	// WriteReport renders a run as CSV in the tirs.csv shape.
	WriteReport(w io.Writer, result *TIRRunResult) error
}

type tirRunServiceHandler struct {
	Bonds              []domain.BondStaticInfo
	PriceSource        PriceSource
	YieldService       YieldService
	Db                 *sql.DB // nil disables persistence
	SnapshotRepository repository.YieldSnapshotRepository
	Log                *zap.SugaredLogger
}

func NewTIRRunService(
	bonds []domain.BondStaticInfo,
	priceSource PriceSource,
	yieldService YieldService,
	db *sql.DB,
	snapshotRepository repository.YieldSnapshotRepository,
	log *zap.SugaredLogger,
) TIRRunService {
	return tirRunServiceHandler{
		Bonds:              bonds,
		PriceSource:        priceSource,
		YieldService:       yieldService,
		Db:                 db,
		SnapshotRepository: snapshotRepository,
		Log:                log,
	}
}

func (h tirRunServiceHandler) Run(ctx context.Context, settlement time.Time) (*TIRRunResult, error) {
	prices, err := h.PriceSource.Prices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}

	rows := []TIRRow{}
	tirs := []float64{}
	priced := 0
	for _, bond := range h.Bonds {
		price, ok := prices[bond.Ticker]
		if !ok || price.LessThanOrEqual(decimal.Zero) {
			h.Log.Debugw("no price for ticker, skipping", "ticker", bond.Ticker)
			continue
		}
		priced++

		bundle, err := h.YieldService.PriceToYieldBundle(bond, price, settlement)
		if err != nil {
			if errors.Is(err, calculator.ErrAlreadyMatured) {
				continue
			}
			h.Log.Warnw("failed to compute yield bundle", "ticker", bond.Ticker, "error", err)
			continue
		}

		rows = append(rows, TIRRow{
			Ticker:          bond.Ticker,
			Type:            bond.Type,
			Price:           price,
			Rates:           bundle,
			MaturityDate:    bond.Schedule().MaturityDate(),
			YearsToMaturity: util.YearsToMaturity(settlement, bond.Schedule().MaturityDate()),
		})
		tirs = append(tirs, bundle.TIR.InexactFloat64())
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Rates.TIR.GreaterThan(rows[j].Rates.TIR)
	})

	result := &TIRRunResult{
		RunID: uuid.New(),
		Rows:  rows,
		Summary: TIRSummary{
			TotalBonds:      len(h.Bonds),
			BondsWithPrices: priced,
			BondsWithTIR:    len(rows),
		},
	}

	if len(tirs) > 0 {
		if result.Summary.AvgTIR, err = stats.Mean(tirs); err != nil {
			return nil, err
		}
		if result.Summary.MaxTIR, err = stats.Max(tirs); err != nil {
			return nil, err
		}
		if result.Summary.MinTIR, err = stats.Min(tirs); err != nil {
			return nil, err
		}
		if len(tirs) > 1 {
			if result.Summary.StdevTIR, err = stats.StandardDeviationSample(tirs); err != nil {
				return nil, err
			}
		}
	}

	if h.Db != nil && h.SnapshotRepository != nil {
		if err := h.persist(result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (h tirRunServiceHandler) persist(result *TIRRunResult) error {
	tx, err := h.Db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	snapshots := make([]repository.YieldSnapshot, 0, len(result.Rows))
	for _, row := range result.Rows {
		snapshots = append(snapshots, repository.YieldSnapshot{
			RunID:        result.RunID,
			Ticker:       row.Ticker,
			BondType:     string(row.Type),
			Price:        row.Price,
			TIR:          row.Rates.TIR,
			TEA:          row.Rates.TEA,
			TEM:          row.Rates.TEM,
			TNA:          row.Rates.TNA,
			MaturityDate: row.MaturityDate,
		})
	}

	if err := h.SnapshotRepository.AddMany(tx, snapshots); err != nil {
		return err
	}

	return tx.Commit()
}

type tirReportRow struct {
	Ticker       string `csv:"Ticker"`
	Type         string `csv:"Type"`
	Price        string `csv:"Price"`
	TIRPercent   string `csv:"TIR (%)"`
	MaturityDate string `csv:"Maturity Date"`
}

func (h tirRunServiceHandler) WriteReport(w io.Writer, result *TIRRunResult) error {
	reportRows := make([]tirReportRow, 0, len(result.Rows))
	for _, row := range result.Rows {
		reportRows = append(reportRows, tirReportRow{
			Ticker:       row.Ticker,
			Type:         string(row.Type),
			Price:        row.Price.StringFixed(2),
			TIRPercent:   row.Rates.TIR.Mul(decimal.NewFromInt(100)).StringFixed(2),
			MaturityDate: row.MaturityDate.Format("2006-01-02"),
		})
	}

	return gocsv.Marshal(&reportRows, w)
}
