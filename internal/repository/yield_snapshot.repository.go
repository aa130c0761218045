package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// YieldSnapshot is one persisted rate bundle. Rows from the same batch run
// share a RunID so a whole curve can be recalled later.
//
// Expected schema:
//
//	CREATE TABLE yield_snapshot (
//	    yield_snapshot_id UUID PRIMARY KEY,
//	    run_id            UUID NOT NULL,
//	    ticker            TEXT NOT NULL,
//	    bond_type         TEXT NOT NULL,
//	    price             NUMERIC NOT NULL,
//	    tir               NUMERIC NOT NULL,
//	    tea               NUMERIC NOT NULL,
//	    tem               NUMERIC NOT NULL,
//	    tna               NUMERIC NOT NULL,
//	    maturity_date     DATE NOT NULL,
//	    created_at        TIMESTAMPTZ NOT NULL
//	);
type YieldSnapshot struct {
	YieldSnapshotID uuid.UUID
	RunID           uuid.UUID
	Ticker          string
	BondType        string
	Price           decimal.Decimal
	TIR             decimal.Decimal
	TEA             decimal.Decimal
	TEM             decimal.Decimal
	TNA             decimal.Decimal
	MaturityDate    time.Time
	CreatedAt       time.Time
}

type YieldSnapshotRepository interface {
	AddMany(tx *sql.Tx, snapshots []YieldSnapshot) error
	ListRun(db *sql.DB, runID uuid.UUID) ([]YieldSnapshot, error)
}

type yieldSnapshotRepositoryHandler struct{}

func NewYieldSnapshotRepository() YieldSnapshotRepository {
	return yieldSnapshotRepositoryHandler{}
}

func (h yieldSnapshotRepositoryHandler) AddMany(tx *sql.Tx, snapshots []YieldSnapshot) error {
	stmt, err := tx.Prepare(`
		INSERT INTO yield_snapshot (
			yield_snapshot_id, run_id, ticker, bond_type,
			price, tir, tea, tem, tna, maturity_date, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare yield snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range snapshots {
		id := s.YieldSnapshotID
		if id == uuid.Nil {
			id = uuid.New()
		}
		createdAt := s.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		_, err = stmt.Exec(
			id, s.RunID, s.Ticker, s.BondType,
			s.Price, s.TIR, s.TEA, s.TEM, s.TNA,
			s.MaturityDate, createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert yield snapshot for %s: %w", s.Ticker, err)
		}
	}

	return nil
}

func (h yieldSnapshotRepositoryHandler) ListRun(db *sql.DB, runID uuid.UUID) ([]YieldSnapshot, error) {
	rows, err := db.Query(`
		SELECT yield_snapshot_id, run_id, ticker, bond_type,
		       price, tir, tea, tem, tna, maturity_date, created_at
		FROM yield_snapshot
		WHERE run_id = $1
		ORDER BY ticker
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list yield snapshots: %w", err)
	}
	defer rows.Close()

	out := []YieldSnapshot{}
	for rows.Next() {
		var s YieldSnapshot
		err = rows.Scan(
			&s.YieldSnapshotID, &s.RunID, &s.Ticker, &s.BondType,
			&s.Price, &s.TIR, &s.TEA, &s.TEM, &s.TNA,
			&s.MaturityDate, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan yield snapshot: %w", err)
		}
		out = append(out, s)
	}

	return out, rows.Err()
}
