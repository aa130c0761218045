package cmd

import (
	"database/sql"
	"fmt"
	"log"

	"tirs/api"
	"tirs/internal/app"
	"tirs/internal/logger"
	"tirs/internal/reference"
	"tirs/internal/repository"
	"tirs/internal/util"
	"tirs/pkg/bcra"
	"tirs/pkg/data912"

	_ "github.com/lib/pq"
)

func CloseDependencies(handler *api.ApiHandler) {
	if handler.Db == nil {
		return
	}
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

// InitializeDependencies wires the live market data clients, the bond
// reference universe and the services. The database is optional; without
// one, yield snapshots are simply not persisted.
func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	bonds, err := reference.LoadBondsFile(secrets.BondReferenceCsv)
	if err != nil {
		return nil, fmt.Errorf("failed to load bond reference data: %w", err)
	}

	var dbConn *sql.DB
	var snapshotRepository repository.YieldSnapshotRepository
	if secrets.Db != nil {
		dbConn, err = sql.Open("postgres", secrets.Db.ToConnectionStr())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		snapshotRepository = repository.NewYieldSnapshotRepository()
	}

	log := logger.New()
	marketData := data912.NewClient()
	yieldService := app.NewYieldService()

	tirRunService := app.NewTIRRunService(
		bonds,
		marketData,
		yieldService,
		dbConn,
		snapshotRepository,
		log,
	)

	carryTradeService := app.NewCarryTradeService(
		bonds,
		marketData,
		marketData,
		yieldService,
		app.DefaultCarryTradeConfig(),
		log,
	)

	return &api.ApiHandler{
		Db:                dbConn,
		YieldService:      yieldService,
		TIRRunService:     tirRunService,
		CarryTradeService: carryTradeService,
		CERSource:         bcra.NewClient(),
		Log:               log,
	}, nil
}
