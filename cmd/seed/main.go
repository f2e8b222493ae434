package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"arbor/internal/config"
	"arbor/internal/connectors"
	"arbor/internal/domain/services"
	"arbor/internal/forest"
	"arbor/internal/repository/postgres"
	serviceSnapshot "arbor/internal/service/snapshot"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop picker tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed a demo snapshot")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding picker tables (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		if err := postgres.DropTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Printf("Dropped existing picker tables")
	}

	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to set up schema: %v", err)
	}
	log.Printf("Schema ready")

	if *schemaOnly {
		return
	}

	// Ingest a demo DocuWare-style listing through the real service so it
	// passes the same validation as a live connector upload
	registry, err := connectors.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load connector registry: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	snapshotService := serviceSnapshot.NewService(
		postgres.NewSnapshotRepository(repoConfig), registry, logger)

	snap, err := snapshotService.Ingest(ctx, &services.IngestSnapshotRequest{
		ConnectorID:   "demo-docuware",
		ConnectorType: "docuware",
		Roots:         demoListing(),
	})
	if err != nil {
		log.Fatalf("Failed to seed demo snapshot: %v", err)
	}

	log.Printf("Seeded demo snapshot %s (%d nodes, connector demo-docuware)", snap.ID, snap.NodeCount)
}

// demoListing builds a small cabinet/folder tree resembling a DocuWare
// export, with fresh ids per run.
func demoListing() []forest.NodeRecord {
	docs := func(n int) *int { return &n }

	return []forest.NodeRecord{
		{
			ID: uuid.NewString(), Name: "Accounting", Kind: forest.KindCabinet, DocumentCount: docs(120),
			Children: []forest.NodeRecord{
				{ID: uuid.NewString(), Name: "Invoices 2024", Kind: forest.KindFolder, DocumentCount: docs(480),
					Children: []forest.NodeRecord{
						{ID: uuid.NewString(), Name: "Q1", Kind: forest.KindFolder, DocumentCount: docs(130)},
						{ID: uuid.NewString(), Name: "Q2", Kind: forest.KindFolder, DocumentCount: docs(115)},
					}},
				{ID: uuid.NewString(), Name: "Receipts", Kind: forest.KindFolder, DocumentCount: docs(940)},
			},
		},
		{
			ID: uuid.NewString(), Name: "Human Resources", Kind: forest.KindCabinet, DocumentCount: docs(30),
			Children: []forest.NodeRecord{
				{ID: uuid.NewString(), Name: "Contracts", Kind: forest.KindFolder, DocumentCount: docs(210)},
				{ID: uuid.NewString(), Name: "Onboarding", Kind: forest.KindFolder, DocumentCount: docs(55)},
			},
		},
	}
}
