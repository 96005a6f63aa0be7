// Command importcsv validates a contacts CSV file for a company and, with
// -confirm, stores its valid rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	app "github.com/pipelinecrm/crm-server/internal/application/contact"
	"github.com/pipelinecrm/crm-server/internal/config"
	domain "github.com/pipelinecrm/crm-server/internal/domain/contact"
	"github.com/pipelinecrm/crm-server/internal/infrastructure/db"
	infrafile "github.com/pipelinecrm/crm-server/internal/infrastructure/file"
	"github.com/pipelinecrm/crm-server/internal/infrastructure/repository"
	"github.com/pipelinecrm/crm-server/internal/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	companyID := flag.String("company", "", "company id owning the contacts")
	path := flag.String("file", "", "CSV file, relative paths resolve against IMPORT_BASE_DIR")
	confirm := flag.Bool("confirm", false, "insert the valid rows instead of only reporting")
	flag.Parse()

	if *companyID == "" || *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadImport()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	source, err := infrafile.NewLocalSource(cfg.Import.BaseDir).Open(ctx, *path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open import file")
	}
	defer source.Close()

	preview := app.NewPreviewContactImport(repository.NewContactRepository(gdb), nil)
	in := app.PreviewContactImportInput{CompanyID: *companyID, File: source}

	if !*confirm {
		out, err := preview.Execute(ctx, in)
		if err != nil {
			log.Fatal().Err(err).Msg("import preview failed")
		}
		report(out)
		return
	}

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create pgx pool")
	}
	defer pool.Close()

	out, err := app.NewConfirmContactImport(preview, repository.NewContactBulkInsertRepository(pool)).Execute(ctx, in)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
	report(out.Preview)
	fmt.Printf("imported %d contacts\n", out.Imported)
}

func report(preview domain.ImportPreview) {
	for _, row := range preview.Rows {
		if row.Status == domain.ImportStatusValid {
			continue
		}
		fmt.Printf("row %d (%s) %s: %s\n", row.ID, row.Payload.Name, row.Status, strings.Join(row.Issues, "; "))
	}
	c := preview.Counts
	fmt.Printf("total %d, valid %d, duplicate %d, error %d\n", c.Total, c.Valid, c.Duplicate, c.Error)
}
