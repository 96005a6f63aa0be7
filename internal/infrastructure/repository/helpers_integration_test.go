package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pipelinecrm/crm-server/internal/infrastructure/db"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	gdb, err := db.Open(dsn)
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed schema setup: %v", err)
	}
	return gdb
}

func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), os.Getenv("TEST_DATABASE_URL"))
	if err != nil {
		t.Fatalf("failed to create pgx pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func cleanupCompany(t *testing.T, gdb *gorm.DB, companyID string) {
	t.Helper()

	for _, table := range []string{"contacts", "articles"} {
		if err := gdb.Exec("DELETE FROM "+table+" WHERE company_id = ?", companyID).Error; err != nil {
			t.Fatalf("cleanup %s failed: %v", table, err)
		}
	}
}
