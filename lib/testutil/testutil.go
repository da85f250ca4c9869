package testutil

import (
	"combo-scraper/lib/sqliteutil"
	"combo-scraper/lib/telemetry"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
}

type ServiceResult struct {
	// nil when DbSchema was empty
	DB *sql.DB
}

// SetupService sets up test telemetry and an sqlite database inside
// t.TempDir(). Both are torn down when the test ends.
func SetupService(t testing.TB, params ServiceParams) ServiceResult {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))
	t.Cleanup(cleanup)

	if params.DbSchema == "" {
		return ServiceResult{}
	}

	db, err := sqliteutil.OpenDB(params.DbSchema, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return ServiceResult{DB: db}
}
