package dbmigrate

import (
	"embed"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

//go:embed testdata/*.sql
var testMigrations embed.FS

func TestRun_AppliesUnappliedMigrationsInLexicalOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version FROM schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0001_init.up.sql"))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE quotes")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations")).
		WithArgs("0002_add_column.up.sql").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := Run(db, testMigrations, "testdata"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRun_RollsBackAndStopsWhenAMigrationFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT version FROM schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"version"}))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE quotes")).
		WillReturnError(sqlDuplicateTableError{})
	mock.ExpectRollback()

	if err := Run(db, testMigrations, "testdata"); err == nil {
		t.Fatal("expected error when a migration statement fails")
	}
}

type sqlDuplicateTableError struct{}

func (sqlDuplicateTableError) Error() string { return "relation already exists" }
