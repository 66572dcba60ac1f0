package usecase

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"go-clinic-api/config"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// dummyDialector satisfies gorm.Dialector without a real database. The
// usecases under test only need gorm for transaction plumbing; all data
// access goes through fake repositories.
type dummyDialector struct{}

func (dummyDialector) Name() string                      { return "dummy" }
func (dummyDialector) Initialize(*gorm.DB) error         { return nil }
func (dummyDialector) Migrator(*gorm.DB) gorm.Migrator   { return nil }
func (dummyDialector) DataTypeOf(*schema.Field) string   { return "" }
func (dummyDialector) DefaultValueOf(*schema.Field) clause.Expression {
	return clause.Expr{}
}
func (dummyDialector) BindVarTo(writer clause.Writer, stmt *gorm.Statement, v interface{}) {
	writer.WriteByte('?')
}
func (dummyDialector) QuoteTo(writer clause.Writer, str string) {
	writer.WriteString(str)
}
func (dummyDialector) Explain(sql string, vars ...interface{}) string { return sql }

// fakeConnPool supports Begin/Commit/Rollback so the transactional flows
// run; any attempt at real SQL through it fails the test loudly.
type fakeConnPool struct{}

func (fakeConnPool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, errors.New("sql not supported in tests")
}

func (fakeConnPool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, errors.New("sql not supported in tests")
}

func (fakeConnPool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("sql not supported in tests")
}

func (fakeConnPool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (fakeConnPool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	return &fakeTx{}, nil
}

type fakeTx struct {
	fakeConnPool
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(dummyDialector{}, &gorm.Config{ConnPool: fakeConnPool{}})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	}
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
