package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/visit-counter/internal/model"
)

var fixedNow = time.Date(2026, 10, 17, 9, 30, 15, 0, time.UTC)

func newMockRepo(t *testing.T) (*VisitRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewVisitRepo(db)
	repo.now = func() time.Time { return fixedNow.Add(400 * time.Millisecond) }
	return repo, mock
}

const insertVisit = "INSERT INTO visits (timestamp, ip_address) VALUES (?, ?)"
const countVisits = "SELECT COUNT(*) AS total FROM visits"

func TestEnsureTableIsIdempotent(t *testing.T) {
	repo, mock := newMockRepo(t)
	for i := 0; i < 3; i++ {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS visits").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.EnsureTable(context.Background()))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureTableSchema(t *testing.T) {
	for _, col := range []string{
		"id INT AUTO_INCREMENT PRIMARY KEY",
		"timestamp DATETIME DEFAULT CURRENT_TIMESTAMP",
		"ip_address VARCHAR(45)",
	} {
		assert.Contains(t, createVisitsTable, col)
	}
	assert.NotContains(t, strings.ToUpper(createVisitsTable), "DROP")
}

func TestEnsureTableError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS visits").
		WillReturnError(errors.New("access denied"))

	err := repo.EnsureTable(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create visits table")
	assert.Contains(t, err.Error(), "access denied")
}

func TestRecord(t *testing.T) {
	tests := []struct {
		name     string
		addr     string
		wantAddr string
	}{
		{name: "client address", addr: "198.51.100.7", wantAddr: "198.51.100.7"},
		{name: "missing address", addr: "", wantAddr: model.UnknownAddress},
		{name: "oversized address", addr: strings.Repeat("f", 80), wantAddr: strings.Repeat("f", model.MaxAddressLen)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectExec(regexp.QuoteMeta(insertVisit)).
				WithArgs(fixedNow, tt.wantAddr).
				WillReturnResult(sqlmock.NewResult(42, 1))

			v, err := repo.Record(context.Background(), tt.addr)

			require.NoError(t, err)
			assert.Equal(t, model.Visit{ID: 42, Timestamp: fixedNow, IPAddress: tt.wantAddr}, v)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRecordError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(insertVisit)).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.Record(context.Background(), "203.0.113.5")

	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestCount(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(countVisits)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(int64(17)))

	total, err := repo.Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(17), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountError(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(countVisits)).
		WillReturnError(errors.New("table visits doesn't exist"))

	total, err := repo.Count(context.Background())

	require.Error(t, err)
	assert.Zero(t, total)
	assert.Contains(t, err.Error(), "count visits")
}

func TestVisitRepoImplementsVisitStore(t *testing.T) {
	var _ VisitStore = (*VisitRepo)(nil)
}
