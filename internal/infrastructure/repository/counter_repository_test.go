package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestNextInvoiceNumberUpsertsAndReturns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceCounterRepository(db)
	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO invoice_counters`).
		WithArgs(sqlmock.AnyArg(), userID).
		WillReturnRows(sqlmock.NewRows([]string{"last_invoice_number"}).AddRow(int64(7)))

	next, err := repo.NextInvoiceNumber(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextInvoiceNumberFirstUse(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceCounterRepository(db)
	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO invoice_counters`).
		WithArgs(sqlmock.AnyArg(), userID).
		WillReturnRows(sqlmock.NewRows([]string{"last_invoice_number"}).AddRow(int64(1)))

	next, err := repo.NextInvoiceNumber(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextInvoiceNumberPropagatesErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceCounterRepository(db)
	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO invoice_counters`).
		WillReturnError(gorm.ErrInvalidDB)

	_, err := repo.NextInvoiceNumber(context.Background(), userID)
	assert.Error(t, err)
}
