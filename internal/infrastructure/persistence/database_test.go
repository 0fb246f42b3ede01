package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDatabase creates a Database instance with a mocked SQL connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, mockDB
}

func TestDatabase_Ping(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectPing()
	assert.NoError(t, db.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, db.Ping(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Stats(t *testing.T) {
	db, _, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.OpenConnections, stats.InUse)
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := newMockDatabase(t)

	mock.ExpectClose()
	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositories_TranslateDriverErrors(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	ctx := context.Background()
	driverErr := errors.New("pq: connection reset by peer")

	t.Run("payment record lookup", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "payment_records"`).WillReturnError(driverErr)

		_, err := NewGormPaymentRecordRepository(db.DB).FindByIDForOwner(ctx, uuid.New(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrStoreUnavailable)
		assert.ErrorIs(t, err, driverErr)
		assert.Equal(t, "Record store is unavailable", err.Error())
	})

	t.Run("occupied room scan", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "rooms"`).WillReturnError(driverErr)

		_, err := NewGormRoomRepository(db.DB).FindOccupied(ctx)
		assert.ErrorIs(t, err, shared.ErrStoreUnavailable)
	})

	t.Run("insert if absent", func(t *testing.T) {
		// columns with database defaults make the postgres dialect use INSERT ... RETURNING
		mock.ExpectQuery(`INSERT INTO "payment_records"`).WillReturnError(driverErr)

		rec, err := billing.NewPaymentRecord(billing.NewPaymentRecordParams{
			OwnerID:    uuid.New(),
			RoomID:     uuid.New(),
			PropertyID: uuid.New(),
			Period: billing.BillingPeriod{
				Start: day(2024, 3, 3), End: day(2024, 4, 2), DueDate: day(2024, 3, 5), Month: 3, Year: 2024,
			},
		})
		require.NoError(t, err)

		inserted, err := NewGormPaymentRecordRepository(db.DB).InsertIfAbsent(ctx, rec)
		assert.False(t, inserted)
		assert.ErrorIs(t, err, shared.ErrStoreUnavailable)
	})

	t.Run("not found is not a store failure", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "payment_records"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewGormPaymentRecordRepository(db.DB).FindByIDForOwner(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NotErrorIs(t, err, shared.ErrStoreUnavailable)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
