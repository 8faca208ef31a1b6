package repositories

import (
	"context"
	"testing"
	"time"

	"tourdesk/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var driverRowColumns = []string{
	"id", "name", "phone", "email", "car_model", "car_plate", "car_color", "seats",
	"base_price", "price_per_km", "status", "debt", "photo_url", "license_url", "created_at", "updated_at",
}

func TestDriverRepositoryList(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(`FROM drivers ORDER BY id DESC`).WillReturnRows(
		sqlmock.NewRows(driverRowColumns).
			AddRow(2, "Budi", "0813", "", "Avanza", "B 1 AA", "", 6, 100000, 5000, "ACTIVE", 13000, "", "", now, now).
			AddRow(1, "Sari", "0814", "", "Innova", "B 2 BB", "", 7, 150000, 6000, "PENDING", 0, "/uploads/a.jpg", "", now, now),
	)

	got, err := DriverRepository{DB: db}.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.DriverActive, got[0].Status)
	assert.Equal(t, int64(13000), got[0].Debt)
	assert.Equal(t, "/uploads/a.jpg", got[1].PhotoURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverRepositorySettleDebtFloorsAtZero(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`UPDATE drivers SET debt = GREATEST\(debt - \?, 0\) WHERE id=\?`).
		WithArgs(int64(5000), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, DriverRepository{DB: db}.SettleDebt(context.Background(), 3, 5000))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverRepositorySetDocument(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`UPDATE drivers SET license_url=\? WHERE id=\?`).
		WithArgs("/uploads/l.pdf", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := DriverRepository{DB: db}
	require.NoError(t, repo.SetDocument(context.Background(), 3, DocLicense, "/uploads/l.pdf"))
	assert.Error(t, repo.SetDocument(context.Background(), 3, "passport", "/x"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverRepositoryUpdateNormalizesPlate(t *testing.T) {
	db, mock := newMock(t)
	plate := " b 1234 xy "
	seats := 6
	mock.ExpectExec(`UPDATE drivers SET car_plate=\?,seats=\? WHERE id=\?`).
		WithArgs("B 1234 XY", 6, int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, DriverRepository{DB: db}.Update(context.Background(), 8, models.DriverUpdate{CarPlate: &plate, Seats: &seats}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
