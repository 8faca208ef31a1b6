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

func TestTourRepositoryListActiveOnly(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(`FROM tours WHERE active=1 ORDER BY id DESC`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "title", "description", "location", "duration", "price", "image_url", "active", "created_at", "updated_at"}).
			AddRow(3, "Ijen Blue Fire", "", "Banyuwangi", "1D", 450000, "", true, now, now),
	)

	got, err := TourRepository{DB: db}.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ijen Blue Fire", got[0].Title)
	assert.True(t, got[0].Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTourRepositoryUpdateOnlyPresentFields(t *testing.T) {
	db, mock := newMock(t)
	price := int64(500000)
	off := false
	mock.ExpectExec(`UPDATE tours SET price=\?,active=\? WHERE id=\?`).
		WithArgs(price, off, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := TourRepository{DB: db}.Update(context.Background(), 3, models.TourUpdate{Price: &price, Active: &off})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
