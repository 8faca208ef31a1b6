package services

import (
	"context"
	"strings"
	"testing"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTourServiceLifecycle(t *testing.T) {
	files := &fakeFiles{}
	svc := TourService{Repo: newFakeTours(), Files: files}
	ctx := context.Background()

	tour, err := svc.Create(ctx, adminRC, models.Tour{Title: " Ijen   Blue Fire ", Price: 450000, Active: true})
	require.NoError(t, err)
	assert.Equal(t, "Ijen Blue Fire", tour.Title)

	_, err = svc.Create(ctx, adminRC, models.Tour{Title: "Bad", Price: -1})
	assert.True(t, domain.IsValidation(err))

	off := false
	tour, err = svc.Update(ctx, adminRC, tour.ID, models.TourUpdate{Active: &off})
	require.NoError(t, err)
	assert.False(t, tour.Active)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	tour, err = svc.UploadImage(ctx, adminRC, tour.ID, "ijen.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/ijen.png", tour.ImageURL)

	require.NoError(t, svc.Delete(ctx, adminRC, tour.ID))
	_, err = svc.Get(ctx, tour.ID)
	assert.True(t, domain.IsNotFound(err))
}
