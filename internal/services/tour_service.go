package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/utils"
)

type TourService struct {
	Repo  TourStore
	Files FileStore
}

func (s TourService) List(ctx context.Context, activeOnly bool) ([]models.Tour, error) {
	out, err := s.Repo.List(ctx, activeOnly)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load tours", Err: err}
	}
	return out, nil
}

func (s TourService) Get(ctx context.Context, id int64) (models.Tour, error) {
	if id <= 0 {
		return models.Tour{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.Tour{}, lookupErr("tour", err)
	}
	return t, nil
}

func (s TourService) Create(ctx context.Context, rc domain.RequestContext, in models.Tour) (models.Tour, error) {
	t := in
	t.Title = utils.NormalizeSpace(in.Title)
	t.Location = strings.TrimSpace(in.Location)
	t.Duration = strings.TrimSpace(in.Duration)
	t.Description = strings.TrimSpace(in.Description)
	if err := validateStruct(t); err != nil {
		return models.Tour{}, err
	}
	id, err := s.Repo.Create(ctx, t)
	if err != nil {
		return models.Tour{}, domain.InternalError{Msg: "failed to create tour", Err: err}
	}
	utils.LogEvent(rc.RequestID, "tour", "create", fmt.Sprintf("id=%d by=%s", id, rc.Actor()))
	return s.Get(ctx, id)
}

func (s TourService) Update(ctx context.Context, rc domain.RequestContext, id int64, u models.TourUpdate) (models.Tour, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return models.Tour{}, err
	}
	if u.Title != nil {
		title := utils.NormalizeSpace(*u.Title)
		if title == "" {
			return models.Tour{}, domain.ValidationError{Field: "title", Msg: "is required"}
		}
		u.Title = &title
	}
	if u.Price != nil && *u.Price < 0 {
		return models.Tour{}, domain.ValidationError{Field: "price", Msg: "must be >= 0"}
	}
	if err := s.Repo.Update(ctx, id, u); err != nil {
		return models.Tour{}, domain.InternalError{Msg: "failed to update tour", Err: err}
	}
	utils.LogEvent(rc.RequestID, "tour", "update", fmt.Sprintf("id=%d by=%s", id, rc.Actor()))
	return s.Get(ctx, id)
}

func (s TourService) UploadImage(ctx context.Context, rc domain.RequestContext, id int64, filename string, r io.Reader) (models.Tour, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return models.Tour{}, err
	}
	if s.Files == nil {
		return models.Tour{}, domain.InternalError{Msg: "file storage not configured"}
	}
	url, err := s.Files.Save(ctx, filename, r)
	if err != nil {
		return models.Tour{}, err
	}
	if err := s.Repo.SetImage(ctx, id, url); err != nil {
		return models.Tour{}, domain.InternalError{Msg: "failed to store image", Err: err}
	}
	utils.LogEvent(rc.RequestID, "tour", "upload_image", fmt.Sprintf("id=%d by=%s", id, rc.Actor()))
	return s.Get(ctx, id)
}

func (s TourService) Delete(ctx context.Context, rc domain.RequestContext, id int64) error {
	ok, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete tour", Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "tour"}
	}
	utils.LogEvent(rc.RequestID, "tour", "delete", fmt.Sprintf("id=%d by=%s", id, rc.Actor()))
	return nil
}
