package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/repositories"
	"tourdesk/internal/utils"
)

type DriverService struct {
	Repo     DriverStore
	Files    FileStore
	Settings SettingsStore
	Notifier Notifier
}

// List loads every driver, then searches and sorts in memory.
func (s DriverService) List(ctx context.Context, q models.DriverQuery) ([]models.Driver, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load drivers", Err: err}
	}
	return SortDrivers(SearchDrivers(all, q.Search), q.Sort, q.Desc), nil
}

// SearchDrivers keeps drivers whose name, phone, plate or car model contain term.
func SearchDrivers(drivers []models.Driver, term string) []models.Driver {
	term = strings.TrimSpace(term)
	out := make([]models.Driver, 0, len(drivers))
	for _, d := range drivers {
		if term == "" ||
			utils.ContainsFold(d.Name, term) ||
			utils.ContainsFold(d.Phone, term) ||
			utils.ContainsFold(d.CarPlate, term) ||
			utils.ContainsFold(d.CarModel, term) {
			out = append(out, d)
		}
	}
	return out
}

// SortDrivers orders a copy of drivers by key; unknown keys keep input order.
func SortDrivers(drivers []models.Driver, key string, desc bool) []models.Driver {
	out := append([]models.Driver(nil), drivers...)
	if out == nil {
		out = []models.Driver{}
	}
	var less func(a, b models.Driver) bool
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "name":
		less = func(a, b models.Driver) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "debt":
		less = func(a, b models.Driver) bool { return a.Debt < b.Debt }
	case "createdat", "created_at", "created":
		less = func(a, b models.Driver) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "status":
		less = func(a, b models.Driver) bool { return a.Status < b.Status }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func (s DriverService) Get(ctx context.Context, id int64) (models.Driver, error) {
	if id <= 0 {
		return models.Driver{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return models.Driver{}, lookupErr("driver", err)
	}
	return d, nil
}

// Create adds a driver from the admin console; status defaults to ACTIVE.
func (s DriverService) Create(ctx context.Context, rc domain.RequestContext, in models.Driver) (models.Driver, error) {
	if in.Status == "" {
		in.Status = models.DriverActive
	}
	return s.create(ctx, rc, in, "create")
}

// Register is the public sign-up; the driver waits in PENDING for approval.
func (s DriverService) Register(ctx context.Context, rc domain.RequestContext, in models.Driver) (models.Driver, error) {
	st := models.DefaultSettings()
	if s.Settings != nil {
		var err error
		if st, _, err = s.Settings.Get(ctx); err != nil {
			return models.Driver{}, domain.InternalError{Msg: "failed to load settings", Err: err}
		}
	}
	if st.MaintenanceMode {
		return models.Driver{}, domain.UnavailableError{Msg: "driver registration is paused for maintenance"}
	}

	in.Status = models.DriverPending
	d, err := s.create(ctx, rc, in, "register")
	if err != nil {
		return models.Driver{}, err
	}
	if s.Notifier != nil && st.AdminPhone != "" {
		s.Notifier.Notify(ctx, rc, st.AdminPhone, fmt.Sprintf("New driver registration: %s (%s), %s %s.", d.Name, d.Phone, d.CarModel, d.CarPlate), 0)
	}
	return d, nil
}

func (s DriverService) create(ctx context.Context, rc domain.RequestContext, in models.Driver, action string) (models.Driver, error) {
	d := in
	d.Name = utils.NormalizeSpace(in.Name)
	d.Phone = utils.NormalizePhone(in.Phone)
	d.Email = strings.TrimSpace(in.Email)
	d.CarModel = strings.TrimSpace(in.CarModel)
	d.CarPlate = strings.ToUpper(strings.TrimSpace(in.CarPlate))
	d.CarColor = strings.TrimSpace(in.CarColor)
	if !d.Status.Valid() {
		return models.Driver{}, domain.ValidationError{Field: "status", Msg: "unknown status " + string(d.Status)}
	}
	if err := validateStruct(d); err != nil {
		return models.Driver{}, err
	}
	id, err := s.Repo.Create(ctx, d)
	if err != nil {
		return models.Driver{}, domain.InternalError{Msg: "failed to create driver", Err: err}
	}
	utils.LogEvent(rc.RequestID, "driver", action, fmt.Sprintf("id=%d by=%s status=%s", id, rc.Actor(), d.Status))
	return s.Get(ctx, id)
}

func (s DriverService) Update(ctx context.Context, rc domain.RequestContext, id int64, u models.DriverUpdate) (models.Driver, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return models.Driver{}, err
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return models.Driver{}, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if u.Phone != nil {
		phone := utils.NormalizePhone(*u.Phone)
		if phone == "" {
			return models.Driver{}, domain.ValidationError{Field: "phone", Msg: "is required"}
		}
		u.Phone = &phone
	}
	if u.Email != nil && strings.TrimSpace(*u.Email) != "" {
		if err := validate.Var(strings.TrimSpace(*u.Email), "email"); err != nil {
			return models.Driver{}, domain.ValidationError{Field: "email", Msg: "must be a valid email", Err: err}
		}
	}
	for field, v := range map[string]*int64{"basePrice": u.BasePrice, "pricePerKm": u.PricePerKm} {
		if v != nil && *v < 0 {
			return models.Driver{}, domain.ValidationError{Field: field, Msg: "must be >= 0"}
		}
	}
	if u.Seats != nil && (*u.Seats < 0 || *u.Seats > 60) {
		return models.Driver{}, domain.ValidationError{Field: "seats", Msg: "must be between 0 and 60"}
	}

	if err := s.Repo.Update(ctx, id, u); err != nil {
		return models.Driver{}, domain.InternalError{Msg: "failed to update driver", Err: err}
	}
	utils.LogEvent(rc.RequestID, "driver", "update", fmt.Sprintf("id=%d by=%s", id, rc.Actor()))
	return s.Get(ctx, id)
}

func (s DriverService) UpdateStatus(ctx context.Context, rc domain.RequestContext, id int64, status models.DriverStatus) (models.Driver, error) {
	status = models.DriverStatus(strings.ToUpper(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return models.Driver{}, domain.ValidationError{Field: "status", Msg: "unknown status " + string(status)}
	}
	d, err := s.Get(ctx, id)
	if err != nil {
		return models.Driver{}, err
	}
	if d.Status == status {
		return d, nil
	}
	if err := s.Repo.UpdateStatus(ctx, id, status); err != nil {
		return models.Driver{}, domain.InternalError{Msg: "failed to update driver status", Err: err}
	}
	utils.LogEvent(rc.RequestID, "driver", "status", fmt.Sprintf("id=%d by=%s %s->%s", id, rc.Actor(), d.Status, status))
	if d.Status == models.DriverPending && status == models.DriverActive && s.Notifier != nil {
		s.Notifier.Notify(ctx, rc, d.Phone, fmt.Sprintf("Hi %s, your driver account has been approved.", firstWord(d.Name)), 0)
	}
	return s.Get(ctx, id)
}

// SettleDebt records a payment from the driver; amount 0 settles the full debt.
func (s DriverService) SettleDebt(ctx context.Context, rc domain.RequestContext, id, amount int64) (models.Driver, error) {
	if amount < 0 {
		return models.Driver{}, domain.ValidationError{Field: "amount", Msg: "must be >= 0"}
	}
	d, err := s.Get(ctx, id)
	if err != nil {
		return models.Driver{}, err
	}
	if amount == 0 {
		amount = d.Debt
	}
	if amount == 0 {
		return d, nil
	}
	if err := s.Repo.SettleDebt(ctx, id, amount); err != nil {
		return models.Driver{}, domain.InternalError{Msg: "failed to settle debt", Err: err}
	}
	utils.LogEvent(rc.RequestID, "driver", "settle_debt", fmt.Sprintf("id=%d amount=%d by=%s", id, amount, rc.Actor()))
	return s.Get(ctx, id)
}

func (s DriverService) UploadDocument(ctx context.Context, rc domain.RequestContext, id int64, kind, filename string, r io.Reader) (models.Driver, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind != repositories.DocPhoto && kind != repositories.DocLicense {
		return models.Driver{}, domain.ValidationError{Field: "kind", Msg: "must be photo or license"}
	}
	if _, err := s.Get(ctx, id); err != nil {
		return models.Driver{}, err
	}
	if s.Files == nil {
		return models.Driver{}, domain.InternalError{Msg: "file storage not configured"}
	}
	url, err := s.Files.Save(ctx, filename, r)
	if err != nil {
		return models.Driver{}, err
	}
	if err := s.Repo.SetDocument(ctx, id, kind, url); err != nil {
		return models.Driver{}, domain.InternalError{Msg: "failed to store document", Err: err}
	}
	utils.LogEvent(rc.RequestID, "driver", "upload_"+kind, fmt.Sprintf("id=%d by=%s", id, rc.Actor()))
	return s.Get(ctx, id)
}

func (s DriverService) Delete(ctx context.Context, rc domain.RequestContext, id int64) error {
	ok, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete driver", Err: err}
	}
	if !ok {
		return domain.NotFoundError{Resource: "driver"}
	}
	utils.LogEvent(rc.RequestID, "driver", "delete", fmt.Sprintf("id=%d by=%s", id, rc.Actor()))
	return nil
}
