package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/repositories"
)

type fakeBookings struct {
	rows      map[int64]models.Booking
	nextID    int64
	debts     map[int64]int64
	charged   map[int64]bool
	promos    *fakePromos
	listErr   error
	createErr error
	lastPatch models.BookingUpdate
}

func newFakeBookings(rows ...models.Booking) *fakeBookings {
	f := &fakeBookings{rows: map[int64]models.Booking{}, debts: map[int64]int64{}, charged: map[int64]bool{}}
	for _, b := range rows {
		f.rows[b.ID] = b
		if b.ID > f.nextID {
			f.nextID = b.ID
		}
	}
	return f
}

func (f *fakeBookings) List(ctx context.Context, flt models.BookingFilter) ([]models.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Booking{}
	for id := f.nextID; id > 0; id-- {
		b, ok := f.rows[id]
		if !ok || (flt.Status != "" && b.Status != flt.Status) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookings) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	b, ok := f.rows[id]
	if !ok {
		return models.Booking{}, sql.ErrNoRows
	}
	return b, nil
}

// Create mirrors the store transaction: nothing is redeemed when the insert fails.
func (f *fakeBookings) Create(ctx context.Context, b models.Booking) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	if b.PromoCode != "" && f.promos != nil {
		if err := f.promos.redeem(b.PromoCode); err != nil {
			return 0, err
		}
	}
	f.nextID++
	b.ID = f.nextID
	f.rows[b.ID] = b
	return b.ID, nil
}

func (f *fakeBookings) Update(ctx context.Context, id int64, u models.BookingUpdate, priceDisplay string) error {
	f.lastPatch = u
	b := f.rows[id]
	if u.CustomerName != nil {
		b.CustomerName = *u.CustomerName
	}
	if u.CustomerPhone != nil {
		b.CustomerPhone = *u.CustomerPhone
	}
	if u.Price != nil {
		b.Price = *u.Price
		b.PriceDisplay = priceDisplay
	}
	if u.Notes != nil {
		b.Notes = *u.Notes
	}
	f.rows[id] = b
	return nil
}

func (f *fakeBookings) UpdateStatus(ctx context.Context, id int64, from, to models.BookingStatus, driverID, debt int64) (bool, error) {
	b := f.rows[id]
	if b.Status != from {
		return false, repositories.ErrStatusChanged
	}
	b.Status = to
	f.rows[id] = b
	if debt > 0 && driverID > 0 && !f.charged[id] {
		f.charged[id] = true
		f.debts[driverID] += debt
		return true, nil
	}
	return false, nil
}

func (f *fakeBookings) AssignDriver(ctx context.Context, id, driverID int64, driverName string) error {
	b := f.rows[id]
	b.DriverID, b.DriverName = driverID, driverName
	f.rows[id] = b
	return nil
}

func (f *fakeBookings) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

type fakeDrivers struct {
	rows   map[int64]models.Driver
	order  []int64
	nextID int64
}

func newFakeDrivers(rows ...models.Driver) *fakeDrivers {
	f := &fakeDrivers{rows: map[int64]models.Driver{}}
	for _, d := range rows {
		f.rows[d.ID] = d
		f.order = append(f.order, d.ID)
		if d.ID > f.nextID {
			f.nextID = d.ID
		}
	}
	return f
}

func (f *fakeDrivers) List(ctx context.Context) ([]models.Driver, error) {
	out := []models.Driver{}
	for _, id := range f.order {
		if d, ok := f.rows[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDrivers) GetByID(ctx context.Context, id int64) (models.Driver, error) {
	d, ok := f.rows[id]
	if !ok {
		return models.Driver{}, sql.ErrNoRows
	}
	return d, nil
}

func (f *fakeDrivers) Create(ctx context.Context, d models.Driver) (int64, error) {
	f.nextID++
	d.ID = f.nextID
	f.rows[d.ID] = d
	f.order = append(f.order, d.ID)
	return d.ID, nil
}

func (f *fakeDrivers) Update(ctx context.Context, id int64, u models.DriverUpdate) error {
	d := f.rows[id]
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Phone != nil {
		d.Phone = *u.Phone
	}
	if u.CarPlate != nil {
		d.CarPlate = strings.ToUpper(*u.CarPlate)
	}
	f.rows[id] = d
	return nil
}

func (f *fakeDrivers) UpdateStatus(ctx context.Context, id int64, status models.DriverStatus) error {
	d := f.rows[id]
	d.Status = status
	f.rows[id] = d
	return nil
}

func (f *fakeDrivers) SettleDebt(ctx context.Context, id, amount int64) error {
	d := f.rows[id]
	d.Debt -= amount
	if d.Debt < 0 {
		d.Debt = 0
	}
	f.rows[id] = d
	return nil
}

func (f *fakeDrivers) SetDocument(ctx context.Context, id int64, kind, url string) error {
	d := f.rows[id]
	switch kind {
	case repositories.DocPhoto:
		d.PhotoURL = url
	case repositories.DocLicense:
		d.LicenseURL = url
	default:
		return errors.New("unknown document kind")
	}
	f.rows[id] = d
	return nil
}

func (f *fakeDrivers) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

type fakeTours struct {
	rows   map[int64]models.Tour
	nextID int64
}

func newFakeTours(rows ...models.Tour) *fakeTours {
	f := &fakeTours{rows: map[int64]models.Tour{}}
	for _, t := range rows {
		f.rows[t.ID] = t
		if t.ID > f.nextID {
			f.nextID = t.ID
		}
	}
	return f
}

func (f *fakeTours) List(ctx context.Context, activeOnly bool) ([]models.Tour, error) {
	out := []models.Tour{}
	for id := int64(1); id <= f.nextID; id++ {
		t, ok := f.rows[id]
		if !ok || (activeOnly && !t.Active) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTours) GetByID(ctx context.Context, id int64) (models.Tour, error) {
	t, ok := f.rows[id]
	if !ok {
		return models.Tour{}, sql.ErrNoRows
	}
	return t, nil
}

func (f *fakeTours) Create(ctx context.Context, t models.Tour) (int64, error) {
	f.nextID++
	t.ID = f.nextID
	f.rows[t.ID] = t
	return t.ID, nil
}

func (f *fakeTours) Update(ctx context.Context, id int64, u models.TourUpdate) error {
	t := f.rows[id]
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Price != nil {
		t.Price = *u.Price
	}
	if u.Active != nil {
		t.Active = *u.Active
	}
	f.rows[id] = t
	return nil
}

func (f *fakeTours) SetImage(ctx context.Context, id int64, url string) error {
	t := f.rows[id]
	t.ImageURL = url
	f.rows[id] = t
	return nil
}

func (f *fakeTours) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

type fakePromos struct {
	rows   map[string]models.PromoCode
	nextID int64
}

func newFakePromos(rows ...models.PromoCode) *fakePromos {
	f := &fakePromos{rows: map[string]models.PromoCode{}}
	for _, p := range rows {
		f.nextID++
		p.ID = f.nextID
		f.rows[p.Code] = p
	}
	return f
}

func (f *fakePromos) List(ctx context.Context) ([]models.PromoCode, error) {
	out := []models.PromoCode{}
	for _, p := range f.rows {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePromos) GetByID(ctx context.Context, id int64) (models.PromoCode, error) {
	for _, p := range f.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return models.PromoCode{}, sql.ErrNoRows
}

func (f *fakePromos) GetByCode(ctx context.Context, code string) (models.PromoCode, error) {
	p, ok := f.rows[strings.ToUpper(code)]
	if !ok {
		return models.PromoCode{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakePromos) Create(ctx context.Context, p models.PromoCode) (int64, error) {
	if _, ok := f.rows[p.Code]; ok {
		return 0, domain.ConflictError{Resource: "promo code", Msg: "code already exists"}
	}
	f.nextID++
	p.ID = f.nextID
	f.rows[p.Code] = p
	return p.ID, nil
}

func (f *fakePromos) Update(ctx context.Context, id int64, u models.PromoUpdate) error {
	for code, p := range f.rows {
		if p.ID != id {
			continue
		}
		if u.DiscountType != nil {
			p.DiscountType = *u.DiscountType
		}
		if u.DiscountValue != nil {
			p.DiscountValue = *u.DiscountValue
		}
		if u.Active != nil {
			p.Active = *u.Active
		}
		f.rows[code] = p
	}
	return nil
}

func (f *fakePromos) redeem(code string) error {
	p, ok := f.rows[code]
	if !ok || !p.Active || (p.MaxUses > 0 && p.UsedCount >= p.MaxUses) {
		return repositories.ErrPromoExhausted
	}
	p.UsedCount++
	f.rows[code] = p
	return nil
}

func (f *fakePromos) Delete(ctx context.Context, id int64) (bool, error) {
	for code, p := range f.rows {
		if p.ID == id {
			delete(f.rows, code)
			return true, nil
		}
	}
	return false, nil
}

type fakeSettings struct {
	s     models.Settings
	found bool
	saved int
}

func (f *fakeSettings) Get(ctx context.Context) (models.Settings, bool, error) {
	if !f.found {
		return models.DefaultSettings(), false, nil
	}
	return f.s, true, nil
}

func (f *fakeSettings) Save(ctx context.Context, s models.Settings) error {
	f.s, f.found = s, true
	f.saved++
	return nil
}

type fakeSMSLogs struct {
	rows []models.SMSLog
}

func (f *fakeSMSLogs) Insert(ctx context.Context, l models.SMSLog) (int64, error) {
	l.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, l)
	return l.ID, nil
}

func (f *fakeSMSLogs) List(ctx context.Context, limit int) ([]models.SMSLog, error) {
	out := []models.SMSLog{}
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.rows[i])
	}
	return out, nil
}

type fakeSender struct {
	sent []string
	from []string
	err  error
}

func (f *fakeSender) Send(ctx context.Context, from, phone, message string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.from = append(f.from, from)
	f.sent = append(f.sent, phone+": "+message)
	return "ref-1", nil
}

type fakeFiles struct {
	names []string
}

func (f *fakeFiles) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.names = append(f.names, name)
	return "/uploads/" + name, nil
}

type fakeAdmins struct {
	rows []models.Admin
}

func (f *fakeAdmins) GetByUsername(ctx context.Context, username string) (models.Admin, error) {
	for _, a := range f.rows {
		if a.Username == username {
			return a, nil
		}
	}
	return models.Admin{}, sql.ErrNoRows
}

func (f *fakeAdmins) Count(ctx context.Context) (int, error) { return len(f.rows), nil }

func (f *fakeAdmins) Create(ctx context.Context, a models.Admin) (int64, error) {
	a.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, a)
	return a.ID, nil
}

var adminRC = domain.RequestContext{RequestID: "req-test", AdminID: 1, Username: "owner", Role: domain.RoleOwner}
