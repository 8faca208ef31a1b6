package domain

import (
	"math"
	"sort"
	"strings"
	"time"

	"tourdesk/internal/domain/models"
	"tourdesk/internal/utils"
)

// TimeRange selects which bookings the summary covers, by creation time.
type TimeRange string

const (
	RangeToday TimeRange = "TODAY"
	RangeWeek  TimeRange = "WEEK"
	RangeMonth TimeRange = "MONTH"
	RangeAll   TimeRange = "ALL"
)

const (
	leaderboardSize = 5
	trendSize       = 10
	customRoute     = "Custom"
	trendDateLayout = "2006-01-02"
)

// ParseTimeRange accepts any casing; unknown values fall back to ALL.
func ParseTimeRange(s string) TimeRange {
	switch tr := TimeRange(strings.ToUpper(strings.TrimSpace(s))); tr {
	case RangeToday, RangeWeek, RangeMonth:
		return tr
	default:
		return RangeAll
	}
}

type DriverRank struct {
	DriverID   int64  `json:"driverId"`
	DriverName string `json:"driverName"`
	Trips      int    `json:"trips"`
	Revenue    int64  `json:"revenue"`
}

type RouteRank struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

type TrendPoint struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
}

type Summary struct {
	Range          TimeRange `json:"range"`
	CommissionRate float64   `json:"commissionRate"`

	TotalBookings  int `json:"totalBookings"`
	ConfirmedCount int `json:"confirmedCount"`
	PendingCount   int `json:"pendingCount"`
	CancelledCount int `json:"cancelledCount"`

	TotalGross      int64 `json:"totalGross"`
	TotalCommission int64 `json:"totalCommission"`
	NetRevenue      int64 `json:"netRevenue"`
	AOV             int64 `json:"aov"`

	TopDrivers []DriverRank `json:"topDrivers"`
	TopRoutes  []RouteRank  `json:"topRoutes"`
	TrendData  []TrendPoint `json:"trendData"`

	ActiveDrivers  int `json:"activeDrivers"`
	PendingDrivers int `json:"pendingDrivers"`
}

// ComputeSummary reduces a booking/driver snapshot into dashboard figures.
// It never fails and never mutates its inputs.
func ComputeSummary(bookings []models.Booking, drivers []models.Driver, rate float64, tr TimeRange, now time.Time) Summary {
	rate = sanitizeRate(rate)
	tr = ParseTimeRange(string(tr))
	filtered := FilterByRange(bookings, tr, now)

	out := Summary{
		Range:          tr,
		CommissionRate: rate,
		TotalBookings:  len(filtered),
	}

	confirmed := make([]models.Booking, 0, len(filtered))
	for _, b := range filtered {
		switch {
		case b.Confirmed():
			confirmed = append(confirmed, b)
		case b.Status == models.BookingPending:
			out.PendingCount++
		case b.Status == models.BookingCancelled:
			out.CancelledCount++
		}
	}
	out.ConfirmedCount = len(confirmed)

	for _, b := range confirmed {
		out.TotalGross += priceOf(b)
	}
	out.TotalCommission = Commission(out.TotalGross, rate)
	out.NetRevenue = out.TotalGross - out.TotalCommission
	if out.ConfirmedCount > 0 {
		out.AOV = utils.RoundMoney(float64(out.TotalGross) / float64(out.ConfirmedCount))
	}

	out.TopDrivers = topDrivers(confirmed)
	out.TopRoutes = topRoutes(filtered)
	out.TrendData = trend(confirmed)

	for _, d := range drivers {
		switch d.Status {
		case models.DriverActive:
			out.ActiveDrivers++
		case models.DriverPending:
			out.PendingDrivers++
		}
	}
	return out
}

// FilterByRange returns the bookings created inside the window ending at now.
// The result is a new slice; ALL copies the input unchanged.
func FilterByRange(bookings []models.Booking, tr TimeRange, now time.Time) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	var from time.Time
	switch tr {
	case RangeWeek:
		from = now.Add(-7 * 24 * time.Hour)
	case RangeMonth:
		from = now.Add(-30 * 24 * time.Hour)
	}

	for _, b := range bookings {
		switch tr {
		case RangeToday:
			if b.CreatedAt.IsZero() || !sameDay(b.CreatedAt.In(now.Location()), now) {
				continue
			}
		case RangeWeek, RangeMonth:
			if b.CreatedAt.IsZero() || b.CreatedAt.Before(from) {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

// Commission is the platform cut of gross at rate, rounded half away from zero.
func Commission(gross int64, rate float64) int64 {
	return utils.RoundMoney(float64(gross) * sanitizeRate(rate))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sanitizeRate(rate float64) float64 {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return 0
	}
	return rate
}

func priceOf(b models.Booking) int64 {
	if b.Price < 0 {
		return 0
	}
	return b.Price
}

func topDrivers(confirmed []models.Booking) []DriverRank {
	ranks := []DriverRank{}
	index := map[int64]int{}
	for _, b := range confirmed {
		if b.DriverID == 0 {
			continue
		}
		i, ok := index[b.DriverID]
		if !ok {
			i = len(ranks)
			index[b.DriverID] = i
			ranks = append(ranks, DriverRank{DriverID: b.DriverID})
		}
		r := &ranks[i]
		if r.DriverName == "" {
			r.DriverName = strings.TrimSpace(b.DriverName)
		}
		r.Trips++
		r.Revenue += priceOf(b)
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Revenue > ranks[j].Revenue })
	if len(ranks) > leaderboardSize {
		ranks = ranks[:leaderboardSize]
	}
	return ranks
}

func topRoutes(filtered []models.Booking) []RouteRank {
	ranks := []RouteRank{}
	index := map[string]int{}
	for _, b := range filtered {
		title := strings.TrimSpace(b.TourTitle)
		if title == "" {
			title = customRoute
		}
		i, ok := index[title]
		if !ok {
			i = len(ranks)
			index[title] = i
			ranks = append(ranks, RouteRank{Title: title})
		}
		ranks[i].Count++
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Count > ranks[j].Count })
	if len(ranks) > leaderboardSize {
		ranks = ranks[:leaderboardSize]
	}
	return ranks
}

// trend keeps the first ten confirmed bookings in input order, reversed.
func trend(confirmed []models.Booking) []TrendPoint {
	n := len(confirmed)
	if n > trendSize {
		n = trendSize
	}
	out := make([]TrendPoint, n)
	for i := 0; i < n; i++ {
		b := confirmed[i]
		date := ""
		if !b.CreatedAt.IsZero() {
			date = b.CreatedAt.Format(trendDateLayout)
		}
		out[n-1-i] = TrendPoint{Date: date, Amount: priceOf(b)}
	}
	return out
}
