package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"tourdesk/internal/domain"
	"tourdesk/internal/domain/models"
	"tourdesk/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the printable documents of the console.
type DocsService struct {
	Bookings  BookingStore
	Analytics AnalyticsService
	Settings  SettingsStore
	Now       func() time.Time
}

// BookingVoucher renders the voucher handed to the customer for booking id.
func (s DocsService) BookingVoucher(ctx context.Context, id int64) ([]byte, string, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, "", lookupErr("booking", err)
	}
	st := models.DefaultSettings()
	if s.Settings != nil {
		if got, _, err := s.Settings.Get(ctx); err == nil {
			st = got
		}
	}
	return buildVoucherPDF(b, st, clock(s.Now))
}

// AnalyticsReport renders the summary for tr as a one-page report.
func (s DocsService) AnalyticsReport(ctx context.Context, tr domain.TimeRange) ([]byte, string, error) {
	sum, err := s.Analytics.Summary(ctx, tr)
	if err != nil {
		return nil, "", err
	}
	currency := "IDR"
	if s.Settings != nil {
		if got, _, err := s.Settings.Get(ctx); err == nil && got.Currency != "" {
			currency = got.Currency
		}
	}
	return buildReportPDF(sum, currency, clock(s.Now))
}

func buildVoucherPDF(b models.Booking, st models.Settings, now time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING VOUCHER")
	pdf.Ln(12)

	price := b.PriceDisplay
	if price == "" {
		price = utils.FormatPrice(b.Price, st.Currency)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Voucher No   : TD-%06d", b.ID),
		fmt.Sprintf("Customer     : %s", utils.FirstNonEmpty(b.CustomerName, "-")),
		fmt.Sprintf("Phone        : %s", utils.FirstNonEmpty(b.CustomerPhone, "-")),
		fmt.Sprintf("Tour         : %s", utils.FirstNonEmpty(b.TourTitle, "Custom")),
		fmt.Sprintf("Trip Date    : %s", utils.FirstNonEmpty(b.TripDate, "-")),
		fmt.Sprintf("Pickup       : %s", utils.FirstNonEmpty(b.PickupLocation, "-")),
		fmt.Sprintf("Passengers   : %d", b.Passengers),
		fmt.Sprintf("Driver       : %s", utils.FirstNonEmpty(b.DriverName, "-")),
		fmt.Sprintf("Status       : %s", b.Status),
		fmt.Sprintf("Promo        : %s", utils.FirstNonEmpty(b.PromoCode, "-")),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Total: "+price)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	note := "Please show this voucher to your driver at pickup."
	if st.SupportEmail != "" || st.AdminPhone != "" {
		note += fmt.Sprintf(" Support: %s", strings.TrimSpace(strings.Join(nonEmpty(st.SupportEmail, st.AdminPhone), " / ")))
	}
	pdf.MultiCell(0, 6, note, "", "", false)
	pdf.Ln(2)
	pdf.Cell(0, 6, "Issued "+now.Format(utils.LayoutDateTime))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("VOUCHER_%d_%s.pdf", b.ID, utils.SafeFilenamePart(b.CustomerName))
	return buf.Bytes(), filename, nil
}

func buildReportPDF(sum domain.Summary, currency string, now time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Analytics Report", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ANALYTICS REPORT")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Range: %s    Generated: %s", sum.Range, now.Format(utils.LayoutDateTime)))
	pdf.Ln(10)

	money := func(v int64) string { return utils.FormatPrice(v, currency) }
	section(pdf, "Bookings")
	rows := [][2]string{
		{"Total bookings", fmt.Sprint(sum.TotalBookings)},
		{"Confirmed", fmt.Sprint(sum.ConfirmedCount)},
		{"Pending", fmt.Sprint(sum.PendingCount)},
		{"Cancelled", fmt.Sprint(sum.CancelledCount)},
		{"Gross", money(sum.TotalGross)},
		{fmt.Sprintf("Commission (%.1f%%)", sum.CommissionRate*100), money(sum.TotalCommission)},
		{"Net revenue", money(sum.NetRevenue)},
		{"Average order", money(sum.AOV)},
		{"Active drivers", fmt.Sprint(sum.ActiveDrivers)},
		{"Pending drivers", fmt.Sprint(sum.PendingDrivers)},
	}
	for _, r := range rows {
		pdf.CellFormat(70, 7, r[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, r[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	section(pdf, "Top drivers")
	if len(sum.TopDrivers) == 0 {
		pdf.Cell(0, 7, "No completed trips in range.")
		pdf.Ln(7)
	}
	for i, d := range sum.TopDrivers {
		pdf.CellFormat(10, 7, fmt.Sprint(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 7, utils.FirstNonEmpty(d.DriverName, fmt.Sprintf("#%d", d.DriverID)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprint(d.Trips), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, money(d.Revenue), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	section(pdf, "Top routes")
	if len(sum.TopRoutes) == 0 {
		pdf.Cell(0, 7, "No bookings in range.")
		pdf.Ln(7)
	}
	for i, r := range sum.TopRoutes {
		pdf.CellFormat(10, 7, fmt.Sprint(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(95, 7, r.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprint(r.Count), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("REPORT_%s_%s.pdf", sum.Range, now.Format("20060102"))
	return buf.Bytes(), filename, nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
