package utils

import "testing"

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		amount   int64
		currency string
		want     string
	}{
		{0, "IDR", "Rp 0"},
		{1500000, "", "Rp 1.500.000"},
		{-2500, "IDR", "-Rp 2.500"},
		{1234, "usd", "$1,234"},
		{999, "EUR", "999 EUR"},
	}
	for _, tc := range cases {
		if got := FormatPrice(tc.amount, tc.currency); got != tc.want {
			t.Errorf("FormatPrice(%d, %q) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestRoundMoneyHalfAwayFromZero(t *testing.T) {
	if RoundMoney(2.5) != 3 || RoundMoney(-2.5) != -3 || RoundMoney(1.49) != 1 {
		t.Fatalf("unexpected rounding")
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone(" +62 812-3456 (78) "); got != "+628123456" + "78" {
		t.Fatalf("NormalizePhone = %q", got)
	}
}
