package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RoundMoney rounds half away from zero.
func RoundMoney(x float64) int64 {
	return int64(math.Round(x))
}

// FormatPrice renders a whole amount with thousand separators and currency prefix.
func FormatPrice(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	switch currency {
	case "", "IDR":
		return fmt.Sprintf("%sRp %s", sign, formatThousand(amount, '.'))
	case "USD":
		return fmt.Sprintf("%s$%s", sign, formatThousand(amount, ','))
	default:
		return fmt.Sprintf("%s%s %s", sign, formatThousand(amount, ','), currency)
	}
}

func formatThousand(n int64, sep byte) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(sep)
		}
		out.WriteRune(c)
	}
	return out.String()
}
