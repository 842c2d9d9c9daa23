package comparison

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const noPriceLabel = "Fiyat bilgisi yok"

var tr = language.Turkish

// FormatPrice renders an amount the way Turkish shops do ("15.999 TL",
// "899,90 TL").
func FormatPrice(amount float64, currency string) string {
	p := message.NewPrinter(tr)
	var s string
	if amount == math.Trunc(amount) {
		s = p.Sprint(number.Decimal(amount, number.MaxFractionDigits(0)))
	} else {
		s = p.Sprint(number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	}
	if currency == "" {
		return s
	}
	return s + " " + currency
}

func formatCount(n float64) string {
	return message.NewPrinter(tr).Sprint(number.Decimal(n, number.MaxFractionDigits(0)))
}

func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatScore(v float64) string {
	return formatPlain(v) + "/10"
}

func formatCapacity(gb float64) string {
	if gb >= 1024 && math.Mod(gb, 1024) == 0 {
		return formatPlain(gb/1024) + " TB"
	}
	return formatPlain(gb) + " GB"
}
