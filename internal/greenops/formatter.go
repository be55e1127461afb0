package greenops

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats integers with English thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCarbonAmount renders a kg CO2e amount for display.
//
// Amounts below 1 kg are shown in whole grams ("500g CO₂"), larger ones in
// kilograms with one decimal ("2.3kg CO₂"). With showUnit false only the bare
// number is returned, without the g/kg unit or the CO₂ suffix.
func FormatCarbonAmount(amount float64, showUnit bool) string {
	var num, unit string
	if amount < GramsThresholdKg {
		grams := math.Round(amount*1000) + 0 //nolint:mnd // kg to g; +0 clears negative zero.
		num = strconv.FormatFloat(grams, 'f', 0, 64)
		unit = "g"
	} else {
		num = toFixed(amount, 1)
		unit = "kg"
	}

	if !showUnit {
		return num
	}
	return num + unit + carbonSuffix
}

// exactDigits is enough fractional digits to spell out any float64 exactly.
const exactDigits = 1100

// toFixed rounds the exact binary value of f to places decimals, ties away
// from zero. Scaling first would round 1.15 (stored as 1.1499...) up to 1.2.
func toFixed(f float64, places int32) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', int(places), 64)
	}
	exact := new(big.Float).SetFloat64(f).Text('f', exactDigits)
	d, err := decimal.NewFromString(exact)
	if err != nil {
		return strconv.FormatFloat(f, 'f', int(places), 64)
	}
	return d.Round(places).StringFixed(places)
}

// FormatNumber formats an integer with thousand separators, e.g. 18248 -> "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat rounds f to precision decimals and adds thousand separators,
// e.g. FormatFloat(1234.567, 2) -> "1,234.57".
func FormatFloat(f float64, precision int) string {
	const base = 10
	multiplier := math.Pow(base, float64(precision))
	rounded := math.Round(f*multiplier) / multiplier

	if precision <= 0 {
		return FormatNumber(int64(rounded))
	}

	plain := strconv.FormatFloat(math.Abs(rounded), 'f', precision, 64)
	intPart, frac, _ := strings.Cut(plain, ".")
	n, err := strconv.ParseInt(intPart, base, 64)
	if err != nil {
		return strconv.FormatFloat(rounded, 'f', precision, 64)
	}

	out := FormatNumber(n) + "." + frac
	if rounded < 0 {
		out = "-" + out
	}
	return out
}

// FormatLarge abbreviates values of a million or more ("~1.5 billion") and
// formats smaller ones as comma-separated integers.
func FormatLarge(n float64) string {
	switch {
	case n >= BillionThreshold:
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	case n >= LargeNumberThreshold:
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	default:
		return FormatNumber(int64(math.Round(n)))
	}
}

// FormatPercent renders a percentage change with an explicit sign, e.g. "+4.2%".
func FormatPercent(p float64) string {
	rounded := math.Round(p*10) / 10 //nolint:mnd // One decimal.
	if rounded > 0 {
		return fmt.Sprintf("+%.1f%%", rounded)
	}
	return fmt.Sprintf("%.1f%%", rounded+0)
}
