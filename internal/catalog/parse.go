package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var amountStrip = strings.NewReplacer(
	" ", "", "\t", "",
	"$", "", "€", "", "£", "", "¥", "", "₡", "",
	"%", "", ",", "",
)

// ParseAmount turns a free-form money or percentage string from a catalog
// export into a decimal. It tolerates currency symbols, percent signs,
// thousands separators and stray spaces ("$1,299.00", "7%", " 7 ").
// Anything that still fails to parse yields def.
func ParseAmount(raw string, def decimal.Decimal) decimal.Decimal {
	s := amountStrip.Replace(strings.TrimSpace(raw))
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return def
	}
	return d
}

// ParseStock reads an integer stock cell; garbage counts as zero.
func ParseStock(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseFeatured accepts the spellings used in catalog exports.
func ParseFeatured(raw string) bool {
	switch strings.TrimSpace(raw) {
	case "Sí", "Si", "YES":
		return true
	}
	return false
}
