package geohash

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// autoChars maps the count of fractional digits to the hash length that
// reproduces the input when the decoded center is rounded back to that many digits.
var autoChars = [...]int{0, 5, 7, 8, 11, 12, 13, 15, 16, 17, 18}

// EncodeAutoDecimal encodes textual decimal coordinates at the precision implied by their
// fractional digits. The larger digit count of the two inputs wins.
func EncodeAutoDecimal(lat, lon decimal.Decimal) (string, error) {
	digits := max(fractionDigits(lat), fractionDigits(lon))
	if digits == 0 {
		return "", fmt.Errorf("%w: auto precision requires fractional digits, got %s, %s",
			ErrInvalidInput, lat, lon)
	}
	digits = min(digits, len(autoChars)-1)

	return EncodeWithPrecision(lat.InexactFloat64(), lon.InexactFloat64(), autoChars[digits])
}

// EncodeDecimal parses textual coordinates and encodes them with chars characters,
// or with the inferred precision when chars is EncodeAuto.
func EncodeDecimal(lat, lon string, chars int) (string, error) {
	latDec, err := decimal.NewFromString(lat)
	if err != nil {
		return "", fmt.Errorf("%w: latitude %q: %w", ErrInvalidInput, lat, err)
	}
	lonDec, err := decimal.NewFromString(lon)
	if err != nil {
		return "", fmt.Errorf("%w: longitude %q: %w", ErrInvalidInput, lon, err)
	}

	if chars == EncodeAuto {
		return EncodeAutoDecimal(latDec, lonDec)
	}
	return EncodeWithPrecision(latDec.InexactFloat64(), lonDec.InexactFloat64(), chars)
}

func fractionDigits(d decimal.Decimal) int {
	if exp := d.Exponent(); exp < 0 {
		return int(-exp)
	}
	return 0
}
