// Package validate holds the pure, total field-level validators described
// in the core's validation layer: email, phone, Chilean RUT, URL, trigram and
// non-negative numeric checks. None of these functions perform I/O or
// logging — they are the foundation every repository write path calls into
// before a row is stamped and persisted.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/errs"
)

var (
	emailPattern   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phoneSeparator = regexp.MustCompile(`[\s\-().]+`)
	phonePattern   = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	rutNonDigit    = regexp.MustCompile(`[^0-9Kk]`)
	trigramPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// rutFactors is the cyclic factor sequence applied to the reversed RUT body.
var rutFactors = [6]int{2, 3, 4, 5, 6, 7}

// Email trims, lowercases, and checks the address against a simplified
// RFC-5322 pattern. A nil/empty pointer is untouched.
func Email(value *string) (*string, error) {
	if value == nil || *value == "" {
		return value, nil
	}
	v := strings.ToLower(strings.TrimSpace(*value))
	if !emailPattern.MatchString(v) {
		return nil, errs.Field("email", "invalid_email", fmt.Sprintf("invalid email format: %s", *value))
	}
	return &v, nil
}

// Phone strips common separators, validates E.164 shape, and returns the
// ORIGINAL (unstripped) string to preserve display formatting. An empty
// value passes through unchanged.
func Phone(value *string) (*string, error) {
	if value == nil || *value == "" {
		return value, nil
	}
	clean := phoneSeparator.ReplaceAllString(*value, "")
	if !phonePattern.MatchString(clean) {
		return nil, errs.Field("phone", "invalid_phone", fmt.Sprintf("phone must be 8-15 digits, optionally starting with +, got: %s", *value))
	}
	return value, nil
}

// RUT validates a Chilean RUT, normalizing to "NNNNNNNN-D" form (check
// digit uppercased). An empty value passes through unchanged.
func RUT(value *string) (*string, error) {
	if value == nil || *value == "" {
		return value, nil
	}
	stripped := rutNonDigit.ReplaceAllString(*value, "")
	if len(stripped) < 2 {
		return nil, errs.Field("rut", "rut_too_short", fmt.Sprintf("rut too short: %s", *value))
	}

	body := stripped[:len(stripped)-1]
	checkDigit := strings.ToUpper(stripped[len(stripped)-1:])

	sum := 0
	for i := 0; i < len(body); i++ {
		// Walk the body right-to-left, applying the cyclic factor sequence.
		digitIndex := len(body) - 1 - i
		d, err := strconv.Atoi(string(body[digitIndex]))
		if err != nil {
			return nil, errs.Field("rut", "invalid_rut_digits", fmt.Sprintf("invalid rut digits: %s", *value))
		}
		sum += d * rutFactors[i%6]
	}

	remainder := 11 - (sum % 11)
	var expected string
	switch remainder {
	case 11:
		expected = "0"
	case 10:
		expected = "K"
	default:
		expected = strconv.Itoa(remainder)
	}

	if checkDigit != expected {
		return nil, errs.Field("rut", "invalid_rut_check_digit",
			fmt.Sprintf("invalid rut check digit: %s (expected %s, got %s)", *value, expected, checkDigit))
	}

	normalized := body + "-" + checkDigit
	return &normalized, nil
}

// FormatRUT re-adds thousands separators to an already-validated RUT,
// e.g. "12345678-5" -> "12.345.678-5".
func FormatRUT(value string) string {
	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 {
		return value
	}
	number, check := parts[0], parts[1]

	var b strings.Builder
	for i, r := range reverseString(number) {
		if i > 0 && i%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return reverseString(b.String()) + "-" + check
}

func reverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// URL requires an http:// or https:// prefix, case-insensitively.
func URL(value *string) (*string, error) {
	if value == nil || *value == "" {
		return value, nil
	}
	v := strings.TrimSpace(*value)
	lower := strings.ToLower(v)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return nil, errs.Field("url", "invalid_url", fmt.Sprintf("url must start with http:// or https://, got: %s", *value))
	}
	return &v, nil
}

// Trigram requires exactly three uppercase ASCII letters.
func Trigram(value string) (string, error) {
	if !trigramPattern.MatchString(value) {
		return "", errs.Field("trigram", "invalid_trigram", fmt.Sprintf("trigram must be exactly three uppercase letters, got: %s", value))
	}
	return value, nil
}

// NonNegativeDecimal fails if value is non-nil and negative.
func NonNegativeDecimal(value *decimal.Decimal, fieldName string) error {
	if value != nil && value.IsNegative() {
		return errs.Field(fieldName, "negative_value", fmt.Sprintf("%s cannot be negative, got: %s", fieldName, value.String()))
	}
	return nil
}

// NonNegativeInt fails if value is non-nil and negative.
func NonNegativeInt(value *int, fieldName string) error {
	if value != nil && *value < 0 {
		return errs.Field(fieldName, "negative_value", fmt.Sprintf("%s cannot be negative, got: %d", fieldName, *value))
	}
	return nil
}
