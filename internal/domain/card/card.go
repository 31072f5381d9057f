package card

import (
	"regexp"
	"strconv"
	"strings"

	"loja_checkout/internal/domain/entities"
)

// FieldError points at the first card field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

const (
	FieldHolderName  = "cardName"
	FieldNumber      = "cardNumber"
	FieldExpiryMonth = "expiryMonth"
	FieldExpiryYear  = "expiryYear"
	FieldCVV         = "cvv"
)

var nonDigits = regexp.MustCompile(`\D`)

// OnlyDigits strips every non-digit character. Used for card numbers,
// documents (CPF) and postal codes before validation/persistence.
func OnlyDigits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// Validate checks card fields fail-fast, in a fixed priority order: holder
// name, number, expiry month, expiry year, cvv. It returns the first failing
// field only.
//
// Expiry is validated for format only; whether the card is actually expired
// is left to the gateway.
func Validate(data entities.CardData) *FieldError {
	if strings.TrimSpace(data.HolderName) == "" {
		return &FieldError{Field: FieldHolderName, Message: "card holder name is required"}
	}

	number := OnlyDigits(data.Number)
	if len(number) < 16 || len(number) > 19 {
		return &FieldError{Field: FieldNumber, Message: "card number must have 16 to 19 digits"}
	}

	month, err := strconv.Atoi(strings.TrimSpace(data.ExpiryMonth))
	if err != nil || month < 1 || month > 12 {
		return &FieldError{Field: FieldExpiryMonth, Message: "expiry month must be between 1 and 12"}
	}

	if len(strings.TrimSpace(data.ExpiryYear)) != 2 {
		return &FieldError{Field: FieldExpiryYear, Message: "expiry year must have 2 digits"}
	}

	cvv := strings.TrimSpace(data.CVV)
	if len(cvv) != 3 || OnlyDigits(cvv) != cvv {
		return &FieldError{Field: FieldCVV, Message: "security code must have 3 digits"}
	}
	// "000" is a known placeholder sent by some autofill tools.
	if cvv == "000" {
		return &FieldError{Field: FieldCVV, Message: "invalid security code"}
	}

	return nil
}

// brandPatterns is checked in order; first match wins.
var brandPatterns = []struct {
	brand   string
	pattern *regexp.Regexp
}{
	{"elo", regexp.MustCompile(`^(4011(78|79)|431274|438935|451416|457393|4576(31|32)|504175|627780|636297|636368|65003[1-3]|65500[0-9])`)},
	{"hipercard", regexp.MustCompile(`^(606282|3841)`)},
	{"visa", regexp.MustCompile(`^4`)},
	{"mastercard", regexp.MustCompile(`^(5[1-5]|2[2-7])`)},
	{"amex", regexp.MustCompile(`^3[47]`)},
	{"diners", regexp.MustCompile(`^3(0[0-5]|[68])`)},
	{"discover", regexp.MustCompile(`^(6011|65)`)},
}

// DetectBrand classifies a card number into a network by issuer prefix.
// Unknown prefixes return "unknown"; that is not a validation failure, the
// brand is used for display and gateway routing only.
func DetectBrand(number string) string {
	number = OnlyDigits(number)
	for _, bp := range brandPatterns {
		if bp.pattern.MatchString(number) {
			return bp.brand
		}
	}
	return "unknown"
}

// FormatNumber groups the digits in blocks of four for display:
// "4111111111111111" => "4111 1111 1111 1111".
func FormatNumber(number string) string {
	number = OnlyDigits(number)
	var b strings.Builder
	for i, r := range number {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MaskNumber hides all but the last four digits:
// "4111111111111111" => "************1111".
func MaskNumber(number string) string {
	number = OnlyDigits(number)
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
