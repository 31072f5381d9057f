package card

import (
	"testing"

	"loja_checkout/internal/domain/entities"
)

func validCard() entities.CardData {
	return entities.CardData{
		HolderName:  "JOAO SILVA",
		Number:      "4111 1111 1111 1111",
		ExpiryMonth: "12",
		ExpiryYear:  "28",
		CVV:         "123",
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid card", func(t *testing.T) {
		if ferr := Validate(validCard()); ferr != nil {
			t.Fatalf("expected nil, got %v", ferr)
		}
	})

	t.Run("missing holder name", func(t *testing.T) {
		data := validCard()
		data.HolderName = "   "
		ferr := Validate(data)
		if ferr == nil || ferr.Field != FieldHolderName {
			t.Fatalf("expected %s failure, got %v", FieldHolderName, ferr)
		}
	})

	t.Run("fifteen digit number fails", func(t *testing.T) {
		data := validCard()
		data.Number = "4111 1111 1111 111"
		ferr := Validate(data)
		if ferr == nil || ferr.Field != FieldNumber {
			t.Fatalf("expected %s failure, got %v", FieldNumber, ferr)
		}
	})

	t.Run("twenty digit number fails", func(t *testing.T) {
		data := validCard()
		data.Number = "41111111111111111111"
		ferr := Validate(data)
		if ferr == nil || ferr.Field != FieldNumber {
			t.Fatalf("expected %s failure, got %v", FieldNumber, ferr)
		}
	})

	t.Run("nineteen digit number passes", func(t *testing.T) {
		data := validCard()
		data.Number = "4111111111111111111"
		if ferr := Validate(data); ferr != nil {
			t.Fatalf("expected nil, got %v", ferr)
		}
	})

	t.Run("invalid expiry month", func(t *testing.T) {
		for _, month := range []string{"0", "13", "ab", ""} {
			data := validCard()
			data.ExpiryMonth = month
			ferr := Validate(data)
			if ferr == nil || ferr.Field != FieldExpiryMonth {
				t.Fatalf("month %q: expected %s failure, got %v", month, FieldExpiryMonth, ferr)
			}
		}
	})

	t.Run("four digit expiry year fails", func(t *testing.T) {
		data := validCard()
		data.ExpiryYear = "2028"
		ferr := Validate(data)
		if ferr == nil || ferr.Field != FieldExpiryYear {
			t.Fatalf("expected %s failure, got %v", FieldExpiryYear, ferr)
		}
	})

	t.Run("cvv length and digits", func(t *testing.T) {
		for _, cvv := range []string{"12", "1234", "12a", ""} {
			data := validCard()
			data.CVV = cvv
			ferr := Validate(data)
			if ferr == nil || ferr.Field != FieldCVV {
				t.Fatalf("cvv %q: expected %s failure, got %v", cvv, FieldCVV, ferr)
			}
		}
	})

	t.Run("cvv 000 is rejected", func(t *testing.T) {
		data := validCard()
		data.CVV = "000"
		ferr := Validate(data)
		if ferr == nil || ferr.Field != FieldCVV {
			t.Fatalf("expected %s failure, got %v", FieldCVV, ferr)
		}
		if ferr.Message != "invalid security code" {
			t.Fatalf("unexpected message: %s", ferr.Message)
		}
	})

	t.Run("fail fast reports first field only", func(t *testing.T) {
		// Everything invalid; holder name has priority.
		data := entities.CardData{}
		ferr := Validate(data)
		if ferr == nil || ferr.Field != FieldHolderName {
			t.Fatalf("expected %s failure, got %v", FieldHolderName, ferr)
		}
	})
}

func TestDetectBrand(t *testing.T) {
	cases := []struct {
		number string
		want   string
	}{
		{"4111111111111111", "visa"},
		{"5105105105105100", "mastercard"},
		{"2221000000000009", "mastercard"},
		{"378282246310005", "amex"},
		{"30569309025904", "diners"},
		{"6011111111111117", "discover"},
		{"6504175555555555", "discover"},
		{"5041755555555555", "elo"},
		{"6362975555555555", "elo"},
		{"6062825555555555", "hipercard"},
		{"9999999999999999", "unknown"},
	}

	for _, tc := range cases {
		if got := DetectBrand(tc.number); got != tc.want {
			t.Fatalf("DetectBrand(%s) = %s, want %s", tc.number, got, tc.want)
		}
	}

	t.Run("ignores separators", func(t *testing.T) {
		if got := DetectBrand("4111 1111-1111 1111"); got != "visa" {
			t.Fatalf("expected visa, got %s", got)
		}
	})
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber("4111111111111111"); got != "4111 1111 1111 1111" {
		t.Fatalf("unexpected format: %q", got)
	}
	if got := FormatNumber("4111 1111 1111 1111"); got != "4111 1111 1111 1111" {
		t.Fatalf("formatting should be stable: %q", got)
	}
	if got := FormatNumber("41111111111111111"); got != "4111 1111 1111 1111 1" {
		t.Fatalf("unexpected format for 17 digits: %q", got)
	}
	if got := FormatNumber(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestMaskNumber(t *testing.T) {
	if got := MaskNumber("4111111111111111"); got != "************1111" {
		t.Fatalf("unexpected mask: %q", got)
	}
	if got := MaskNumber("4111 1111 1111 1111"); got != "************1111" {
		t.Fatalf("mask should strip separators: %q", got)
	}
	if got := MaskNumber("1111"); got != "1111" {
		t.Fatalf("short numbers stay visible: %q", got)
	}
}

func TestOnlyDigits(t *testing.T) {
	if got := OnlyDigits("123.456.789-00"); got != "12345678900" {
		t.Fatalf("unexpected result: %q", got)
	}
	if got := OnlyDigits("abc"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
