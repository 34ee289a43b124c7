package validate

import (
	"testing"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func TestRUT(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"dotted with check digit 5", "12.345.678-5", "12345678-5", false},
		{"bad check digit", "12345678-0", "", true},
		{"all ones with check digit 1", "11111111-1", "11111111-1", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RUT(strPtr(tc.in))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("RUT(%q) = %q, want error", tc.in, *got)
				}
				return
			}
			if err != nil {
				t.Fatalf("RUT(%q) unexpected error: %v", tc.in, err)
			}
			if *got != tc.want {
				t.Fatalf("RUT(%q) = %q, want %q", tc.in, *got, tc.want)
			}
		})
	}
}

func TestRUT_Idempotent(t *testing.T) {
	in := "12.345.678-5"
	first, err := RUT(strPtr(in))
	if err != nil {
		t.Fatalf("first validate: %v", err)
	}
	second, err := RUT(first)
	if err != nil {
		t.Fatalf("second validate: %v", err)
	}
	if *first != *second {
		t.Fatalf("validate not idempotent: %q != %q", *first, *second)
	}
}

func TestRUT_NilAndEmptyPassThrough(t *testing.T) {
	if got, err := RUT(nil); err != nil || got != nil {
		t.Fatalf("RUT(nil) = %v, %v, want nil, nil", got, err)
	}
	empty := ""
	if got, err := RUT(&empty); err != nil || got != &empty {
		t.Fatalf("RUT(empty) = %v, %v, want pass-through", got, err)
	}
}

func TestFormatRUT(t *testing.T) {
	got := FormatRUT("12345678-5")
	want := "12.345.678-5"
	if got != want {
		t.Fatalf("FormatRUT() = %q, want %q", got, want)
	}
}

func TestEmail(t *testing.T) {
	got, err := Email(strPtr("  USER@Example.COM  "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != "user@example.com" {
		t.Fatalf("got %q", *got)
	}

	if _, err := Email(strPtr("not-an-email")); err == nil {
		t.Fatal("expected error for invalid email")
	}
}

func TestPhone(t *testing.T) {
	original := "+56 9 1234 5678"
	got, err := Phone(&original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got != original {
		t.Fatalf("Phone should preserve original formatting, got %q", *got)
	}

	tooShort := "123"
	if _, err := Phone(&tooShort); err == nil {
		t.Fatal("expected error for too-short phone")
	}
}

func TestURL(t *testing.T) {
	if _, err := URL(strPtr("HTTPS://example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := URL(strPtr("example.com")); err == nil {
		t.Fatal("expected error for missing scheme")
	}
}

func TestTrigram(t *testing.T) {
	if _, err := Trigram("AKG"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Trigram("ak"); err == nil {
		t.Fatal("expected error for lowercase trigram")
	}
	if _, err := Trigram("AKGR"); err == nil {
		t.Fatal("expected error for four-letter trigram")
	}
}

func TestNonNegativeDecimal(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	if err := NonNegativeDecimal(&neg, "price"); err == nil {
		t.Fatal("expected error for negative decimal")
	}
	zero := decimal.Zero
	if err := NonNegativeDecimal(&zero, "price"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := NonNegativeDecimal(nil, "price"); err != nil {
		t.Fatalf("nil should pass: %v", err)
	}
}
