package folio

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMoneyString(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{M(1000, USD), "$1,000.00"},
		{M(12.5, USD), "$12.50"},
		{M(1234567, KRW), "₩1,234,567"},
		{M(0, KRW), "₩0"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(won(1000))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if got, want := string(data), `{"amount":1000,"currency":"KRW"}`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	var m Money
	if err := json.Unmarshal([]byte(`{"amount":12.5,"currency":"USD"}`), &m); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if want := M(12.5, USD); !m.Equal(want) {
		t.Errorf("Unmarshal() = %v, want %v", m, want)
	}

	if err := json.Unmarshal([]byte(`{"amount":1}`), &m); err != nil {
		t.Fatalf("Unmarshal() without currency error: %v", err)
	}
	if m.Currency() != DefaultCurrency {
		t.Errorf("Unmarshal() without currency = %q, want %q", m.Currency(), DefaultCurrency)
	}

	if err := json.Unmarshal([]byte(`{"amount":1,"currency":"EUR"}`), &m); err == nil {
		t.Error("Unmarshal() accepted an unsupported currency")
	}
}

func TestParseCurrency(t *testing.T) {
	for in, want := range map[string]Currency{"KRW": KRW, "usd": USD, " Usd ": USD} {
		got, err := ParseCurrency(in)
		if err != nil || got != want {
			t.Errorf("ParseCurrency(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseCurrency("JPY"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseCurrency(JPY) error = %v, want ErrValidation", err)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	m := won(1000).Sub(dec(400)).Add(dec(100))
	if !m.Equal(won(700)) {
		t.Errorf("1000-400+100 = %v, want %v", m, won(700))
	}
	if !won(1000).Sub(dec(1200)).IsNegative() {
		t.Error("1000-1200 is not negative")
	}
}
