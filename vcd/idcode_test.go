package vcd

import (
	"errors"
	"testing"
)

func TestIDCode_BijectionNatural(t *testing.T) {
	for i := IDCode(0); i < 20000; i++ {
		tok := AppendID(nil, i, OrderNatural)
		got, err := DecodeID(tok, OrderNatural)
		if err != nil {
			t.Fatalf("DecodeID(%q) failed: %v", tok, err)
		}
		if got != i {
			t.Fatalf("DecodeID(AppendID(%d)) = %d", i, got)
		}
	}
}

func TestIDCode_BijectionLegacy(t *testing.T) {
	for i := IDCode(0); i < 20000; i++ {
		tok := AppendID(nil, i, OrderLegacy)
		got, err := DecodeID(tok, OrderLegacy)
		if err != nil {
			t.Fatalf("DecodeID(%q) failed: %v", tok, err)
		}
		if got != i {
			t.Fatalf("DecodeID(AppendID(%d)) = %d", i, got)
		}
	}
}

func TestIDCode_KnownTokens(t *testing.T) {
	testCases := []struct {
		code  IDCode
		order IDOrder
		token string
	}{
		{0, OrderNatural, "!"},
		{0, OrderLegacy, "!"},
		{93, OrderNatural, "~"},
		{93, OrderLegacy, "~"},
		{94, OrderNatural, "!!"},
		{94, OrderLegacy, "!!"},
		{95, OrderNatural, "!\""},
		{95, OrderLegacy, "\"!"},
	}

	for _, tc := range testCases {
		if got := tc.code.Token(tc.order); got != tc.token {
			t.Errorf("Token(%d, %s) = %q, want %q", tc.code, tc.order, got, tc.token)
		}
		got, err := DecodeID([]byte(tc.token), tc.order)
		if err != nil {
			t.Errorf("DecodeID(%q, %s) failed: %v", tc.token, tc.order, err)
			continue
		}
		if got != tc.code {
			t.Errorf("DecodeID(%q, %s) = %d, want %d", tc.token, tc.order, got, tc.code)
		}
	}
}

func TestIDCode_LongTokens(t *testing.T) {
	for _, tok := range []string{"!!!!!!!!!!", "~~~~~~~~~", "999999999n"} {
		code, err := DecodeID([]byte(tok), OrderNatural)
		if err != nil {
			t.Fatalf("DecodeID(%q) failed: %v", tok, err)
		}
		if got := code.Token(OrderNatural); got != tok {
			t.Errorf("round trip of %q gave %q", tok, got)
		}
	}
}

func TestIDCode_Overflow(t *testing.T) {
	if _, err := DecodeID([]byte("9999999999n"), OrderNatural); err == nil {
		t.Error("expected overflow error for 11-symbol token")
	}
}

func TestDecodeID_InvalidBytes(t *testing.T) {
	for _, tok := range []string{"", " ", "a b", "\x1f", "a\x7f"} {
		_, err := DecodeID([]byte(tok), OrderNatural)
		if err == nil {
			t.Errorf("DecodeID(%q) succeeded, want error", tok)
		}
		var inv *InvalidIDError
		if !errors.As(err, &inv) {
			t.Errorf("DecodeID(%q) returned %T, want *InvalidIDError", tok, err)
		}
	}
}

func TestIDCode_Next(t *testing.T) {
	c := FirstIDCode
	for i := 0; i < 5; i++ {
		if c != IDCode(i) {
			t.Fatalf("Next chain broke at %d: got %d", i, c)
		}
		c = c.Next()
	}
}
