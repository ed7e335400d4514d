package isa

import "testing"

func TestParseRegisterNumericAndABIAgree(t *testing.T) {
	cases := []struct {
		numeric, abi string
	}{
		{"x0", "zero"}, {"x1", "ra"}, {"x2", "sp"}, {"x3", "gp"}, {"x4", "tp"},
		{"x5", "t0"}, {"x8", "s0"}, {"x10", "a0"}, {"x17", "a7"}, {"x28", "t3"}, {"x31", "t6"},
	}
	for _, c := range cases {
		n, err := ParseRegister(c.numeric)
		if err != nil {
			t.Fatalf("ParseRegister(%q): %v", c.numeric, err)
		}
		a, err := ParseRegister(c.abi)
		if err != nil {
			t.Fatalf("ParseRegister(%q): %v", c.abi, err)
		}
		if n != a {
			t.Errorf("%s=%d != %s=%d", c.numeric, n, c.abi, a)
		}
	}
}

func TestParseRegisterInvalid(t *testing.T) {
	for _, bad := range []string{"x32", "r0", "", "a8", "s12"} {
		if _, err := ParseRegister(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseImmediateDecimalAndHex(t *testing.T) {
	v, err := ParseImmediate("-1")
	if err != nil || v != -1 {
		t.Fatalf("got %d, %v", v, err)
	}
	v, err = ParseImmediate("0x12345")
	if err != nil || v != 0x12345 {
		t.Fatalf("got %d, %v", v, err)
	}
	if _, err := ParseImmediate("not-a-number"); err == nil {
		t.Error("expected error")
	}
}
