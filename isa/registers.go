// Package isa holds the static RV32I tables: register names and the
// mnemonic-to-encoding-form table the encoder dispatches on.
package isa

import (
	"fmt"
	"strconv"
	"strings"
)

// Registers maps every accepted register spelling - numeric (x0..x31) and
// ABI (zero, ra, sp, ...) - to its 5-bit index.
var Registers = buildRegisterTable()

func buildRegisterTable() map[string]uint32 {
	t := make(map[string]uint32, 64)

	for i := uint32(0); i <= 31; i++ {
		t[fmt.Sprintf("x%d", i)] = i
	}

	abi := map[string]uint32{
		"zero": 0, "ra": 1, "sp": 2, "gp": 3, "tp": 4,
		"t0": 5, "t1": 6, "t2": 7,
		"s0": 8, "s1": 9,
		"a0": 10, "a1": 11, "a2": 12, "a3": 13, "a4": 14, "a5": 15, "a6": 16, "a7": 17,
		"s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23, "s8": 24, "s9": 25, "s10": 26, "s11": 27,
		"t3": 28, "t4": 29, "t5": 30, "t6": 31,
	}
	for name, idx := range abi {
		t[name] = idx
	}

	return t
}

// ParseRegister resolves a register spelling (numeric or ABI) to its index.
func ParseRegister(name string) (uint32, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if idx, ok := Registers[name]; ok {
		return idx, nil
	}
	return 0, fmt.Errorf("invalid register: %q", name)
}

// ParseImmediate parses a decimal or 0x-prefixed hex literal into a signed
// 64-bit value, wide enough to bounds-check against any encoding field
// before narrowing.
func ParseImmediate(tok string) (int64, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, fmt.Errorf("empty immediate")
	}

	neg := false
	s := tok
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	var v int64
	var err error
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		u, perr := strconv.ParseUint(s[2:], 16, 64)
		v, err = int64(u), perr
	} else {
		v, err = strconv.ParseInt(s, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("malformed immediate: %q", tok)
	}
	if neg {
		v = -v
	}
	return v, nil
}
