// Package format renders an encoded 32-bit instruction word as a line of
// output text, in either of the two styles spec.md section 4.4 specifies.
package format

import (
	"fmt"
	"strings"
)

// Style selects the textual rendering of a machine word.
type Style int

const (
	Hex Style = iota
	Binary
)

// Line renders one 32-bit word as a single output line, without the
// trailing newline (callers join lines with "\n" or write them one at a
// time).
func Line(word uint32, style Style) string {
	switch style {
	case Binary:
		return binary32(word)
	default:
		return fmt.Sprintf("0x%08X", word)
	}
}

func binary32(word uint32) string {
	var sb strings.Builder
	sb.Grow(32)
	for i := 31; i >= 0; i-- {
		if word&(1<<uint(i)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
