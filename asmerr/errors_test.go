package asmerr

import (
	"strings"
	"testing"
)

func TestPositionString(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{Position{File: "loop.s", Line: 3}, "loop.s:3"},
		{Position{File: "loop.s", Line: 0}, "loop.s"},
		{Position{File: "loop.s", Line: -1}, "loop.s"},
	}
	for _, tt := range tests {
		if got := tt.pos.String(); got != tt.want {
			t.Errorf("Position%+v.String() = %q, want %q", tt.pos, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUsage, "usage error"},
		{KindIO, "I/O error"},
		{KindSyntax, "syntax error"},
		{KindOperand, "operand error"},
		{KindSymbol, "symbol error"},
		{Kind(99), "error"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	pos := Position{File: "a.s", Line: 5}
	e := New(pos, KindSyntax, "unexpected token")

	if e.Pos != pos {
		t.Errorf("Pos = %+v, want %+v", e.Pos, pos)
	}
	if e.Kind != KindSyntax {
		t.Errorf("Kind = %v, want %v", e.Kind, KindSyntax)
	}
	if e.Msg != "unexpected token" {
		t.Errorf("Msg = %q, want %q", e.Msg, "unexpected token")
	}
	if e.Token != "" {
		t.Errorf("Token = %q, want empty", e.Token)
	}
}

func TestNewf(t *testing.T) {
	pos := Position{File: "a.s", Line: 7}
	e := Newf(pos, KindOperand, "operand %d out of range: %d", 2, 99)

	want := "operand 2 out of range: 99"
	if e.Msg != want {
		t.Errorf("Msg = %q, want %q", e.Msg, want)
	}
}

func TestWithToken(t *testing.T) {
	e := New(Position{File: "a.s", Line: 1}, KindSymbol, "undefined symbol")
	got := e.WithToken("foo")

	if got != e {
		t.Error("WithToken should return the same *Error it was called on")
	}
	if e.Token != "foo" {
		t.Errorf("Token = %q, want %q", e.Token, "foo")
	}
}

func TestErrorStringWithoutToken(t *testing.T) {
	e := New(Position{File: "loop.s", Line: 4}, KindSyntax, "missing operand")
	got := e.Error()

	for _, want := range []string{"loop.s:4", "syntax error", "missing operand"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, want substring %q", got, want)
		}
	}
	if strings.Contains(got, `""`) {
		t.Errorf("Error() = %q, should not quote an empty token", got)
	}
}

func TestErrorStringWithToken(t *testing.T) {
	e := New(Position{File: "loop.s", Line: 4}, KindOperand, "not a register").WithToken("x99")
	got := e.Error()

	for _, want := range []string{"loop.s:4", "operand error", "not a register", `"x99"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, want substring %q", got, want)
		}
	}
}

func TestListAddAndHasErrors(t *testing.T) {
	var l List
	if l.HasErrors() {
		t.Fatal("empty List should not HasErrors")
	}

	l.Add(New(Position{File: "a.s", Line: 1}, KindSyntax, "bad line"))
	if !l.HasErrors() {
		t.Fatal("List with one error should HasErrors")
	}
	if len(l.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(l.Errors))
	}
}

func TestListError(t *testing.T) {
	var l List
	l.Add(New(Position{File: "a.s", Line: 1}, KindSyntax, "first"))
	l.Add(New(Position{File: "a.s", Line: 2}, KindOperand, "second"))

	got := l.Error()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("List.Error() produced %d line(s), want 2:\n%s", len(lines), got)
	}
	if !strings.Contains(lines[0], "first") || !strings.Contains(lines[1], "second") {
		t.Errorf("List.Error() = %q, want lines for both errors in order", got)
	}
}
