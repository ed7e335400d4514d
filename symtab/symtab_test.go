package symtab

import "testing"

func TestDefineAndLookup(t *testing.T) {
	tab := New()
	if err := tab.Define("loop", 1); err != nil {
		t.Fatal(err)
	}
	idx, ok := tab.Lookup("loop")
	if !ok || idx != 1 {
		t.Fatalf("got %d, %v", idx, ok)
	}
}

func TestDuplicateDefineIsError(t *testing.T) {
	tab := New()
	if err := tab.Define("loop", 1); err != nil {
		t.Fatal(err)
	}
	if err := tab.Define("loop", 2); err == nil {
		t.Fatal("expected duplicate label error")
	}
}

func TestLookupMissing(t *testing.T) {
	tab := New()
	if _, ok := tab.Lookup("nope"); ok {
		t.Fatal("expected not found")
	}
}
