package tools

import "testing"

func TestLintUnusedLabel(t *testing.T) {
	src := "unused: add x0, x0, x0\nadd x1, x1, x1\n"
	issues := Lint(src, nil)

	found := false
	for _, i := range issues {
		if i.Code == "UNUSED_LABEL" && i.Line == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UNUSED_LABEL at line 1, got %+v", issues)
	}
}

func TestLintDeadBranchTarget(t *testing.T) {
	src := "beq x1, x2, nowhere\n"
	issues := Lint(src, nil)

	found := false
	for _, i := range issues {
		if i.Code == "DEAD_BRANCH_TARGET" && i.Line == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected DEAD_BRANCH_TARGET at line 1, got %+v", issues)
	}
}

func TestLintReferencedLabelIsNotUnused(t *testing.T) {
	src := "loop: addi x1, x1, 1\nbne x1, x2, loop\n"
	issues := Lint(src, nil)

	for _, i := range issues {
		if i.Code == "UNUSED_LABEL" {
			t.Fatalf("loop should not be reported unused: %+v", i)
		}
	}
}

func TestLintRegisterTypo(t *testing.T) {
	src := "add x1, x2, zeno\nadd x1, x2, x3\n"
	issues := Lint(src, nil)

	found := false
	for _, i := range issues {
		if i.Code == "REGISTER_TYPO" && i.Line == 1 {
			found = true
			if !contains(i.Message, "zero") {
				t.Errorf("message %q should suggest zero", i.Message)
			}
		}
	}
	if !found {
		t.Fatalf("expected REGISTER_TYPO at line 1, got %+v", issues)
	}
}

func TestLintRegisterTypoIgnoresImmediates(t *testing.T) {
	src := "addi x1, x2, 1\n"
	issues := Lint(src, nil)

	for _, i := range issues {
		if i.Code == "REGISTER_TYPO" {
			t.Fatalf("immediate operand should not be flagged: %+v", i)
		}
	}
}

func TestLintRegisterTypoDisabled(t *testing.T) {
	src := "add x1, x2, zeno\n"
	opts := DefaultLintOptions()
	opts.WarnRegisterTypos = false
	issues := Lint(src, opts)

	for _, i := range issues {
		if i.Code == "REGISTER_TYPO" {
			t.Fatalf("REGISTER_TYPO should be suppressed when disabled: %+v", i)
		}
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
