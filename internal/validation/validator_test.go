package validation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/othello-tools/openbook/internal/catalog"
	"github.com/othello-tools/openbook/internal/notation"
)

func validate(t *testing.T, text string) *ValidationResult {
	t.Helper()
	r, err := catalog.NewReader(strings.NewReader(text), "UTF-8")
	if err != nil {
		t.Fatal(err)
	}
	result, err := Validate(r, "(t3)")
	if err != nil {
		t.Fatal(err)
	}
	return result
}

type problem struct {
	Severity string
	Line     int
	Moves    string
}

func summarize(result *ValidationResult) []problem {
	var out []problem
	for _, e := range result.Errors {
		out = append(out, problem{e.Severity, e.Line, e.Moves})
	}
	return out
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	result := validate(t, strings.Join([]string{
		"d3c5e6f6 Tiger (t3)",
		"z9 Broken",
		"f5d6 (t3)",
		"d3c",
		"D3C5E6F6 Again",
	}, "\n"))

	want := []problem{
		{SeverityError, 2, "z9"},
		{SeverityWarning, 3, "f5d6"},
		{SeverityError, 4, "d3c"},
		{SeverityWarning, 5, "D3C5E6F6"},
	}
	if diff := cmp.Diff(want, summarize(result)); diff != "" {
		t.Errorf("problems mismatch (-want +got):\n%s", diff)
	}

	if result.IsValid() {
		t.Error("IsValid() = true with errors present")
	}
	if result.ErrorCount != 2 || result.WarningCount != 2 {
		t.Errorf("counts = %d errors, %d warnings; want 2, 2", result.ErrorCount, result.WarningCount)
	}
	if result.LinesValidated != 5 || result.TaggedLines != 2 {
		t.Errorf("lines = %d, tagged = %d; want 5, 2", result.LinesValidated, result.TaggedLines)
	}

	if !errors.Is(result.Errors[0], notation.ErrMalformedMove) {
		t.Errorf("first problem does not unwrap to ErrMalformedMove: %v", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1].Error(), "(t3) tag on an opening of 2 move(s)") {
		t.Errorf("unexpected warning text: %v", result.Errors[1])
	}
	if !strings.Contains(result.Errors[3].Error(), "duplicate of line 1") {
		t.Errorf("unexpected duplicate text: %v", result.Errors[3])
	}
}

func TestValidate_CleanCatalog(t *testing.T) {
	result := validate(t, "f5d6c3 (t3)\nf5f6\n")
	if !result.IsValid() || len(result.Errors) != 0 {
		t.Errorf("clean catalog reported problems:\n%s", FormatErrors(result.Errors))
	}
}

func TestFormatErrors(t *testing.T) {
	if got := FormatErrors(nil); got != "No validation errors.\n" {
		t.Errorf("FormatErrors(nil) = %q", got)
	}

	text := FormatErrors([]*ValidationError{{Severity: SeverityError, Line: 2, Moves: "z9", Message: "bad"}})
	if !strings.Contains(text, "1. [ERROR] line 2, moves 'z9': bad") {
		t.Errorf("unexpected format:\n%s", text)
	}
}

func TestWriteErrorLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.txt")
	problems := []*ValidationError{{Severity: SeverityWarning, Line: 1, Moves: "e6", Message: "short"}}
	if err := WriteErrorLog(problems, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[WARNING] line 1") {
		t.Errorf("log = %q", data)
	}
}
