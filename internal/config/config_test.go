package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	want := &Config{
		InputFile:  "openings.dat",
		OutputFile: "openings.csv",
		Format:     "csv",
		Encoding:   "UTF-8",
		ReverseTag: "(t3)",
		SheetName:  "Openings",
		LogLevel:   "info",
	}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingOptionalFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"), false)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
input_file: book/openings.txt
output_file: book/openings.xlsx
format: XLSX
encoding: ISO-8859-1
reverse_tag: "[t3]"
log_level: debug
`)

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := &Config{
		InputFile:  "book/openings.txt",
		OutputFile: "book/openings.xlsx",
		Format:     "xlsx",
		Encoding:   "ISO-8859-1",
		ReverseTag: "[t3]",
		SheetName:  "Openings",
		LogLevel:   "debug",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "format: [csv", "failed to parse"},
		{"unknown format", "format: json", "unknown format"},
		{"unknown level", "log_level: loud", "unknown log level"},
		{"tag with space", `reverse_tag: "t 3"`, "single token"},
		{"same files", "input_file: a.txt\noutput_file: a.txt", "must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), true)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}
