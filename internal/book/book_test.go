package book

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/othello-tools/openbook/internal/types"
	"github.com/xuri/excelize/v2"
)

var testSequences = []types.Sequence{
	{Line: 1, Moves: "d3c5e6f6", Indices: []int{19, 34, 44, 45}},
	{Line: 1, Moves: "d3c5e6f6", Reversed: true, Indices: []int{44, 34, 19, 45}},
	{Line: 2, Moves: "d3c5f6", Indices: []int{19, 34, 45}},
}

func writeAll(t *testing.T, format Format, path string) {
	t.Helper()
	w, err := NewWriter(context.Background(), format, path, Options{SheetName: "Book"})
	if err != nil {
		t.Fatalf("NewWriter(%s) error: %v", format, err)
	}
	for _, seq := range testSequences {
		if err := w.Write(seq); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"csv", "ENGINE", " xlsx ", "sqlite"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", name, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openings.csv")
	writeAll(t, FormatCSV, path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "19,34,44,45\n44,34,19,45\n19,34,45\n"
	if string(data) != want {
		t.Errorf("csv book = %q, want %q", data, want)
	}
}

func TestReadCSV(t *testing.T) {
	got, err := ReadCSV(strings.NewReader("19,34,44,45\n28\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := [][]int{{19, 34, 44, 45}, {28}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"19,x\n", "64\n", "-1\n"} {
		if _, err := ReadCSV(strings.NewReader(bad)); err == nil {
			t.Errorf("ReadCSV(%q) should fail", bad)
		}
	}
}

func TestBook_FirstSequenceWins(t *testing.T) {
	b := NewBook()
	b.Add([]int{19, 34, 44})
	b.Add([]int{19, 34, 45})
	b.Add([]int{37, 43})

	tests := []struct {
		history []int
		want    int
		ok      bool
	}{
		{nil, 19, true},
		{[]int{19}, 34, true},
		{[]int{19, 34}, 44, true},
		{[]int{37}, 43, true},
		{[]int{19, 34, 44}, 0, false},
		{[]int{0}, 0, false},
	}
	for _, tt := range tests {
		got, ok := b.Next(tt.history)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Next(%v) = %d, %v; want %d, %v", tt.history, got, ok, tt.want, tt.ok)
		}
	}

	// "", "19,", "19,34," and "37,".
	if b.Len() != 4 {
		t.Errorf("Len() = %d, want 4", b.Len())
	}
}

func TestLoadCSV(t *testing.T) {
	b, err := LoadCSV(strings.NewReader("19,34,44,45\n44,34,19,45\n"))
	if err != nil {
		t.Fatal(err)
	}
	if next, ok := b.Next([]int{44, 34}); !ok || next != 19 {
		t.Errorf("Next(44,34) = %d, %v; want 19, true", next, ok)
	}
}

func TestEngineWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openings.txt")
	writeAll(t, FormatEngine, path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"", "19",
		"19,", "34",
		"19,34,", "44",
		"19,34,44,", "45",
		"44,", "34",
		"44,34,", "19",
		"44,34,19,", "45",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("engine book mismatch (-want +got):\n%s", diff)
	}
}

func TestXLSXWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openings.xlsx")
	writeAll(t, FormatXLSX, path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Book")
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"Line", "Moves", "Reversed", "Indices"},
		{"1", "d3c5e6f6", "false", "19", "34", "44", "45"},
		{"1", "d3c5e6f6", "true", "44", "34", "19", "45"},
		{"2", "d3c5f6", "false", "19", "34", "45"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openings.db")
	writeAll(t, FormatSQLite, path)

	rows, err := ReadSQLite(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	want := []SequenceRow{
		{ID: 1, Line: 1, Moves: "d3c5e6f6", Indices: "19,34,44,45"},
		{ID: 2, Line: 1, Moves: "d3c5e6f6", Reversed: true, Indices: "44,34,19,45"},
		{ID: 3, Line: 2, Moves: "d3c5f6", Indices: "19,34,45"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EveryFormat(t *testing.T) {
	tests := []struct {
		format Format
		file   string
	}{
		{FormatCSV, "openings.csv"},
		{FormatEngine, "openings.txt"},
		{FormatXLSX, "openings.xlsx"},
		{FormatSQLite, "openings.db"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeAll(t, tt.format, path)

			if got := FormatFromPath(path); got != tt.format {
				t.Errorf("FormatFromPath(%s) = %s", tt.file, got)
			}

			b, err := Load(context.Background(), tt.format, path)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if b.Len() != 7 {
				t.Errorf("Len() = %d, want 7", b.Len())
			}
			for _, probe := range []struct {
				history []int
				want    int
			}{
				{nil, 19},
				{[]int{19, 34}, 44},
				{[]int{44, 34}, 19},
			} {
				if next, ok := b.Next(probe.history); !ok || next != probe.want {
					t.Errorf("Next(%v) = %d, %v; want %d", probe.history, next, ok, probe.want)
				}
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatEngine, FormatXLSX, FormatSQLite} {
		path := filepath.Join(t.TempDir(), "missing")
		if _, err := Load(context.Background(), format, path); err == nil {
			t.Errorf("Load(%s) of a missing file succeeded", format)
		}
	}
}
