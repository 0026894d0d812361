package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/weiihann/contactbench/harness"
)

func sampleResults() []harness.Result {
	return []harness.Result{
		{
			Structure: "Array", Size: 100,
			InsertMs: 0.01, SearchMs: 0.001, UpdateMs: 0.001, DeleteMs: 0.002,
		},
		{
			Structure: "HashMap", Size: 100,
			InsertMs: 0.02, SearchMs: 0.0001, UpdateMs: 0.0002, DeleteMs: 0.0001,
		},
		{
			Structure: "Array", Size: 10000,
			InsertMs: 1.0, SearchMs: 0.1, UpdateMs: 0.1, DeleteMs: 0.3,
		},
		{
			Structure: "HashMap", Size: 10000,
			InsertMs: 2.5, SearchMs: 0.0001, UpdateMs: 0.0002, DeleteMs: 0.0001,
			SearchSpread: 0.00002,
		},
	}
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, sampleResults()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"| Size | Array | HashMap |",
		"| 100 | 0.010 | 0.020 |",
		"| 10000 | 1.000 | 2.500 |",
		"| 10000 | 0.100000 | 0.000100 |",
		"### Best at 10000 contacts",
		"| Insert | Array | 1.000ms |",
		"| Search | HashMap | 0.000100ms |",
		"| Delete | HashMap | 0.000100ms |",
		"0.000100ms ±0.000020ms",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n%s", want, output)
		}
	}
}

func TestGenerateSizesAscending(t *testing.T) {
	results := sampleResults()
	// reverse so the largest size is seen first
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}

	var buf bytes.Buffer
	if err := Generate(&buf, results); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	output := buf.String()
	if strings.Index(output, "| 100 |") > strings.Index(output, "| 10000 |") {
		t.Error("expected size 100 row before size 10000 row")
	}
	if !strings.Contains(output, "| Size | HashMap | Array |") {
		t.Error("expected structures in first-seen order")
	}
}

func TestGenerateMissingCell(t *testing.T) {
	results := []harness.Result{
		{Structure: "Array", Size: 10, InsertMs: 1},
		{Structure: "BST", Size: 20, InsertMs: 2},
	}

	var buf bytes.Buffer
	if err := Generate(&buf, results); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(buf.String(), "| 10 | 1.000 | - |") {
		t.Errorf("expected placeholder for missing cell\n%s", buf.String())
	}
}

func TestGenerateEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(&buf, nil)
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("err = %v, want ErrNoResults", err)
	}
}

func TestGenerateJSON(t *testing.T) {
	results := []harness.Result{
		{RunID: "abc", Structure: "BST", Size: 100, SearchMs: 0.5},
	}

	var buf bytes.Buffer
	if err := GenerateJSON(&buf, results); err != nil {
		t.Fatalf("GenerateJSON failed: %v", err)
	}

	var parsed []harness.Result
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(parsed) != 1 {
		t.Fatalf("expected 1 result, got %d", len(parsed))
	}
	if parsed[0] != results[0] {
		t.Errorf("parsed = %+v, want %+v", parsed[0], results[0])
	}
	if !strings.Contains(buf.String(), `"search_time_ms": 0.5`) {
		t.Errorf("expected snake_case keys\n%s", buf.String())
	}
}

func TestFormatMs(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0.000000ms"},
		{0.000123, "0.000123ms"},
		{1, "1.000ms"},
		{999.5, "999.500ms"},
		{1000, "1.00s"},
		{1500, "1.50s"},
	}

	for _, tt := range tests {
		got := formatMs(tt.input)
		if got != tt.want {
			t.Errorf("formatMs(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
