package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/weiihann/contactbench/harness"
)

// ErrBadHeader is returned by ReadCSV when the header row does not match
// CSVHeader.
var ErrBadHeader = errors.New("unexpected CSV header")

// CSVHeader is the column layout of the results file.
var CSVHeader = []string{
	"Structure", "Size",
	"Insert_Time_ms", "Insert_Spread",
	"Search_Time_ms", "Search_Spread",
	"Update_Time_ms", "Update_Spread",
	"Delete_Time_ms", "Delete_Spread",
}

// WriteCSV writes results in the CSVHeader layout.
func WriteCSV(w io.Writer, results []harness.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range results {
		row := []string{
			r.Structure,
			strconv.Itoa(r.Size),
			formatFloat(r.InsertMs), formatFloat(r.InsertSpread),
			formatFloat(r.SearchMs), formatFloat(r.SearchSpread),
			formatFloat(r.UpdateMs), formatFloat(r.UpdateSpread),
			formatFloat(r.DeleteMs), formatFloat(r.DeleteSpread),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s/%d: %w", r.Structure, r.Size, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// ReadCSV parses a results file written by WriteCSV.
func ReadCSV(r io.Reader) ([]harness.Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if !slices.Equal(header, CSVHeader) {
		return nil, fmt.Errorf("%w: %q", ErrBadHeader, header)
	}

	var results []harness.Result

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		res, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("parse line %d: %w", line, err)
		}

		results = append(results, res)
	}

	return results, nil
}

func parseRow(row []string) (harness.Result, error) {
	res := harness.Result{Structure: row[0]}

	size, err := strconv.Atoi(row[1])
	if err != nil {
		return res, fmt.Errorf("size: %w", err)
	}

	res.Size = size

	fields := []*float64{
		&res.InsertMs, &res.InsertSpread,
		&res.SearchMs, &res.SearchSpread,
		&res.UpdateMs, &res.UpdateSpread,
		&res.DeleteMs, &res.DeleteSpread,
	}

	for i, dst := range fields {
		v, err := strconv.ParseFloat(row[i+2], 64)
		if err != nil {
			return res, fmt.Errorf("%s: %w", CSVHeader[i+2], err)
		}

		*dst = v
	}

	return res, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
