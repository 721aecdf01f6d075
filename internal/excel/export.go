package excel

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/agilec-tools/touchpoint/internal/candidate"
)

// SheetName is the sheet exports are written to.
const SheetName = "Candidates"

// exportDateLayout is the canonical on-sheet date format. It is also
// the first entry in the import layout list, which is what makes
// export/import round-trip at day granularity.
const exportDateLayout = "2006-01-02"

// exportHeaders is the canonical column order. Import recognizes every
// one of these names, so a sheet written here reads back losslessly.
var exportHeaders = []string{
	"ID", "Name", "Email", "Phone", "CAMS #", "EAP #", "Stream",
	"Needs Assessment", "Assessment Notes", "License", "Location",
	"Last Touch", "Next Contact", "Status", "Category", "Color",
	"Notes", "Archived", "Employed",
	"First Pay Stub", "Second Pay Stub", "Third Pay Stub",
	"Fourth Pay Stub", "Fifth Pay Stub",
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportDateLayout)
}

func formatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// WriteCandidates builds an xlsx workbook with the full list on a
// single Candidates sheet. The caller owns closing the returned file.
func WriteCandidates(list []candidate.Candidate) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("excel: name sheet: %w", err)
	}

	if err := setRow(f, 1, toAnySlice(exportHeaders)); err != nil {
		return nil, err
	}
	for i, c := range list {
		if err := setRow(f, i+2, candidateRow(c)); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Write renders the list as xlsx straight to w.
func Write(w io.Writer, list []candidate.Candidate) error {
	f, err := WriteCandidates(list)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("excel: write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("excel: row %d: %w", row, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("excel: row %d: %w", row, err)
	}
	return nil
}

func candidateRow(c candidate.Candidate) []any {
	stubs := c.PayStubs.Dates()
	return []any{
		c.ID, c.Name, c.Email, c.Phone, c.CAMSNumber, c.EAPNumber,
		c.Stream,
		formatBool(c.NeedsAssessment), c.AssessmentNotes,
		c.License, c.Location,
		formatDate(c.LastTouchDate), formatDate(c.NextContact),
		c.Status, c.Category, c.Color, c.Notes,
		formatBool(c.Archived), formatBool(c.IsEmployed),
		formatDate(stubs[0]), formatDate(stubs[1]), formatDate(stubs[2]),
		formatDate(stubs[3]), formatDate(stubs[4]),
	}
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
