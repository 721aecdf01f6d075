package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/agilec-tools/touchpoint/internal/candidate"
)

func mustWorkbook(t *testing.T, header []string, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestReadCandidates_AliasHeaders(t *testing.T) {
	r := mustWorkbook(t,
		[]string{"Full Name", "Phone Number", "CAMS", "Next Contact", "Colour", "Got Job", "Referral Source"},
		[][]any{
			{"Ada Lovelace", "905-555-0101", "C-100", "2026-04-01", "purple", "Yes", "walk-in"},
		},
	)

	list, err := ReadCandidates(r)
	if err != nil {
		t.Fatalf("ReadCandidates() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d candidates, want 1", len(list))
	}

	c := list[0]
	if c.Name != "Ada Lovelace" {
		t.Errorf("Name = %q", c.Name)
	}
	if c.Phone != "905-555-0101" {
		t.Errorf("Phone = %q", c.Phone)
	}
	if c.CAMSNumber != "C-100" {
		t.Errorf("CAMSNumber = %q", c.CAMSNumber)
	}
	if c.NextContact == nil || c.NextContact.Format("2006-01-02") != "2026-04-01" {
		t.Errorf("NextContact = %v", c.NextContact)
	}
	if c.Category != candidate.CategoryGotJob || c.Color != "purple" {
		t.Errorf("Category/Color = %q/%q", c.Category, c.Color)
	}
	if !c.IsEmployed {
		t.Error("IsEmployed = false, want true")
	}
	if c.ID == "" {
		t.Error("ID not generated")
	}
	if c.Status != candidate.StatusPending {
		t.Errorf("Status = %q, want default Pending", c.Status)
	}
	if c.Extra["Referral Source"] != "walk-in" {
		t.Errorf("Extra = %v, want Referral Source preserved", c.Extra)
	}
}

func TestReadCandidates_SerialDates(t *testing.T) {
	r := mustWorkbook(t,
		[]string{"Name", "Last Touch"},
		[][]any{{"Grace Hopper", 45000}},
	)

	list, err := ReadCandidates(r)
	if err != nil {
		t.Fatalf("ReadCandidates() error = %v", err)
	}
	c := list[0]
	if c.LastTouchDate == nil {
		t.Fatal("LastTouchDate = nil, want serial date parsed")
	}
	if got := c.LastTouchDate.Format("2006-01-02"); got != "2023-03-15" {
		t.Errorf("LastTouchDate = %s, want 2023-03-15", got)
	}
}

func TestReadCandidates_LegacyPayStubColumns(t *testing.T) {
	r := mustWorkbook(t,
		[]string{"Name", "Employed", "M", "N", "O"},
		[][]any{{"Grace Hopper", "yes", "2026-01-02", "2026-02-02", "bad date"}},
	)

	list, err := ReadCandidates(r)
	if err != nil {
		t.Fatalf("ReadCandidates() error = %v", err)
	}
	stubs := list[0].PayStubs
	if stubs == nil {
		t.Fatal("PayStubs = nil")
	}
	if stubs.First == nil || stubs.First.Format("2006-01-02") != "2026-01-02" {
		t.Errorf("First = %v", stubs.First)
	}
	if stubs.Second == nil || stubs.Second.Format("2006-01-02") != "2026-02-02" {
		t.Errorf("Second = %v", stubs.Second)
	}
	if stubs.Third != nil {
		t.Errorf("Third = %v, want nil for unparseable cell", stubs.Third)
	}
}

func TestReadCandidates_LetterColumnsWithoutEmployedHeader(t *testing.T) {
	// The single-letter M..Q aliases only mean pay stubs on legacy
	// sheets that also carry an Employed column. On any other sheet a
	// bare letter header is an ad-hoc column and must survive in
	// Extra.
	r := mustWorkbook(t,
		[]string{"Name", "M"},
		[][]any{{"Ada Lovelace", "priority"}},
	)

	list, err := ReadCandidates(r)
	if err != nil {
		t.Fatalf("ReadCandidates() error = %v", err)
	}
	c := list[0]
	if c.PayStubs != nil {
		t.Errorf("PayStubs = %+v, want nil without an Employed column", c.PayStubs)
	}
	if c.Extra["M"] != "priority" {
		t.Errorf("Extra = %v, want M preserved", c.Extra)
	}
}

func TestReadCandidates_PayStubsIgnoredWhenNotEmployed(t *testing.T) {
	r := mustWorkbook(t,
		[]string{"Name", "Employed", "First Pay Stub"},
		[][]any{{"Grace Hopper", "no", "2026-01-02"}},
	)

	list, err := ReadCandidates(r)
	if err != nil {
		t.Fatalf("ReadCandidates() error = %v", err)
	}
	if list[0].PayStubs != nil {
		t.Errorf("PayStubs = %+v, want nil when not employed", list[0].PayStubs)
	}
}

func TestReadCandidates_MalformedFile(t *testing.T) {
	_, err := ReadCandidates(bytes.NewReader([]byte("this is not a workbook")))
	if err == nil {
		t.Fatal("ReadCandidates() error = nil, want error for malformed file")
	}
}

func TestRoundTrip(t *testing.T) {
	touch := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	stub := time.Date(2026, time.February, 13, 0, 0, 0, 0, time.UTC)

	in := []candidate.Candidate{
		{
			ID: "a-1", Name: "Ada Lovelace", Email: "ada@example.com",
			Phone: "905-555-0101", CAMSNumber: "C-100", EAPNumber: "E-7",
			Stream: "B", NeedsAssessment: true, AssessmentNotes: "booked",
			License: "G2", Location: "Ajax",
			LastTouchDate: &touch, NextContact: &next,
			Status: candidate.StatusContacted,
			Category: candidate.CategoryActive, Color: "green",
			Notes: "prefers mornings",
		},
		{
			ID: "a-2", Name: "Grace Hopper", Email: "grace@example.com",
			Status: candidate.StatusConverted, Archived: true,
			IsEmployed: true,
			PayStubs:   &candidate.PayStubs{First: &stub},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, in); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out, err := ReadCandidates(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadCandidates() error = %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d candidates, want %d", len(out), len(in))
	}

	a := out[0]
	if a.ID != "a-1" || a.Name != "Ada Lovelace" || a.Email != "ada@example.com" {
		t.Errorf("identity fields lost: %+v", a)
	}
	if a.CAMSNumber != "C-100" || a.EAPNumber != "E-7" || a.Stream != "B" {
		t.Errorf("detail fields lost: %+v", a)
	}
	if !a.NeedsAssessment || a.AssessmentNotes != "booked" {
		t.Errorf("assessment fields lost: %+v", a)
	}
	if a.LastTouchDate == nil || a.LastTouchDate.Format("2006-01-02") != "2026-03-01" {
		t.Errorf("LastTouchDate = %v", a.LastTouchDate)
	}
	if a.NextContact == nil || a.NextContact.Format("2006-01-02") != "2026-03-20" {
		t.Errorf("NextContact = %v", a.NextContact)
	}
	if a.Status != candidate.StatusContacted {
		t.Errorf("Status = %q", a.Status)
	}
	if a.Category != candidate.CategoryActive || a.Color != "green" {
		t.Errorf("Category/Color = %q/%q", a.Category, a.Color)
	}

	g := out[1]
	if !g.Archived || !g.IsEmployed {
		t.Errorf("flags lost: archived=%v employed=%v", g.Archived, g.IsEmployed)
	}
	if g.PayStubs == nil || g.PayStubs.First == nil ||
		g.PayStubs.First.Format("2006-01-02") != "2026-02-13" {
		t.Errorf("PayStubs lost: %+v", g.PayStubs)
	}
	if g.LastTouchDate != nil || g.NextContact != nil {
		t.Errorf("empty dates came back non-nil: %+v", g)
	}
}

func TestWriteCandidates_SheetLayout(t *testing.T) {
	f, err := WriteCandidates([]candidate.Candidate{{ID: "a-1", Name: "Ada"}})
	if err != nil {
		t.Fatalf("WriteCandidates() error = %v", err)
	}
	defer f.Close()

	if got := f.GetSheetName(0); got != SheetName {
		t.Errorf("sheet name = %q, want %q", got, SheetName)
	}

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][1] != "Name" {
		t.Errorf("header = %v", rows[0][:2])
	}
	if len(rows[0]) != len(exportHeaders) {
		t.Errorf("header width = %d, want %d", len(rows[0]), len(exportHeaders))
	}
}
