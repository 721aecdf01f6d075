// Package excel reads and writes the candidate list as xlsx workbooks.
// Import is tolerant: header aliases from older sheet revisions are
// accepted, dates and booleans are coerced with the TryParse helpers,
// and unknown columns are carried along rather than dropped. Export
// always writes the canonical layout.
package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/agilec-tools/touchpoint/internal/candidate"
)

// ErrEmptyWorkbook is returned when the first sheet has no rows at all.
var ErrEmptyWorkbook = errors.New("excel: workbook has no rows")

// Header aliases, lowercased, in precedence order. The first column
// present in the sheet wins. The single-letter pay stub aliases come
// from the legacy sheet layout where stubs lived in columns M..Q.
var (
	aliasID         = []string{"id"}
	aliasName       = []string{"name", "full name"}
	aliasEmail      = []string{"email"}
	aliasPhone      = []string{"phone", "phone number"}
	aliasCAMS       = []string{"cams #", "cams"}
	aliasEAP        = []string{"eap #", "eap"}
	aliasStream     = []string{"stream"}
	aliasNeedsAsmt  = []string{"needs assessment"}
	aliasAsmtNotes  = []string{"assessment notes"}
	aliasLicense    = []string{"license"}
	aliasLocation   = []string{"location"}
	aliasLastTouch  = []string{"last touch", "last touch date"}
	aliasNext       = []string{"next contact"}
	aliasStatus     = []string{"status"}
	aliasCategory   = []string{"category"}
	aliasColor      = []string{"color", "colour"}
	aliasNotes      = []string{"notes"}
	aliasArchived   = []string{"archived"}
	aliasEmployed   = []string{"employed", "got job"}
	aliasFirstStub  = []string{"first pay stub", "m"}
	aliasSecondStub = []string{"second pay stub", "n"}
	aliasThirdStub  = []string{"third pay stub", "o"}
	aliasFourthStub = []string{"fourth pay stub", "p"}
	aliasFifthStub  = []string{"fifth pay stub", "q"}
)

// legacyStubHeaders are the single-letter pay-stub aliases, recognized
// only alongside an Employed column.
var legacyStubHeaders = map[string]bool{
	"m": true, "n": true, "o": true, "p": true, "q": true,
}

// knownHeaders is the union of every alias above. Columns outside it
// are preserved per row in Candidate.Extra.
var knownHeaders = func() map[string]bool {
	m := make(map[string]bool)
	for _, aliases := range [][]string{
		aliasID, aliasName, aliasEmail, aliasPhone, aliasCAMS, aliasEAP,
		aliasStream, aliasNeedsAsmt, aliasAsmtNotes, aliasLicense,
		aliasLocation, aliasLastTouch, aliasNext, aliasStatus,
		aliasCategory, aliasColor, aliasNotes, aliasArchived,
		aliasEmployed, aliasFirstStub, aliasSecondStub, aliasThirdStub,
		aliasFourthStub, aliasFifthStub,
	} {
		for _, a := range aliases {
			m[a] = true
		}
	}
	return m
}()

// ReadCandidates parses the first sheet of an xlsx workbook into a
// candidate list. Row 1 is the header; every following row becomes one
// record, in sheet order. A malformed workbook returns a single error
// and no partial list, so a failed import never disturbs existing
// state.
func ReadCandidates(r io.Reader) ([]candidate.Candidate, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("excel: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	header := rows[0]
	idx := makeHeaderIndex(header)

	out := make([]candidate.Candidate, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, rowToCandidate(idx, header, row))
	}
	return out, nil
}

func rowToCandidate(idx headerIndex, header, row []string) candidate.Candidate {
	c := candidate.Candidate{
		ID:              idx.lookup(row, aliasID...),
		Name:            idx.lookup(row, aliasName...),
		Email:           idx.lookup(row, aliasEmail...),
		Phone:           idx.lookup(row, aliasPhone...),
		CAMSNumber:      idx.lookup(row, aliasCAMS...),
		EAPNumber:       idx.lookup(row, aliasEAP...),
		Stream:          idx.lookup(row, aliasStream...),
		AssessmentNotes: idx.lookup(row, aliasAsmtNotes...),
		License:         idx.lookup(row, aliasLicense...),
		Location:        idx.lookup(row, aliasLocation...),
		Status:          idx.lookup(row, aliasStatus...),
		Notes:           idx.lookup(row, aliasNotes...),
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = candidate.StatusPending
	}

	needs, _ := TryParseBool(idx.lookup(row, aliasNeedsAsmt...))
	c.NeedsAssessment = needs
	archived, _ := TryParseBool(idx.lookup(row, aliasArchived...))
	c.Archived = archived
	employed, _ := TryParseBool(idx.lookup(row, aliasEmployed...))
	c.IsEmployed = employed

	if t, ok := TryParseDate(idx.lookup(row, aliasLastTouch...)); ok {
		c.LastTouchDate = &t
	}
	if t, ok := TryParseDate(idx.lookup(row, aliasNext...)); ok {
		c.NextContact = &t
	}

	// Color wins over category on load; legacy sheets carried only a
	// Color column.
	rawCategory := idx.lookup(row, aliasCategory...)
	rawColor := idx.lookup(row, aliasColor...)
	c.Category = candidate.ResolveCategory(rawCategory, rawColor)
	if color, ok := candidate.ColorOf(c.Category); ok {
		c.Color = color
	}

	// Pay stubs are only meaningful for employed candidates.
	if c.IsEmployed {
		stubs := &candidate.PayStubs{}
		got := false
		if t, ok := TryParseDate(idx.lookup(row, aliasFirstStub...)); ok {
			stubs.First = &t
			got = true
		}
		if t, ok := TryParseDate(idx.lookup(row, aliasSecondStub...)); ok {
			stubs.Second = &t
			got = true
		}
		if t, ok := TryParseDate(idx.lookup(row, aliasThirdStub...)); ok {
			stubs.Third = &t
			got = true
		}
		if t, ok := TryParseDate(idx.lookup(row, aliasFourthStub...)); ok {
			stubs.Fourth = &t
			got = true
		}
		if t, ok := TryParseDate(idx.lookup(row, aliasFifthStub...)); ok {
			stubs.Fifth = &t
			got = true
		}
		if got {
			c.PayStubs = stubs
		}
	}

	// Columns outside the declared schema travel with the record so
	// nothing imported is lost, and they participate in search. The
	// legacy M..Q letter headers only mean pay stubs on sheets that
	// also carry an Employed column; elsewhere they are ad-hoc columns.
	hasEmployed := idx.has(aliasEmployed...)
	for i, h := range header {
		key := cleanCell(h)
		lower := strings.ToLower(key)
		known := knownHeaders[lower]
		if known && legacyStubHeaders[lower] && !hasEmployed {
			known = false
		}
		if key == "" || known {
			continue
		}
		v := cellValue(row, i)
		if v == "" {
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]string)
		}
		c.Extra[key] = v
	}

	return c
}
