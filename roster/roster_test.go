package roster

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sheet(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		for j, v := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cellRef, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestParseSkipsHeaderRow(t *testing.T) {
	buf := sheet(t, [][]any{
		{"person_id", "scale", "row", "column", "name", "surname"},
		{7, 2, 1, 1, "Ana", "García"},
		{9, 1, 2, 1, "Luis", "Pérez"},
	})
	people, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(people) != 2 {
		t.Fatalf("got %d people, want 2", len(people))
	}
	p := people[0]
	if p.PersonID != 7 || p.Scale != 2 || p.Row != 1 || p.Column != 1 || p.Name != "Ana" || p.Surname != "García" {
		t.Fatalf("first person = %+v", p)
	}
}

func TestParseWithoutHeader(t *testing.T) {
	buf := sheet(t, [][]any{
		{3, 1, 1, 2, "Marta", ""},
	})
	people, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(people) != 1 || people[0].PersonID != 3 || people[0].Surname != "" {
		t.Fatalf("people = %+v", people)
	}
}

func TestParseRejectsBadNumbers(t *testing.T) {
	buf := sheet(t, [][]any{
		{"x", 1, 1, 1, "Ana", "García"},
	})
	if _, err := Parse(buf); err == nil || !strings.Contains(err.Error(), "ROSTER_ROW_1") {
		t.Fatalf("err = %v, want ROSTER_ROW_1", err)
	}
}

func TestParseRejectsMissingName(t *testing.T) {
	buf := sheet(t, [][]any{
		{1, 1, 1, 1, "", "García"},
	})
	if _, err := Parse(buf); err == nil || !strings.Contains(err.Error(), "name") {
		t.Fatalf("err = %v, want name error", err)
	}
}

func TestParseEmptyWorkbook(t *testing.T) {
	buf := sheet(t, nil)
	if _, err := Parse(buf); err != ErrEmpty {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}
