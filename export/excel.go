package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/TomiStyle/formaciones-api/grid"
)

var (
	reSheetName = regexp.MustCompile(`[:\\/?*\[\]]`)
	reFileName  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
)

// XLSX writes one sheet per group: a merged bold title row, then a
// name column and a surname column from row 2 down.
func XLSX(w io.Writer, axisLabel string, groups []grid.Group) error {
	f := excelize.NewFile()
	defer f.Close()

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 24},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16},
	})
	if err != nil {
		return err
	}

	for i, g := range groups {
		title := fmt.Sprintf("%s %d", axisLabel, g.Index)
		sheet := SafeSheetName(title)
		if i == 0 {
			// reuse the default sheet so the workbook has no leftovers
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}

		f.SetColWidth(sheet, "A", "A", 32)
		f.SetColWidth(sheet, "B", "B", 53)
		f.MergeCell(sheet, "A1", "B1")
		f.SetCellValue(sheet, "A1", title)
		f.SetCellStyle(sheet, "A1", "B1", titleStyle)
		f.SetRowHeight(sheet, 1, 35)

		for j, p := range g.People {
			row := j + 2
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.Name)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Surname)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), dataStyle)
		}
	}
	return f.Write(w)
}

// SafeSheetName strips characters Excel forbids in sheet names and
// enforces the 31-character limit.
func SafeSheetName(name string) string {
	s := strings.TrimSpace(reSheetName.ReplaceAllString(name, " "))
	if len(s) > 31 {
		s = s[:31]
	}
	if s == "" {
		return "Sheet"
	}
	return s
}

// SafeFileName strips characters that break download filenames.
func SafeFileName(name string) string {
	s := strings.TrimSpace(reFileName.ReplaceAllString(name, "_"))
	if s == "" {
		return "formation"
	}
	return s
}
