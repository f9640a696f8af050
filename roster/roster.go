// Package roster parses the spreadsheet uploaded when a formation is
// created into placement records.
package roster

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/TomiStyle/formaciones-api/models"
)

// Expected columns of the first sheet, in order:
// person_id, scale, row, column, name, surname. A header row is
// detected by a non-numeric first cell and skipped.

var ErrEmpty = errors.New("ROSTER_EMPTY")

func Parse(r io.Reader) ([]models.Person, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("ROSTER_UNREADABLE: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("ROSTER_UNREADABLE: %w", err)
	}

	people := make([]models.Person, 0, len(rows))
	for i, cells := range rows {
		if blank(cells) {
			continue
		}
		if i == 0 && header(cells) {
			continue
		}
		p, err := parseRow(cells)
		if err != nil {
			return nil, fmt.Errorf("ROSTER_ROW_%d: %w", i+1, err)
		}
		people = append(people, p)
	}
	if len(people) == 0 {
		return nil, ErrEmpty
	}
	return people, nil
}

func parseRow(cells []string) (models.Person, error) {
	personID, err := intCell(cells, 0)
	if err != nil {
		return models.Person{}, fmt.Errorf("person_id: %w", err)
	}
	scale, err := intCell(cells, 1)
	if err != nil {
		return models.Person{}, fmt.Errorf("scale: %w", err)
	}
	row, err := intCell(cells, 2)
	if err != nil || row < 0 {
		return models.Person{}, fmt.Errorf("row: invalid value")
	}
	col, err := intCell(cells, 3)
	if err != nil || col < 0 {
		return models.Person{}, fmt.Errorf("column: invalid value")
	}
	name := strings.TrimSpace(cell(cells, 4))
	if name == "" {
		return models.Person{}, fmt.Errorf("name: required")
	}
	return models.Person{
		PersonID: personID,
		Scale:    scale,
		Row:      row,
		Column:   col,
		Name:     name,
		Surname:  strings.TrimSpace(cell(cells, 5)),
	}, nil
}

func cell(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return cells[i]
}

func intCell(cells []string, i int) (int, error) {
	s := strings.TrimSpace(cell(cells, i))
	if s == "" {
		return 0, fmt.Errorf("required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	return n, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func header(cells []string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(cell(cells, 0)))
	return err != nil
}
