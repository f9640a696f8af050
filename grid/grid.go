package grid

import (
	"errors"
	"sort"

	"github.com/TomiStyle/formaciones-api/models"
)

// Group is one column or row of a formation, ready to render or
// export in order.
type Group struct {
	Index  int             `json:"index"`
	People []models.Person `json:"people"`
}

var (
	ErrNoSelection = errors.New("no target cell selected")
	ErrEmptyCell   = errors.New("target cell is empty")
	ErrSamePerson  = errors.New("target cell holds the same person")
)

// ByColumn groups people by their column. Every column 1..numColumns
// gets a group even when empty; out-of-range columns (the 0 sentinel
// for removed people) form extra groups appended after the real ones.
// Members are sorted ascending by row.
func ByColumn(people []models.Person, numColumns int) []Group {
	buckets := make(map[int][]models.Person, numColumns)
	for i := 1; i <= numColumns; i++ {
		buckets[i] = []models.Person{}
	}
	for _, p := range people {
		buckets[p.Column] = append(buckets[p.Column], p)
	}
	return collect(buckets, func(a, b models.Person) bool { return a.Row < b.Row })
}

// ByRow groups people by their row, keeping only rows that hold
// someone; the maximum row comes from the data itself. Members are
// sorted ascending by column.
func ByRow(people []models.Person) []Group {
	buckets := map[int][]models.Person{}
	for _, p := range people {
		buckets[p.Row] = append(buckets[p.Row], p)
	}
	return collect(buckets, func(a, b models.Person) bool { return a.Column < b.Column })
}

func collect(buckets map[int][]models.Person, less func(a, b models.Person) bool) []Group {
	idx := make([]int, 0, len(buckets))
	for i := range buckets {
		idx = append(idx, i)
	}
	sort.Slice(idx, func(a, b int) bool { return indexBefore(idx[a], idx[b]) })

	groups := make([]Group, 0, len(idx))
	for _, i := range idx {
		members := buckets[i]
		sort.SliceStable(members, func(a, b int) bool { return less(members[a], members[b]) })
		groups = append(groups, Group{Index: i, People: members})
	}
	return groups
}

// indexBefore orders group indices ascending with the 0 sentinel
// ("unassigned") after every real index.
func indexBefore(a, b int) bool {
	if a == 0 {
		return false
	}
	if b == 0 {
		return true
	}
	return a < b
}

// OccupantAt returns the person currently at (row, col), or nil.
func OccupantAt(people []models.Person, row, col int) *models.Person {
	for i := range people {
		if people[i].Row == row && people[i].Column == col {
			return &people[i]
		}
	}
	return nil
}

// ResolveSwapTarget applies the swap preconditions: a cell must be
// chosen, occupied, and occupied by someone other than from.
func ResolveSwapTarget(from models.Person, people []models.Person, row, col int) (*models.Person, error) {
	if row <= 0 || col <= 0 {
		return nil, ErrNoSelection
	}
	target := OccupantAt(people, row, col)
	if target == nil {
		return nil, ErrEmptyCell
	}
	if target.ID == from.ID {
		return nil, ErrSamePerson
	}
	return target, nil
}

// CanSwap reports whether a swap from the given person into (row, col)
// would be accepted.
func CanSwap(from models.Person, people []models.Person, row, col int) bool {
	_, err := ResolveSwapTarget(from, people, row, col)
	return err == nil
}

// FirstFreeCell scans rows ascending, columns 1..numColumns, and
// returns the first unoccupied position. A fresh row past the current
// maximum guarantees there is always one.
func FirstFreeCell(people []models.Person, numColumns int) (int, int) {
	maxRow := 0
	for _, p := range people {
		if p.Row > maxRow {
			maxRow = p.Row
		}
	}
	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= numColumns; col++ {
			if OccupantAt(people, row, col) == nil {
				return row, col
			}
		}
	}
	return maxRow + 1, 1
}
