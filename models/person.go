package models

import "time"

// Person is a placement record inside one formation. Row/Column (0, 0)
// is the sentinel for "removed from the formation"; OldRow/OldColumn
// keep the position before the last move so a removal can be undone.
type Person struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FormationID uint      `json:"formation_id" gorm:"index;not null"`
	PersonID    int       `json:"person_id" gorm:"not null"` // stable id from the uploaded roster
	Scale       int       `json:"scale"`
	Row         int       `json:"row" gorm:"column:row_num;not null"` // "row" is reserved in postgres
	Column      int       `json:"column" gorm:"column:col_num;not null"`
	Name        string    `json:"name" gorm:"size:60;not null"`
	Surname     string    `json:"surname" gorm:"size:120"`
	OldRow      int       `json:"old_row"`
	OldColumn   int       `json:"old_column" gorm:"column:old_col_num"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Person) Removed() bool {
	return p.Row == 0 && p.Column == 0
}

func (p *Person) FullName() string {
	if p.Surname == "" {
		return p.Name
	}
	return p.Name + " " + p.Surname
}
