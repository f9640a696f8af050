package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TomiStyle/formaciones-api/database"
	"github.com/TomiStyle/formaciones-api/grid"
	"github.com/TomiStyle/formaciones-api/models"
)

type PersonHandler struct{}

func NewPersonHandler() *PersonHandler { return &PersonHandler{} }

func activePeople(formationID uint) ([]models.Person, error) {
	var people []models.Person
	err := database.DB.
		Where("formation_id = ? AND NOT (row_num = 0 AND col_num = 0)", formationID).
		Find(&people).Error
	return people, err
}

// swapPositions exchanges two placements in one transaction, keeping
// each person's previous position as the audit of the move.
func swapPositions(a, b *models.Person) error {
	a.OldRow, a.OldColumn = a.Row, a.Column
	b.OldRow, b.OldColumn = b.Row, b.Column
	a.Row, a.Column, b.Row, b.Column = b.Row, b.Column, a.Row, a.Column

	tx := database.DB.Begin()
	if err := tx.Save(a).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Save(b).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

type swapReq struct {
	Person1ID uint `json:"person1_id"`
	Person2ID uint `json:"person2_id"`
}

// PUT /formations/:id/swap-positions
func (h *PersonHandler) Swap(c echo.Context) error {
	f, err := formationByParam(c)
	if err != nil {
		return err
	}
	var req swapReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.Person1ID == 0 || req.Person2ID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if req.Person1ID == req.Person2ID {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "SAME_PERSON"})
	}

	p1, err := loadPerson(f.ID, req.Person1ID)
	if err != nil {
		return err
	}
	p2, err := loadPerson(f.ID, req.Person2ID)
	if err != nil {
		return err
	}
	if p1.Removed() || p2.Removed() {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "PERSON_REMOVED"})
	}

	if err := swapPositions(p1, p2); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "positions swapped", "person1": p1, "person2": p2})
}

type swapByPositionReq struct {
	PersonID uint `json:"person_id"`
	Row      int  `json:"row"`
	Column   int  `json:"column"`
}

// PUT /formations/:id/swap-by-position. Resolves the target cell to
// its occupant and swaps with it.
func (h *PersonHandler) SwapByPosition(c echo.Context) error {
	f, err := formationByParam(c)
	if err != nil {
		return err
	}
	var req swapByPositionReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	from, err := loadPerson(f.ID, req.PersonID)
	if err != nil {
		return err
	}
	if from.Removed() {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "PERSON_REMOVED"})
	}

	people, err := activePeople(f.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	target, err := grid.ResolveSwapTarget(*from, people, req.Row, req.Column)
	switch {
	case errors.Is(err, grid.ErrNoSelection):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_TARGET"})
	case errors.Is(err, grid.ErrEmptyCell):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "TARGET_EMPTY"})
	case errors.Is(err, grid.ErrSamePerson):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "SAME_PERSON"})
	case err != nil:
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_TARGET"})
	}

	if err := swapPositions(from, target); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "positions swapped", "person1": from, "person2": target})
}

// PUT /formations/:id/remove-person/:personId. Parks the person at the
// sentinel cell, keeping the position they left for reinsertion.
func (h *PersonHandler) Remove(c echo.Context) error {
	f, err := formationByParam(c)
	if err != nil {
		return err
	}
	p, err := personInFormation(c, f.ID, "personId")
	if err != nil {
		return err
	}
	if p.Removed() {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "ALREADY_REMOVED"})
	}

	p.OldRow, p.OldColumn = p.Row, p.Column
	p.Row, p.Column = 0, 0
	if err := database.DB.Save(p).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "person removed", "person": p})
}

// PUT /formations/:id/reinsert-person/:personId. The server picks the
// target: the recorded old position when still vacant, otherwise the
// first free cell.
func (h *PersonHandler) Reinsert(c echo.Context) error {
	f, err := formationByParam(c)
	if err != nil {
		return err
	}
	p, err := personInFormation(c, f.ID, "personId")
	if err != nil {
		return err
	}
	if !p.Removed() {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "NOT_REMOVED"})
	}

	people, err := activePeople(f.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	row, col := p.OldRow, p.OldColumn
	if row < 1 || col < 1 || col > f.NumColumns || grid.OccupantAt(people, row, col) != nil {
		row, col = grid.FirstFreeCell(people, f.NumColumns)
	}
	p.Row, p.Column = row, col
	p.OldRow, p.OldColumn = 0, 0
	if err := database.DB.Save(p).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "person reinserted", "person": p})
}

func loadPerson(formationID, id uint) (*models.Person, error) {
	var p models.Person
	if err := database.DB.First(&p, "id = ? AND formation_id = ?", id, formationID).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "PERSON_NOT_FOUND"})
	}
	return &p, nil
}
