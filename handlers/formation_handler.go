package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/TomiStyle/formaciones-api/database"
	"github.com/TomiStyle/formaciones-api/models"
	"github.com/TomiStyle/formaciones-api/roster"
)

const maxRosterBytes = 5 << 20 // 5 MB upload cap, as in the web client

type FormationHandler struct{}

func NewFormationHandler() *FormationHandler { return &FormationHandler{} }

// POST /formations. Multipart upload: title, date (YYYY-MM-DD),
// num_columns and an Excel roster file.
func (h *FormationHandler) Create(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(c.FormValue("date")))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE"})
	}
	numColumns, err := strconv.Atoi(strings.TrimSpace(c.FormValue("num_columns")))
	if err != nil || numColumns < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_NUM_COLUMNS"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FILE"})
	}
	lower := strings.ToLower(fh.Filename)
	if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls") {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_FILE_TYPE"})
	}
	if fh.Size > maxRosterBytes {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "FILE_TOO_LARGE"})
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FILE"})
	}
	defer src.Close()

	people, err := roster.Parse(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	// positions must fit the declared grid and active placements must
	// be unique; anything without a full position parks at the sentinel
	seen := map[[2]int]bool{}
	for i := range people {
		p := &people[i]
		if p.Column > numColumns {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_POSITION"})
		}
		if p.Row == 0 || p.Column == 0 {
			p.Row, p.Column = 0, 0
			continue
		}
		key := [2]int{p.Row, p.Column}
		if seen[key] {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "DUPLICATE_POSITION"})
		}
		seen[key] = true
	}

	f := models.Formation{Title: title, Date: date, NumColumns: numColumns}
	tx := database.DB.Begin()
	if err := tx.Create(&f).Error; err != nil {
		tx.Rollback()
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	for i := range people {
		people[i].FormationID = f.ID
	}
	if err := tx.Create(&people).Error; err != nil {
		tx.Rollback()
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if err := tx.Commit().Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]any{"message": "formation created", "formation": f})
}

// GET /formations. Active formations only.
func (h *FormationHandler) List(c echo.Context) error {
	var formations []models.Formation
	if err := database.DB.Order("date DESC, id DESC").Find(&formations).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"formations": formations})
}

// DELETE /formations/:id. Logical delete.
func (h *FormationHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param("id")))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	res := database.DB.Delete(&models.Formation{}, id)
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_DELETE_FAILED"})
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "FORMATION_NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /formations/:id/people-by-row
func (h *FormationHandler) PeopleByRow(c echo.Context) error {
	return h.peopleOrdered(c, "row_num, col_num")
}

// GET /formations/:id/people-by-column
func (h *FormationHandler) PeopleByColumn(c echo.Context) error {
	return h.peopleOrdered(c, "col_num, row_num")
}

func (h *FormationHandler) peopleOrdered(c echo.Context, order string) error {
	f, err := formationByParam(c)
	if err != nil {
		return err
	}
	var people []models.Person
	if err := database.DB.Where("formation_id = ?", f.ID).Order(order).Find(&people).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"formation": f, "people": people})
}
