package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/TomiStyle/formaciones-api/database"
	"github.com/TomiStyle/formaciones-api/models"
)

// formationByParam resolves the :id route parameter to an active
// formation. A malformed id short-circuits before any database work.
func formationByParam(c echo.Context) (*models.Formation, error) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param("id")))
	if err != nil || id <= 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	var f models.Formation
	if err := database.DB.First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "FORMATION_NOT_FOUND"})
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return &f, nil
}

// personInFormation loads a placement record by route parameter,
// scoped to the formation.
func personInFormation(c echo.Context, formationID uint, param string) (*models.Person, error) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param(param)))
	if err != nil || id <= 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_ID"})
	}
	var p models.Person
	if err := database.DB.First(&p, "id = ? AND formation_id = ?", id, formationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "PERSON_NOT_FOUND"})
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return &p, nil
}
