package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TomiStyle/formaciones-api/database"
	"github.com/TomiStyle/formaciones-api/export"
	"github.com/TomiStyle/formaciones-api/grid"
	"github.com/TomiStyle/formaciones-api/models"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct{}

func NewExportHandler() *ExportHandler { return &ExportHandler{} }

type exportRequest struct {
	formation *models.Formation
	groups    []grid.Group
	axisLabel string // "Column" | "Row"
	suffix    string // "columns" | "rows"
}

func (h *ExportHandler) load(c echo.Context) (*exportRequest, error) {
	f, err := formationByParam(c)
	if err != nil {
		return nil, err
	}

	groupBy := c.QueryParam("group_by")
	if groupBy == "" {
		groupBy = "column"
	}
	if groupBy != "column" && groupBy != "row" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_GROUP_BY"})
	}

	// exports include removed people: they surface in the sentinel
	// group, which is always emitted last
	var people []models.Person
	if err := database.DB.Where("formation_id = ?", f.ID).Find(&people).Error; err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	req := &exportRequest{formation: f}
	if groupBy == "row" {
		req.groups = grid.ByRow(people)
		req.axisLabel, req.suffix = "Row", "rows"
	} else {
		req.groups = grid.ByColumn(people, f.NumColumns)
		req.axisLabel, req.suffix = "Column", "columns"
	}
	return req, nil
}

// GET /formations/:id/export/pdf?group_by=column|row
func (h *ExportHandler) PDF(c echo.Context) error {
	req, err := h.load(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.PDF(&buf, req.formation.Title, req.axisLabel, req.groups); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}
	name := fmt.Sprintf("%s_%s.pdf", export.SafeFileName(req.formation.Title), req.suffix)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

// GET /formations/:id/export/xlsx?group_by=column|row
func (h *ExportHandler) XLSX(c echo.Context) error {
	req, err := h.load(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.XLSX(&buf, req.axisLabel, req.groups); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}
	name := fmt.Sprintf("%s_%s.xlsx", export.SafeFileName(req.formation.Title), req.suffix)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
