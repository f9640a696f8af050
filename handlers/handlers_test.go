package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/TomiStyle/formaciones-api/database"
	"github.com/TomiStyle/formaciones-api/models"
)

func setupDB(t *testing.T) {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Session{}, &models.Formation{}, &models.Person{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db
}

func seedUser(t *testing.T, dni, password string, role int) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := models.User{DNI: dni, Name: "Test", Surname: "User", PasswordHash: string(hash), Role: role}
	if err := database.DB.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func jsonContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// httpErr unpacks the echo error a handler returned directly.
func httpErr(t *testing.T, err error) (int, string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error, got nil")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	msg, _ := he.Message.(map[string]any)
	code, _ := msg["error"].(string)
	return he.Code, code
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
	}
}

func mustOK(t *testing.T, err error, rec *httptest.ResponseRecorder, wantStatus int) {
	t.Helper()
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d\n%s", rec.Code, wantStatus, rec.Body.String())
	}
}

func sessionCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := database.DB.Model(&models.Session{}).Count(&n).Error; err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	return n
}
