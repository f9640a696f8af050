package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/TomiStyle/formaciones-api/database"
	"github.com/TomiStyle/formaciones-api/models"
)

type AuthHandler struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthHandler(secret string) *AuthHandler {
	return &AuthHandler{JWTSecret: secret, TokenTTL: 7 * 24 * time.Hour}
}

func (h *AuthHandler) signJWT(u *models.User, jti string, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.DNI,
		"role": u.Role,
		"name": u.Name,
		"jti":  jti,
		"exp":  exp.Unix(),
		"iat":  time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

type loginReq struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// POST /users/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	dni := strings.ToUpper(strings.TrimSpace(req.ID))
	if dni == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var u models.User
	if err := database.DB.First(&u, "dni = ?", dni).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	// the session row is only created once the credentials check out,
	// so a failed login persists nothing
	sess := models.Session{
		ID:        uuid.NewString(),
		UserDNI:   u.DNI,
		ExpiresAt: time.Now().Add(h.TokenTTL),
	}
	if err := database.DB.Create(&sess).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SESSION_CREATE_FAILED"})
	}
	token, err := h.signJWT(&u, sess.ID, sess.ExpiresAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{"token": token, "user": u})
}

// POST /users/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, _ := c.Get("session_id").(string)
	if sid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}
	now := time.Now()
	if err := database.DB.Model(&models.Session{}).Where("id = ?", sid).Update("revoked_at", &now).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "session closed"})
}
