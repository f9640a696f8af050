package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/TomiStyle/formaciones-api/database"
	"github.com/TomiStyle/formaciones-api/models"
)

var reDNI = regexp.MustCompile(`^[0-9]{8}[A-Za-z]$`)

type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func userByDNI(dni string) (*models.User, error) {
	var u models.User
	if err := database.DB.First(&u, "dni = ?", dni).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "USER_NOT_FOUND"})
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return &u, nil
}

func dniParam(c echo.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("dni")))
}

/* -------------------- Admin: account management -------------------- */

// GET /users
func (h *UserHandler) List(c echo.Context) error {
	var users []models.User
	if err := database.DB.Order("dni").Find(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"users": users})
}

type registerReq struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Password string `json:"password"`
	Role     int    `json:"role"`
}

// POST /users/register
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	dni := strings.ToUpper(strings.TrimSpace(req.ID))
	name := strings.TrimSpace(req.Name)
	surname := strings.TrimSpace(req.Surname)
	if !reDNI.MatchString(dni) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_DNI"})
	}
	if name == "" || surname == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if req.Role == 0 {
		req.Role = models.RoleRegular
	}
	if !models.ValidRole(req.Role) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_ROLE"})
	}

	var dup models.User
	if err := database.DB.First(&dup, "dni = ?", dni).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "USER_EXISTS"})
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
	}
	u := models.User{DNI: dni, Name: name, Surname: surname, PasswordHash: hash, Role: req.Role}
	if err := database.DB.Create(&u).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "user created", "user": u})
}

// GET /users/:dni
func (h *UserHandler) Get(c echo.Context) error {
	u, err := userByDNI(dniParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"user": u})
}

type updateUserReq struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Role     int    `json:"role"`
	Password string `json:"password"`
}

// PUT /users/:dni
func (h *UserHandler) Update(c echo.Context) error {
	u, err := userByDNI(dniParam(c))
	if err != nil {
		return err
	}

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	name := strings.TrimSpace(req.Name)
	surname := strings.TrimSpace(req.Surname)
	if name == "" || surname == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if req.Role != 0 && !models.ValidRole(req.Role) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_ROLE"})
	}

	u.Name = name
	u.Surname = surname
	if req.Role != 0 {
		u.Role = req.Role
	}
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
		}
		u.PasswordHash = hash
	}
	if err := database.DB.Save(u).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "user updated", "user": u})
}

// DELETE /users/:dni
func (h *UserHandler) Delete(c echo.Context) error {
	dni := dniParam(c)
	if self, _ := c.Get("user_id").(string); self == dni {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "CANNOT_DELETE_SELF"})
	}

	tx := database.DB.Begin()
	res := tx.Delete(&models.User{}, "dni = ?", dni)
	if res.Error != nil {
		tx.Rollback()
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_DELETE_FAILED"})
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "USER_NOT_FOUND"})
	}
	// a deleted account must not keep working through an old token
	if err := tx.Delete(&models.Session{}, "user_dni = ?", dni).Error; err != nil {
		tx.Rollback()
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_DELETE_FAILED"})
	}
	if err := tx.Commit().Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "user deleted"})
}

/* -------------------- Self: profile -------------------- */

// GET /users/profile
func (h *UserHandler) Profile(c echo.Context) error {
	dni, _ := c.Get("user_id").(string)
	u, err := userByDNI(dni)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"user": u})
}

type updateProfileReq struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// PUT /users/updateProfile. Name, surname and password are
// self-editable; the role is not.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	dni, _ := c.Get("user_id").(string)
	u, err := userByDNI(dni)
	if err != nil {
		return err
	}

	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	name := strings.TrimSpace(req.Name)
	surname := strings.TrimSpace(req.Surname)
	if name == "" || surname == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	if req.OldPassword != "" || req.NewPassword != "" {
		if req.OldPassword == "" || req.NewPassword == "" {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.OldPassword)) != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_PASSWORD"})
		}
		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
		}
		u.PasswordHash = hash
	}

	u.Name = name
	u.Surname = surname
	if err := database.DB.Save(u).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "profile updated", "user": u})
}
