package handlers

import (
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/TomiStyle/formaciones-api/database"
	"github.com/TomiStyle/formaciones-api/models"
)

func TestRegisterCreatesHashedUser(t *testing.T) {
	setupDB(t)
	h := NewUserHandler()

	c, rec := jsonContext(t, http.MethodPost, "/users/register",
		`{"id":"11111111a","name":"Ana","surname":"García","password":"pw","role":2}`)
	mustOK(t, h.Register(c), rec, http.StatusCreated)

	var u models.User
	if err := database.DB.First(&u, "dni = ?", "11111111A").Error; err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if u.Role != models.RoleRegular || u.Name != "Ana" {
		t.Fatalf("user = %+v", u)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw")) != nil {
		t.Fatalf("stored password is not the bcrypt hash of the input")
	}
}

func TestRegisterRejectsBadDNI(t *testing.T) {
	setupDB(t)
	h := NewUserHandler()

	c, _ := jsonContext(t, http.MethodPost, "/users/register",
		`{"id":"not-a-dni","name":"Ana","surname":"García","password":"pw"}`)
	code, errCode := httpErr(t, h.Register(c))
	if code != http.StatusBadRequest || errCode != "INVALID_DNI" {
		t.Fatalf("got %d %s, want 400 INVALID_DNI", code, errCode)
	}
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	setupDB(t)
	seedUser(t, "11111111A", "pw", models.RoleRegular)
	h := NewUserHandler()

	c, _ := jsonContext(t, http.MethodPost, "/users/register",
		`{"id":"11111111A","name":"Ana","surname":"García","password":"pw"}`)
	code, errCode := httpErr(t, h.Register(c))
	if code != http.StatusConflict || errCode != "USER_EXISTS" {
		t.Fatalf("got %d %s, want 409 USER_EXISTS", code, errCode)
	}
}

func TestListUsers(t *testing.T) {
	setupDB(t)
	seedUser(t, "11111111A", "pw", models.RoleAdmin)
	seedUser(t, "22222222B", "pw", models.RoleRegular)
	h := NewUserHandler()

	c, rec := jsonContext(t, http.MethodGet, "/users", "")
	mustOK(t, h.List(c), rec, http.StatusOK)

	var body struct {
		Users []models.User `json:"users"`
	}
	decodeBody(t, rec, &body)
	if len(body.Users) != 2 || body.Users[0].DNI != "11111111A" {
		t.Fatalf("users = %+v", body.Users)
	}
}

func TestUpdateUserRoleAndPassword(t *testing.T) {
	setupDB(t)
	seedUser(t, "11111111A", "pw", models.RoleRegular)
	h := NewUserHandler()

	c, rec := jsonContext(t, http.MethodPut, "/users/11111111A",
		`{"name":"Ana","surname":"Ruiz","role":1,"password":"newpw"}`)
	c.SetParamNames("dni")
	c.SetParamValues("11111111A")
	mustOK(t, h.Update(c), rec, http.StatusOK)

	var u models.User
	if err := database.DB.First(&u, "dni = ?", "11111111A").Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if u.Surname != "Ruiz" || u.Role != models.RoleAdmin {
		t.Fatalf("user = %+v", u)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpw")) != nil {
		t.Fatalf("password not updated")
	}
}

func TestDeleteUserRevokesSessions(t *testing.T) {
	setupDB(t)
	u := seedUser(t, "11111111A", "pw", models.RoleRegular)
	seedUser(t, "99999999Z", "pw", models.RoleAdmin)
	sess := models.Session{ID: "jti-del", UserDNI: u.DNI, ExpiresAt: time.Now().Add(time.Hour)}
	if err := database.DB.Create(&sess).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	h := NewUserHandler()

	c, rec := jsonContext(t, http.MethodDelete, "/users/11111111A", "")
	c.SetParamNames("dni")
	c.SetParamValues("11111111A")
	c.Set("user_id", "99999999Z")
	mustOK(t, h.Delete(c), rec, http.StatusOK)

	if got := sessionCount(t); got != 0 {
		t.Fatalf("sessions = %d, want 0", got)
	}
	var n int64
	database.DB.Model(&models.User{}).Where("dni = ?", "11111111A").Count(&n)
	if n != 0 {
		t.Fatalf("user still present")
	}
}

func TestDeleteSelfForbidden(t *testing.T) {
	setupDB(t)
	seedUser(t, "11111111A", "pw", models.RoleAdmin)
	h := NewUserHandler()

	c, _ := jsonContext(t, http.MethodDelete, "/users/11111111A", "")
	c.SetParamNames("dni")
	c.SetParamValues("11111111A")
	c.Set("user_id", "11111111A")
	code, errCode := httpErr(t, h.Delete(c))
	if code != http.StatusBadRequest || errCode != "CANNOT_DELETE_SELF" {
		t.Fatalf("got %d %s, want 400 CANNOT_DELETE_SELF", code, errCode)
	}
}

func TestUpdateProfileKeepsRole(t *testing.T) {
	setupDB(t)
	seedUser(t, "11111111A", "pw", models.RoleRegular)
	h := NewUserHandler()

	c, rec := jsonContext(t, http.MethodPut, "/users/updateProfile",
		`{"name":"Nueva","surname":"Firma","oldPassword":"pw","newPassword":"pw2"}`)
	c.Set("user_id", "11111111A")
	mustOK(t, h.UpdateProfile(c), rec, http.StatusOK)

	var u models.User
	if err := database.DB.First(&u, "dni = ?", "11111111A").Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if u.Name != "Nueva" || u.Role != models.RoleRegular {
		t.Fatalf("user = %+v", u)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw2")) != nil {
		t.Fatalf("password not changed")
	}
}

func TestUpdateProfileWrongOldPassword(t *testing.T) {
	setupDB(t)
	seedUser(t, "11111111A", "pw", models.RoleRegular)
	h := NewUserHandler()

	c, _ := jsonContext(t, http.MethodPut, "/users/updateProfile",
		`{"name":"Ana","surname":"García","oldPassword":"nope","newPassword":"pw2"}`)
	c.Set("user_id", "11111111A")
	code, errCode := httpErr(t, h.UpdateProfile(c))
	if code != http.StatusUnauthorized || errCode != "INVALID_PASSWORD" {
		t.Fatalf("got %d %s, want 401 INVALID_PASSWORD", code, errCode)
	}
}
