// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/TomiStyle/formaciones-api/config"
	"github.com/TomiStyle/formaciones-api/database"
	"github.com/TomiStyle/formaciones-api/models"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)

	dni := os.Getenv("ADMIN_DNI")
	if dni == "" {
		dni = "00000000A"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "1234"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.User
	if err := database.DB.First(&existing, "dni = ?", dni).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("admin user already exists with dni:", dni)
		os.Exit(0)
	}

	u := models.User{
		DNI:          dni,
		Name:         "Admin",
		Surname:      "Admin",
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created")
	fmt.Println("   DNI:     ", dni)
	fmt.Println("   Password:", password, "(plain, remember to change it)")
}
