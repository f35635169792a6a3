// Provisioning tool for reviewer accounts.
package main

import (
	"errors"
	"flag"
	"log"
	"time"

	"scholarship-portal-api/config"
	"scholarship-portal-api/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	username := flag.String("username", "", "login name for the account")
	password := flag.String("password", "", "initial password (min 8 characters)")
	role := flag.String("role", models.RoleTrustee, "account role: admin or trustee")
	flag.Parse()

	if *username == "" || len(*password) < 8 {
		log.Fatal("Usage: create-user -username <name> -password <min 8 chars> [-role admin|trustee]")
	}
	if *role != models.RoleAdmin && *role != models.RoleTrustee {
		log.Fatalf("Unknown role %q", *role)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.InitDB()

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	now := time.Now()
	var user models.User
	err = config.DB.Where("username = ?", *username).First(&user).Error
	switch {
	case err == nil:
		user.Password = string(hashed)
		user.Role = *role
		user.UpdateAt = &now
		if err := config.DB.Save(&user).Error; err != nil {
			log.Fatal("Failed to update user:", err)
		}
		log.Printf("Updated existing user %s (role %s)", user.Username, user.Role)
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Username: *username,
			Password: string(hashed),
			Role:     *role,
			CreateAt: &now,
			UpdateAt: &now,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			log.Fatal("Failed to create user:", err)
		}
		log.Printf("Created user %s (role %s)", user.Username, user.Role)
	default:
		log.Fatal("Failed to look up user:", err)
	}
}
