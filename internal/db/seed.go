package db

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"repair-orders-backend/config"
	"repair-orders-backend/internal/model"
)

// Seed inserts the initial fixtures (one admin, one demo user, one
// engineer) when they do not already exist. It is safe to run on every
// startup.
func Seed(db *gorm.DB, cfg *config.SeedConfig) error {
	if !cfg.Enabled {
		return nil
	}

	if err := seedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if err := seedUser(db, cfg.UserEmail, cfg.UserPassword); err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}
	if err := seedEngineer(db); err != nil {
		return fmt.Errorf("failed to seed engineer: %w", err)
	}
	return nil
}

func seedAdmin(db *gorm.DB, email, password string) error {
	var admin model.Admin
	err := db.Where("email = ?", email).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	log.Println("Seeding admin account...")
	return db.Create(&model.Admin{
		Name:     "Admin",
		Email:    email,
		Password: string(hash),
	}).Error
}

func seedUser(db *gorm.DB, email, password string) error {
	var user model.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	log.Println("Seeding demo user...")
	return db.Create(&model.User{
		Name:     "User",
		Email:    email,
		Phone:    "081234567890",
		Password: string(hash),
	}).Error
}

func seedEngineer(db *gorm.DB) error {
	var n int64
	if err := db.Model(&model.Engineer{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("Seeding engineer...")
	return db.Create(&model.Engineer{
		Name:  "Engineer",
		Field: "Sample Field",
	}).Error
}
