package database

import (
	"log/slog"

	"event_ticketing/constants"
	"event_ticketing/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedData makes sure a platform administrator exists. An empty password skips seeding.
func SeedData(db *gorm.DB, email, password string, log *slog.Logger) {
	if password == "" {
		log.Warn("ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Error("failed to hash admin password", slog.String("error", err.Error()))
		return
	}

	account := model.Account{
		Email:    email,
		Name:     "Administration",
		Password: string(hash),
		Role:     constants.ROLE_ADMIN,
		Active:   true,
	}
	if err := db.Where(model.Account{Email: account.Email}).FirstOrCreate(&account).Error; err != nil {
		log.Error("failed to seed admin account",
			slog.String("email", account.Email),
			slog.String("error", err.Error()),
		)
		return
	}
	log.Info("admin account ready", slog.String("email", account.Email))
}
