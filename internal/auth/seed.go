package auth

import (
	"log"

	"golang.org/x/crypto/bcrypt"
)

// SeedSuperAdmin creates the initial super admin from configuration when the
// admins table is empty. Safe to run on every startup.
func SeedSuperAdmin(repo Repository, username, password string) error {
	if username == "" || password == "" {
		log.Println("⚠️ Super admin seed skipped: credentials not configured")
		return nil
	}

	count, err := repo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &Admin{
		Username:     username,
		PasswordHash: string(hash),
		Role:         RoleSuper,
		IsActive:     true,
	}
	if err := repo.Create(admin); err != nil {
		return err
	}

	log.Printf("✅ Seeded super admin '%s'", username)
	return nil
}
