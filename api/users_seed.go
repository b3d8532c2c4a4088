package api

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// SeedDefaultAdmin ensures at least one admin exists. Uses cfg Admin* when creating.
func SeedDefaultAdmin(ctx context.Context, cfg Config, db *DB) error {
	if !cfg.SeedAdmin {
		return nil
	}
	col := db.Collection("users")
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	email := strings.TrimSpace(strings.ToLower(cfg.AdminEmail))
	username := strings.TrimSpace(cfg.AdminUsername)

	if email == "" || username == "" {
		log.Println("[WARN] Admin seed skipped: invalid ADMIN_EMAIL or ADMIN_USERNAME")
		return nil
	}

	if err := ValidatePassword(cfg.AdminPassword); err != nil {
		log.Printf("[WARN] Admin seed skipped: invalid ADMIN_PASSWORD: %v", err)
		return nil
	}

	// Skip when an admin already exists; re-seeding would rotate credentials
	// under a running deployment.
	if n, err := col.CountDocuments(ctx, bson.M{"role": RoleAdmin}); err == nil && n > 0 {
		return nil
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Insert the admin; if the email is taken, promote that user instead.
	u := User{
		Email:        email,
		Username:     username,
		PasswordHash: string(pwHash),
		Role:         RoleAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if _, err := col.InsertOne(ctx, u); err != nil {
		var we mongo.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					update := bson.M{"$set": bson.M{
						"username":      username,
						"password_hash": string(pwHash),
						"role":          RoleAdmin,
						"updated_at":    time.Now(),
					}}
					if _, err := col.UpdateOne(ctx, bson.M{"email": email}, update); err != nil {
						return err
					}
					log.Println("[INFO] Promoted existing user to admin")
					return nil
				}
			}
		}
		return err
	}
	log.Println("[INFO] Seeded default admin user")
	return nil
}
