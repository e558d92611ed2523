// Command createuser creates a user account directly in MongoDB, bypassing
// the HTTP API. Intended for bootstrapping the first admin.
package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/garajdev/garage-api/internal/auth"
	"github.com/garajdev/garage-api/internal/config"
	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/models"
)

func main() {
	firstName := flag.String("first", "", "first name")
	lastName := flag.String("last", "", "last name")
	email := flag.String("email", "", "email address")
	password := flag.String("password", "", "password (min 6 characters)")
	role := flag.String("role", "admin", "role: admin or user")
	phone := flag.String("phone", "", "phone number")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	if *firstName == "" || *email == "" || *password == "" {
		log.Fatal("usage: createuser -first NAME -last NAME -email EMAIL -password PASSWORD [-role admin|user]")
	}
	address := auth.NormalizeEmail(*email)
	if err := auth.ValidateEmail(address); err != nil {
		log.Fatalf("Invalid email: %v", err)
	}
	if err := auth.ValidatePassword(*password); err != nil {
		log.Fatalf("Invalid password: %v", err)
	}
	if !models.IsValidRole(models.Role(*role)) {
		log.Fatalf("Invalid role: %s", *role)
	}

	client, err := db.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	defer client.Disconnect(ctx)

	database := client.Database(cfg.MongoDB)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	users := &db.MongoUserCollection{Collection: database.Collection("users")}

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpire, cfg.BcryptCost)
	hash, err := authService.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	id, err := users.InsertUser(ctx, models.User{
		FirstName:    strings.TrimSpace(*firstName),
		LastName:     strings.TrimSpace(*lastName),
		Email:        address,
		PasswordHash: hash,
		Role:         models.Role(*role),
		Phone:        strings.TrimSpace(*phone),
	})
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	log.WithFields(log.Fields{
		"id":    id.Hex(),
		"email": address,
		"role":  *role,
	}).Info("User created")
}
