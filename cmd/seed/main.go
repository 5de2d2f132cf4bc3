package main

import (
	"fmt"
	"time"

	"simple-social/internal/entity"
	"simple-social/internal/repo/persistent"
	"simple-social/pkg/config"
	"simple-social/pkg/database"
	"simple-social/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a couple of demo accounts and posts for local development. Post
// URLs point at placeholder media, so no object storage is needed.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)

	users := []struct {
		email    string
		password string
	}{
		{"alice@example.com", "password123"},
		{"bob@example.com", "password123"},
	}

	var created []*entity.User
	for _, u := range users {
		if existing, err := userRepo.GetByEmail(u.email); err == nil {
			log.Info("User %s already exists, skipping", u.email)
			created = append(created, existing)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}

		user := &entity.User{
			Email:          u.email,
			HashedPassword: string(hashed),
			IsActive:       true,
			IsVerified:     true,
		}
		if err := userRepo.Create(user); err != nil {
			log.Error("Failed to create user %s: %v", u.email, err)
			panic(err)
		}
		log.Info("Created user %s", u.email)
		created = append(created, user)
	}

	captions := []string{"First post!", "Sunset from the balcony", "Weekend hike"}
	for i, caption := range captions {
		owner := created[i%len(created)]
		post := &entity.Post{
			UserID:    owner.ID,
			Caption:   caption,
			URL:       fmt.Sprintf("https://picsum.photos/seed/%d/800/600", i+1),
			FileType:  entity.FileTypeImage,
			FileName:  fmt.Sprintf("seed-%d.jpg", i+1),
			CreatedAt: time.Now().Add(time.Duration(-i) * time.Hour),
		}
		if err := postRepo.Create(post); err != nil {
			log.Error("Failed to create post: %v", err)
			panic(err)
		}
		log.Info("Created post %q for %s", caption, owner.Email)
	}

	log.Info("Database seeded successfully!")
}
