// Package di provides dependency injection factories for creating application components.
package di

import (
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	useradapters "user_backend/internal/feature/user/adapters"
	userhandler "user_backend/internal/feature/user/transport/handler"
	"user_backend/internal/feature/user/transport/validation"
	"user_backend/internal/feature/user/usecase"
	"user_backend/internal/platform/cache"
	"user_backend/internal/platform/password"
)

// NewUserRepository creates a UserRepository implementation.
// If Redis is available, the GORM repository is wrapped in a read-through cache.
// Otherwise, queries go straight to the database.
func NewUserRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.UserRepository {
	repo := useradapters.NewUserRepository(db)
	if rdb != nil {
		return cache.NewCachingUserRepository(rdb, ttl, repo, "users")
	}
	return repo
}

// BcryptCostFromEnv reads BCRYPT_COST, returning 0 (the hasher default) when unset or invalid.
func BcryptCostFromEnv() int {
	cost, err := strconv.Atoi(os.Getenv("BCRYPT_COST"))
	if err != nil {
		return 0
	}
	return cost
}

// NewUserHandler wires the user feature from repository to HTTP handler.
func NewUserHandler(repo usecase.UserRepository, bcryptCost int) *userhandler.UserHandler {
	translator := usecase.NewUserTranslator(password.NewBcryptHasher(bcryptCost))
	uc := usecase.NewUserUsecase(repo, translator)
	return userhandler.NewUserHandler(uc, validation.NewValidator())
}
