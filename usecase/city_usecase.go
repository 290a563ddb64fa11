package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"rental-service/domain"
	"rental-service/domain/model"
	"rental-service/domain/repository"
	"rental-service/pkg/logger"
	"rental-service/pkg/redis"
	"rental-service/pkg/slug"
)

const (
	// activeCitiesCacheKey holds the JSON-encoded active city list.
	activeCitiesCacheKey = "cities:active"
	// activeCitiesCacheTTL bounds staleness when invalidation is missed.
	activeCitiesCacheTTL = 10 * time.Minute
)

// CityUseCase defines the interface for city-related business operations.
type CityUseCase interface {
	// CreateCity adds a new service area and invalidates the cache.
	CreateCity(ctx context.Context, city *model.City) error
	// GetCityByID retrieves a city by its ID.
	GetCityByID(ctx context.Context, id string) (*model.City, error)
	// GetActiveCities returns all active cities, served from cache when warm.
	GetActiveCities(ctx context.Context) ([]*model.City, error)
}

// cityUseCase implements the CityUseCase interface.
type cityUseCase struct {
	cityRepo repository.City
	cache    redis.RedisClient
	logger   logger.LoggerInterface
}

// NewCityUseCase creates a new instance of cityUseCase. cache may be nil,
// in which case every read goes to the database.
func NewCityUseCase(cityRepo repository.City, cache redis.RedisClient, appLogger logger.LoggerInterface) CityUseCase {
	return &cityUseCase{
		cityRepo: cityRepo,
		cache:    cache,
		logger:   appLogger,
	}
}

// CreateCity adds a new service area and invalidates the active-city cache.
func (uc *cityUseCase) CreateCity(ctx context.Context, city *model.City) error {
	if city.Slug == "" {
		city.Slug = slug.Make(city.Name)
	}

	if err := uc.cityRepo.Create(ctx, city); err != nil {
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.Del(ctx, activeCitiesCacheKey); err != nil {
			uc.logger.WarnContext(ctx, "Failed to invalidate city cache", "error", err)
		}
	}
	return nil
}

// GetCityByID retrieves a city by its ID.
func (uc *cityUseCase) GetCityByID(ctx context.Context, id string) (*model.City, error) {
	city, err := uc.cityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCityNotFound
		}
		return nil, err
	}
	return city, nil
}

// GetActiveCities returns all active cities through a read-through cache.
// Cache failures fall back to the database.
func (uc *cityUseCase) GetActiveCities(ctx context.Context) ([]*model.City, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, activeCitiesCacheKey)
		if err == nil {
			var cities []*model.City
			if err := json.Unmarshal([]byte(cached), &cities); err == nil {
				return cities, nil
			}
			uc.logger.WarnContext(ctx, "Corrupt city cache entry, falling back to database")
		} else if !errors.Is(err, redis.Nil) {
			uc.logger.WarnContext(ctx, "City cache read failed", "error", err)
		}
	}

	cities, err := uc.cityRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if payload, err := json.Marshal(cities); err == nil {
			if err := uc.cache.Set(ctx, activeCitiesCacheKey, payload, activeCitiesCacheTTL); err != nil {
				uc.logger.WarnContext(ctx, "Failed to warm city cache", "error", err)
			}
		}
	}
	return cities, nil
}
