package services

import (
	"log"
	"time"

	"auraweb/internal/redis"
	"auraweb/internal/repository"
)

const statsCacheKey = "dashboard:stats"

type StatsService interface {
	DashboardStats() (*repository.SubmissionStats, error)
}

type statsService struct {
	submissionRepo repository.SubmissionRepository
	cache          *redis.Client
	cacheTTL       time.Duration
}

// NewStatsService computes dashboard aggregates, cached in Redis. A nil cache
// disables caching; cache failures fall back to the database.
func NewStatsService(submissionRepo repository.SubmissionRepository, cache *redis.Client, cacheTTL time.Duration) StatsService {
	return &statsService{submissionRepo: submissionRepo, cache: cache, cacheTTL: cacheTTL}
}

func (s *statsService) DashboardStats() (*repository.SubmissionStats, error) {
	if s.cache != nil {
		var cached repository.SubmissionStats
		if err := s.cache.GetJSON(statsCacheKey, &cached); err == nil {
			return &cached, nil
		} else if err != redis.ErrCacheMiss {
			log.Printf("Warning: stats cache read failed: %v", err)
		}
	}

	stats, err := s.submissionRepo.Stats(time.Now())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(statsCacheKey, stats, s.cacheTTL); err != nil {
			log.Printf("Warning: stats cache write failed: %v", err)
		}
	}

	return stats, nil
}
