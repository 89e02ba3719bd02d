package users_services

import (
	"github.com/robfig/cron/v3"
)

// TokenCleanupService runs the refresh-token expiry sweep on a schedule.
type TokenCleanupService struct {
	tokenService *TokenService
	cron         *cron.Cron
}

func NewTokenCleanupService(tokenService *TokenService) *TokenCleanupService {
	return &TokenCleanupService{
		tokenService: tokenService,
		cron:         cron.New(),
	}
}

func (s *TokenCleanupService) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.tokenService.CleanupExpiredTokens); err != nil {
		return err
	}

	s.cron.Start()
	log.Info("Refresh token cleanup scheduled", "schedule", "@hourly")

	return nil
}

func (s *TokenCleanupService) Stop() {
	s.cron.Stop()
}
