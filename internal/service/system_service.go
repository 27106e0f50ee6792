package service

import (
	"database/sql"

	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/database"
	"github.com/ndewijer/Stock-Chart-Service-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db               *sql.DB
	apiKeyConfigured bool
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, apiKeyConfigured bool) *SystemService {
	return &SystemService{
		db:               db,
		apiKeyConfigured: apiKeyConfigured,
	}
}

// CheckHealth checks the health of the cache database
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// ProviderConfigured reports whether a provider credential is set.
// Requests will fail with a configuration error until it is.
func (s *SystemService) ProviderConfigured() bool {
	return s.apiKeyConfigured
}

// CheckVersion returns the application version
func (s *SystemService) CheckVersion() string {
	return version.Version
}
