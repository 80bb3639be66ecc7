package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Pagination.MaxPageSize <= 0 {
		return fmt.Errorf("pagination.max_page_size must be > 0 (got %d)", c.Pagination.MaxPageSize)
	}

	if c.Media.Bucket == "" {
		return fmt.Errorf("media.bucket must not be empty")
	}

	return nil
}
