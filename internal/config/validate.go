package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost must be between 4 and 31 (got %d)", c.Auth.PasswordHashCost)
	}

	if c.Inventory.LowStockThreshold <= 0 {
		return fmt.Errorf("inventory.low_stock_threshold must be > 0 (got %d)", c.Inventory.LowStockThreshold)
	}
	if c.Inventory.LargeSaleThreshold <= 0 {
		return fmt.Errorf("inventory.large_sale_threshold must be > 0 (got %v)", c.Inventory.LargeSaleThreshold)
	}

	if c.Push.SubscriberBuffer <= 0 {
		return fmt.Errorf("push.subscriber_buffer must be > 0 (got %d)", c.Push.SubscriberBuffer)
	}

	return nil
}
