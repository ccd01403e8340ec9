package game

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults mirror the classic setup: a 200-unit warehouse and a customer
// every minute.
const (
	DefaultCapacity        = 200
	DefaultArrivalInterval = 60 * time.Second
	FastArrivalInterval    = 5 * time.Second
)

// Config carries environment-driven settings for the shop process.
type Config struct {
	Capacity        int
	ArrivalInterval time.Duration
	AdminPort       string
	AdminDisabled   bool
	Seed            int64
	Colors          bool
}

// LoadConfig reads environment variables, applies defaults, and validates
// basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Capacity:        DefaultCapacity,
		ArrivalInterval: DefaultArrivalInterval,
		AdminPort:       envDefault("ADMIN_PORT", "8080"),
		AdminDisabled:   isTruthy(os.Getenv("ADMIN_DISABLED")),
		Seed:            time.Now().UnixNano(),
		Colors:          os.Getenv("NO_COLOR") == "",
	}
	if raw := strings.TrimSpace(os.Getenv("WAREHOUSE_CAPACITY")); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil || capacity < 0 {
			return Config{}, fmt.Errorf("WAREHOUSE_CAPACITY must be a non-negative integer")
		}
		cfg.Capacity = capacity
	}
	if raw := strings.TrimSpace(os.Getenv("ARRIVAL_INTERVAL_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("ARRIVAL_INTERVAL_SECONDS must be a positive integer")
		}
		cfg.ArrivalInterval = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("SHOP_SEED")); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("SHOP_SEED must be an integer")
		}
		cfg.Seed = seed
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
