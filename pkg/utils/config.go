package utils

import (
	"fmt"

	"github.com/spf13/viper"

	"court-booking/internal/engine"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type BookingConfig struct {
	// SlotWidthMinutes must evenly divide 1440, validated at startup.
	SlotWidthMinutes int
	// ExpiryMinutes is the confirmation window of a pending booking.
	ExpiryMinutes int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SLOT_WIDTH_MINUTES", engine.DefaultSlotWidth)
	viper.SetDefault("BOOKING_EXPIRY_MINUTES", 30)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Booking: BookingConfig{
			SlotWidthMinutes: viper.GetInt("SLOT_WIDTH_MINUTES"),
			ExpiryMinutes:    viper.GetInt("BOOKING_EXPIRY_MINUTES"),
		},
	}

	// A slot width that cannot tile the day is a deployment mistake,
	// refuse to start rather than serve a broken grid.
	if _, err := engine.GenerateSlots(config.Booking.SlotWidthMinutes); err != nil {
		return nil, fmt.Errorf("SLOT_WIDTH_MINUTES: %w", err)
	}
	if config.Booking.ExpiryMinutes <= 0 {
		return nil, fmt.Errorf("BOOKING_EXPIRY_MINUTES must be positive, got %d", config.Booking.ExpiryMinutes)
	}

	return config, nil
}
