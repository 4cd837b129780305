package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	OTP       OTPConfig
	SMS       SMSConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Cafe      CafeConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type OTPConfig struct {
	Expiry      time.Duration
	MaxPerHour  int
	MaxAttempts int
}

type SMSConfig struct {
	GatewayURL   string
	TokenURL     string
	ClientID     string
	ClientSecret string
	SenderID     string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type PrinterConfig struct {
	Type       string // "usb", "network" or "none"
	DevicePath string
	Address    string
	Width      int
}

// CafeConfig holds the receipt header details
type CafeConfig struct {
	Name    string
	Address string
	Phone   string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "cafebill-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "cafebill")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 5)
	viper.SetDefault("OTP_MAX_PER_HOUR", 5)
	viper.SetDefault("OTP_MAX_ATTEMPTS", 5)
	viper.SetDefault("SMS_GATEWAY_URL", "")
	viper.SetDefault("SMS_TOKEN_URL", "")
	viper.SetDefault("SMS_CLIENT_ID", "")
	viper.SetDefault("SMS_CLIENT_SECRET", "")
	viper.SetDefault("SMS_SENDER_ID", "CAFEBL")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_DEVICE_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("CAFE_NAME", "The Corner Cafe")
	viper.SetDefault("CAFE_ADDRESS", "")
	viper.SetDefault("CAFE_PHONE", "")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		OTP: OTPConfig{
			Expiry:      time.Duration(viper.GetInt("OTP_EXPIRY_MINUTES")) * time.Minute,
			MaxPerHour:  viper.GetInt("OTP_MAX_PER_HOUR"),
			MaxAttempts: viper.GetInt("OTP_MAX_ATTEMPTS"),
		},
		SMS: SMSConfig{
			GatewayURL:   viper.GetString("SMS_GATEWAY_URL"),
			TokenURL:     viper.GetString("SMS_TOKEN_URL"),
			ClientID:     viper.GetString("SMS_CLIENT_ID"),
			ClientSecret: viper.GetString("SMS_CLIENT_SECRET"),
			SenderID:     viper.GetString("SMS_SENDER_ID"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:       viper.GetString("PRINTER_TYPE"),
			DevicePath: viper.GetString("PRINTER_DEVICE_PATH"),
			Address:    viper.GetString("PRINTER_ADDRESS"),
			Width:      viper.GetInt("PRINTER_WIDTH"),
		},
		Cafe: CafeConfig{
			Name:    viper.GetString("CAFE_NAME"),
			Address: viper.GetString("CAFE_ADDRESS"),
			Phone:   viper.GetString("CAFE_PHONE"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
