package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type ENV struct {
	AppEnv string
	Port   string

	DBHost            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBPort            string
	DBSSL             bool
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnectRetries  int

	CORSAllowedOrigins []string

	StoreCurrency       string
	StoreCurrencySymbol string

	LogLevel      string
	LogFormat     string
	LogOutput     string
	LogPath       string
	LogFile       string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int

	AdminEmail    string
	AdminPassword string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("APP_PORT", ":8080"),

		DBHost:            getEnv("DB_HOST", "127.0.0.1"),
		DBUser:            getEnv("DB_USER", "root"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            getEnv("DB_NAME", "catalog"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBSSL:             getBool("DB_SSL", false),
		DBMaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		DBConnectRetries:  getInt("DB_CONNECT_RETRIES", 10),

		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		StoreCurrency:       getEnv("STORE_CURRENCY", "INR"),
		StoreCurrencySymbol: getEnv("STORE_CURRENCY_SYMBOL", "₹"),

		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFormat:     os.Getenv("LOG_FORMAT"),
		LogOutput:     os.Getenv("LOG_OUTPUT"),
		LogPath:       os.Getenv("LOG_PATH"),
		LogFile:       os.Getenv("LOG_FILE"),
		LogMaxSize:    getInt("LOG_MAX_SIZE", 0),
		LogMaxBackups: getInt("LOG_MAX_BACKUPS", 0),
		LogMaxAge:     getInt("LOG_MAX_AGE", 0),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
