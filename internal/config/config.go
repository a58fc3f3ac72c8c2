package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	DBDriver  string
	DBHost    string
	DBPort    string
	DBName    string
	DBUser    string
	DBPass    string
	DBSSLMode string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	IdempTTLSecs    int
	ViewModeTTLSecs int

	JWTSecret string

	FileStorageDir    string
	FilePublicBaseURL string
	FileURLTTLSecs    int

	FinanceTeamRoles []string
	AdminRoles       []string

	LogLevel      string
	LogFormat     string
	LogFilePath   string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		return strings.EqualFold(v, "true")
	}
	return d
}

// getenvList splits a comma separated value, dropping blanks.
func getenvList(k string, d []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads the environment, after merging a .env file when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort: getenv("APP_PORT", "8080"),

		DBDriver:  strings.ToLower(getenv("DB_DRIVER", "mysql")),
		DBHost:    getenv("DB_HOST", "mysql"),
		DBPort:    getenv("DB_PORT", "3306"),
		DBName:    getenv("DB_NAME", "opsplatform"),
		DBUser:    getenv("DB_USER", "opsplatform"),
		DBPass:    getenv("DB_PASS", "opsplatform"),
		DBSSLMode: getenv("DB_SSLMODE", "disable"),

		RedisAddr:     getenv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),

		IdempTTLSecs:    getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		ViewModeTTLSecs: getenvInt("VIEW_MODE_TTL_SECONDS", 8*60*60),

		JWTSecret: getenv("JWT_SECRET", ""),

		FileStorageDir:    getenv("FILE_STORAGE_DIR", "data/files"),
		FilePublicBaseURL: getenv("FILE_PUBLIC_BASE_URL", "http://localhost:8080/api/files"),
		FileURLTTLSecs:    getenvInt("FILE_URL_TTL_SECONDS", 3600),

		FinanceTeamRoles: getenvList("FINANCE_TEAM_ROLES", []string{"FINANCE", "ADMIN"}),
		AdminRoles:       getenvList("ADMIN_ROLES", []string{"ADMIN"}),

		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogFormat:     getenv("LOG_FORMAT", "json"),
		LogFilePath:   getenv("LOG_FILE_PATH", ""),
		LogMaxSize:    getenvInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getenvInt("LOG_MAX_BACKUPS", 7),
		LogMaxAge:     getenvInt("LOG_MAX_AGE", 30),
		LogCompress:   getenvBool("LOG_COMPRESS", true),
	}
}

func (c *Config) Validate() error {
	if c.DBDriver != "mysql" && c.DBDriver != "postgres" {
		return fmt.Errorf("unknown DB_DRIVER %q (mysql or postgres)", c.DBDriver)
	}
	if c.DBHost == "" || c.DBPort == "" || c.DBName == "" || c.DBUser == "" {
		return errors.New("missing database config (DB_HOST/PORT/NAME/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.DBPort); err != nil {
		return fmt.Errorf("invalid DB_PORT %q: %w", c.DBPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.FileStorageDir == "" {
		return errors.New("missing FILE_STORAGE_DIR")
	}
	return nil
}

func (c *Config) dbAddr() string { return net.JoinHostPort(c.DBHost, c.DBPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATE/DATETIME columns
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.DBUser, c.DBPass, c.dbAddr(), c.DBName)
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName, c.DBSSLMode)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.PostgresDSN()
	}
	return c.MySQLDSN()
}
