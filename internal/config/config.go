package config

// Package config provides configuration loading for the gateway.
import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"FirebiAPI/internal"
	"FirebiAPI/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	ResourcesFile string
	Firebase      FirebaseConfig
	Query         QueryConfig
	Redis         RedisConfig
	CORS          CORSConfig
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
	CredentialsJSON string
}

type QueryConfig struct {
	// TenantFields is the ordered candidate list probed for tenant scoping.
	// Order matters: the first field with any matching documents wins.
	TenantFields []string
	Limit        int
	WindowDays   int
	WindowField  string
}

type RedisConfig struct {
	Addr          string
	FieldCacheTTL time.Duration
}

type CORSConfig struct {
	AllowOrigin      string
	AllowCredentials bool
}

// DefaultTenantFields mirrors the field-name drift seen across historical
// ingestions: case variants first, then synonyms.
var DefaultTenantFields = []string{
	"EnterpriseId",
	"enterpriseId",
	"enterprise_id",
	"companyId",
	"organizationId",
}

func LoadConfig() *Config {
	// .env is optional and only used for local runs
	root, _ := internal.FindRepoRoot()
	_ = godotenv.Load(filepath.Join(root, ".env"))

	cfg := &Config{
		Port:          getEnv("PORT", "10000"),
		ResourcesFile: getEnvOptional("RESOURCES_FILE"),
		Firebase: FirebaseConfig{
			ProjectID:       getEnvOptional("FIREBASE_PROJECT_ID"),
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "/etc/secrets/.firebase_key.json"),
			CredentialsJSON: getEnvOptional("FIREBASE_CREDENTIALS_JSON"),
		},
		Query: QueryConfig{
			TenantFields: getEnvList("TENANT_FIELDS", DefaultTenantFields),
			Limit:        getEnvInt("QUERY_LIMIT", 100),
			WindowDays:   getEnvInt("QUERY_WINDOW_DAYS", 0),
			WindowField:  getEnv("QUERY_WINDOW_FIELD", "createdAt"),
		},
		Redis: RedisConfig{
			Addr:          getEnvOptional("REDIS_ADDR"),
			FieldCacheTTL: time.Duration(getEnvInt("FIELD_CACHE_TTL_SEC", 600)) * time.Second,
		},
		CORS: CORSConfig{
			AllowOrigin:      getEnv("CORS_ALLOW_ORIGIN", "*"),
			AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		},
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	logger.Warn("env_default", map[string]any{
		"key":      key,
		"fallback": fallback,
	})
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logger.Warn("env_invalid_bool", map[string]any{
			"key":      key,
			"value":    value,
			"fallback": fallback,
		})
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logger.Warn("env_invalid_int", map[string]any{
			"key":      key,
			"value":    value,
			"fallback": fallback,
		})
		return fallback
	}
	return parsed
}

// getEnvList parses a comma-separated value, preserving element order.
func getEnvList(key string, fallback []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		res = append(res, p)
	}
	if len(res) == 0 {
		logger.Warn("env_empty_list", map[string]any{"key": key})
		return fallback
	}
	return res
}

func getEnvOptional(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
