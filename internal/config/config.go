package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"taskplane-backend/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

const (
	EnvModeDevelopment = "development"
	EnvModeProduction  = "production"
)

type EnvVariables struct {
	IsTesting   bool
	DatabaseDsn string `env:"DATABASE_DSN" required:"true"`
	EnvMode     string `env:"ENV_MODE"     required:"true"`

	HTTPPort string `env:"HTTP_PORT" env-default:"4000"`

	// Token signing. Access and refresh tokens use separate secrets so a
	// leaked access secret cannot mint long-lived credentials.
	JwtAccessSecret            string `env:"JWT_ACCESS_SECRET"`
	JwtRefreshSecret           string `env:"JWT_REFRESH_SECRET"`
	AccessTokenLifetimeMinutes int    `env:"ACCESS_TOKEN_LIFETIME_MINUTES" env-default:"15"`
	RefreshTokenLifetimeHours  int    `env:"REFRESH_TOKEN_LIFETIME_HOURS"  env-default:"168"`

	BcryptCost int `env:"BCRYPT_COST" env-default:"12"`

	WorkspaceCacheTTLSeconds int `env:"WORKSPACE_CACHE_TTL_SECONDS" env-default:"1800"`

	// oauth
	GitHubClientID     string `env:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`

	// attachment blob storage
	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET"    env-default:"taskplane-attachments"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL"   env-default:"false"`
}

func (e EnvVariables) AccessTokenLifetime() time.Duration {
	return time.Duration(e.AccessTokenLifetimeMinutes) * time.Minute
}

func (e EnvVariables) RefreshTokenLifetime() time.Duration {
	return time.Duration(e.RefreshTokenLifetimeHours) * time.Hour
}

func (e EnvVariables) WorkspaceCacheTTL() time.Duration {
	return time.Duration(e.WorkspaceCacheTTLSeconds) * time.Second
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Loaded .env", "path", path)
			break
		}
	}

	if err := cleanenv.ReadEnv(&env); err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if env.EnvMode != EnvModeDevelopment && env.EnvMode != EnvModeProduction {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}

	// Missing signing secrets are a fatal startup condition, never a
	// runtime fallback.
	if env.JwtAccessSecret == "" {
		log.Error("JWT_ACCESS_SECRET is empty")
		os.Exit(1)
	}
	if env.JwtRefreshSecret == "" {
		log.Error("JWT_REFRESH_SECRET is empty")
		os.Exit(1)
	}
	if env.JwtAccessSecret == env.JwtRefreshSecret {
		log.Error("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
		os.Exit(1)
	}

	log.Info("Environment variables loaded successfully!", "mode", env.EnvMode)
}
