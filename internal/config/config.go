package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

type Config struct {
	Port         string `envconfig:"PORT" default:"5000"`
	StoreBackend string `envconfig:"STORE_BACKEND" default:"postgres"`
	// DB
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	MongoURI      string `envconfig:"MONGO_URI"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"planit"`
	// JWT
	JWTSecret  string        `envconfig:"JWT_SECRET"`
	TokenTTL   time.Duration `envconfig:"TOKEN_TTL" default:"168h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`
	// Object storage; an empty endpoint switches uploads to mock URLs.
	MinioEndpoint      string `envconfig:"MINIO_ENDPOINT"`
	MinioAccessKey     string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey     string `envconfig:"MINIO_SECRET_KEY"`
	MinioUseSSL        bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	MinioBucket        string `envconfig:"MINIO_BUCKET" default:"planit-assets"`
	AssetPublicBaseURL string `envconfig:"ASSET_PUBLIC_BASE_URL"`

	LogLevel    string   `envconfig:"LOG_LEVEL" default:"info"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return c, fmt.Errorf("failed to read configuration: %w", err)
	}
	c.StoreBackend = strings.ToLower(c.StoreBackend)
	if c.StoreBackend == "" {
		c.StoreBackend = BackendPostgres
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL environment variable is required for the postgres backend")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI environment variable is required for the mongo backend")
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.StoreBackend)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST %d out of range", c.BcryptCost)
	}
	return nil
}

// AssetStoreEnabled reports whether uploads go to a real object store.
func (c Config) AssetStoreEnabled() bool {
	return c.MinioEndpoint != ""
}

// PublicBaseURL is the prefix of asset URLs; it defaults to the endpoint itself.
func (c Config) PublicBaseURL() string {
	if c.AssetPublicBaseURL != "" {
		return strings.TrimRight(c.AssetPublicBaseURL, "/")
	}
	scheme := "http"
	if c.MinioUseSSL {
		scheme = "https"
	}
	return scheme + "://" + c.MinioEndpoint
}
