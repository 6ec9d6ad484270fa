package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/planit")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "planit-assets", cfg.MinioBucket)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_NormalizesBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "MONGO")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMongo, cfg.StoreBackend)
}

func TestValidate(t *testing.T) {
	base := Config{StoreBackend: BackendPostgres, DatabaseURL: "postgres://x", TokenTTL: time.Hour, BcryptCost: 10}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid postgres", mutate: func(c *Config) {}},
		{name: "postgres without url", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: "DATABASE_URL"},
		{name: "mongo without uri", mutate: func(c *Config) { c.StoreBackend = BackendMongo }, wantErr: "MONGO_URI"},
		{name: "valid mongo", mutate: func(c *Config) { c.StoreBackend = BackendMongo; c.MongoURI = "mongodb://x" }},
		{name: "unknown backend", mutate: func(c *Config) { c.StoreBackend = "sqlite" }, wantErr: "unsupported"},
		{name: "zero ttl", mutate: func(c *Config) { c.TokenTTL = 0 }, wantErr: "TOKEN_TTL"},
		{name: "bad cost", mutate: func(c *Config) { c.BcryptCost = 2 }, wantErr: "BCRYPT_COST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPublicBaseURL(t *testing.T) {
	c := Config{MinioEndpoint: "minio:9000"}
	assert.Equal(t, "http://minio:9000", c.PublicBaseURL())

	c.MinioUseSSL = true
	assert.Equal(t, "https://minio:9000", c.PublicBaseURL())

	c.AssetPublicBaseURL = "https://cdn.planit.example/"
	assert.Equal(t, "https://cdn.planit.example", c.PublicBaseURL())
	assert.True(t, c.AssetStoreEnabled())
}
