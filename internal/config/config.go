package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/GregMSThompson/solicitation-agent/internal/errs"
)

const (
	DefaultIndex        = "solicitations"
	DefaultRegion       = "us-central1"
	DefaultVertexModel  = "gemini-2.0-flash"
	DefaultPort         = "8080"
	DefaultModelTimeout = 60 * time.Second
	DefaultIndexTimeout = 10 * time.Second

	// SecretRefPrefix marks a credential value that must be read from Secret Manager.
	SecretRefPrefix = "sm://"
)

type Config struct {
	ProjectID string
	Region    string
	LogLevel  string
	Port      string

	AlgoliaAppID     string
	AlgoliaSearchKey string
	AlgoliaWriteKey  string
	AlgoliaIndex     string

	VertexModel  string
	VertexAPIKey string

	ModelTimeout time.Duration
	IndexTimeout time.Duration

	SyncCollection string
}

// New reads the configuration from the environment. A .env file in the working
// directory is loaded first when present; variables already set win.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		ProjectID:        os.Getenv("PROJECTID"),
		Region:           getEnv("REGION", DefaultRegion),
		LogLevel:         getEnv("LOGLEVEL", "info"),
		Port:             getEnv("PORT", DefaultPort),
		AlgoliaAppID:     os.Getenv("ALGOLIA_ID"),
		AlgoliaSearchKey: os.Getenv("ALGOLIA_SEARCH_KEY"),
		AlgoliaWriteKey:  os.Getenv("ALGOLIA_WRITE_KEY"),
		AlgoliaIndex:     getEnv("ALGOLIA_INDEX_NAME", DefaultIndex),
		VertexModel:      getEnv("VERTEXMODEL", DefaultVertexModel),
		VertexAPIKey:     os.Getenv("GEMINI_API_KEY"),
		ModelTimeout:     getDuration("MODEL_TIMEOUT", DefaultModelTimeout),
		IndexTimeout:     getDuration("INDEX_TIMEOUT", DefaultIndexTimeout),
		SyncCollection:   getEnv("SYNC_COLLECTION", DefaultIndex),
	}
}

// Override copies every non-empty field of o onto c. Used for CLI flags.
func (c *Config) Override(o Config) {
	setString(&c.ProjectID, o.ProjectID)
	setString(&c.Region, o.Region)
	setString(&c.LogLevel, o.LogLevel)
	setString(&c.Port, o.Port)
	setString(&c.AlgoliaAppID, o.AlgoliaAppID)
	setString(&c.AlgoliaSearchKey, o.AlgoliaSearchKey)
	setString(&c.AlgoliaWriteKey, o.AlgoliaWriteKey)
	setString(&c.AlgoliaIndex, o.AlgoliaIndex)
	setString(&c.VertexModel, o.VertexModel)
	setString(&c.VertexAPIKey, o.VertexAPIKey)
	setString(&c.SyncCollection, o.SyncCollection)
	if o.ModelTimeout > 0 {
		c.ModelTimeout = o.ModelTimeout
	}
	if o.IndexTimeout > 0 {
		c.IndexTimeout = o.IndexTimeout
	}
}

// Validate checks the credentials the search agent cannot run without.
func (c *Config) Validate() error {
	if c.AlgoliaAppID == "" || c.AlgoliaSearchKey == "" {
		return errs.NewConfigError("ALGOLIA_ID", "missing Algolia configuration: ALGOLIA_ID and ALGOLIA_SEARCH_KEY are required")
	}
	if c.ProjectID == "" {
		return errs.NewConfigError("PROJECTID", "missing model credentials: PROJECTID is required for Vertex AI")
	}
	if c.AlgoliaIndex == "" {
		return errs.NewConfigError("ALGOLIA_INDEX_NAME", "index name must not be empty")
	}
	return nil
}

// ValidateSync additionally requires the index write key.
func (c *Config) ValidateSync() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.AlgoliaWriteKey == "" {
		return errs.NewConfigError("ALGOLIA_WRITE_KEY", "missing Algolia write key: ALGOLIA_WRITE_KEY is required for index sync")
	}
	return nil
}

// SecretRefs returns pointers to the credential fields that may hold sm:// references.
func (c *Config) SecretRefs() map[string]*string {
	refs := map[string]*string{}
	for name, field := range map[string]*string{
		"ALGOLIA_SEARCH_KEY": &c.AlgoliaSearchKey,
		"ALGOLIA_WRITE_KEY":  &c.AlgoliaWriteKey,
		"GEMINI_API_KEY":     &c.VertexAPIKey,
	} {
		if strings.HasPrefix(*field, SecretRefPrefix) {
			refs[name] = field
		}
	}
	return refs
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
