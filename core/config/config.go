package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/database"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/logger"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/server"
	"github.com/albrecht-spranger/sisiwaka-touen-importer/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrIncomplete is returned when a required configuration value is missing.
// Commands check for it before any listing or database work begins.
var ErrIncomplete = errors.New("incomplete configuration")

// Config holds all configuration for the importer.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (GCS, S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. STORAGE_BUCKET -> storage.bucket)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks everything a full import run needs.
func (c *Config) Validate() error {
	if err := c.ValidateStorage(); err != nil {
		return err
	}
	return c.ValidateDatabase()
}

// ValidateStorage checks the values required to reach the bucket.
func (c *Config) ValidateStorage() error {
	var missing []string
	if c.Storage.Bucket == "" {
		missing = append(missing, "storage.bucket")
	}
	if c.Storage.AccessKey == "" {
		missing = append(missing, "storage.access_key")
	}
	if c.Storage.SecretKey == "" {
		missing = append(missing, "storage.secret_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

// ValidateDatabase checks the values required to reach the database.
func (c *Config) ValidateDatabase() error {
	if c.Database.Name == "" {
		return fmt.Errorf("%w: missing database.name", ErrIncomplete)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
