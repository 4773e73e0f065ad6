// Package config binds the engine's settings from hedgegen.yaml and
// HEDGEGEN_* environment variables. Every key has a default; only the
// migration path insists on a database being configured.
package config

import (
	"errors"

	"github.com/spf13/viper"
)

// ErrNoDatabase aborts the migration path when no target store is
// configured. Generation never needs a database.
var ErrNoDatabase = errors.New("no database configured: set `database` in hedgegen.yaml or HEDGEGEN_DATABASE")

// Config is the resolved engine configuration.
type Config struct {
	// ModelsDir holds the domain type declarations.
	ModelsDir string `mapstructure:"models_dir"`
	// ModelsImport is the import path generated code uses to reach them.
	ModelsImport string `mapstructure:"models_import"`
	// EndpointsFile is the optional endpoint descriptor file.
	EndpointsFile string `mapstructure:"endpoints_file"`

	// GenDir receives the generated Go packages (rows, admin, serde,
	// client, routes).
	GenDir string `mapstructure:"gen_dir"`
	// GenImport is the import path corresponding to GenDir.
	GenImport string `mapstructure:"gen_import"`
	// HandlersDir receives write-once handler stubs.
	HandlersDir string `mapstructure:"handlers_dir"`
	// HandlersImport is the import path corresponding to HandlersDir.
	HandlersImport string `mapstructure:"handlers_import"`
	// SchemaFile is where the relational DDL lands.
	SchemaFile string `mapstructure:"schema_file"`
	// OpenAPIFile is where the API document lands.
	OpenAPIFile string `mapstructure:"openapi_file"`

	// MigrationsDir holds the numbered migration files.
	MigrationsDir string `mapstructure:"migrations_dir"`
	// Database is the path of the target SQLite store.
	Database string `mapstructure:"database"`

	// PageSize bounds every select-all statement.
	PageSize int `mapstructure:"page_size"`
}

// Load reads hedgegen.yaml from the working directory (optional) and the
// environment, and returns the resolved configuration.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("hedgegen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("HEDGEGEN")
	v.AutomaticEnv()

	v.SetDefault("models_dir", "models")
	v.SetDefault("models_import", "app/models")
	v.SetDefault("endpoints_file", "endpoints.yaml")
	v.SetDefault("gen_dir", "gen")
	v.SetDefault("gen_import", "app/gen")
	v.SetDefault("handlers_dir", "handlers")
	v.SetDefault("handlers_import", "app/handlers")
	v.SetDefault("schema_file", "gen/schema.sql")
	v.SetDefault("openapi_file", "gen/openapi.json")
	v.SetDefault("migrations_dir", "migrations")
	v.SetDefault("database", "")
	v.SetDefault("page_size", 50)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
		// Config file is optional; defaults and env cover everything.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
