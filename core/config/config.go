package config

import (
	"reflect"
	"strings"

	"sheet-graph/core/database"
	"sheet-graph/core/graph"
	"sheet-graph/core/llm"
	"sheet-graph/core/logger"
	"sheet-graph/core/registry"
	"sheet-graph/core/server"
	"sheet-graph/core/sheet/gsheets"
	"sheet-graph/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Graph holds configuration for the Neo4j graph store.
	Graph graph.Config `mapstructure:"graph"`
	// Storage holds configuration for the object storage holding uploaded workbooks.
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the ingestion history database.
	Database database.Config `mapstructure:"database"`
	// Sheets holds configuration for the Google Sheets API.
	Sheets gsheets.Config `mapstructure:"sheets"`
	// LLM holds configuration for query generation.
	LLM llm.Config `mapstructure:"llm"`
	// Registry holds configuration for the block registry.
	Registry registry.Config `mapstructure:"registry"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. GRAPH_URI -> graph.uri)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
