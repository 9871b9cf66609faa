package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/folio/internal/paths"
	"github.com/mesh-intelligence/folio/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend    = "backend"
	cfgKeyDataDir    = "data_dir"
	cfgKeyCollection = "collection"
	cfgKeyLogLevel   = "log_level"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# Folio configuration

# Storage backend: sqlite, bolt, files or memory
backend: sqlite

# Data directory (optional; overridable by --data-dir or FOLIO_DATA_DIR)
# data_dir:

# Collection opened when --collection is not given
collection: self

# Log level: debug, info, warn, error (empty disables logging)
# log_level:
`

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. FOLIO_BACKEND, FOLIO_COLLECTION and
// FOLIO_LOG_LEVEL override the file.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyCollection, defaultCollection)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("FOLIO")
	for _, key := range []string{cfgKeyBackend, cfgKeyCollection, cfgKeyLogLevel} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates config.yaml if it does not exist.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// storeConfig resolves the backend and data directory, flags first.
func (a *app) storeConfig() (types.Config, error) {
	backend := a.flags.backend
	if backend == "" {
		backend = a.cfg.GetString(cfgKeyBackend)
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, err
	}
	return types.Config{Backend: backend, DataDir: dataDir}, nil
}

// collectionKey resolves the collection to operate on, flag first.
func (a *app) collectionKey() string {
	name := a.flags.collection
	if name == "" {
		name = a.cfg.GetString(cfgKeyCollection)
	}
	if name == "" {
		name = defaultCollection
	}
	return types.ResolveCollection(name)
}
