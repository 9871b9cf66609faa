package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/folio/internal/paths"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	Backend    string `yaml:"backend"`
	DataDir    string `yaml:"data_dir,omitempty"`
	Collection string `yaml:"collection,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty"`
}

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize folio storage",
		Long: "Write config.yaml with the effective backend and data directory, then\n" +
			"create the storage. An edited config.yaml is kept unless --force is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config.yaml")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, force bool) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr("resolve config dir", err)
	}
	cfg, err := a.storeConfig()
	if err != nil {
		return sysErr("resolve data dir", err)
	}

	file := configFile{
		Backend:    cfg.Backend,
		DataDir:    cfg.DataDir,
		Collection: a.collectionKey(),
		LogLevel:   a.cfg.GetString(cfgKeyLogLevel),
	}
	if err := writeConfig(paths.ConfigFile(configDir), file, force); err != nil {
		return sysErr("write config", err)
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	if err := s.Detach(); err != nil {
		return sysErr("finalize storage", err)
	}

	fmt.Fprintf(out(cmd), "Folio initialized (backend %s, data %s)\n", cfg.Backend, cfg.DataDir)
	return nil
}

// writeConfig writes cfg to path when the file is missing, still holds the
// generated default, or force is set.
func writeConfig(path string, cfg configFile, force bool) error {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && !force && !bytes.Equal(existing, []byte(defaultConfigYAML)):
		return nil
	case err != nil && !os.IsNotExist(err):
		return err
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
