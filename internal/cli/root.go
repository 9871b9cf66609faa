// Package cli implements the folio command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/folio/internal/paths"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// defaultCollection is used when neither flag nor config names one.
const defaultCollection = "self"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir  string
	dataDir    string
	backend    string
	collection string
	jsonMode   bool
	verbose    bool
}

// app is the state shared by one invocation of the root command.
type app struct {
	flags  rootFlags
	cfg    *viper.Viper
	logger *zap.Logger
}

// NewRootCmd creates the top-level "folio" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "folio",
		Short: "Organize pages and folders in named collections",
		Long: "Folio keeps a tree of pages and folders per collection, stored as one\n" +
			"flat list with parent references in a key-value store.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: sqlite, bolt, files, memory")
	pf.StringVarP(&a.flags.collection, "collection", "c", "", "collection key or alias (self, knowledge, skills)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newCollectionsCmd(a),
		newLsCmd(a),
		newTreeCmd(a),
		newPathCmd(a),
		newShowCmd(a),
		newNewCmd(a, types.KindFile),
		newNewCmd(a, types.KindFolder),
		newMvCmd(a),
		newRmCmd(a),
		newEditCmd(a),
		newCheckCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newShellCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "folio:", err)
		os.Exit(exitCode(err))
	}
}

// setup loads configuration and builds the logger before any subcommand.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr("resolve config dir", err)
	}
	a.cfg, err = loadConfig(configDir)
	if err != nil {
		return sysErr("load config", err)
	}
	a.logger, err = newLogger(a.cfg.GetString(cfgKeyLogLevel), a.flags.verbose, cmd.ErrOrStderr())
	if err != nil {
		return userErr("%s", err)
	}
	return nil
}

// cliError carries the process exit code for a failed command.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

// userErr reports a problem with the user's input (exit 1).
func userErr(format string, args ...any) error {
	return &cliError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

// sysErr reports a storage or environment failure (exit 2).
func sysErr(what string, err error) error {
	return &cliError{code: exitSysError, err: fmt.Errorf("%s: %w", what, err)}
}

// exitCode maps an error returned by a command to a process exit code.
// Errors not raised through userErr or sysErr come from cobra argument
// parsing and count as user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

// out returns the command's standard output.
func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
