package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/folio/pkg/repository"
	"github.com/mesh-intelligence/folio/pkg/snapshot"
)

// withRepository attaches the store and runs fn against a repository
// spanning every key.
func (a *app) withRepository(fn func(r *repository.Repository) error) (err error) {
	s, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if derr := s.Detach(); err == nil && derr != nil {
			err = sysErr("detach store", derr)
		}
	}()
	return fn(repository.New(s, repository.WithLogger(a.logger)))
}

func newExportCmd(a *app) *cobra.Command {
	var format, compress string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write every stored key to a snapshot file",
		Long: "Export writes the raw value of every known key and every stored key.\n" +
			"Without a file the snapshot goes to standard output.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := snapshot.ParseFormat(format)
			if err != nil {
				return userErr("%s", err)
			}
			c, err := snapshot.ParseCompression(compress)
			if err != nil {
				return userErr("%s", err)
			}
			opts := snapshot.Options{Format: f, Compression: c}
			return a.withRepository(func(r *repository.Repository) error {
				snap, err := r.Export()
				if err != nil {
					return sysErr("export", err)
				}
				if len(args) == 0 {
					data, err := snapshot.Encode(snap, opts)
					if err != nil {
						return sysErr("encode snapshot", err)
					}
					_, err = out(cmd).Write(data)
					return err
				}
				if err := snapshot.WriteFile(args[0], snap, opts); err != nil {
					return sysErr("write snapshot", err)
				}
				info, err := os.Stat(args[0])
				if err != nil {
					return sysErr("stat snapshot", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d keys to %s (%s)\n",
					len(snap), args[0], humanize.Bytes(uint64(info.Size())))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", string(snapshot.FormatJSON), "snapshot format: json or cbor")
	cmd.Flags().StringVar(&compress, "compress", string(snapshot.CompressionNone), "compression: none, zstd or lz4")
	cmd.Flags().Lookup("compress").NoOptDefVal = string(snapshot.CompressionZstd)
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace stored keys with the values in a snapshot file",
		Long: "Import overwrites every key present in the snapshot. Keys with a null\n" +
			"value are skipped. The format and compression are detected.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.ReadFile(args[0])
			if err != nil {
				return userErr("%s", err)
			}
			prompt := fmt.Sprintf("Replace stored data with %d keys from %s?", len(snap), args[0])
			if !confirmer(yes, cmd.InOrStdin(), cmd.ErrOrStderr()).Confirm(prompt) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled")
				return nil
			}
			return a.withRepository(func(r *repository.Repository) error {
				n, err := r.Import(snap)
				if err != nil {
					return sysErr("import", err)
				}
				fmt.Fprintf(out(cmd), "Imported %d %s\n", n, plural(n, "key", "keys"))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
