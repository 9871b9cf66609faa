package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/folio/pkg/tree"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report integrity problems in the collection",
		Long: "Check reports duplicate or empty ids, parents that do not exist or are\n" +
			"pages, and parent chains that loop. Exits 1 when problems are found.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(w *workspace) error {
				problems := w.org.Check()
				if a.flags.jsonMode {
					if problems == nil {
						problems = []tree.Problem{}
					}
					if err := printJSON(out(cmd), problems); err != nil {
						return err
					}
				} else {
					for _, p := range problems {
						fmt.Fprintln(out(cmd), p.String())
					}
				}
				if len(problems) > 0 {
					return userErr("%d %s in %s", len(problems), plural(len(problems), "problem", "problems"), w.org.Key())
				}
				if !a.flags.jsonMode {
					fmt.Fprintf(out(cmd), "%s: %d nodes, ok\n", w.org.Key(), len(w.org.Nodes()))
				}
				return nil
			})
		},
	}
}
