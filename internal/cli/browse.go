package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/folio/pkg/tree"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// withWorkspace opens the workspace, runs fn and closes it, keeping the
// first error.
func (a *app) withWorkspace(fn func(w *workspace) error) (err error) {
	w, err := a.openWorkspace()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(w)
}

// folderArg resolves an optional folder argument, defaulting to the root.
func folderArg(w *workspace, args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	return w.resolveFolder(args[0])
}

func newLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [folder]",
		Short: "List the contents of a folder, folders first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(w *workspace) error {
				id, err := folderArg(w, args)
				if err != nil {
					return err
				}
				nav := w.org.Navigation()
				if id != "" {
					nav.Enter(id)
				}
				folders, files := nav.Listing()
				listing := append(folders, files...)
				if a.flags.jsonMode {
					if listing == nil {
						listing = []types.Node{}
					}
					return printJSON(out(cmd), listing)
				}
				if len(listing) == 0 {
					fmt.Fprintln(out(cmd), "(empty)")
					return nil
				}
				printListing(out(cmd), listing, nav.ChildCount)
				return nil
			})
		},
	}
}

// treeEntry is the JSON form of one row of "folio tree".
type treeEntry struct {
	Depth int        `json:"depth"`
	Node  types.Node `json:"node"`
}

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [folder]",
		Short: "Print the folder hierarchy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(w *workspace) error {
				id, err := folderArg(w, args)
				if err != nil {
					return err
				}
				entries := []treeEntry{}
				tree.Walk(w.org.Nodes(), id, func(n types.Node, depth int) {
					entries = append(entries, treeEntry{Depth: depth, Node: n})
				})
				if a.flags.jsonMode {
					return printJSON(out(cmd), entries)
				}
				for _, e := range entries {
					fmt.Fprintf(out(cmd), "%s%s\n", indent(e.Depth), displayName(e.Node))
				}
				return nil
			})
		},
	}
}

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path <ref>",
		Short: "Print the breadcrumb trail of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(w *workspace) error {
				n, err := w.resolveNode(args[0])
				if err != nil {
					return err
				}
				nodes := w.org.Nodes()
				crumbs := tree.Breadcrumbs(nodes, n.Parent())
				if a.flags.jsonMode {
					if crumbs == nil {
						crumbs = []types.Node{}
					}
					return printJSON(out(cmd), crumbs)
				}
				fmt.Fprintln(out(cmd), tree.PathOf(nodes, n.ID))
				return nil
			})
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <ref>",
		Short: "Display a node with its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(w *workspace) error {
				n, err := w.resolveNode(args[0])
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return printJSON(out(cmd), n)
				}
				o := out(cmd)
				fmt.Fprintf(o, "ID:        %s\n", n.ID)
				fmt.Fprintf(o, "Type:      %s\n", n.Kind)
				fmt.Fprintf(o, "Path:      %s\n", tree.PathOf(w.org.Nodes(), n.ID))
				fmt.Fprintf(o, "Title:     %s\n", n.Title)
				fmt.Fprintf(o, "Subtitle:  %s\n", n.Subtitle)
				fmt.Fprintf(o, "Updated:   %s (%s)\n", n.UpdatedAt.Format("2006-01-02 15:04:05"), humanize.Time(n.UpdatedAt))
				if len(n.Tags) > 0 {
					fmt.Fprintf(o, "Tags:      %s\n", strings.Join(n.Tags, ", "))
				}
				if n.IsFolder() {
					fmt.Fprintf(o, "Children:  %d\n", w.org.Navigation().ChildCount(n.ID))
					return nil
				}
				fmt.Fprintf(o, "\n%s\n", n.Content)
				return nil
			})
		},
	}
}

// collectionInfo is one row of "folio collections".
type collectionInfo struct {
	Key   string `json:"key"`
	Nodes int    `json:"nodes"`
	Pages bool   `json:"pages"`
}

func newCollectionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List page collections and other stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(w *workspace) error {
				stored, err := w.store.Keys()
				if err != nil {
					return sysErr("list keys", err)
				}
				var rows []collectionInfo
				seen := map[string]bool{}
				for _, key := range types.PageCollections {
					seen[key] = true
					rows = append(rows, collectionInfo{Key: key, Nodes: len(w.repo.Load(key)), Pages: true})
				}
				for _, key := range stored {
					if !seen[key] {
						rows = append(rows, collectionInfo{Key: key})
					}
				}
				if a.flags.jsonMode {
					return printJSON(out(cmd), rows)
				}
				current := a.collectionKey()
				for _, r := range rows {
					mark := " "
					if r.Key == current {
						mark = "*"
					}
					if r.Pages {
						fmt.Fprintf(out(cmd), "%s %s (%s %s)\n", mark, r.Key, humanize.Comma(int64(r.Nodes)), plural(r.Nodes, "node", "nodes"))
					} else {
						fmt.Fprintf(out(cmd), "%s %s\n", mark, r.Key)
					}
				}
				return nil
			})
		},
	}
}
