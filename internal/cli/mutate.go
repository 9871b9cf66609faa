package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/folio/pkg/types"
)

func newNewCmd(a *app, kind types.Kind) *cobra.Command {
	var in string
	use, short := "new <title>", "Create a page"
	if kind == types.KindFolder {
		use, short = "mkdir <title>", "Create a folder"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return a.withWorkspace(func(w *workspace) error {
				parent, err := w.resolveFolder(in)
				if err != nil {
					return err
				}
				if parent != "" {
					w.org.Navigation().Enter(parent)
				}
				n, ok, err := w.org.Create(kind, title)
				if err != nil {
					return sysErr("create", err)
				}
				if !ok {
					return userErr("title must not be blank")
				}
				if a.flags.jsonMode {
					return printJSON(out(cmd), n)
				}
				fmt.Fprintln(out(cmd), n.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "parent folder (default: root)")
	return cmd
}

func newMvCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <ref> <folder>",
		Short: "Move a page or folder into another folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(w *workspace) error {
				src, err := w.resolveNode(args[0])
				if err != nil {
					return err
				}
				dst, err := w.resolveNode(args[1])
				if err != nil {
					return err
				}
				drag := w.org.Drag()
				drag.Start(src.ID)
				if !drag.Hover(dst.ID) {
					drag.Abort()
					return userErr("cannot move %q into %q", src.Title, dst.Title)
				}
				if _, err := drag.Drop(dst.ID); err != nil {
					return sysErr("move", err)
				}
				return nil
			})
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <ref>",
		Short: "Delete a page, or a folder with everything inside it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(w *workspace) error {
				n, err := w.resolveNode(args[0])
				if err != nil {
					return err
				}
				removed, err := w.org.Delete(n.ID, confirmer(yes, cmd.InOrStdin(), cmd.ErrOrStderr()))
				if err != nil {
					return sysErr("delete", err)
				}
				if removed == 0 {
					fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled")
					return nil
				}
				fmt.Fprintf(out(cmd), "Deleted %d %s\n", removed, plural(removed, "node", "nodes"))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var title, subtitle, content, contentFile string
	cmd := &cobra.Command{
		Use:   "edit <ref>",
		Short: "Change the title, subtitle or content of a page",
		Long: "Open the page in an editor session, apply the given fields and save.\n" +
			"--content-file - reads the content from standard input.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if contentFile != "" {
				data, err := readContent(cmd.InOrStdin(), contentFile)
				if err != nil {
					return userErr("read content: %s", err)
				}
				content = data
			}
			changed := f.Changed("title") || f.Changed("subtitle") || f.Changed("content") || contentFile != ""
			if !changed {
				return userErr("nothing to change: pass --title, --subtitle, --content or --content-file")
			}
			return a.withWorkspace(func(w *workspace) error {
				n, err := w.resolveNode(args[0])
				if err != nil {
					return err
				}
				ed := w.org.Editor()
				ok, err := ed.Open(n)
				if err != nil {
					return sysErr("open", err)
				}
				if !ok {
					return userErr("%q is a folder; only pages can be edited", n.Title)
				}
				if f.Changed("title") {
					ed.SetTitle(title)
				}
				if f.Changed("subtitle") {
					ed.SetSubtitle(subtitle)
				}
				if f.Changed("content") || contentFile != "" {
					ed.SetContent(content)
				}
				if err := ed.Close(); err != nil {
					return sysErr("save", err)
				}
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&title, "title", "", "new title")
	f.StringVar(&subtitle, "subtitle", "", "new subtitle")
	f.StringVar(&content, "content", "", "new content")
	f.StringVar(&contentFile, "content-file", "", "read new content from a file")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
	return cmd
}

// readContent reads a file, or r when path is "-".
func readContent(r io.Reader, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path)
	}
	return string(data), err
}
