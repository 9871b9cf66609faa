package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/folio/pkg/organizer"
	"github.com/mesh-intelligence/folio/pkg/tree"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// errQuit ends the shell loop.
var errQuit = errors.New("quit")

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse and edit a collection interactively",
		Long: "Shell keeps the current folder, the open page and any drag in progress\n" +
			"between commands. Type \"help\" for the command list.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(w *workspace) error {
				sh := &shell{w: w, in: bufio.NewReader(cmd.InOrStdin()), out: out(cmd)}
				return sh.run()
			})
		},
	}
}

type shell struct {
	w   *workspace
	in  *bufio.Reader
	out io.Writer
}

// shellCommand is one shell verb. args excludes the verb.
type shellCommand struct {
	usage string
	help  string
	min   int
	run   func(s *shell, args []string) error
}

var shellCommands map[string]shellCommand

func init() {
	shellCommands = map[string]shellCommand{
		"help":     {usage: "help", help: "list commands", run: (*shell).help},
		"ls":       {usage: "ls", help: "list the current folder", run: (*shell).ls},
		"tree":     {usage: "tree", help: "print the hierarchy below the current folder", run: (*shell).tree},
		"pwd":      {usage: "pwd", help: "print the current folder", run: (*shell).pwd},
		"cd":       {usage: "cd <folder>|..|/", help: "change folder", min: 1, run: (*shell).cd},
		"new":      {usage: "new <title>", help: "create a page here and open it", min: 1, run: (*shell).newFile},
		"mkdir":    {usage: "mkdir <title>", help: "create a folder here", min: 1, run: (*shell).newFolder},
		"open":     {usage: "open <page>", help: "open a page, saving the one already open", min: 1, run: (*shell).open},
		"show":     {usage: "show [ref]", help: "show a node, or the open page", run: (*shell).show},
		"title":    {usage: "title <text>", help: "set the open page title", min: 1, run: (*shell).setTitle},
		"subtitle": {usage: "subtitle <text>", help: "set the open page subtitle", min: 1, run: (*shell).setSubtitle},
		"write":    {usage: "write <text>", help: "replace the open page content", min: 1, run: (*shell).setContent},
		"save":     {usage: "save", help: "save the open page", run: (*shell).save},
		"close":    {usage: "close", help: "save and close the open page", run: (*shell).closePage},
		"mv":       {usage: "mv <ref> <folder>", help: "move a node into a folder", min: 2, run: (*shell).mv},
		"drag":     {usage: "drag <ref>", help: "start dragging a node", min: 1, run: (*shell).drag},
		"hover":    {usage: "hover <folder>", help: "hover the drag over a folder", min: 1, run: (*shell).hover},
		"leave":    {usage: "leave", help: "stop hovering", run: (*shell).leave},
		"drop":     {usage: "drop [folder]", help: "drop onto a folder, default the hovered one", run: (*shell).drop},
		"abort":    {usage: "abort", help: "cancel the drag", run: (*shell).abort},
		"rm":       {usage: "rm <ref>", help: "delete a node after confirmation", min: 1, run: (*shell).rm},
		"status":   {usage: "status", help: "show the open page and drag state", run: (*shell).status},
		"check":    {usage: "check", help: "report integrity problems", run: (*shell).check},
		"exit":     {usage: "exit", help: "save and leave the shell", run: func(*shell, []string) error { return errQuit }},
	}
	shellCommands["quit"] = shellCommands["exit"]
}

func (s *shell) run() error {
	for {
		fmt.Fprintf(s.out, "folio:%s> ", s.cwd())
		line, err := s.in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(s.out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return sysErr("read input", err)
		}
		if err := s.exec(splitShellWords(line)); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(s.out, "error:", err)
		}
	}
}

func (s *shell) exec(words []string) error {
	if len(words) == 0 {
		return nil
	}
	c, ok := shellCommands[words[0]]
	if !ok {
		return fmt.Errorf("unknown command %q (try help)", words[0])
	}
	args := words[1:]
	if len(args) < c.min {
		return fmt.Errorf("usage: %s", c.usage)
	}
	return c.run(s, args)
}

// cwd renders the current folder path for the prompt.
func (s *shell) cwd() string {
	cur := s.w.org.Navigation().Current()
	if cur == "" {
		return tree.PathSeparator
	}
	return tree.PathOf(s.w.org.Nodes(), cur)
}

func (s *shell) help(args []string) error {
	names := make([]string, 0, len(shellCommands))
	for name := range shellCommands {
		if name != "quit" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		c := shellCommands[name]
		fmt.Fprintf(s.out, "  %-20s %s\n", c.usage, c.help)
	}
	return nil
}

func (s *shell) ls(args []string) error {
	nav := s.w.org.Navigation()
	folders, files := nav.Listing()
	listing := append(folders, files...)
	if len(listing) == 0 {
		fmt.Fprintln(s.out, "(empty)")
		return nil
	}
	printListing(s.out, listing, nav.ChildCount)
	return nil
}

func (s *shell) tree(args []string) error {
	tree.Walk(s.w.org.Nodes(), s.w.org.Navigation().Current(), func(n types.Node, depth int) {
		fmt.Fprintf(s.out, "%s%s\n", indent(depth), displayName(n))
	})
	return nil
}

func (s *shell) pwd(args []string) error {
	fmt.Fprintln(s.out, s.cwd())
	return nil
}

func (s *shell) cd(args []string) error {
	nav := s.w.org.Navigation()
	switch args[0] {
	case "..":
		nav.Up()
		return nil
	case tree.PathSeparator:
		nav.GotoBreadcrumb("")
		return nil
	}
	id, err := s.w.resolveFolder(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if id == "" {
		nav.GotoBreadcrumb("")
		return nil
	}
	nav.Enter(id)
	return nil
}

func (s *shell) create(kind types.Kind, args []string) error {
	n, ok, err := s.w.org.Create(kind, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("title must not be blank")
	}
	fmt.Fprintf(s.out, "created %s\n", displayName(n))
	return nil
}

func (s *shell) newFile(args []string) error   { return s.create(types.KindFile, args) }
func (s *shell) newFolder(args []string) error { return s.create(types.KindFolder, args) }

func (s *shell) open(args []string) error {
	n, err := s.w.resolveNode(strings.Join(args, " "))
	if err != nil {
		return err
	}
	ok, err := s.w.org.Editor().Open(n)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%q is a folder", n.Title)
	}
	return nil
}

func (s *shell) show(args []string) error {
	var n types.Node
	switch ed := s.w.org.Editor(); {
	case len(args) > 0:
		var err error
		if n, err = s.w.resolveNode(strings.Join(args, " ")); err != nil {
			return err
		}
	case ed.Active():
		n = ed.Buffer()
	default:
		return errors.New("no page open")
	}
	fmt.Fprintf(s.out, "%s\n%s\n\n%s\n", displayName(n), n.Subtitle, n.Content)
	return nil
}

// editing runs fn when a page is open.
func (s *shell) editing(fn func()) error {
	if !s.w.org.Editor().Active() {
		return errors.New("no page open")
	}
	fn()
	return nil
}

func (s *shell) setTitle(args []string) error {
	return s.editing(func() { s.w.org.Editor().SetTitle(strings.Join(args, " ")) })
}

func (s *shell) setSubtitle(args []string) error {
	return s.editing(func() { s.w.org.Editor().SetSubtitle(strings.Join(args, " ")) })
}

func (s *shell) setContent(args []string) error {
	return s.editing(func() { s.w.org.Editor().SetContent(strings.Join(args, " ")) })
}

func (s *shell) save(args []string) error {
	if err := s.editing(func() {}); err != nil {
		return err
	}
	return s.w.org.Editor().Flush()
}

func (s *shell) closePage(args []string) error {
	if err := s.editing(func() {}); err != nil {
		return err
	}
	return s.w.org.Editor().Close()
}

func (s *shell) mv(args []string) error {
	if err := s.drag(args[:1]); err != nil {
		return err
	}
	return s.drop(args[1:])
}

func (s *shell) drag(args []string) error {
	n, err := s.w.resolveNode(args[0])
	if err != nil {
		return err
	}
	s.w.org.Drag().Start(n.ID)
	return nil
}

func (s *shell) hover(args []string) error {
	id, err := s.w.resolve(args[0])
	if err != nil {
		return err
	}
	if !s.w.org.Drag().Hover(id) {
		return fmt.Errorf("cannot drop here (%s)", s.w.org.Drag().State())
	}
	return nil
}

func (s *shell) leave(args []string) error {
	s.w.org.Drag().Leave()
	return nil
}

func (s *shell) abort(args []string) error {
	s.w.org.Drag().Abort()
	return nil
}

func (s *shell) drop(args []string) error {
	d := s.w.org.Drag()
	if d.State() == organizer.DragIdle {
		return errors.New("nothing is being dragged")
	}
	target := d.Target()
	if len(args) > 0 {
		id, err := s.w.resolve(args[0])
		if err != nil {
			d.Abort()
			return err
		}
		target = id
	}
	moved, err := d.Drop(target)
	if err != nil {
		return err
	}
	if !moved {
		return errors.New("move rejected: target must be a folder outside the dragged node")
	}
	return nil
}

func (s *shell) rm(args []string) error {
	n, err := s.w.resolveNode(strings.Join(args, " "))
	if err != nil {
		return err
	}
	removed, err := s.w.org.Delete(n.ID, promptConfirmer(s.in, s.out))
	if err != nil {
		return err
	}
	if removed == 0 {
		fmt.Fprintln(s.out, "cancelled")
		return nil
	}
	fmt.Fprintf(s.out, "deleted %d %s\n", removed, plural(removed, "node", "nodes"))
	return nil
}

func (s *shell) status(args []string) error {
	ed := s.w.org.Editor()
	if ed.Active() {
		fmt.Fprintf(s.out, "open: %s\n", ed.Buffer().Title)
	} else {
		fmt.Fprintln(s.out, "open: -")
	}
	d := s.w.org.Drag()
	fmt.Fprintf(s.out, "drag: %s", d.State())
	if src, ok := s.w.org.Node(d.Source()); ok {
		fmt.Fprintf(s.out, " %s", src.Title)
	}
	if dst, ok := s.w.org.Node(d.Target()); ok {
		fmt.Fprintf(s.out, " -> %s", dst.Title)
	}
	fmt.Fprintln(s.out)
	return nil
}

func (s *shell) check(args []string) error {
	problems := s.w.org.Check()
	for _, p := range problems {
		fmt.Fprintln(s.out, p.String())
	}
	if len(problems) == 0 {
		fmt.Fprintln(s.out, "ok")
	}
	return nil
}
