package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/folio/pkg/organizer"
	"github.com/mesh-intelligence/folio/pkg/repository"
	"github.com/mesh-intelligence/folio/pkg/store"
	"github.com/mesh-intelligence/folio/pkg/tree"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// workspace bundles an attached store with the repository and organizer
// for the selected collection. The caller must Close it.
type workspace struct {
	store types.Store
	repo  *repository.Repository
	org   *organizer.Organizer
}

// openStore attaches the configured backend.
func (a *app) openStore() (types.Store, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, sysErr("resolve data dir", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, userErr("backend %q: %s (valid: %s)", cfg.Backend, err, strings.Join(types.Backends, ", "))
	}
	s, err := store.Open(cfg, a.logger)
	if err != nil {
		return nil, sysErr("open store", err)
	}
	return s, nil
}

// openWorkspace attaches the store and loads the selected collection.
func (a *app) openWorkspace() (*workspace, error) {
	s, err := a.openStore()
	if err != nil {
		return nil, err
	}
	repo := repository.New(s, repository.WithLogger(a.logger))
	org := organizer.New(a.collectionKey(), repo, organizer.WithLogger(a.logger))
	return &workspace{store: s, repo: repo, org: org}, nil
}

// Close flushes any open editor session and detaches the store.
func (w *workspace) Close() error {
	if err := w.org.Editor().Close(); err != nil {
		_ = w.store.Detach()
		return sysErr("save", err)
	}
	if err := w.store.Detach(); err != nil {
		return sysErr("detach store", err)
	}
	return nil
}

// resolve looks up ref relative to the current folder.
func (w *workspace) resolve(ref string) (string, error) {
	id, ok := tree.Resolve(w.org.Nodes(), w.org.Navigation().Current(), ref)
	if !ok {
		return "", userErr("%q not found", ref)
	}
	return id, nil
}

// resolveNode is resolve for references that must name a node, not the root.
func (w *workspace) resolveNode(ref string) (types.Node, error) {
	id, err := w.resolve(ref)
	if err != nil {
		return types.Node{}, err
	}
	n, ok := w.org.Node(id)
	if !ok {
		return types.Node{}, userErr("%q is the root, not a node", ref)
	}
	return n, nil
}

// resolveFolder is resolve for references that must name a Folder or root.
func (w *workspace) resolveFolder(ref string) (string, error) {
	id, err := w.resolve(ref)
	if err != nil {
		return "", err
	}
	if id != "" && !tree.IsFolder(w.org.Nodes(), id) {
		return "", userErr("%q is not a folder", ref)
	}
	return id, nil
}

// promptConfirmer asks on w and reads a y/N answer from r.
func promptConfirmer(r *bufio.Reader, w io.Writer) organizer.Confirmer {
	return organizer.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(w, "%s [y/N] ", prompt)
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}

// confirmer returns AlwaysConfirm when yes is set, otherwise a prompt on
// the command's streams.
func confirmer(yes bool, in io.Reader, w io.Writer) organizer.Confirmer {
	if yes {
		return organizer.AlwaysConfirm
	}
	return promptConfirmer(bufio.NewReader(in), w)
}
