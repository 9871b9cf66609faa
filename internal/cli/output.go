package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/mesh-intelligence/folio/pkg/types"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysErr("marshal JSON", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// displayName renders a node title, with a trailing separator for folders.
func displayName(n types.Node) string {
	if n.IsFolder() {
		return n.Title + "/"
	}
	return n.Title
}

// printListing writes one row per node: name, subtitle or item count, and
// relative update time.
func printListing(w io.Writer, nodes []types.Node, childCount func(id string) int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, n := range nodes {
		detail := n.Subtitle
		if n.IsFolder() {
			detail = humanize.Comma(int64(childCount(n.ID))) + " " + plural(childCount(n.ID), "item", "items")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", displayName(n), detail, humanize.Time(n.UpdatedAt))
	}
	_ = tw.Flush()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// indent returns the prefix for a tree row at depth.
func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
