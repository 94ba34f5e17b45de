package app

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/specialistvlad/statgridgo/internal/hypothetical"
	"github.com/specialistvlad/statgridgo/internal/registry"
)

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeValues prints every stat as `name = value`, sorted by name.
func writeValues(w io.Writer, reg *registry.Connections) error {
	values := reg.Values()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s = %s\n", name, formatValue(values[name])); err != nil {
			return err
		}
	}
	return nil
}

// writeDiff prints one `name: live -> hypothetical` line per delta. A side
// that has no such stat prints as (new) or (absent).
func writeDiff(w io.Writer, deltas []hypothetical.Delta) error {
	if len(deltas) == 0 {
		_, err := fmt.Fprintln(w, "no changes")
		return err
	}
	for _, d := range deltas {
		live, hyp := formatValue(d.Live), formatValue(d.Hypothetical)
		if d.Added {
			live = "(new)"
		}
		if d.LiveOnly {
			hyp = "(absent)"
		}
		if _, err := fmt.Fprintf(w, "%s: %s -> %s\n", d.Name, live, hyp); err != nil {
			return err
		}
	}
	return nil
}
