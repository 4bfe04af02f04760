// Package render writes solve reports for humans and machines.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/skiroute/skiing"
)

// ErrUnknownFormat indicates an unsupported output format name.
var ErrUnknownFormat = errors.New("render: unknown format")

// Formats lists the accepted format names.
var Formats = []string{"text", "json", "yaml"}

// Report writes rep to w in the named format.
func Report(w io.Writer, rep *skiing.Report, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return text(w, rep)
	default:
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}

func text(w io.Writer, rep *skiing.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "map %dx%d, %d roots, longest run %d segments, %d route(s) in %s\n",
		rep.Width, rep.Height, rep.Roots, rep.MaxDistance, len(rep.Routes), rep.Elapsed)
	for i, r := range rep.Routes {
		fmt.Fprintf(&b, "route %d: length=%d drop=%d\n", i+1, r.PathLength, r.Drop)
		fmt.Fprintf(&b, "  cells:  %s\n", joinInts(r.PathIndices))
		fmt.Fprintf(&b, "  values: %s\n", joinInts(r.PathValues))
	}
	_, err := io.WriteString(w, b.String())

	return err
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " → ")
}
