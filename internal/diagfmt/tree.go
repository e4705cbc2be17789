package diagfmt

import (
	"encoding/json"
	"io"

	"cocomig/internal/cst"
)

// FormatTreePretty prints an indented outline of the syntax tree.
func FormatTreePretty(w io.Writer, root *cst.Node, withTrivia bool) error {
	return cst.Dump(w, root, withTrivia)
}

// FormatTreeJSON prints the syntax tree as nested JSON objects.
func FormatTreeJSON(w io.Writer, root *cst.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cst.Snapshot(root))
}
