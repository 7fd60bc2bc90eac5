package renderer

import (
	"fmt"
	"io"
)

// listSection writes a blank line, title and one line per item. Nothing is
// written when items is empty.
func listSection[T any](w io.Writer, title string, items []T, line func(T) string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	for _, it := range items {
		fmt.Fprintln(w, "- "+line(it))
	}
}
