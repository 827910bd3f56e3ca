package menu

import (
	"fmt"
	"io"
)

// ReportError prints message followed by the detail of err.
func ReportError(w io.Writer, message string, err error) {
	fmt.Fprintln(w, message)
	fmt.Fprintf(w, "Error detail: %v\n", err)
}
