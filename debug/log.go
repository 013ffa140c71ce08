package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

var logOut io.Writer = os.Stderr

// Logf formats msg to stderr.  Composite arguments (maps, slices and
// values that marshal themselves to JSON) are rendered as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch a.(type) {
		case bool, string, float64, int, error, fmt.Stringer:
		case map[string]any, []any, json.Number, json.Marshaler:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		default:
		}
	}
	fmt.Fprintf(logOut, msg, args...)
}
