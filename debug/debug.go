package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Mutate bool
	Draft  bool
	Ops    bool
	Apply  bool
}

var d *debug

func init() {
	d = load(os.Getenv)
}

func load(getenv func(string) string) *debug {
	return &debug{
		Mutate: boolEnv(getenv, "FLOW_DEBUG_MUTATE"),
		Draft:  boolEnv(getenv, "FLOW_DEBUG_DRAFT"),
		Ops:    boolEnv(getenv, "FLOW_DEBUG_OPS"),
		Apply:  boolEnv(getenv, "FLOW_DEBUG_APPLY"),
	}
}

func boolEnv(getenv func(string) string, v string) bool {
	x := getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Mutate reports whether graph mutations log their arguments and
// validation failures.
func Mutate() bool {
	return d.Mutate
}

// Draft reports whether draft finalization logs the generic patches.
func Draft() bool {
	return d.Draft
}
func Ops() bool {
	return d.Ops
}
func Apply() bool {
	return d.Apply
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
