package ot

import (
	"encoding/json"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
)

// PatchOp is one RFC 6902 operation.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// ToJSONPatch renders ops as an RFC 6902 patch.  Each json0 op maps to
// exactly one patch operation.
func ToJSONPatch(ops []Op) []PatchOp {
	res := make([]PatchOp, 0, len(ops))
	for _, o := range ops {
		ptr := Pointer(o.P)
		var ins, del any
		if o.IsList() {
			ins, del = o.LI, o.LD
		} else {
			ins, del = o.OI, o.OD
		}
		switch {
		case ins != nil && del != nil:
			res = append(res, PatchOp{Op: "replace", Path: ptr, Value: ins})
		case ins != nil:
			res = append(res, PatchOp{Op: "add", Path: ptr, Value: ins})
		case del != nil:
			res = append(res, PatchOp{Op: "remove", Path: ptr})
		}
	}
	return res
}

// Pointer renders p as a json pointer.
func Pointer(p Path) string {
	buf := strings.Builder{}
	for _, x := range p {
		buf.WriteByte('/')
		switch y := x.(type) {
		case int:
			buf.WriteString(strconv.Itoa(y))
		case string:
			y = strings.ReplaceAll(y, "~", "~0")
			buf.WriteString(strings.ReplaceAll(y, "/", "~1"))
		}
	}
	return buf.String()
}

// ApplyJSONPatch applies ops, translated to RFC 6902, to the json
// document doc.
func ApplyJSONPatch(doc []byte, ops []Op) ([]byte, error) {
	d, err := json.Marshal(ToJSONPatch(ops))
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, err
	}
	return patch.Apply(doc)
}
