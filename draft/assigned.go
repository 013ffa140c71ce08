package draft

import "slices"

// assigned records which keys of a container were set (true) or deleted
// (false), in first assignment order.
type assigned struct {
	keys []string
	vals map[string]bool
}

func (a *assigned) mark(k string, v bool) {
	if a.vals == nil {
		a.vals = map[string]bool{}
	}
	if _, ok := a.vals[k]; !ok {
		a.keys = append(a.keys, k)
	}
	a.vals[k] = v
}

// forget drops k, so that a later mark of k goes last.
func (a *assigned) forget(k string) {
	if _, ok := a.vals[k]; !ok {
		return
	}
	delete(a.vals, k)
	a.keys = slices.DeleteFunc(a.keys, func(x string) bool { return x == k })
}

func (a *assigned) has(k string) bool {
	_, ok := a.vals[k]
	return ok
}

func (a *assigned) each(f func(k string, v bool)) {
	for _, k := range a.keys {
		f(k, a.vals[k])
	}
}
