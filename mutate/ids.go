package mutate

import (
	"strconv"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// IDFunc generates ids for new nodes.
type IDFunc func() string

const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomID returns a random 10 character alphanumeric id.
func RandomID() string {
	id, err := nanoid.Generate(idAlphabet, 10)
	if err != nil {
		panic(err)
	}
	return id
}

// Sequence returns an IDFunc generating prefix1, prefix2, ...
func Sequence(prefix string) IDFunc {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}
