package store

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDFunc produces a fresh record identifier.
type IDFunc func() string

// PrefixedUUID yields ids such as "pay_2f1c...".
func PrefixedUUID(prefix string) IDFunc {
	return func() string {
		return prefix + uuid.NewString()
	}
}

// Sequence yields prefix1, prefix2, ... and is safe for concurrent use.
func Sequence(prefix string) IDFunc {
	var n atomic.Int64
	return func() string {
		return prefix + strconv.FormatInt(n.Add(1), 10)
	}
}
