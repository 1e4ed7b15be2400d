package memory

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/store"
)

type Options struct {
	Clock Clock
	// IDs returns the id generator for a record prefix. Defaults to
	// store.PrefixedUUID; tests pass store.Sequence for stable ids.
	IDs func(prefix string) store.IDFunc
}

func (o Options) clock() Clock {
	if o.Clock == nil {
		return time.Now
	}
	return o.Clock
}

func (o Options) ids(prefix string) store.IDFunc {
	if o.IDs == nil {
		return store.PrefixedUUID(prefix)
	}
	return o.IDs(prefix)
}
