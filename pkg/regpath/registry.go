package regpath

import (
	"sync/atomic"

	"github.com/joshuapare/regpath/pkg/types"
)

var defaultRegistry atomic.Pointer[types.Registry]

func init() {
	reg := nativeRegistry()
	defaultRegistry.Store(&reg)
}

// DefaultRegistry is the store New and Home use: the Windows registry on
// Windows, and elsewhere a store that fails every operation with
// ErrUnsupported until SetDefaultRegistry replaces it.
func DefaultRegistry() types.Registry {
	return *defaultRegistry.Load()
}

// SetDefaultRegistry replaces the store used by later calls to New and
// Home. Existing Paths keep the store they were built with.
func SetDefaultRegistry(reg types.Registry) {
	if reg == nil {
		reg = nativeRegistry()
	}
	defaultRegistry.Store(&reg)
}
