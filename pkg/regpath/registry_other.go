//go:build !windows

package regpath

import (
	"runtime"

	"github.com/joshuapare/regpath/pkg/types"
)

func nativeRegistry() types.Registry {
	return unsupported{}
}

// unsupported stands in for the native registry on hosts without one.
type unsupported struct{}

func (unsupported) Root(root types.RootKey) (types.Key, error) {
	return nil, types.Errorf(types.ErrKindUnsupported, "%s: no native registry on %s", root, runtime.GOOS)
}

func (unsupported) ConnectRemote(computer string, root types.RootKey) (types.Key, error) {
	return nil, types.Errorf(types.ErrKindUnsupported, "%s\\%s: no native registry on %s", computer, root, runtime.GOOS)
}
