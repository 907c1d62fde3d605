//go:build windows

package regpath

import (
	"github.com/joshuapare/regpath/pkg/registry/winreg"
	"github.com/joshuapare/regpath/pkg/types"
)

func nativeRegistry() types.Registry {
	return winreg.New()
}
