package regtext

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/joshuapare/regpath/internal/logger"
	"github.com/joshuapare/regpath/pkg/types"
)

// SaveHive writes the subtree under k to file as UTF-16LE .reg text whose
// first section is name. Emulated stores use this for RegSaveKey; the file
// must not exist yet, as with the native call.
func SaveHive(fs billy.Filesystem, k types.Key, name, file string) error {
	if _, err := fs.Stat(file); err == nil {
		return types.Errorf(types.ErrKindAccessDenied, "save hive: %s already exists", file)
	}
	data, err := Export(k, name, ExportOptions{OutputEncoding: EncodingUTF16LE, WithBOM: true})
	if err != nil {
		return fmt.Errorf("save hive %s: %w", file, err)
	}
	logger.Debug("save hive", "key", name, "file", file, "bytes", len(data))
	return util.WriteFile(fs, file, data, 0o644)
}

// LoadHive creates subkey below k from a .reg file whose first section is
// the hive root, as written by SaveHive.
func LoadHive(fs billy.Filesystem, k types.Key, subkey, file string) error {
	if subkey == "" || strings.Contains(strings.Trim(subkey, Backslash), Backslash) {
		return types.Errorf(types.ErrKindInvalidValue, "load hive: subkey %q must be a single key name", subkey)
	}

	data, err := util.ReadFile(fs, file)
	if errors.Is(err, os.ErrNotExist) {
		return types.Wrap(types.ErrKindNotFound, err, "load hive %s", file)
	}
	if err != nil {
		return fmt.Errorf("load hive %s: %w", file, err)
	}

	ops, err := Parse(data, ParseOptions{})
	if err != nil {
		return types.Wrap(types.ErrKindInvalidValue, err, "load hive %s", file)
	}
	root, ok := HiveRoot(ops)
	if !ok {
		return types.Errorf(types.ErrKindInvalidValue, "load hive %s: no keys", file)
	}
	ops, err = Rebase(ops, root, strings.Trim(subkey, Backslash))
	if err != nil {
		return types.Wrap(types.ErrKindInvalidValue, err, "load hive %s", file)
	}
	logger.Debug("load hive", "subkey", subkey, "file", file, "ops", len(ops))
	return Apply(k, ops)
}
