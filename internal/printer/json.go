package printer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/joshuapare/regpath/internal/codec"
	"github.com/joshuapare/regpath/pkg/regpath"
	"github.com/joshuapare/regpath/pkg/types"
)

// jsonKey represents a registry key in JSON format.
type jsonKey struct {
	Name      string         `json:"name"`
	Path      string         `json:"path"`
	LastWrite string         `json:"last_write,omitempty"`
	Subkeys   int            `json:"subkeys"`
	Values    int            `json:"values"`
	ValueData map[string]any `json:"value_data,omitempty"`
	Children  []jsonKey      `json:"children,omitempty"`
}

// jsonValue represents a registry value in JSON format.
type jsonValue struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	Data any    `json:"data"`
}

func (p *Printer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}

// printKeyJSON prints a key in JSON format.
func (p *Printer) printKeyJSON(key *regpath.Path) error {
	k, err := p.buildJSONKey(key)
	if err != nil {
		return err
	}
	return p.writeJSON(k)
}

// printValueJSON prints a single value in JSON format.
func (p *Printer) printValueJSON(v types.RawValue) error {
	name, val := p.jsonValue(v)
	if p.opts.ShowValueTypes {
		return p.writeJSON(val)
	}
	return p.writeJSON(map[string]any{name: val})
}

// printTreeJSON prints a subtree as one nested JSON document.
func (p *Printer) printTreeJSON(key *regpath.Path) error {
	k, err := p.buildJSONTree(key, 0)
	if err != nil {
		return err
	}
	return p.writeJSON(k)
}

// buildJSONKey describes one key without its children.
func (p *Printer) buildJSONKey(key *regpath.Path) (jsonKey, error) {
	info, err := key.KeyInfo()
	if err != nil {
		return jsonKey{}, err
	}
	k := jsonKey{
		Name:    key.Name(),
		Path:    key.String(),
		Subkeys: info.SubkeyN,
		Values:  info.ValueN,
	}
	if p.opts.ShowTimestamps && !info.LastWrite.IsZero() {
		k.LastWrite = info.LastWrite.Format(time.RFC3339)
	}

	if p.opts.ShowValues {
		vals, err := values(key)
		if err != nil {
			return jsonKey{}, err
		}
		if len(vals) > 0 {
			k.ValueData = make(map[string]any, len(vals))
		}
		for _, v := range vals {
			name, val := p.jsonValue(v)
			k.ValueData[name] = val
		}
	}
	return k, nil
}

// buildJSONTree builds a JSON tree structure recursively.
func (p *Printer) buildJSONTree(key *regpath.Path, depth int) (jsonKey, error) {
	k, err := p.buildJSONKey(key)
	if err != nil {
		return jsonKey{}, err
	}
	if p.opts.MaxDepth > 0 && depth+1 >= p.opts.MaxDepth {
		return k, nil
	}

	kids, err := children(key)
	if err != nil {
		return jsonKey{}, err
	}
	defer closeAll(kids)
	for _, c := range kids {
		ck, err := p.buildJSONTree(c, depth+1)
		if err != nil {
			return jsonKey{}, err
		}
		k.Children = append(k.Children, ck)
	}
	return k, nil
}

// jsonValue returns the display name of v and its JSON form: a jsonValue
// when types are shown, the bare data otherwise.
func (p *Printer) jsonValue(v types.RawValue) (string, any) {
	name := v.Name
	if name == "" {
		name = DefaultValueName
	}
	data := p.decodeValueJSON(v)
	if !p.opts.ShowValueTypes {
		return name, data
	}
	return name, jsonValue{Name: name, Type: v.Type.String(), Data: data}
}

// decodeValueJSON decodes a value for JSON output. Data that does not
// decode as its type is shown as hex.
func (p *Printer) decodeValueJSON(v types.RawValue) any {
	switch v.Type {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK,
		types.REG_DWORD, types.REG_DWORD_BE, types.REG_QWORD, types.REG_MULTI_SZ:
		if val, err := codec.Decode(v.Type, v.Data); err == nil {
			return val
		}
	}
	shown, truncated := p.clip(v.Data)
	return hex.EncodeToString(shown) + truncated
}
