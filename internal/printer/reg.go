package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/regpath/internal/regtext"
	"github.com/joshuapare/regpath/pkg/regpath"
	"github.com/joshuapare/regpath/pkg/types"
)

// printKeyReg prints a key and its values as a one-section .reg file.
func (p *Printer) printKeyReg(key *regpath.Path) error {
	fmt.Fprintf(p.writer, "%s\r\n\r\n[%s]\r\n", regtext.RegFileHeader, key.String())
	if !p.opts.ShowValues {
		return nil
	}
	vals, err := values(key)
	if err != nil {
		return err
	}
	for _, v := range vals {
		if err := p.printValueReg(v); err != nil {
			return err
		}
	}
	return nil
}

// printValueReg prints one .reg value line.
func (p *Printer) printValueReg(v types.RawValue) error {
	line, err := regtext.FormatValue(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(p.writer, line)
	return err
}

// printTreeReg exports the whole subtree in the format regedit writes,
// UTF-8 encoded.
func (p *Printer) printTreeReg(key *regpath.Path) error {
	h, err := key.OpenKey(types.KEY_READ)
	if err != nil {
		return err
	}
	defer h.Close()
	data, err := regtext.Export(h, key.String(), regtext.ExportOptions{})
	if err != nil {
		return fmt.Errorf("export %s: %w", key, err)
	}
	_, err = p.writer.Write(data)
	return err
}
