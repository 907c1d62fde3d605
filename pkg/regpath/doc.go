// Package regpath addresses Windows registry keys with path semantics.
//
// A Path is built from text such as `HKLM\SOFTWARE\Vendor` or the remote
// form `\\host\HKLM\SOFTWARE`. Path algebra (join, parent, parts, equality)
// is pure and never touches the store. Joining a rooted fragment re-roots:
//
//	p, _ := regpath.New(`HKEY_CURRENT_USER`, `HKEY_LOCAL_MACHINE\SOFTWARE\X`)
//	p.String() // HKEY_LOCAL_MACHINE\SOFTWARE\X
//
// Store operations open the key lazily and cache one handle per Path,
// reopening when an operation needs rights the cached handle lacks. Callers
// release the handle with Close:
//
//	p := regpath.Must(regpath.New(`HKCU\Software\Vendor`))
//	defer p.Close()
//	if err := p.MakeKey(types.KEY_WRITE, true); err != nil { ... }
//	err := p.Values().Set("Enabled", uint32(1))
//
// Values views the named values of the key as a mapping, inferring the
// registry type from the Go type on Set and decoding by registry type on
// Get. ExpandString marks REG_EXPAND_SZ data in both directions.
//
// Enumeration is by index against the live key. Concurrent mutation of the
// store between two reads can skip or repeat entries; Path does not
// snapshot. A Path is not safe for concurrent use.
package regpath
