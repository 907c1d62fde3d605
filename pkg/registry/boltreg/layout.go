package boltreg

import (
	"encoding/binary"
	"errors"
	"slices"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/text/cases"

	"github.com/joshuapare/regpath/pkg/types"
)

var (
	keyName    = []byte("name")
	keyMtime   = []byte("mtime")
	bucketKeys = []byte("keys")
	bucketVals = []byte("values")
)

// valuePrefix keeps the default value's key non-empty; bbolt rejects empty keys.
const valuePrefix = "v:"

var errMalformed = errors.New("boltreg: malformed key bucket")

func fold(s string) string {
	return cases.Fold().String(s)
}

func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, `\`) {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func foldAll(segs []string) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = fold(s)
	}
	return out
}

func initKeyBucket(b *bolt.Bucket, name string, now time.Time) error {
	if err := b.Put(keyName, []byte(name)); err != nil {
		return err
	}
	if err := touch(b, now); err != nil {
		return err
	}
	if _, err := b.CreateBucketIfNotExists(bucketKeys); err != nil {
		return err
	}
	_, err := b.CreateBucketIfNotExists(bucketVals)
	return err
}

func touch(b *bolt.Bucket, now time.Time) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(now.UnixNano()))
	return b.Put(keyMtime, buf[:])
}

func mtime(b *bolt.Bucket) time.Time {
	v := b.Get(keyMtime)
	if len(v) != 8 {
		return time.Time{}
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(v)))
}

// child returns the bucket of the child with folded name f, or nil.
func child(b *bolt.Bucket, f string) *bolt.Bucket {
	keys := b.Bucket(bucketKeys)
	if keys == nil {
		return nil
	}
	return keys.Bucket([]byte(f))
}

// descend follows folded segments below b. It returns the deepest bucket
// reached and the number of segments consumed.
func descend(b *bolt.Bucket, folded []string) (*bolt.Bucket, int) {
	for i, f := range folded {
		next := child(b, f)
		if next == nil {
			return b, i
		}
		b = next
	}
	return b, len(folded)
}

// childNames lists child key names in enumeration order (folded name order).
func childNames(b *bolt.Bucket) []string {
	var names []string
	keys := b.Bucket(bucketKeys)
	if keys == nil {
		return nil
	}
	c := keys.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		if v != nil {
			continue
		}
		if cb := keys.Bucket(k); cb != nil {
			names = append(names, string(cb.Get(keyName)))
		}
	}
	return names
}

func childCount(b *bolt.Bucket) int {
	n := 0
	if keys := b.Bucket(bucketKeys); keys != nil {
		c := keys.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if v == nil {
				n++
			}
		}
	}
	return n
}

func valueCount(b *bolt.Bucket) int {
	n := 0
	if vals := b.Bucket(bucketVals); vals != nil {
		c := vals.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			n++
		}
	}
	return n
}

// record is the stored form of one value:
// seq(8) | type(4) | name length(4) | name | data.
type record struct {
	seq uint64
	raw types.RawValue
}

func encodeRecord(seq uint64, name string, typ types.RegType, data []byte) []byte {
	buf := make([]byte, 16+len(name)+len(data))
	binary.BigEndian.PutUint64(buf[0:], seq)
	binary.BigEndian.PutUint32(buf[8:], uint32(typ))
	binary.BigEndian.PutUint32(buf[12:], uint32(len(name)))
	copy(buf[16:], name)
	copy(buf[16+len(name):], data)
	return buf
}

func decodeRecord(v []byte) (record, error) {
	if len(v) < 16 {
		return record{}, errMalformed
	}
	n := int(binary.BigEndian.Uint32(v[12:]))
	if len(v) < 16+n {
		return record{}, errMalformed
	}
	return record{
		seq: binary.BigEndian.Uint64(v[0:]),
		raw: types.RawValue{
			Name: string(v[16 : 16+n]),
			Type: types.RegType(binary.BigEndian.Uint32(v[8:])),
			Data: append([]byte(nil), v[16+n:]...),
		},
	}, nil
}

func valueKey(name string) []byte {
	return []byte(valuePrefix + fold(name))
}

// records lists values in insertion order.
func records(b *bolt.Bucket) ([]record, error) {
	vals := b.Bucket(bucketVals)
	if vals == nil {
		return nil, errMalformed
	}
	var out []record
	err := vals.ForEach(func(_, v []byte) error {
		r, err := decodeRecord(v)
		if err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	slices.SortFunc(out, func(a, b record) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})
	return out, err
}

// putValue writes a value, keeping the insertion position of an existing
// value with the same folded name.
func putValue(b *bolt.Bucket, name string, typ types.RegType, data []byte, now time.Time) error {
	vals := b.Bucket(bucketVals)
	if vals == nil {
		return errMalformed
	}
	k := valueKey(name)
	var seq uint64
	if old := vals.Get(k); old != nil {
		r, err := decodeRecord(old)
		if err != nil {
			return err
		}
		seq, name = r.seq, r.raw.Name
	} else {
		var err error
		if seq, err = vals.NextSequence(); err != nil {
			return err
		}
	}
	if err := vals.Put(k, encodeRecord(seq, name, typ, data)); err != nil {
		return err
	}
	return touch(b, now)
}

// copyBucket merges the key bucket src into dst.
func copyBucket(src, dst *bolt.Bucket, now time.Time) error {
	recs, err := records(src)
	if err != nil {
		return err
	}
	for _, r := range recs {
		if err := putValue(dst, r.raw.Name, r.raw.Type, r.raw.Data, now); err != nil {
			return err
		}
	}
	for _, name := range childNames(src) {
		f := fold(name)
		target := child(dst, f)
		if target == nil {
			var err error
			if target, err = dst.Bucket(bucketKeys).CreateBucket([]byte(f)); err != nil {
				return err
			}
			if err := initKeyBucket(target, name, now); err != nil {
				return err
			}
			if err := touch(dst, now); err != nil {
				return err
			}
		}
		if err := copyBucket(child(src, f), target, now); err != nil {
			return err
		}
	}
	return nil
}
