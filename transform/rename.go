package transform

import "github.com/ajis-lang/ajis-go/segment"

// RenameFunc maps a property-name's raw bytes to a new raw-byte form.
// It must be deterministic and total over its domain, per spec.md §4.5.
type RenameFunc func(name []byte) []byte

// RenameKeys replaces every PropertyName segment's Name via f; string
// values are left untouched.
type RenameKeys struct {
	src Source
	f   RenameFunc
}

// Rename wraps src, renaming every object key via f.
func Rename(src Source, f RenameFunc) *RenameKeys {
	return &RenameKeys{src: src, f: f}
}

// Next implements Source.
func (r *RenameKeys) Next() (segment.Segment, bool) {
	seg, ok := r.src.Next()
	if !ok {
		return segment.Segment{}, false
	}
	if seg.Kind == segment.PropertyName {
		renamed := r.f(seg.Name.Bytes)
		seg.Name.Bytes = renamed
		seg.Name.Decoded = true
	}
	return seg, true
}
