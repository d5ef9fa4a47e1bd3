package block

import (
	"github.com/blockkit/blockkit/internal/format"
	"golang.org/x/text/encoding/unicode"
)

// String is a view over a reference slot holding NUL-terminated text. The
// empty state is a null reference, which compares equal to "" and reports
// length 0.
type String struct {
	b   *Block
	off uint32
}

// StringAt binds a string view to the reference slot at off.
func StringAt(b *Block, off uint32) String { return String{b: b, off: off} }

// CreateString copies s plus a NUL terminator into the block's free space
// and returns the storage position, for callers managing reference slots
// directly. Most code uses String.Set instead.
func (b *Block) CreateString(s string) (uint32, error) {
	p, err := b.Alloc(uint32(len(s))+1, 1)
	if err != nil {
		return 0, err
	}
	copy(b.data[p:], s)
	return p, nil
}

// Set allocates len(v)+1 bytes from the block, copies v plus a NUL
// terminator, and rebases the slot onto the fresh storage. On ErrNoSpace
// the slot is left unchanged. Previous storage, if any, becomes dead space.
func (s String) Set(v string) error {
	p, err := s.b.CreateString(v)
	if err != nil {
		return err
	}
	s.b.putRef(s.off, p)
	return nil
}

// Get returns the referenced text, or "" for a null reference.
func (s String) Get() string {
	t := s.b.refTarget(s.off)
	if t == 0 {
		return ""
	}
	end := t
	for int(end) < len(s.b.data) && s.b.data[end] != 0 {
		end++
	}
	return string(s.b.data[t:end])
}

// Length returns the byte length of the stored text.
func (s String) Length() int {
	t := s.b.refTarget(s.off)
	if t == 0 {
		return 0
	}
	n := 0
	for int(t)+n < len(s.b.data) && s.b.data[int(t)+n] != 0 {
		n++
	}
	return n
}

// Empty reports whether the string is null or zero-length.
func (s String) Empty() bool {
	t := s.b.refTarget(s.off)
	return t == 0 || s.b.data[t] == 0
}

// IsNull reports whether the slot holds no storage at all.
func (s String) IsNull() bool { return s.b.refTarget(s.off) == 0 }

// Equal compares by byte content; null and "" compare equal.
func (s String) Equal(v string) bool { return s.Get() == v }

// Clear nulls the reference. The underlying bytes remain occupied in the
// allocator; there is no reclamation, and NewCopy copies them along with
// the rest of the used prefix.
func (s String) Clear() { s.b.putRef(s.off, 0) }

// utf16le transcodes between UTF-8 and the UTF-16LE code units WString
// stores.
var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// WString is String for wide text: the referenced storage is a sequence of
// UTF-16LE code units ending in a two-byte NUL.
type WString struct {
	b   *Block
	off uint32
}

// WStringAt binds a wide-string view to the reference slot at off.
func WStringAt(b *Block, off uint32) WString { return WString{b: b, off: off} }

// CreateWString encodes s as UTF-16LE, copies the code units plus a
// two-byte terminator into free space, and returns the storage position.
func (b *Block) CreateWString(s string) (uint32, error) {
	enc, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return 0, err
	}
	p, err := b.Alloc(uint32(len(enc))+format.WCharSize, format.WCharSize)
	if err != nil {
		return 0, err
	}
	copy(b.data[p:], enc)
	return p, nil
}

// Set encodes v as UTF-16LE, allocates the code units plus a terminator,
// and rebases the slot. On ErrNoSpace the slot is left unchanged.
func (w WString) Set(v string) error {
	p, err := w.b.CreateWString(v)
	if err != nil {
		return err
	}
	w.b.putRef(w.off, p)
	return nil
}

// Get decodes the referenced code units, or returns "" for a null
// reference.
func (w WString) Get() string {
	t := w.b.refTarget(w.off)
	if t == 0 {
		return ""
	}
	end := w.terminator(t)
	dec, err := utf16le.NewDecoder().Bytes(w.b.data[t:end])
	if err != nil {
		return ""
	}
	return string(dec)
}

// Length returns the stored length in UTF-16 code units.
func (w WString) Length() int {
	t := w.b.refTarget(w.off)
	if t == 0 {
		return 0
	}
	return int(w.terminator(t)-t) / format.WCharSize
}

// Empty reports whether the wide string is null or zero-length.
func (w WString) Empty() bool {
	t := w.b.refTarget(w.off)
	return t == 0 || w.terminator(t) == t
}

// IsNull reports whether the slot holds no storage at all.
func (w WString) IsNull() bool { return w.b.refTarget(w.off) == 0 }

// Equal compares decoded content; null and "" compare equal.
func (w WString) Equal(v string) bool { return w.Get() == v }

// Clear nulls the reference without reclaiming storage.
func (w WString) Clear() { w.b.putRef(w.off, 0) }

// terminator scans for the two-byte NUL from t and returns its position.
func (w WString) terminator(t uint32) uint32 {
	end := t
	for int(end)+1 < len(w.b.data) {
		if w.b.data[end] == 0 && w.b.data[end+1] == 0 {
			break
		}
		end += format.WCharSize
	}
	return end
}
