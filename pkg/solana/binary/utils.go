package binary

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrMalformedBuffer is returned when fewer bytes remain in a buffer than the
// field being decoded requires.
var ErrMalformedBuffer = errors.New("malformed buffer")

const (
	Uint8Size  = 1
	Uint16Size = 2
	Uint32Size = 4
	Uint64Size = 8
	Key32Size  = ed25519.PublicKeySize
)

// Put* functions write at dst[*offset:] and advance the offset by the number
// of bytes written. dst must be sized from the layout's span.

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += Uint8Size
}

func PutBool(dst []byte, v bool, offset *int) {
	var b uint8
	if v {
		b = 1
	}
	PutUint8(dst, b, offset)
}

func PutUint16(dst []byte, v uint16, offset *int) {
	binary.LittleEndian.PutUint16(dst[*offset:], v)
	*offset += Uint16Size
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += Uint32Size
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += Uint64Size
}

// PutKey32 writes exactly 32 bytes. A nil or short key is zero padded.
func PutKey32(dst []byte, src []byte, offset *int) {
	copy(dst[*offset:*offset+Key32Size], src)
	*offset += Key32Size
}

// Get* functions read at src[*offset:] and advance the offset. On a short
// buffer they return ErrMalformedBuffer and leave the offset untouched.

func GetUint8(src []byte, dst *uint8, offset *int) error {
	if err := ensure(src, *offset, Uint8Size); err != nil {
		return err
	}
	*dst = src[*offset]
	*offset += Uint8Size
	return nil
}

func GetUint16(src []byte, dst *uint16, offset *int) error {
	if err := ensure(src, *offset, Uint16Size); err != nil {
		return err
	}
	*dst = binary.LittleEndian.Uint16(src[*offset:])
	*offset += Uint16Size
	return nil
}

func GetUint32(src []byte, dst *uint32, offset *int) error {
	if err := ensure(src, *offset, Uint32Size); err != nil {
		return err
	}
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += Uint32Size
	return nil
}

func GetUint64(src []byte, dst *uint64, offset *int) error {
	if err := ensure(src, *offset, Uint64Size); err != nil {
		return err
	}
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += Uint64Size
	return nil
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) error {
	if err := ensure(src, *offset, Key32Size); err != nil {
		return err
	}
	*dst = make([]byte, Key32Size)
	copy(*dst, src[*offset:])
	*offset += Key32Size
	return nil
}

// Optional values use the SPL COption layout: a u32 tag followed by the
// value, which is zeroed and still occupies its slot when the tag is 0.

func PutOptionalKey32(dst []byte, src []byte, offset *int) {
	var tag uint32
	if len(src) > 0 {
		tag = 1
	}
	PutUint32(dst, tag, offset)
	PutKey32(dst, src, offset)
}

func PutOptionalUint64(dst []byte, v *uint64, offset *int) {
	if v == nil {
		PutUint32(dst, 0, offset)
		PutUint64(dst, 0, offset)
		return
	}
	PutUint32(dst, 1, offset)
	PutUint64(dst, *v, offset)
}

func GetOptionalKey32(src []byte, dst *ed25519.PublicKey, offset *int) error {
	if err := ensure(src, *offset, Uint32Size+Key32Size); err != nil {
		return err
	}

	var tag uint32
	_ = GetUint32(src, &tag, offset)
	if tag == 0 {
		*dst = nil
		*offset += Key32Size
		return nil
	}
	return GetKey32(src, dst, offset)
}

func GetOptionalUint64(src []byte, dst **uint64, offset *int) error {
	if err := ensure(src, *offset, Uint32Size+Uint64Size); err != nil {
		return err
	}

	var tag uint32
	_ = GetUint32(src, &tag, offset)
	if tag == 0 {
		*dst = nil
		*offset += Uint64Size
		return nil
	}

	var v uint64
	_ = GetUint64(src, &v, offset)
	*dst = &v
	return nil
}

func ensure(src []byte, offset, size int) error {
	if offset < 0 || len(src)-offset < size {
		remaining := len(src) - offset
		if remaining < 0 {
			remaining = 0
		}
		return errors.Wrapf(ErrMalformedBuffer, "need %d bytes at offset %d, have %d", size, offset, remaining)
	}
	return nil
}
