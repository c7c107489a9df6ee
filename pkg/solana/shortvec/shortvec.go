package shortvec

import (
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana/binary"
)

// MaxEncodedSize is the longest compact-u16 encoding.
const MaxEncodedSize = 3

var ErrInvalidLength = errors.New("invalid shortvec length")

// EncodeLen writes n as a compact-u16: seven bits per byte, low bits first,
// with the high bit set on every byte but the last.
func EncodeLen(w io.ByteWriter, n int) (int, error) {
	if n < 0 || n > math.MaxUint16 {
		return 0, errors.Wrapf(ErrInvalidLength, "%d outside [0, %d]", n, math.MaxUint16)
	}

	var written int
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			b |= 0x80
		}

		if err := w.WriteByte(b); err != nil {
			return written, err
		}
		written++

		if n == 0 {
			return written, nil
		}
	}
}

// DecodeLen reads a compact-u16. As in the runtime, encodings that are
// longer than necessary or exceed math.MaxUint16 are rejected.
func DecodeLen(r io.ByteReader) (int, error) {
	var val int
	for i := 0; i < MaxEncodedSize; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, errors.Wrapf(binary.ErrMalformedBuffer, "shortvec byte %d: %v", i, err)
		}
		if i > 0 && b == 0 {
			return 0, errors.Wrap(ErrInvalidLength, "non-minimal encoding")
		}

		val |= int(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			if val > math.MaxUint16 {
				return 0, errors.Wrapf(ErrInvalidLength, "%d exceeds %d", val, math.MaxUint16)
			}
			return val, nil
		}
	}

	return 0, errors.Wrapf(ErrInvalidLength, "longer than %d bytes", MaxEncodedSize)
}
