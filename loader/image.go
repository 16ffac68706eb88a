// Package loader reads LC-3 object images into memory-ready form.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// AddressSpace is the size of the LC-3's 16-bit address space, in words.
const AddressSpace = 1 << 16

// ErrImageTruncated indicates the stream ended before a full origin word
// could be read. An image with an origin and no further words is not
// truncated; it loads as an empty program.
var ErrImageTruncated = errors.New("loader: image truncated")

// Image is a loaded object image: an origin address and the words to be
// placed starting there.
type Image struct {
	// Origin is the load address taken from the image's first big-endian
	// 16-bit word.
	Origin uint16
	// Words are the remaining big-endian words, already converted to
	// host-endian order, in the sequence they should be placed starting at
	// Origin.
	Words []uint16
}

// Load reads one object image from r.
//
// The first two bytes are a big-endian origin address. Remaining bytes are
// read as big-endian 16-bit words and placed contiguously from that origin
// until EOF or until the address space is exhausted, whichever comes first;
// words that would fall beyond 0xFFFF are silently dropped rather than
// treated as an error, matching the LC-3 convention that an image declares
// its own extent through its content.
func Load(r io.Reader) (Image, error) {
	var header [2]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrImageTruncated, err)
	}
	origin := binary.BigEndian.Uint16(header[:])

	capacity := AddressSpace - int(origin)
	words := make([]uint16, 0, 64)
	var word [2]byte
	for len(words) < capacity {
		n, err := io.ReadFull(r, word[:])
		if n == 2 {
			words = append(words, binary.BigEndian.Uint16(word[:]))
		}
		if err != nil {
			break // EOF, or a single trailing odd byte we discard
		}
	}

	return Image{Origin: origin, Words: words}, nil
}

// LoadPath opens the object image at path and loads it.
func LoadPath(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, err
	}
	defer f.Close()
	return Load(f)
}
