package teastr

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	bin "github.com/saylorsolutions/binmap"
)

const (
	magicBytes        uint16 = 0x7ea5
	magicBytesInverse uint16 = 0xa57e
	codecVersion      uint8  = 1

	// MaxLength is the largest literal length, including the terminator, that will be decoded.
	MaxLength = 1 << 24
)

var (
	ErrInvalidHeader = errors.New("invalid container header")
)

type header struct {
	version uint8
	length  uint32
	key     Key
	count   uint32
}

func (h *header) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Byte(&h.version),
		bin.Int(&h.length),
		bin.Int(&h.key[0]),
		bin.Int(&h.key[1]),
		bin.Int(&h.key[2]),
		bin.Int(&h.key[3]),
		bin.Int(&h.count),
	)
}

func (h *header) validate() error {
	if h.version != codecVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidHeader, h.version)
	}
	if h.length < 1 || h.length > MaxLength {
		return fmt.Errorf("%w: length %d out of range", ErrInvalidHeader, h.length)
	}
	if expected := blockCountFor(int(h.length)); int(h.count) != expected {
		return fmt.Errorf("%w: expected %d blocks for length %d, got %d", ErrLengthMismatch, expected, h.length, h.count)
	}
	return nil
}

// Write emits the binary form of the Container to w in big-endian byte order.
// Containers longer than MaxLength can't be read back, so they return ErrInvalidHeader without writing anything.
func (c *Container) Write(w io.Writer) error {
	if c.length > MaxLength {
		return fmt.Errorf("%w: length %d exceeds maximum of %d", ErrInvalidHeader, c.length, MaxLength)
	}
	var (
		endian = binary.BigEndian
		magic  = magicBytes
		h      = header{
			version: codecVersion,
			length:  uint32(c.length),
			key:     c.key,
			count:   uint32(len(c.blocks)),
		}
	)
	if err := bin.Int(&magic).Write(w, endian); err != nil {
		return err
	}
	if err := h.mapper().Write(w, endian); err != nil {
		return err
	}
	for i := range c.blocks {
		if err := bin.Int(&c.blocks[i]).Write(w, endian); err != nil {
			return err
		}
	}
	return nil
}

// ReadContainer reads a Container in the form emitted by Container.Write.
// Data written with little-endian byte order is detected by its magic bytes and accepted as well.
func ReadContainer(r io.Reader) (*Container, error) {
	var (
		magic  uint16
		h      header
		endian binary.ByteOrder = binary.BigEndian
	)
	if err := bin.Int(&magic).Read(r, endian); err != nil {
		return nil, err
	}
	switch magic {
	case magicBytes:
	case magicBytesInverse:
		endian = binary.LittleEndian
	default:
		return nil, fmt.Errorf("%w: unrecognized magic bytes %#04x", ErrInvalidHeader, magic)
	}
	if err := h.mapper().Read(r, endian); err != nil {
		return nil, err
	}
	if err := h.validate(); err != nil {
		return nil, err
	}
	c := &Container{
		length: int(h.length),
		key:    h.key,
		blocks: make([]uint64, h.count),
	}
	for i := range c.blocks {
		if err := bin.Int(&c.blocks[i]).Read(r, endian); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MarshalBinary returns the form of the Container written by Write.
func (c *Container) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces the Container with one decoded from data by ReadContainer.
func (c *Container) UnmarshalBinary(data []byte) error {
	read, err := ReadContainer(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*c = *read
	return nil
}
