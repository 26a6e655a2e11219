package teastr

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrLengthMismatch = errors.New("block count doesn't match literal length")
)

// Container holds a literal as scrambled, encrypted blocks.
// A Container is immutable once constructed, and may be shared between goroutines.
type Container struct {
	length int
	key    Key
	blocks []uint64
}

// Make encrypts text with a Key derived from seed.
// The resulting Container has a length of len(text)+1 to account for the terminator.
func Make(text string, seed Seed) *Container {
	length := len(text) + 1
	c := &Container{
		length: length,
		key:    GenerateKey(seed),
		blocks: make([]uint64, blockCountFor(length)),
	}
	for _, idx := range scrambleOrder(len(c.blocks)) {
		var chunk [chunkSize]byte
		copy(chunk[:], text[idx*chunkSize:])
		part1 := binary.LittleEndian.Uint32(chunk[0:4])
		part2 := binary.LittleEndian.Uint32(chunk[4:8])
		c.blocks[idx] = EncryptBlock(part1, part2, c.key)
	}
	return c
}

// Restore rebuilds a Container from its parts, as embedded by generated code.
// The length includes the terminator, so it must be at least 1.
func Restore(length int, key Key, blocks []uint64) (*Container, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: length %d is less than 1", ErrLengthMismatch, length)
	}
	if expected := blockCountFor(length); len(blocks) != expected {
		return nil, fmt.Errorf("%w: expected %d blocks for length %d, got %d", ErrLengthMismatch, expected, length, len(blocks))
	}
	c := &Container{
		length: length,
		key:    key,
		blocks: make([]uint64, len(blocks)),
	}
	copy(c.blocks, blocks)
	return c, nil
}

// MustRestore is like Restore, but panics if the parts don't fit together.
// It's intended for package level variables in generated code.
func MustRestore(length int, key Key, blocks []uint64) *Container {
	c, err := Restore(length, key, blocks)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the length of the literal, including the terminator.
func (c *Container) Len() int {
	return c.length
}

// BlockCount returns the number of encrypted blocks.
func (c *Container) BlockCount() int {
	return len(c.blocks)
}

// Key returns the key used to encrypt the blocks.
func (c *Container) Key() Key {
	return c.key
}

// Blocks returns a copy of the blocks in storage order.
func (c *Container) Blocks() []uint64 {
	blocks := make([]uint64, len(c.blocks))
	copy(blocks, c.blocks)
	return blocks
}

// DecryptInto decrypts the literal into dst, reusing it if its capacity is at least Len.
// The returned slice holds the literal without its terminator, and the byte right after it in the backing array is always 0.
func (c *Container) DecryptInto(dst []byte) []byte {
	if cap(dst) < c.length {
		dst = make([]byte, c.length)
	}
	dst = dst[:c.length]
	content := c.length - 1
	for _, idx := range scrambleOrder(len(c.blocks)) {
		v0, v1 := splitBlock(c.blocks[idx])
		v0, v1 = splitBlock(DecryptBlock(v0, v1, c.key))

		var chunk [chunkSize]byte
		binary.LittleEndian.PutUint32(chunk[0:4], v0)
		binary.LittleEndian.PutUint32(chunk[4:8], v1)
		copy(dst[idx*chunkSize:content], chunk[:])
	}
	dst[content] = 0
	return dst[:content]
}

// Decrypt returns the original literal as a new string.
func (c *Container) Decrypt() string {
	return string(c.DecryptInto(nil))
}

// Decrypter decrypts containers into a buffer that is reused between calls.
// A Decrypter must not be shared between goroutines, use one per goroutine instead.
type Decrypter struct {
	buf []byte
}

// Decrypt decrypts c into the Decrypter's buffer.
// The returned slice is only valid until the next call to Decrypt on the same Decrypter.
func (d *Decrypter) Decrypt(c *Container) []byte {
	d.buf = c.DecryptInto(d.buf)
	return d.buf
}
