package teastr

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_MarshalBinary(t *testing.T) {
	orig := Make("A literal that travels as bytes", Seed{1, 2, 3, 4})
	data, err := orig.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 2+1+4+16+4+8*orig.BlockCount())
	assert.Equal(t, []byte{0x7e, 0xa5, codecVersion}, data[:3])

	var c Container
	require.NoError(t, c.UnmarshalBinary(data))
	assert.Equal(t, orig.Len(), c.Len())
	assert.Equal(t, orig.Key(), c.Key())
	assert.Equal(t, orig.Blocks(), c.Blocks())
	assert.Equal(t, "A literal that travels as bytes", c.Decrypt())
}

func TestReadContainer_LittleEndian(t *testing.T) {
	orig := Make("little", Seed{5, 6, 7, 8})
	var buf bytes.Buffer
	le := binary.LittleEndian
	require.NoError(t, binary.Write(&buf, le, magicBytes))
	require.NoError(t, binary.Write(&buf, le, codecVersion))
	require.NoError(t, binary.Write(&buf, le, uint32(orig.Len())))
	require.NoError(t, binary.Write(&buf, le, orig.Key()))
	require.NoError(t, binary.Write(&buf, le, uint32(orig.BlockCount())))
	require.NoError(t, binary.Write(&buf, le, orig.Blocks()))

	c, err := ReadContainer(&buf)
	require.NoError(t, err)
	assert.Equal(t, "little", c.Decrypt())
}

func TestReadContainer_Neg(t *testing.T) {
	valid, err := Make("valid", Seed{}).MarshalBinary()
	require.NoError(t, err)

	tests := map[string]struct {
		data     []byte
		expected error
	}{
		"Bad magic": {
			data:     append([]byte{0xde, 0xad}, valid[2:]...),
			expected: ErrInvalidHeader,
		},
		"Bad version": {
			data:     append([]byte{0x7e, 0xa5, 0x02}, valid[3:]...),
			expected: ErrInvalidHeader,
		},
		"Zero length": {
			data:     append(append([]byte{}, valid[:3]...), append([]byte{0, 0, 0, 0}, valid[7:]...)...),
			expected: ErrInvalidHeader,
		},
		"Mismatched block count": {
			data:     append(append([]byte{}, valid[:3]...), append([]byte{0, 0, 0, 20}, valid[7:]...)...),
			expected: ErrLengthMismatch,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadContainer(bytes.NewReader(tc.data))
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	_, err = ReadContainer(bytes.NewReader(valid[:len(valid)-1]))
	assert.Error(t, err, "Should fail on truncated blocks")
	_, err = ReadContainer(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestContainer_Write_MaxLength(t *testing.T) {
	atMax := &Container{
		length: MaxLength,
		blocks: make([]uint64, blockCountFor(MaxLength)),
	}
	data, err := atMax.MarshalBinary()
	require.NoError(t, err)
	var c Container
	require.NoError(t, c.UnmarshalBinary(data))
	assert.Equal(t, MaxLength, c.Len())

	overMax := &Container{
		length: MaxLength + 1,
		blocks: make([]uint64, blockCountFor(MaxLength+1)),
	}
	var buf bytes.Buffer
	assert.ErrorIs(t, overMax.Write(&buf), ErrInvalidHeader)
	assert.Zero(t, buf.Len(), "Nothing should be written")
	_, err = overMax.MarshalBinary()
	assert.ErrorIs(t, err, ErrInvalidHeader)
}
