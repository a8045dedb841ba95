package binreader_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tilepipe/aseprite/internal/binreader"
)

func TestPrimitives(t *testing.T) {
	buf := []byte{
		0x2A,             // u8
		0x34, 0x12,       // u16 -> 0x1234
		0xEF, 0xBE, 0xAD, 0xDE, // u32 -> 0xDEADBEEF
		0x00, 0x00, 0x01, 0x00, // fixed16.16 -> 1.0
		0x03, 0x00, 'a', 'b', 'c', // string "abc"
	}
	r := binreader.New(buf)

	u8, err := r.U8()
	require.NoError(t, err)
	require.Equal(t, uint8(0x2A), u8)

	u16, err := r.U16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16)

	u32, err := r.U32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u32)

	fx, err := r.Fixed16_16()
	require.NoError(t, err)
	require.Equal(t, 1.0, fx)

	s, err := r.String()
	require.NoError(t, err)
	require.Equal(t, "abc", s)

	require.Equal(t, 0, r.Len())
}

func TestShortReadsError(t *testing.T) {
	r := binreader.New([]byte{0x01})
	_, err := r.U16()
	require.Error(t, err)

	r2 := binreader.New([]byte{})
	_, err = r2.U8()
	require.Error(t, err)
}

func TestBytesIsASubSliceNotACopy(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	r := binreader.New(buf)
	b, err := r.Bytes(4)
	require.NoError(t, err)
	b[0] = 99
	require.Equal(t, byte(99), buf[0])
}

func TestSkipAndRest(t *testing.T) {
	r := binreader.New([]byte{1, 2, 3, 4, 5})
	require.NoError(t, r.Skip(2))
	require.Equal(t, []byte{3, 4, 5}, r.Rest())
}
