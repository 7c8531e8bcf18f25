package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	var v uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&v))[0]

	want := binary.ByteOrder(binary.LittleEndian)
	if first == 0x01 {
		want = binary.BigEndian
	}

	require.Equal(t, want, CheckEndianness())
	require.Equal(t, want == binary.LittleEndian, IsNativeLittleEndian())
}

func TestEngines_AppendAndRead(t *testing.T) {
	tests := []struct {
		name   string
		engine EndianEngine
		want   []byte
	}{
		{"little endian", GetLittleEndianEngine(), []byte{0x10, 0xb7, 0x04, 0x03, 0x02, 0x01}},
		{"big endian", GetBigEndianEngine(), []byte{0xb7, 0x10, 0x01, 0x02, 0x03, 0x04}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := tt.engine.AppendUint16(nil, 0xB710)
			buf = tt.engine.AppendUint32(buf, 0x01020304)

			require.Equal(t, tt.want, buf)
			require.Equal(t, uint16(0xB710), tt.engine.Uint16(buf[0:2]))
			require.Equal(t, uint32(0x01020304), tt.engine.Uint32(buf[2:6]))
		})
	}
}
