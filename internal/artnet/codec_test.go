// File: internal/artnet/codec_test.go
package artnet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfleet/cuberenderer/internal/artnet"
)

func TestEncodeDMXHeaderAndOpcode(t *testing.T) {
	payload := []byte{0xFF, 0x00, 0x00}
	pdu := artnet.EncodeDMX(7, payload)

	require.True(t, len(pdu) >= 20)
	assert.Equal(t, []byte("Art-Net\x00"), pdu[0:8])
	assert.Equal(t, []byte{0x00, 0x50}, pdu[8:10])

	// protocol version, big-endian 0x000E
	assert.Equal(t, []byte{0x00, 0x0E}, pdu[10:12])
	// sequence, physical
	assert.Equal(t, []byte{0x00, 0x00}, pdu[12:14])
	// universe, little-endian
	assert.Equal(t, []byte{0x07, 0x00}, pdu[14:16])
	// length, big-endian
	assert.Equal(t, []byte{0x00, 0x03}, pdu[16:18])
	assert.Equal(t, payload, pdu[18:])
}

func TestEncodeSyncOpcode(t *testing.T) {
	pdu := artnet.EncodeSync()
	assert.Equal(t, []byte("Art-Net\x00"), pdu[0:8])
	assert.Equal(t, []byte{0x00, 0x52}, pdu[8:10])
	assert.Equal(t, []byte{0x00, 0x0E}, pdu[10:12])
	assert.Equal(t, []byte{0x00, 0x00}, pdu[12:14])
}

func TestEncodeDMXDeterministic(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6}
	a := artnet.EncodeDMX(42, payload)
	b := artnet.EncodeDMX(42, payload)
	assert.Equal(t, a, b)
}
