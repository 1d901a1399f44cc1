// File: internal/artnet/codec.go
package artnet

import "encoding/binary"

// MaxDMXPayload is the largest payload a single DMX PDU may carry (510
// bytes = 170 RGB pixels).
const MaxDMXPayload = 510

// MaxPixelsPerUniverse is MaxDMXPayload expressed in RGB pixels.
const MaxPixelsPerUniverse = MaxDMXPayload / 3

const (
	opcodeDMX  uint16 = 0x5000
	opcodeSync uint16 = 0x5200
	protoVer   uint16 = 0x000E
)

var header = [8]byte{'A', 'r', 't', '-', 'N', 'e', 't', 0}

// EncodeDMX serializes one ArtDMX PDU: 8-byte "Art-Net\0" header, little-
// endian opcode, big-endian protocol version, zero sequence/physical bytes,
// little-endian universe, big-endian length, then the raw payload. Callers
// must ensure len(payload) is a multiple of 3 and at most MaxDMXPayload;
// EncodeDMX does not validate this (pure, no I/O, no error path).
func EncodeDMX(universe uint16, payload []byte) []byte {
	out := make([]byte, 0, 18+len(payload))
	out = append(out, header[:]...)
	out = appendUint16LE(out, opcodeDMX)
	out = appendUint16BE(out, protoVer)
	out = append(out, 0, 0) // sequence, physical
	out = appendUint16LE(out, universe)
	out = appendUint16BE(out, uint16(len(payload)))
	out = append(out, payload...)
	return out
}

// EncodeSync serializes one ArtSync PDU: the shared 8-byte header, the
// little-endian Sync opcode, the big-endian protocol version, and two zero
// bytes.
func EncodeSync() []byte {
	out := make([]byte, 0, 12)
	out = append(out, header[:]...)
	out = appendUint16LE(out, opcodeSync)
	out = appendUint16BE(out, protoVer)
	out = append(out, 0, 0)
	return out
}

func appendUint16LE(b []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(b, buf[:]...)
}

func appendUint16BE(b []byte, v uint16) []byte {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return append(b, buf[:]...)
}
