package tsinspect

import (
	"bytes"
	"testing"
)

// pesHeaderBytes encodes a raw PES packet start with the given PTS_DTS_flag
// bits in the second flag byte.
func pesHeaderBytes(streamID byte, flagByte, headerDataLength byte, pts, dts uint64) []byte {
	buf := make([]byte, 64)
	buf[0], buf[1], buf[2], buf[3] = 0x00, 0x00, 0x01, streamID
	buf[4], buf[5] = 0x00, 0x30 // PES_packet_length
	buf[6] = 0x80
	buf[7] = flagByte
	buf[8] = headerDataLength
	encodeTimestamp(buf[9:14], pts)
	encodeTimestamp(buf[14:19], dts)
	return buf
}

func TestParsePESHeaderPTSOnly(t *testing.T) {
	const pts = 0x123456789
	raw := pesHeaderBytes(0xE0, 0x80, 5, pts, 0)
	r := fieldReader{src: bytes.NewReader(raw)}

	info, err := parsePESHeader(r, 0)
	if err != nil {
		t.Fatalf("parsePESHeader: %v", err)
	}
	if info.streamID != 0xE0 {
		t.Fatalf("streamID = 0x%X, want 0xE0", info.streamID)
	}
	if info.packetLength != 0x30 {
		t.Fatalf("packetLength = 0x%X, want 0x30", info.packetLength)
	}
	if !info.hasPTS || info.hasDTS {
		t.Fatalf("timestamp flags: hasPTS=%t hasDTS=%t", info.hasPTS, info.hasDTS)
	}
	if info.pts.hi != 0x1 || info.pts.lo != 0x23456789 {
		t.Fatalf("pts = hi:0x%X lo:0x%X", info.pts.hi, info.pts.lo)
	}
	if info.pts.value() != pts {
		t.Fatalf("pts value = 0x%X, want 0x%X", info.pts.value(), uint64(pts))
	}
	if !info.hasPayload || info.payloadOffset != 0+6+5+3 {
		t.Fatalf("payloadOffset = %d (hasPayload=%t), want 14", info.payloadOffset, info.hasPayload)
	}
}

func TestParsePESHeaderPTSAndDTS(t *testing.T) {
	const pts, dts = 90000, 87000
	raw := pesHeaderBytes(0xE0, 0xC0, 10, pts, dts)
	r := fieldReader{src: bytes.NewReader(raw)}

	info, err := parsePESHeader(r, 0)
	if err != nil {
		t.Fatalf("parsePESHeader: %v", err)
	}
	if !info.hasPTS || !info.hasDTS {
		t.Fatalf("timestamp flags: hasPTS=%t hasDTS=%t", info.hasPTS, info.hasDTS)
	}
	if info.pts.value() != pts {
		t.Fatalf("pts = 0x%X, want 0x%X", info.pts.value(), uint64(pts))
	}
	if info.dts.value() != dts {
		t.Fatalf("dts = 0x%X, want 0x%X", info.dts.value(), uint64(dts))
	}
	if info.payloadOffset != 0+6+10+3 {
		t.Fatalf("payloadOffset = %d, want 19", info.payloadOffset)
	}
}

func TestParsePESHeaderNoTimestamps(t *testing.T) {
	raw := pesHeaderBytes(0xE0, 0x00, 0, 0, 0)
	r := fieldReader{src: bytes.NewReader(raw)}

	info, err := parsePESHeader(r, 0)
	if err != nil {
		t.Fatalf("parsePESHeader: %v", err)
	}
	if info.hasPTS || info.hasDTS || info.hasPayload {
		t.Fatalf("flag 0b00 decoded fields: %+v", info)
	}
}

func TestParsePESHeaderSystemStream(t *testing.T) {
	for _, id := range []byte{0xBC, 0xBE, 0xF0, 0xF1, 0xF8, 0xF9, 0xFF} {
		raw := pesHeaderBytes(id, 0x80, 5, 90000, 0)
		r := fieldReader{src: bytes.NewReader(raw)}

		info, err := parsePESHeader(r, 0)
		if err != nil {
			t.Fatalf("stream 0x%X: %v", id, err)
		}
		if info.hasPTS || info.hasPayload {
			t.Fatalf("stream 0x%X decoded past the base header: %+v", id, info)
		}
	}
}

func TestTimestampMSB24(t *testing.T) {
	cases := []struct {
		ts   timestamp
		want uint32
	}{
		{timestamp{hi: 0, lo: 90000}, 90000 >> 9},
		{timestamp{hi: 1, lo: 0x23456789}, 1<<23 | 0x11A2B3},
		{timestamp{hi: 1, lo: 0xFFFFFFFF}, 0xFFFFFF},
		{timestamp{hi: 0, lo: 0}, 0},
	}
	for _, c := range cases {
		if got := c.ts.msb24(); got != c.want {
			t.Fatalf("msb24(hi:0x%X lo:0x%X) = 0x%X, want 0x%X", c.ts.hi, c.ts.lo, got, c.want)
		}
	}
}

func TestParsePESHeaderTruncated(t *testing.T) {
	raw := pesHeaderBytes(0xE0, 0x80, 5, 90000, 0)[:11]
	r := fieldReader{src: bytes.NewReader(raw)}
	if _, err := parsePESHeader(r, 0); err == nil {
		t.Fatal("truncated header decoded without error")
	}
}
