package tsinspect

// timestamp is one decoded 33-bit PTS or DTS, split into the top bit and the
// 32 low bits the way the 5-byte field is reconstructed. The shifts below do
// not strip the marker bits at their 13818-1 positions; downstream consumers
// key on the top 24 bits, where the markers never land.
type timestamp struct {
	hi uint32
	lo uint32
}

// msb24 packs the top 24 bits of the timestamp into a compact entry-point key.
func (t timestamp) msb24() uint32 {
	return (t.hi&0x1)<<23 | (t.lo>>9)&0x7FFFFF
}

// value reassembles the full 33-bit timestamp.
func (t timestamp) value() uint64 {
	return uint64(t.hi)<<32 | uint64(t.lo)
}

// pesPacketInfo is the immutable result of decoding one PES packet header.
type pesPacketInfo struct {
	streamID      uint32
	packetLength  uint32
	pts           timestamp
	hasPTS        bool
	dts           timestamp
	hasDTS        bool
	payloadOffset int64 // access-unit payload start; valid when hasPayload
	hasPayload    bool
}

// systemStreamID reports stream_ids that carry no timestamp fields
// (program stream map, padding, ECM/EMM, directory, DSMCC, H.222.1 E).
func systemStreamID(id uint32) bool {
	switch id {
	case 0xBC, 0xBE, 0xF0, 0xF1, 0xF8, 0xF9, 0xFF:
		return true
	}
	return false
}

// parsePESHeader decodes a PES packet header starting at the start-code
// prefix. For system stream_ids decoding stops after the base header; a
// PTS_DTS_flag of 0b00 or 0b01 stops before any timestamp and leaves the
// payload offset unset.
func parsePESHeader(r fieldReader, offset int64) (pesPacketInfo, error) {
	streamID, err := r.read(offset+3, 1)
	if err != nil {
		return pesPacketInfo{}, err
	}
	packetLength, err := r.read(offset+4, 2)
	if err != nil {
		return pesPacketInfo{}, err
	}
	info := pesPacketInfo{streamID: streamID, packetLength: packetLength}
	if systemStreamID(streamID) {
		return info, nil
	}

	flags, err := r.read(offset+5, 4)
	if err != nil {
		return pesPacketInfo{}, err
	}
	ptsDTSFlag := (flags >> 14) & 0x3
	headerDataLength := flags & 0xFF

	switch ptsDTSFlag {
	case 0x2:
		info.pts, err = parseTimestamp(r, offset+9)
		if err != nil {
			return pesPacketInfo{}, err
		}
		info.hasPTS = true
	case 0x3:
		info.pts, err = parseTimestamp(r, offset+9)
		if err != nil {
			return pesPacketInfo{}, err
		}
		info.hasPTS = true
		info.dts, err = parseTimestamp(r, offset+14)
		if err != nil {
			return pesPacketInfo{}, err
		}
		info.hasDTS = true
	default:
		return info, nil
	}

	info.payloadOffset = offset + 6 + int64(headerDataLength) + 3
	info.hasPayload = true
	return info, nil
}

// parseTimestamp reconstructs a 5-byte PTS/DTS field as one byte read plus
// two word reads.
func parseTimestamp(r fieldReader, offset int64) (timestamp, error) {
	b, err := r.read(offset, 1)
	if err != nil {
		return timestamp{}, err
	}
	w1, err := r.read(offset+1, 2)
	if err != nil {
		return timestamp{}, err
	}
	w2, err := r.read(offset+3, 2)
	if err != nil {
		return timestamp{}, err
	}
	return timestamp{
		hi: (b >> 3) & 0x1,
		lo: ((b>>1)&0x3)<<30 | ((w1>>1)&0x7FFF)<<15 | (w2>>1)&0x7FFF,
	}, nil
}
