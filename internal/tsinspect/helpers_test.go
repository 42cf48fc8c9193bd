package tsinspect

// Builders for the synthetic 188-byte packets used across the tests.

func packetHeader(pid uint16, pusi bool, afc byte) [4]byte {
	h := [4]byte{0x47, byte(pid>>8) & 0x1F, byte(pid), afc << 4}
	if pusi {
		h[1] |= 0x40
	}
	return h
}

// psiPacket wraps a section in a payload-only packet with a zero pointer_field.
func psiPacket(pid uint16, section []byte) []byte {
	pkt := make([]byte, 188)
	h := packetHeader(pid, true, 0x1)
	copy(pkt, h[:])
	pkt[4] = 0x00 // pointer_field
	copy(pkt[5:], section)
	return pkt
}

// patSectionBytes encodes a PAT section from (program_number, PID) pairs.
// The CRC is left zero; the decoders never validate it.
func patSectionBytes(entries [][2]uint16) []byte {
	sectionLen := 5 + 4*len(entries) + 4
	sec := []byte{
		0x00,
		0xB0 | byte(sectionLen>>8), byte(sectionLen),
		0x00, 0x01, // transport_stream_id
		0xC1, // version/current_next
		0x00, // section_number
		0x00, // last_section_number
	}
	for _, e := range entries {
		sec = append(sec,
			byte(e[0]>>8), byte(e[0]),
			0xE0|byte(e[1]>>8), byte(e[1]))
	}
	return append(sec, 0, 0, 0, 0)
}

// pesPacket builds a payload-only packet carrying a PES header with a PTS
// followed by an access-unit delimiter NAL. A primaryPicType of 0 marks an
// IDR picture.
func pesPacket(pid uint16, streamID byte, pts uint64, primaryPicType byte) []byte {
	pkt := make([]byte, 188)
	h := packetHeader(pid, true, 0x1)
	copy(pkt, h[:])
	p := pkt[4:]
	p[0], p[1], p[2], p[3] = 0x00, 0x00, 0x01, streamID
	p[6] = 0x80
	p[7] = 0x80 // PTS_DTS_flag = 0b10
	p[8] = 5    // PES_header_data_length
	encodeTimestamp(p[9:14], pts)
	copy(p[14:], []byte{0x00, 0x00, 0x01, 0x09, primaryPicType << 5})
	return pkt
}

// encodeTimestamp writes a 33-bit value as the 5-byte PTS/DTS field with the
// '0010' prefix and marker bits set.
func encodeTimestamp(dst []byte, v uint64) {
	dst[0] = 0x21 | byte((v>>29)&0x0E)
	w1 := uint16(((v>>15)&0x7FFF)<<1 | 1)
	dst[1] = byte(w1 >> 8)
	dst[2] = byte(w1)
	w2 := uint16((v&0x7FFF)<<1 | 1)
	dst[3] = byte(w2 >> 8)
	dst[4] = byte(w2)
}

func concatPackets(packets ...[]byte) []byte {
	var out []byte
	for _, p := range packets {
		out = append(out, p...)
	}
	return out
}
