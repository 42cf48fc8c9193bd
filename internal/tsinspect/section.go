package tsinspect

import "fmt"

type tableID uint32

const (
	tablePAT tableID = 0x00
	tablePMT tableID = 0x02
	tableSIT tableID = 0x7F
)

func (t tableID) String() string {
	switch t {
	case tablePAT:
		return "PAT"
	case tablePMT:
		return "PMT"
	case tableSIT:
		return "SIT"
	}
	return fmt.Sprintf("table 0x%02X", uint32(t))
}

// tableMismatchError reports a section whose leading byte does not match the
// table_id the decoder was invoked for. The scanner logs it and moves on.
type tableMismatchError struct {
	want tableID
	got  uint32
}

func (e *tableMismatchError) Error() string {
	return fmt.Sprintf("tsinspect: unexpected table_id 0x%02X, want %s", e.got, e.want)
}

type descriptorEntry struct {
	tag    uint8
	length uint8
}

// descriptorLoop walks (tag, length) pairs starting at offset until total
// announced bytes are consumed. Tag semantics are not interpreted. Lengths
// are trusted: a mismatched loop ends as soon as the running count goes
// non-positive, matching the section-length bookkeeping of the tables that
// embed these loops. Returns the entries and the offset just past the loop.
func descriptorLoop(r fieldReader, offset int64, total int) ([]descriptorEntry, int64, error) {
	var entries []descriptorEntry
	n := total
	m := offset
	for n > 0 {
		tag, err := r.read(m, 1)
		if err != nil {
			return nil, 0, err
		}
		length, err := r.read(m+1, 1)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, descriptorEntry{tag: uint8(tag), length: uint8(length)})
		n -= int(length) + 2
		m += int64(length) + 2
	}
	return entries, m, nil
}

type patEntry struct {
	programNumber uint32
	pid           uint32 // program map PID, or network PID when programNumber is 0
}

type patSection struct {
	sectionLength     int
	sectionNumber     uint32
	lastSectionNumber uint32
	entries           []patEntry
}

// parsePATSection decodes a Program Association Table section starting at
// the table_id byte.
func parsePATSection(r fieldReader, offset int64) (patSection, error) {
	word, err := r.read(offset, 4)
	if err != nil {
		return patSection{}, err
	}
	if id := word >> 24; tableID(id) != tablePAT {
		return patSection{}, &tableMismatchError{want: tablePAT, got: id}
	}
	sec := patSection{sectionLength: int((word >> 8) & 0xFFF)}

	word, err = r.read(offset+4, 4)
	if err != nil {
		return patSection{}, err
	}
	sec.sectionNumber = (word >> 8) & 0xFF
	sec.lastSectionNumber = word & 0xFF

	// Program loop: section_length minus the CRC and the five header bytes
	// that follow the length field, four bytes per association.
	length := sec.sectionLength - 4 - 5
	j := offset + 8
	for length > 0 {
		word, err = r.read(j, 4)
		if err != nil {
			return patSection{}, err
		}
		sec.entries = append(sec.entries, patEntry{
			programNumber: word >> 16,
			pid:           word & 0x1FFF,
		})
		length -= 4
		j += 4
	}
	return sec, nil
}

type pmtElementaryStream struct {
	streamType    uint32
	elementaryPID uint32
	infoLength    int
	descriptors   []descriptorEntry
}

type pmtSection struct {
	sectionLength      int
	programNumber      uint32
	sectionNumber      uint32
	lastSectionNumber  uint32
	pcrPID             uint32
	programInfoLength  int
	programDescriptors []descriptorEntry
	streams            []pmtElementaryStream
}

// parsePMTSection decodes a Program Map Table section starting at the
// table_id byte.
func parsePMTSection(r fieldReader, offset int64) (pmtSection, error) {
	word, err := r.read(offset, 4)
	if err != nil {
		return pmtSection{}, err
	}
	if id := word >> 24; tableID(id) != tablePMT {
		return pmtSection{}, &tableMismatchError{want: tablePMT, got: id}
	}
	sec := pmtSection{
		sectionLength: int((word >> 8) & 0xFFF),
		programNumber: (word & 0xFF) << 8,
	}

	word, err = r.read(offset+4, 4)
	if err != nil {
		return pmtSection{}, err
	}
	sec.programNumber += (word >> 24) & 0xFF
	sec.sectionNumber = (word >> 8) & 0xFF
	sec.lastSectionNumber = word & 0xFF

	word, err = r.read(offset+8, 4)
	if err != nil {
		return pmtSection{}, err
	}
	sec.pcrPID = (word >> 16) & 0x1FFF
	sec.programInfoLength = int(word & 0xFFF)

	sec.programDescriptors, _, err = descriptorLoop(r, offset+12, sec.programInfoLength)
	if err != nil {
		return pmtSection{}, err
	}

	j := offset + 12 + int64(sec.programInfoLength)
	length := sec.sectionLength - 4 - 9 - sec.programInfoLength
	for length > 0 {
		streamType, err := r.read(j, 1)
		if err != nil {
			return pmtSection{}, err
		}
		word, err = r.read(j+1, 4)
		if err != nil {
			return pmtSection{}, err
		}
		esInfoLength := int(word & 0xFFF)
		es := pmtElementaryStream{
			streamType:    streamType,
			elementaryPID: (word >> 16) & 0x1FFF,
			infoLength:    esInfoLength,
		}
		es.descriptors, _, err = descriptorLoop(r, j+5, esInfoLength)
		if err != nil {
			return pmtSection{}, err
		}
		sec.streams = append(sec.streams, es)
		j += 5 + int64(esInfoLength)
		length -= 5 + esInfoLength
	}
	return sec, nil
}

type sitService struct {
	serviceID   uint32
	loopLength  int
	descriptors []descriptorEntry
}

type sitSection struct {
	sectionLength           int
	sectionNumber           uint32
	lastSectionNumber       uint32
	transmissionLoopLength  int
	transmissionDescriptors []descriptorEntry
	services                []sitService
}

// parseSITSection decodes a Selection Information Table section starting at
// the table_id byte.
func parseSITSection(r fieldReader, offset int64) (sitSection, error) {
	word, err := r.read(offset, 4)
	if err != nil {
		return sitSection{}, err
	}
	if id := word >> 24; tableID(id) != tableSIT {
		return sitSection{}, &tableMismatchError{want: tableSIT, got: id}
	}
	sec := sitSection{sectionLength: int((word >> 8) & 0xFFF)}

	word, err = r.read(offset+4, 4)
	if err != nil {
		return sitSection{}, err
	}
	sec.sectionNumber = (word >> 8) & 0xFF
	sec.lastSectionNumber = word & 0xFF

	word, err = r.read(offset+8, 2)
	if err != nil {
		return sitSection{}, err
	}
	sec.transmissionLoopLength = int(word & 0xFFF)

	sec.transmissionDescriptors, _, err = descriptorLoop(r, offset+10, sec.transmissionLoopLength)
	if err != nil {
		return sitSection{}, err
	}

	j := offset + 10 + int64(sec.transmissionLoopLength)
	length := sec.sectionLength - 4 - 7 - sec.transmissionLoopLength
	for length > 0 {
		word, err = r.read(j, 4)
		if err != nil {
			return sitSection{}, err
		}
		serviceLoopLength := int(word & 0xFFF)
		svc := sitService{serviceID: (word >> 16) & 0xFFFF, loopLength: serviceLoopLength}
		svc.descriptors, _, err = descriptorLoop(r, j+4, serviceLoopLength)
		if err != nil {
			return sitSection{}, err
		}
		sec.services = append(sec.services, svc)
		j += 4 + int64(serviceLoopLength)
		length -= 4 + serviceLoopLength
	}
	return sec, nil
}
