package tsinspect

// accessUnitType classifies the picture opening an access unit.
type accessUnitType int

const (
	auUnknown accessUnitType = iota
	auIDR
	auNonIDR
)

func (t accessUnitType) String() string {
	switch t {
	case auIDR:
		return "IDR_picture"
	case auNonIDR:
		return "non_IDR_picture"
	}
	return "Unknown AU type"
}

const (
	startCodeMask  = 0xFFFFFF00
	startCodeValue = 0x00000100

	nalAccessUnitDelimiter = 9

	// How far past the payload start the classifier looks for a start code.
	startCodeSearchWindow = 100
)

// classifyAccessUnit scans forward from offset, one byte at a time, for a
// NAL start code. Only an access-unit delimiter NAL is classified: its
// primary_pic_type of 0 marks an IDR picture. Anything else, or no start
// code within the window, is unknown.
func classifyAccessUnit(r fieldReader, offset int64) (accessUnitType, error) {
	word, err := r.read(offset, 4)
	if err != nil {
		return auUnknown, err
	}
	k := int64(0)
	for word&startCodeMask != startCodeValue {
		k++
		if k > startCodeSearchWindow {
			return auUnknown, nil
		}
		word, err = r.read(offset+k, 4)
		if err != nil {
			return auUnknown, err
		}
	}
	if word&0x1F != nalAccessUnitDelimiter {
		return auUnknown, nil
	}
	b, err := r.read(offset+k+4, 1)
	if err != nil {
		return auUnknown, err
	}
	if (b&0xE0)>>5 == 0 {
		return auIDR, nil
	}
	return auNonIDR, nil
}
