package tsinspect

// clockReference is one decoded PCR sample. baseLo keeps the full 33-bit
// shifted base value; baseHi carries the top bit separately, mirroring the
// two-read reconstruction below.
type clockReference struct {
	baseHi    uint32
	baseLo    uint64
	extension uint32
}

type adaptationField struct {
	consumed int64 // length byte plus announced length
	flags    byte
	pcr      clockReference
	hasPCR   bool
}

func (f adaptationField) discontinuity() bool {
	return f.flags&0x80 != 0
}

// parseAdaptationField decodes the adaptation field starting immediately
// after the 4-byte packet header. A zero-length field consumes only its
// length byte and carries no flags.
func parseAdaptationField(r fieldReader, offset int64) (adaptationField, error) {
	length, err := r.read(offset, 1)
	if err != nil {
		return adaptationField{}, err
	}
	af := adaptationField{consumed: int64(length) + 1}
	if length == 0 {
		return af, nil
	}
	flags, err := r.read(offset+1, 1)
	if err != nil {
		return adaptationField{}, err
	}
	af.flags = byte(flags)
	if flags&0x10 != 0 {
		hi, err := r.read(offset+2, 4)
		if err != nil {
			return adaptationField{}, err
		}
		lo, err := r.read(offset+6, 2)
		if err != nil {
			return adaptationField{}, err
		}
		af.pcr = clockReference{
			baseHi:    (hi >> 31) & 0x1,
			baseLo:    uint64(hi)<<1 | uint64((lo>>15)&0x1),
			extension: lo & 0x1FF,
		}
		af.hasPCR = true
	}
	return af, nil
}
