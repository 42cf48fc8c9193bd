package tsinspect

import (
	"errors"
	"fmt"
	"io"
)

const (
	packetSyncByte = 0x47

	// Hard ceiling on the packet counter, so corrupt or looping captures
	// cannot keep the scan alive forever.
	maxPacketCount = 1450000
)

// sectionAction is the PSI dispatch decision for one packet.
type sectionAction int

const (
	actionIgnore sectionAction = iota
	actionEmit
	actionEmitAndStop
	actionSkipDuplicatePID
)

type scanner struct {
	r    fieldReader
	opts Options
	out  io.Writer

	seenPIDs map[uint16]struct{}
	gop      gopAggregator
	clock    clockTracker
}

// Scan walks src packet by packet, logs decoded events to out, and returns
// the accumulated result. It never fails: corrupt input halts the scan with
// a diagnostic line, and whatever was aggregated up to that point is
// returned.
func Scan(src io.ReaderAt, opts Options, out io.Writer) Result {
	if out == nil {
		out = io.Discard
	}
	s := &scanner{
		r:        fieldReader{src: src},
		opts:     normalizeOptions(opts),
		out:      out,
		seenPIDs: make(map[uint16]struct{}),
	}
	return s.run()
}

func (s *scanner) run() Result {
	offset := int64(0)
	if s.opts.PacketSize == 192 {
		// 192-byte packets carry a 4-byte prefix before the TS payload.
		offset = 4
	}
	size := int64(s.opts.PacketSize)

	var packetCount int64
	halt := HaltEndOfStream

loop:
	for {
		header, err := s.r.read(offset, 4)
		if err != nil {
			s.logStreamEnd(err)
			break
		}

		if header>>24 != packetSyncByte {
			fmt.Fprintf(s.out, "sync byte not found at packet No. %d, stream is corrupt past this point\n", packetCount)
			halt = HaltSyncMismatch
			break
		}

		pusi := (header >> 22) & 0x1
		pid := uint16((header >> 8) & 0x1FFF)
		adaptationFieldControl := (header >> 4) & 0x3

		var afConsumed int64
		if adaptationFieldControl == 0x2 || adaptationFieldControl == 0x3 {
			af, err := parseAdaptationField(s.r, offset+4)
			if err != nil {
				s.logStreamEnd(err)
				break
			}
			afConsumed = af.consumed
			if s.opts.Search == SearchPCR && af.hasPCR {
				logPCR(s.out, packetCount, pid, af.pcr, af.discontinuity())
			}
		}

		if adaptationFieldControl == 0x1 || adaptationFieldControl == 0x3 {
			payload := offset + 4 + afConsumed
			probe, err := s.r.read(payload, 4)
			if err != nil {
				s.logStreamEnd(err)
				break
			}

			switch {
			case probe&startCodeMask == startCodeValue && pid == s.opts.PID && pusi == 1:
				if err := s.handlePES(payload, pid, packetCount); err != nil {
					s.logStreamEnd(err)
					break loop
				}
			case probe&startCodeMask != startCodeValue && pusi == 1:
				stop, err := s.handleSection(payload, probe, pid, packetCount)
				if err != nil {
					s.logStreamEnd(err)
					break loop
				}
				if stop {
					halt = HaltFirstMatch
					break loop
				}
			}

			if pid == s.opts.PID {
				s.gop.touchTargetPacket(packetCount)
			}
		}

		offset += size
		packetCount++
		if packetCount > maxPacketCount {
			fmt.Fprintf(s.out, "packet ceiling of %d exceeded, stopping\n", maxPacketCount)
			halt = HaltPacketLimit
			break
		}
	}

	return Result{
		Packets:     packetCount,
		Halt:        halt,
		EntryPoints: s.gop.entryPackets,
		EntryPTS:    s.gop.entryPTS,
		RunLengths:  s.gop.runLengths,
		PTSSeconds:  s.clock.duration(),
	}
}

// handlePES decodes a PES header on the target PID and, in ES mode,
// classifies the access unit and folds it into the GOP aggregate.
func (s *scanner) handlePES(offset int64, pid uint16, packet int64) error {
	info, err := parsePESHeader(s.r, offset)
	if err != nil {
		return err
	}
	logPESStart(s.out, packet, pid, info)
	if info.hasPTS {
		s.clock.add(info.pts.value())
	}
	if s.opts.Mode != ModeES {
		return nil
	}

	au := auUnknown
	if info.hasPayload {
		au, err = classifyAccessUnit(s.r, info.payloadOffset)
		if err != nil {
			return err
		}
	}
	logAccessUnit(s.out, packet, pid, info.streamID, au)
	s.gop.recordAccessUnit(packet, au, info.pts.msb24())
	return nil
}

// handleSection dispatches a PSI packet start. The returned stop flag
// requests termination after a first-only match.
func (s *scanner) handleSection(payload int64, probe uint32, pid uint16, packet int64) (bool, error) {
	pointerField := int64(probe >> 24)
	tableOffset := payload + 1 + pointerField
	id, err := s.r.read(tableOffset, 1)
	if err != nil {
		return false, err
	}
	table := tableID(id)

	if table == tablePAT && pid != 0 {
		fmt.Fprintf(s.out, "suspicious PAT table_id on PID 0x%X at packet No. %d\n", pid, packet)
	}

	action := s.sectionAction(table, pid)
	if action == actionIgnore || action == actionSkipDuplicatePID {
		return false, nil
	}

	switch table {
	case tablePAT:
		sec, err := parsePATSection(s.r, tableOffset)
		if err != nil {
			return false, s.sectionWarn(err, packet)
		}
		logPAT(s.out, packet, pid, sec)
	case tablePMT:
		sec, err := parsePMTSection(s.r, tableOffset)
		if err != nil {
			return false, s.sectionWarn(err, packet)
		}
		logPMT(s.out, packet, pid, sec)
	case tableSIT:
		sec, err := parseSITSection(s.r, tableOffset)
		if err != nil {
			return false, s.sectionWarn(err, packet)
		}
		logSIT(s.out, packet, pid, sec)
	}

	return action == actionEmitAndStop, nil
}

// sectionAction decides, from the configured search item, mode and PSI
// repetition mode, what to do with a section of the given table type. The
// seen-PID set for unique mode is owned by this scan session.
func (s *scanner) sectionAction(table tableID, pid uint16) sectionAction {
	var targeted bool
	switch table {
	case tablePAT:
		targeted = s.opts.Search == SearchPAT ||
			(s.opts.Search == SearchAll && s.opts.Mode == ModePAT)
	case tablePMT:
		targeted = s.opts.Search == SearchPMT ||
			(s.opts.Search == SearchAll && s.opts.Mode == ModePMT && pid == s.opts.PID)
	case tableSIT:
		targeted = s.opts.Search == SearchSIT ||
			(s.opts.Search == SearchAll && s.opts.Mode == ModeSIT && pid == s.opts.PID)
	default:
		return actionIgnore
	}
	if !targeted {
		return actionIgnore
	}

	switch s.opts.PSIMode {
	case PSIUniquePerPID:
		if _, seen := s.seenPIDs[pid]; seen {
			return actionSkipDuplicatePID
		}
		s.seenPIDs[pid] = struct{}{}
		return actionEmit
	case PSIAll:
		return actionEmit
	default:
		return actionEmitAndStop
	}
}

// sectionWarn downgrades a table mismatch to a logged warning; anything else
// (a short read, in practice) terminates the scan.
func (s *scanner) sectionWarn(err error, packet int64) error {
	var mismatch *tableMismatchError
	if errors.As(err, &mismatch) {
		fmt.Fprintf(s.out, "skipping packet No. %d: %v\n", packet, err)
		return nil
	}
	return err
}

func (s *scanner) logStreamEnd(err error) {
	if errors.Is(err, ErrStreamExhausted) {
		fmt.Fprintln(s.out, "reached end of stream")
		return
	}
	fmt.Fprintf(s.out, "read error: %v\n", err)
}
