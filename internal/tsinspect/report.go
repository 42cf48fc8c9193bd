package tsinspect

import (
	"fmt"
	"io"
)

// HaltReason records why a scan stopped.
type HaltReason int

const (
	// HaltEndOfStream covers clean EOF and short reads mid-field.
	HaltEndOfStream HaltReason = iota
	// HaltSyncMismatch marks a packet whose first byte was not 0x47.
	HaltSyncMismatch
	// HaltPacketLimit marks the safety ceiling on the packet counter.
	HaltPacketLimit
	// HaltFirstMatch marks an early return after the first decoded table.
	HaltFirstMatch
)

func (h HaltReason) String() string {
	switch h {
	case HaltSyncMismatch:
		return "sync mismatch"
	case HaltPacketLimit:
		return "packet limit exceeded"
	case HaltFirstMatch:
		return "first match"
	}
	return "end of stream"
}

// Result is the accumulated outcome of one scan. The three entry-point
// sequences are index-aligned; RunLengths may be one shorter than
// EntryPoints when the final run was still open at termination.
type Result struct {
	Packets     int64
	Halt        HaltReason
	EntryPoints []int64
	EntryPTS    []uint32
	RunLengths  []int64
	PTSSeconds  float64 // observed PTS span of the target PID
}

// gopAggregator tracks GOP entry points on the target PID: the packet number
// and PTS key of each IDR access unit, and the packet run length between
// consecutive entry points.
type gopAggregator struct {
	entryPackets []int64
	entryPTS     []uint32
	runLengths   []int64

	entryOpen         bool
	lastSamePIDPacket int64
	lastEntryPacket   int64
}

// recordAccessUnit folds one classified access unit into the aggregate. An
// entry point's run stays open until the next IDR arrives, so the run length
// counts every target-PID packet of the GOP it opens; the final run is never
// closed.
func (a *gopAggregator) recordAccessUnit(packet int64, au accessUnitType, ptsKey uint32) {
	if au != auIDR {
		return
	}
	if a.entryOpen {
		a.runLengths = append(a.runLengths, a.lastSamePIDPacket-a.lastEntryPacket+1)
	}
	a.entryOpen = true
	a.lastEntryPacket = packet
	a.entryPackets = append(a.entryPackets, packet)
	a.entryPTS = append(a.entryPTS, ptsKey)
}

// touchTargetPacket notes that packet carried payload on the target PID.
func (a *gopAggregator) touchTargetPacket(packet int64) {
	a.lastSamePIDPacket = packet
}

// RenderReport writes the end-of-scan entry-point block and summary.
func RenderReport(w io.Writer, res Result) {
	fmt.Fprintln(w, "================================================")
	for i, tpi := range res.EntryPoints {
		if i < len(res.RunLengths) {
			fmt.Fprintf(w, "TPI = 0x%x, PTS = 0x%x, EntryPESPacketNum = 0x%x\n",
				tpi, res.EntryPTS[i], res.RunLengths[i])
			continue
		}
		fmt.Fprintf(w, "TPI = 0x%x, PTS = 0x%x, EntryPESPacketNum = open\n",
			tpi, res.EntryPTS[i])
	}
	fmt.Fprintf(w, "scanned %d packets (%s)\n", res.Packets, res.Halt)
	if d := formatDuration(res.PTSSeconds); d != "" {
		fmt.Fprintf(w, "PTS span: %s\n", d)
	}
}
