package tsinspect

import (
	"bytes"
	"strings"
	"testing"
)

func TestGopAggregatorRuns(t *testing.T) {
	var a gopAggregator

	a.recordAccessUnit(2, auIDR, 0xAF)
	for p := int64(3); p <= 9; p++ {
		a.recordAccessUnit(p, auNonIDR, 0)
		a.touchTargetPacket(p)
	}
	a.recordAccessUnit(10, auIDR, 0xB0)
	a.touchTargetPacket(10)

	if len(a.entryPackets) != 2 || a.entryPackets[0] != 2 || a.entryPackets[1] != 10 {
		t.Fatalf("entryPackets = %v, want [2 10]", a.entryPackets)
	}
	if len(a.entryPTS) != 2 || a.entryPTS[0] != 0xAF || a.entryPTS[1] != 0xB0 {
		t.Fatalf("entryPTS = %v", a.entryPTS)
	}
	if len(a.runLengths) != 1 || a.runLengths[0] != 8 {
		t.Fatalf("runLengths = %v, want [8]", a.runLengths)
	}
}

func TestGopAggregatorIgnoresNonEntries(t *testing.T) {
	var a gopAggregator

	a.recordAccessUnit(0, auNonIDR, 0)
	a.recordAccessUnit(1, auUnknown, 0)
	a.touchTargetPacket(1)

	if len(a.entryPackets) != 0 || len(a.runLengths) != 0 {
		t.Fatalf("aggregate = %+v, want empty", a)
	}
}

func TestGopAggregatorBackToBackEntries(t *testing.T) {
	var a gopAggregator

	a.recordAccessUnit(4, auIDR, 0x10)
	a.touchTargetPacket(4)
	a.recordAccessUnit(5, auIDR, 0x11)
	a.touchTargetPacket(5)

	// The first run covers only the entry packet itself.
	if len(a.runLengths) != 1 || a.runLengths[0] != 1 {
		t.Fatalf("runLengths = %v, want [1]", a.runLengths)
	}
}

func TestRenderReport(t *testing.T) {
	var out bytes.Buffer
	RenderReport(&out, Result{
		Packets:     100,
		Halt:        HaltEndOfStream,
		EntryPoints: []int64{2, 50},
		EntryPTS:    []uint32{0xAF, 0xB0},
		RunLengths:  []int64{40},
		PTSSeconds:  1.5,
	})

	log := out.String()
	if !strings.Contains(log, "TPI = 0x2, PTS = 0xaf, EntryPESPacketNum = 0x28") {
		t.Fatalf("missing closed entry line:\n%s", log)
	}
	if !strings.Contains(log, "TPI = 0x32, PTS = 0xb0, EntryPESPacketNum = open") {
		t.Fatalf("missing open entry line:\n%s", log)
	}
	if !strings.Contains(log, "scanned 100 packets (end of stream)") {
		t.Fatalf("missing summary line:\n%s", log)
	}
	if !strings.Contains(log, "PTS span: 1 s 500 ms") {
		t.Fatalf("missing span line:\n%s", log)
	}
}

func TestRenderReportEmpty(t *testing.T) {
	var out bytes.Buffer
	RenderReport(&out, Result{Packets: 3, Halt: HaltSyncMismatch})

	log := out.String()
	if !strings.Contains(log, "scanned 3 packets (sync mismatch)") {
		t.Fatalf("missing summary line:\n%s", log)
	}
	if strings.Contains(log, "PTS span") {
		t.Fatalf("span printed without samples:\n%s", log)
	}
	if strings.Contains(log, "TPI =") {
		t.Fatalf("entry lines printed without entries:\n%s", log)
	}
}

func TestHaltReasonString(t *testing.T) {
	cases := map[HaltReason]string{
		HaltEndOfStream:  "end of stream",
		HaltSyncMismatch: "sync mismatch",
		HaltPacketLimit:  "packet limit exceeded",
		HaltFirstMatch:   "first match",
	}
	for reason, want := range cases {
		if got := reason.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", reason, got, want)
		}
	}
}
