// Package tsinspect exposes the transport stream scanner for use as a
// library.
package tsinspect

import (
	"io"

	"github.com/pradeepantapnal/tsinspect/internal/tsinspect"
)

// Types
type Mode = tsinspect.Mode
type SearchItem = tsinspect.SearchItem
type PSIMode = tsinspect.PSIMode
type Options = tsinspect.Options
type Result = tsinspect.Result
type HaltReason = tsinspect.HaltReason

// Constants
const (
	ModePAT = tsinspect.ModePAT
	ModePMT = tsinspect.ModePMT
	ModeSIT = tsinspect.ModeSIT
	ModeES  = tsinspect.ModeES

	SearchAll = tsinspect.SearchAll
	SearchPAT = tsinspect.SearchPAT
	SearchPMT = tsinspect.SearchPMT
	SearchPCR = tsinspect.SearchPCR
	SearchSIT = tsinspect.SearchSIT

	PSIFirstOnly    = tsinspect.PSIFirstOnly
	PSIAll          = tsinspect.PSIAll
	PSIUniquePerPID = tsinspect.PSIUniquePerPID

	HaltEndOfStream  = tsinspect.HaltEndOfStream
	HaltSyncMismatch = tsinspect.HaltSyncMismatch
	HaltPacketLimit  = tsinspect.HaltPacketLimit
	HaltFirstMatch   = tsinspect.HaltFirstMatch
)

// Functions
func Scan(src io.ReaderAt, opts Options, out io.Writer) Result {
	return tsinspect.Scan(src, opts, out)
}

func RenderReport(w io.Writer, res Result) {
	tsinspect.RenderReport(w, res)
}

func FormatVersion(version string) string {
	return tsinspect.FormatVersion(version)
}
