package tsinspect

// Mode selects which table type or elementary-stream path is targeted when
// Search is the wildcard.
type Mode string

const (
	ModePAT Mode = "PAT"
	ModePMT Mode = "PMT"
	ModeSIT Mode = "SIT"
	ModeES  Mode = "ES"
)

// SearchItem overrides Mode for table selection. SearchPCR only enables the
// PCR-logging branch of the scan.
type SearchItem string

const (
	SearchAll SearchItem = "ALL"
	SearchPAT SearchItem = "PAT"
	SearchPMT SearchItem = "PMT"
	SearchPCR SearchItem = "PCR"
	SearchSIT SearchItem = "SIT"
)

// PSIMode controls repetition of table output.
type PSIMode int

const (
	// PSIFirstOnly stops the scan after the first decoded instance of the
	// targeted table.
	PSIFirstOnly PSIMode = iota
	// PSIAll logs every instance.
	PSIAll
	// PSIUniquePerPID logs only the first instance seen per distinct PID.
	PSIUniquePerPID
)

type Options struct {
	PacketSize int // 188, 192 or 204
	Mode       Mode
	PID        uint16 // target PID for ES and for wildcard PMT/SIT dispatch
	Search     SearchItem
	PSIMode    PSIMode
}

func normalizeOptions(opts Options) Options {
	switch opts.PacketSize {
	case 188, 192, 204:
	default:
		opts.PacketSize = 188
	}
	if opts.Mode == "" {
		opts.Mode = ModePAT
	}
	if opts.Search == "" {
		opts.Search = SearchAll
	}
	return opts
}
