package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pradeepantapnal/tsinspect/internal/tsinspect"
)

const (
	exitOK    = 0
	exitError = 1
)

type Options struct {
	File       string
	PacketSize int
	Mode       tsinspect.Mode
	Search     tsinspect.SearchItem
	PSIMode    tsinspect.PSIMode
	PID        uint16
}

// Run parses the raw argument list, opens the capture and drives one scan.
// The event log goes to stdout; usage and open errors go to stderr.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return exitError
	}

	program := programName(args[0])
	opts := Options{
		PacketSize: 188,
		Mode:       tsinspect.ModePAT,
		Search:     tsinspect.SearchAll,
	}
	var pidArg string
	var psiAll, psiUnique bool

	for i := 1; i < len(args); i++ {
		original := args[i]
		normalized := normalizeArg(original)

		value := func() (string, bool) {
			if eq, ok := valueAfterEqual(original); ok {
				return eq, true
			}
			if i+1 < len(args) {
				i++
				return args[i], true
			}
			return "", false
		}

		switch {
		case normalized == "--help" || normalized == "-h":
			Help(program, stdout)
			return exitOK
		case normalized == "--version":
			Version(stdout)
			return exitOK
		case normalized == "-f" || normalized == "--file" || strings.HasPrefix(normalized, "--file="):
			v, ok := value()
			if !ok {
				return usageError(program, stderr, "missing file name")
			}
			opts.File = v
		case normalized == "-t" || normalized == "--type" || strings.HasPrefix(normalized, "--type="):
			v, ok := value()
			if !ok {
				return usageError(program, stderr, "missing packet size")
			}
			size, err := strconv.Atoi(v)
			if err != nil {
				return usageError(program, stderr, "invalid packet size "+v)
			}
			opts.PacketSize = size
		case normalized == "-m" || normalized == "--mode" || strings.HasPrefix(normalized, "--mode="):
			v, ok := value()
			if !ok {
				return usageError(program, stderr, "missing mode")
			}
			opts.Mode = tsinspect.Mode(strings.ToUpper(v))
		case normalized == "-s" || normalized == "--search" || strings.HasPrefix(normalized, "--search="):
			v, ok := value()
			if !ok {
				return usageError(program, stderr, "missing search item")
			}
			opts.Search = tsinspect.SearchItem(strings.ToUpper(v))
		case normalized == "--all":
			psiAll = true
		case normalized == "--unique":
			psiUnique = true
		case strings.HasPrefix(normalized, "-") && normalized != "-":
			return usageError(program, stderr, "unknown option "+original)
		default:
			pidArg = original
		}
	}

	switch opts.PacketSize {
	case 188, 192, 204:
	default:
		return usageError(program, stderr, fmt.Sprintf("packet size must be 188, 192 or 204, got %d", opts.PacketSize))
	}
	switch opts.Mode {
	case tsinspect.ModePAT, tsinspect.ModePMT, tsinspect.ModeSIT, tsinspect.ModeES:
	default:
		return usageError(program, stderr, "mode must be one of PAT, PMT, SIT, ES")
	}
	switch opts.Search {
	case tsinspect.SearchAll, tsinspect.SearchPAT, tsinspect.SearchPMT, tsinspect.SearchPCR, tsinspect.SearchSIT:
	default:
		return usageError(program, stderr, "search item must be one of PAT, PMT, PCR, SIT")
	}

	// A target PID is only consulted on the wildcard search for non-PAT
	// modes; an explicit search item scans without PID filtering.
	if opts.Search == tsinspect.SearchAll && opts.Mode != tsinspect.ModePAT {
		if pidArg == "" {
			Help(program, stdout)
			return exitError
		}
		pid, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(pidArg), "0x"), 16, 64)
		if err != nil || pid > 0x1FFF {
			return usageError(program, stderr, "invalid PID "+pidArg)
		}
		opts.PID = uint16(pid)
	}

	// Repetition modes only apply to an explicit table search; the wildcard
	// always stops at the first decoded table.
	if opts.Search != tsinspect.SearchAll {
		switch {
		case psiUnique:
			opts.PSIMode = tsinspect.PSIUniquePerPID
		case psiAll:
			opts.PSIMode = tsinspect.PSIAll
		}
	}

	if opts.File == "" {
		return Usage(program, stderr)
	}

	file, err := os.Open(opts.File)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitError
	}
	defer file.Close()

	fmt.Fprintln(stdout, opts.File)
	result := tsinspect.Scan(file, tsinspect.Options{
		PacketSize: opts.PacketSize,
		Mode:       opts.Mode,
		PID:        opts.PID,
		Search:     opts.Search,
		PSIMode:    opts.PSIMode,
	}, stdout)
	tsinspect.RenderReport(stdout, result)
	return exitOK
}

func usageError(program string, stderr io.Writer, msg string) int {
	fmt.Fprintln(stderr, msg)
	return Usage(program, stderr)
}

func programName(arg0 string) string {
	name := filepath.Base(arg0)
	if runtime.GOOS == "windows" {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func normalizeArg(arg string) string {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		eq = len(arg)
	}

	lower := strings.ToLower(arg[:eq])
	return lower + arg[eq:]
}

func valueAfterEqual(arg string) (string, bool) {
	eq := strings.IndexByte(arg, '=')
	if eq == -1 {
		return "", false
	}
	return arg[eq+1:], true
}
