package cli

import (
	"fmt"
	"io"
)

func Help(program string, stdout io.Writer) {
	Version(stdout)
	fmt.Fprintf(stdout, "Usage: \"%s [-Options...] [pid]\"\n", program)
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Options:")
	fmt.Fprintln(stdout, "--Help, -h")
	fmt.Fprintln(stdout, "                    Display this help and exit")
	fmt.Fprintln(stdout, "--Version")
	fmt.Fprintln(stdout, "                    Display version information and exit")
	fmt.Fprintln(stdout, "--File FILE, -f FILE")
	fmt.Fprintln(stdout, "                    Transport stream capture to scan")
	fmt.Fprintln(stdout, "--Type N, -t N")
	fmt.Fprintln(stdout, "                    TS packet size: 188, 192 or 204 (default 188)")
	fmt.Fprintln(stdout, "--Mode M, -m M")
	fmt.Fprintln(stdout, "                    Parsing mode: PAT, PMT, SIT or ES (default PAT)")
	fmt.Fprintln(stdout, "--Search S, -s S")
	fmt.Fprintln(stdout, "                    Search for PAT, PMT, PCR or SIT packets (overrides --Mode)")
	fmt.Fprintln(stdout, "--All")
	fmt.Fprintln(stdout, "                    With --Search: log every instance of the targeted table")
	fmt.Fprintln(stdout, "--Unique")
	fmt.Fprintln(stdout, "                    With --Search: log the first instance per distinct PID")
	fmt.Fprintln(stdout, "pid")
	fmt.Fprintln(stdout, "                    Target PID in hex; required for --Mode PMT/SIT/ES without --Search")
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Commands:")
	fmt.Fprintln(stdout, "completion           Generate the autocompletion script for the specified shell")
	fmt.Fprintln(stdout, "help                 Help about any command")
	fmt.Fprintln(stdout, "version              Print tsinspect version information")
}

func HelpNothing(program string, stdout io.Writer) {
	fmt.Fprintf(stdout, "Usage: \"%s [-Options...] [pid]\"\n", program)
	fmt.Fprintf(stdout, "\"%s --help\" for displaying more information\n", program)
}

func Usage(program string, stdout io.Writer) int {
	HelpNothing(program, stdout)
	return exitError
}
