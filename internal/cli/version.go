package cli

import (
	"fmt"
	"io"

	"github.com/pradeepantapnal/tsinspect/internal/tsinspect"
)

var appVersion = "dev"

func SetVersion(version string) {
	if version != "" {
		appVersion = version
	}
}

func Version(stdout io.Writer) {
	fmt.Fprintf(stdout, "tsinspect, %s\n", tsinspect.FormatVersion(appVersion))
}
