package buildinfo

import (
	"fmt"
	"io"
)

// Populated at link time:
//
//	go build -ldflags "-X stockpilot/internal/buildinfo.buildVersion=v1.0.0 ..."
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// PrintBuildData writes the build stamp to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}
