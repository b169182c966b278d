// Package buildinfo reports the version stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/dmitrijs2005/loveletters/internal/buildinfo.Version=v1.0.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version   = "N/A"
	BuildDate = "N/A"
	Commit    = "N/A"
)

func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
