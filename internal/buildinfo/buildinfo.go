// Package buildinfo reports ldflags-stamped build metadata.
package buildinfo

import "fmt"

var (
	BuildVersion string
	BuildDate    string
	BuildCommit  string
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// String renders the stamped build metadata, substituting N/A for anything
// the build did not set.
func String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		orNA(BuildVersion), orNA(BuildDate), orNA(BuildCommit))
}

func PrintBuildInfo() {
	fmt.Print(String())
}
