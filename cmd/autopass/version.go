package main

import "fmt"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionString() string {
	return fmt.Sprintf("autopass %s (%s, %s)", version, commit[:min(7, len(commit))], date)
}
