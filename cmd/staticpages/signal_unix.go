//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals includes SIGHUP so a preview left running in a closed
// terminal exits.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
