//go:build unix

package main

import (
	"errors"
	"os/signal"
	"syscall"
)

// ignoreSIGPIPE keeps the runtime from killing the process when stdout is a
// pipe whose reader exits early; the write then fails with EPIPE instead,
// which writeStdout treats as a clean termination.
func ignoreSIGPIPE() {
	signal.Ignore(syscall.SIGPIPE)
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}
