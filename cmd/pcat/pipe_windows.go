//go:build windows

package main

import (
	"errors"
	"syscall"
)

func ignoreSIGPIPE() {}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}
