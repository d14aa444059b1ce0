package main

import (
	"io"
	"os"
	"os/exec"

	"github.com/go-rod/rod/lib/launcher"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// Getenv and Environ read the process environment.
	Getenv  func(string) string
	Environ func() []string

	// LookPath resolves an executable on PATH.
	LookPath func(string) (string, error)
	// BrowserPath locates a Chrome/Chromium binary.
	BrowserPath func() (string, bool)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Getenv:      os.Getenv,
		Environ:     os.Environ,
		LookPath:    exec.LookPath,
		BrowserPath: launcher.LookPath,
	}
}
