package main

import (
	"fmt"
	"path/filepath"

	"github.com/skratchdot/open-golang/open"
)

// startViewer opens a file with the desktop's default application without
// waiting for it to exit.
var startViewer = open.Start

func openFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := startViewer(abs); err != nil {
		return fmt.Errorf("open %s: %w", abs, err)
	}
	return nil
}
