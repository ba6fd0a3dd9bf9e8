//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the viewer with the default configuration.
func (Run) Viewer() error {
	fmt.Println("Run viewer...")
	if _, err := executeCmd("go", withArgs("run", "main.go"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the viewer without a window or GPU.
func (Run) Headless() error {
	if _, err := executeCmd("go", withArgs("run", "main.go", "-headless"), withStream()); err != nil {
		return err
	}
	return nil
}
