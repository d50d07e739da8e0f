//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Answer builds the CLI and answers the default question file.
func Answer() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "answer", "-v")
}

// Filter builds the CLI and splits the default question file into
// comparative and single-author records.
func Filter() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "filter")
}

// Runs lists recent ledger runs.
func Runs() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "runs", "--limit", "10")
}
