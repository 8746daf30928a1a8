//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "rimlocale"

// Default target to run when none is specified
var Default = Build

// Build builds the rimlocale binary
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/rimlocale")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs rimlocale into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/rimlocale")
}

// Clean removes the built binary and the local prompt cache
func Clean() error {
	if err := sh.Rm(binary); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(".", ".prompt-cache"))
}
