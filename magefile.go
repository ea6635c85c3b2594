//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binaryName = "wordtoons"

// Default target to run when none is specified
var Default = Build

// Build builds the wordtoons binary
func Build() error {
	fmt.Println("Building", binaryName)
	return sh.RunV("go", "build", "-o", binaryName, "./cmd/wordtoons")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs the binary into $GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/wordtoons")
}

// Run launches the GUI
func Run() error {
	mg.Deps(Build)
	return sh.RunV("./" + binaryName)
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning...")
	if err := sh.Rm(binaryName); err != nil {
		return err
	}
	return sh.Rm(filepath.Join(os.TempDir(), binaryName+"-coverage.out"))
}

// Coverage runs the tests with a coverage report
func Coverage() error {
	profile := filepath.Join(os.TempDir(), binaryName+"-coverage.out")
	if err := sh.RunV("go", "test", "-coverprofile="+profile, "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func="+profile)
}
