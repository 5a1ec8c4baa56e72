// stroblgen generates mock verification helpers for test fixtures.
// Mark a fixture type with //strobl:usesmocks, its mock fields with //strobl:mock, and add
// `//go:generate stroblgen` to the file. For each marked type stroblgen writes
// generated_<Type>StroblMocks.go (or _test.go) declaring a <Type>StroblMock enum with one value per mock field and,
// when the type embeds suite.Suite or has //strobl:test methods, a VerifyStroblMocksUnused method that fails the
// test when any mock recorded calls.
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/gstrobl17/stroblmocks/stroblgen/run"
	load "github.com/gstrobl17/stroblmocks/stroblgen/run/2_load"
)

// main is the entry point of the stroblgen tool.
func main() {
	if os.Args == nil {
		return
	}

	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, &realPackageLoader{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements FileSystem using os package.
type realFileSystem struct{}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", name)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return errors.Wrapf(err, "failed to write file %s", name)
	}

	return nil
}

// realPackageLoader implements PackageLoader by parsing the directory with dst.
type realPackageLoader struct{}

// Load parses every Go file in dir.
func (pl *realPackageLoader) Load(dir string) (*load.Package, error) {
	return load.Dir(dir)
}
