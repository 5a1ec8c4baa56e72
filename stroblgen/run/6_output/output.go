// Package output names, reorders and writes generated files.
package output

import (
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/toejough/go-reorder"
	"go.uber.org/zap"

	"github.com/gstrobl17/stroblmocks/stroblgen/run/diag"
)

// IDReorderFailed is the diagnostic ID of a reorder failure.
const IDReorderFailed = "ReorderFailed"

// Writer interface for writing generated code.
type Writer interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// File is one generated file waiting to be written.
type File struct {
	Code     string
	DeclName string
	PkgName  string
	Dir      string
	// SourceFile is the file declaring DeclName. A _test.go source gets a _test.go generated file.
	SourceFile string
}

// FileName returns the generated file name for a declaration: generated_<decl>StroblMocks.go, with a _test suffix
// when the package is an external test package or the declaration lives in a test file.
func FileName(declName, pkgName, sourceFile string) string {
	filename := "generated_" + declName + "StroblMocks"

	if strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(sourceFile, "_test.go") {
		return filename + "_test.go"
	}

	return filename + ".go"
}

// WriteGeneratedCode reorders file.Code and writes it next to its source. With dryRun the code goes to out instead.
// A reorder failure is reported as a warning and the code is written as generated. It returns the path written.
func WriteGeneratedCode(
	file File, dryRun bool, fileWriter Writer, out io.Writer, reporter diag.Reporter, logger *zap.Logger,
) (string, error) {
	const generatedFilePermissions = 0o600

	path := filepath.Join(file.Dir, FileName(file.DeclName, file.PkgName, file.SourceFile))

	reordered, err := reorder.Source(file.Code)
	if err != nil {
		diag.Emit(reporter, diag.Warning(
			token.Position{Filename: path}, IDReorderFailed, fmt.Sprintf("failed to reorder generated code: %v", err),
		))

		reordered = file.Code
	}

	if dryRun {
		logger.Debug("dry run", zap.String("file", path))

		_, _ = fmt.Fprintf(out, "// %s\n%s", path, reordered)

		return path, nil
	}

	err = fileWriter.WriteFile(path, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return "", errors.Wrapf(err, "error writing %s", path)
	}

	logger.Debug("wrote generated file", zap.String("file", path), zap.Int("bytes", len(reordered)))

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", path)

	return path, nil
}
