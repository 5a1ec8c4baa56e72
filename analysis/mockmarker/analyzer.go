// Package mockmarker implements a go/analysis analyzer that reports the mock marker on anything other than a stored
// variable. Struct fields and var declarations may carry it; methods, functions, types, consts and imports may not.
package mockmarker

import (
	"go/token"

	"github.com/cockroachdb/errors"
	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"golang.org/x/tools/go/analysis"

	config "github.com/gstrobl17/stroblmocks/stroblgen/run/1_config"
	load "github.com/gstrobl17/stroblmocks/stroblgen/run/2_load"
	detect "github.com/gstrobl17/stroblmocks/stroblgen/run/3_detect"
)

// marker is bound to the -marker flag.
var marker = config.Default().Markers.Mock

// Analyzer is the mockmarker analysis pass. Use it with singlechecker or via go vet -vettool.
var Analyzer = &analysis.Analyzer{
	Name: "mockmarker",
	Doc:  "reports //strobl:mock markers that are not on struct fields or var declarations",
	URL:  "https://github.com/gstrobl17/stroblmocks/analysis/mockmarker",
	Run:  run,
}

func init() {
	Analyzer.Flags.StringVar(&marker, "marker", marker, "mock marker name, without the leading //")
}

func run(pass *analysis.Pass) (any, error) {
	dec := decorator.NewDecorator(pass.Fset)
	files := make([]*dst.File, 0, len(pass.Files))

	for _, file := range pass.Files {
		decorated, err := dec.DecorateFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decorate %s", pass.Fset.Position(file.Pos()).Filename)
		}

		files = append(files, decorated)
	}

	pkg := load.FromDecorator("", dec, files)

	for _, err := range detect.CheckMockMarkers(pkg, files, marker) {
		var markerErr *detect.MarkerError
		if !errors.As(err, &markerErr) {
			continue
		}

		pass.Report(analysis.Diagnostic{
			Pos:      posOf(pass.Fset, markerErr.Pos),
			Category: "misplaced-marker",
			Message:  err.Error(),
		})
	}

	return nil, nil //nolint:nilnil // analyzer produces diagnostics only
}

// posOf maps a resolved position back into fset.
func posOf(fset *token.FileSet, position token.Position) token.Pos {
	pos := token.NoPos

	fset.Iterate(func(file *token.File) bool {
		if file.Name() != position.Filename {
			return true
		}

		pos = file.Pos(position.Offset)

		return false
	})

	return pos
}
