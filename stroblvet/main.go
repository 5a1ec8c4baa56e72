// stroblvet reports //strobl:mock markers placed on anything other than a struct field or var declaration.
//
// Usage:
//
//	stroblvet ./...
//	go vet -vettool=$(which stroblvet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/gstrobl17/stroblmocks/analysis/mockmarker"
)

func main() {
	singlechecker.Main(mockmarker.Analyzer)
}
