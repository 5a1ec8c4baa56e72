// Package load parses a package directory into dst files while keeping the mapping back to source positions.
package load

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// Package is a parsed package directory. Test files are included; external test packages (package x_test) share the
// directory and are loaded alongside.
type Package struct {
	Dir   string
	Files []*dst.File
	Fset  *token.FileSet
	dec   *decorator.Decorator
}

// FromDecorator wraps files already decorated by dec, as done for files handed over by go/analysis.
func FromDecorator(dir string, dec *decorator.Decorator, files []*dst.File) *Package {
	return &Package{Dir: dir, Files: files, Fset: dec.Fset, dec: dec}
}

// Dir parses every .go file in dir. Files that fail to parse are skipped, matching what go generate sees for a
// package mid-edit; an error is returned only when nothing could be parsed.
func Dir(dir string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}

	goFiles := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}

		goFiles = append(goFiles, filepath.Join(dir, entry.Name()))
	}

	if len(goFiles) == 0 {
		return nil, errors.Wrapf(errNoGoFiles, "%s", dir)
	}

	sort.Strings(goFiles)

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)
	files := make([]*dst.File, 0, len(goFiles))

	for _, goFile := range goFiles {
		file, err := parseFile(dec, goFile, nil)
		if err != nil {
			continue
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, errors.Wrapf(errNoGoFiles, "failed to parse any .go files in %s", dir)
	}

	return &Package{Dir: dir, Files: files, Fset: fset, dec: dec}, nil
}

// Source parses a single file from memory. Used by tests and tools that already hold the text.
func Source(filename, src string) (*Package, error) {
	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)

	file, err := parseFile(dec, filename, src)
	if err != nil {
		return nil, err
	}

	return &Package{Dir: filepath.Dir(filename), Files: []*dst.File{file}, Fset: fset, dec: dec}, nil
}

// Sources parses in-memory files as one package in dir, in file name order.
func Sources(dir string, sources map[string]string) (*Package, error) {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}

	sort.Strings(names)

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)
	files := make([]*dst.File, 0, len(names))

	for _, name := range names {
		filename := filepath.Join(dir, name)

		file, err := parseFile(dec, filename, sources[name])
		if err != nil {
			return nil, err
		}

		files = append(files, file)
	}

	return &Package{Dir: dir, Files: files, Fset: fset, dec: dec}, nil
}

// AstNode returns the go/ast node n was decorated from, or nil for nodes that did not come from source.
func (p *Package) AstNode(n dst.Node) ast.Node {
	if p.dec == nil {
		return nil
	}

	return p.dec.Ast.Nodes[n]
}

// Filename returns the path file was parsed from.
func (p *Package) Filename(file *dst.File) string {
	if p.dec == nil {
		return ""
	}

	return p.dec.Filenames[file]
}

// Pos returns the source position of n, or token.NoPos.
func (p *Package) Pos(n dst.Node) token.Pos {
	astNode := p.AstNode(n)
	if astNode == nil {
		return token.NoPos
	}

	return astNode.Pos()
}

// Position resolves pos against the package's file set.
func (p *Package) Position(pos token.Pos) token.Position {
	return p.Fset.Position(pos)
}

// parseFile parses with go/parser and decorates only a file that parsed cleanly. A partial AST from a file with a
// broken package clause has no token.File and cannot be decorated.
func parseFile(dec *decorator.Decorator, filename string, src any) (*dst.File, error) {
	astFile, err := parser.ParseFile(dec.Fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", filename)
	}

	file, err := dec.DecorateFile(astFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decorate %s", filename)
	}

	dec.Filenames[file] = filename

	return file, nil
}

// unexported variables.
var (
	errNoGoFiles = errors.New("no .go files found")
)
