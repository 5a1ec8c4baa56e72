package detect

import (
	"fmt"
	"go/token"

	"github.com/cockroachdb/errors"
	"github.com/dave/dst"
)

// MarkerError is a misplaced marker. It aborts generation for the declaration or package it was found in.
type MarkerError struct {
	Marker string
	Pos    token.Position
	Err    error
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("%s %v", MarkerText(e.Marker), e.Err)
}

func (e *MarkerError) Unwrap() error {
	return e.Err
}

// NewMarkerError builds a MarkerError for sentinel at pos, carrying hint for the user.
func NewMarkerError(marker string, pos token.Position, sentinel error, hint string) error {
	return errors.WithHint(&MarkerError{Marker: marker, Pos: pos, Err: sentinel}, hint)
}

// CheckMockMarkers validates every use of the mock marker in files, independently of any uses-mocks declaration.
// The marker belongs on stored variables: struct fields and var declarations. Getter-shaped methods and interface
// methods are computed properties and fail with ErrOnlyWorksOnStoredProperties; any other function, type, const
// or import fails with ErrOnlyWorksOnVariables.
func CheckMockMarkers(positions Positions, files []*dst.File, marker string) []error {
	checker := &markerChecker{positions: positions, marker: marker}

	for _, file := range files {
		dst.Inspect(file, checker.visit)
	}

	return checker.errs
}

// Exported variables.
var (
	ErrOnlyWorksDirectlyOnTypeDefinitions = errors.New("only works directly on type definitions")
	ErrOnlyWorksOnStoredProperties        = errors.New("only works on stored properties")
	ErrOnlyWorksOnVariables               = errors.New("only works on variables")
)

type markerChecker struct {
	positions Positions
	marker    string
	errs      []error
}

func (c *markerChecker) check(node dst.Node, sentinel error, decorations ...dst.Decorations) {
	if sentinel == nil || !HasMarker(Directives(decorations...), c.marker) {
		return
	}

	pos := c.positions.Position(markerPos(c.positions.AstNode(node), c.marker))

	hint := "attach it to the struct field that stores the mock"
	if errors.Is(sentinel, ErrOnlyWorksOnStoredProperties) {
		hint = "getters compute their value; mark the field that stores the mock instead"
	}

	c.errs = append(c.errs, NewMarkerError(c.marker, pos, sentinel, hint))
}

func (c *markerChecker) checkGenDecl(genDecl *dst.GenDecl) {
	var sentinel error
	if genDecl.Tok != token.VAR {
		sentinel = ErrOnlyWorksOnVariables
	}

	c.check(genDecl, sentinel, genDecl.Decs.Start)

	for _, spec := range genDecl.Specs {
		switch typed := spec.(type) {
		case *dst.TypeSpec:
			c.check(typed, ErrOnlyWorksOnVariables, typed.Decs.Start, typed.Decs.End)
		case *dst.ValueSpec:
			c.check(typed, sentinel, typed.Decs.Start, typed.Decs.End)
		case *dst.ImportSpec:
			c.check(typed, ErrOnlyWorksOnVariables, typed.Decs.Start, typed.Decs.End)
		}
	}
}

func (c *markerChecker) visit(node dst.Node) bool {
	switch typed := node.(type) {
	case *dst.GenDecl:
		c.checkGenDecl(typed)
	case *dst.FuncDecl:
		sentinel := ErrOnlyWorksOnVariables
		if typed.Recv != nil && isGetter(typed.Type) {
			sentinel = ErrOnlyWorksOnStoredProperties
		}

		c.check(typed, sentinel, typed.Decs.Start)
	case *dst.InterfaceType:
		if typed.Methods == nil {
			return true
		}

		for _, method := range typed.Methods.List {
			sentinel := ErrOnlyWorksOnVariables
			if funcType, ok := method.Type.(*dst.FuncType); ok && isGetter(funcType) {
				sentinel = ErrOnlyWorksOnStoredProperties
			}

			c.check(method, sentinel, method.Decs.Start, method.Decs.End)
		}
	}

	return true
}

// isGetter reports whether funcType takes nothing and returns exactly one value.
func isGetter(funcType *dst.FuncType) bool {
	if funcType.Params != nil && len(funcType.Params.List) > 0 {
		return false
	}

	if funcType.Results == nil {
		return false
	}

	results := 0

	for _, field := range funcType.Results.List {
		results += max(len(field.Names), 1)
	}

	return results == 1
}
