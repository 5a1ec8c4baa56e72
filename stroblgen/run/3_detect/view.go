// Package detect builds a read-only view of marked type declarations from dst files and implements the marker
// rules that do not depend on code generation.
package detect

import (
	"go/ast"
	"go/token"

	"github.com/dave/dst"
)

// DeclKind classifies an annotated declaration.
type DeclKind int

// DeclKind values.
const (
	// KindStructLike is a named type with no embedded fields.
	KindStructLike DeclKind = iota
	// KindClassLike is a struct type that embeds at least one type.
	KindClassLike
	// KindAlias is a type alias. It defines no type of its own, so nothing can be generated for it.
	KindAlias
)

// MemberKind classifies a member of a declaration's member tree.
type MemberKind int

// MemberKind values.
const (
	MemberField MemberKind = iota
	MemberFunction
	MemberContainer
)

// Nullability is the shape of a field's declared type as far as syntax tells.
type Nullability int

// Nullability values.
const (
	// NullabilityPlain types cannot hold nil.
	NullabilityPlain Nullability = iota
	// NullabilityOptional types are nil-able references: interfaces, slices, maps, channels and funcs.
	NullabilityOptional
	// NullabilityPointer types are pointers.
	NullabilityPointer
)

// Declaration is a type declaration carrying the uses-mocks marker.
type Declaration struct {
	Name       string
	TypeParams []string
	Kind       DeclKind
	// Supertypes holds the source text of each embedded field, in declaration order.
	Supertypes []string
	Members    []Member
	PkgName    string
	Filename   string
	Pos        token.Position
	MarkerPos  token.Position
}

// Member is one node of a declaration's member tree: a field, a function, or a nested container.
type Member struct {
	Kind        MemberKind
	Name        string
	Directives  []string
	Embedded    bool
	Nullability Nullability
	Pos         token.Position
	Members     []Member
}

// Positions maps dst nodes back to the source they were decorated from.
type Positions interface {
	AstNode(n dst.Node) ast.Node
	Filename(file *dst.File) string
	Pos(n dst.Node) token.Pos
	Position(pos token.Pos) token.Position
}

func (k DeclKind) String() string {
	switch k {
	case KindStructLike:
		return "struct"
	case KindClassLike:
		return "class"
	case KindAlias:
		return "alias"
	default:
		return "unknown"
	}
}

// HasMarker reports whether the member carries marker.
func (m Member) HasMarker(marker string) bool {
	return HasMarker(m.Directives, marker)
}
