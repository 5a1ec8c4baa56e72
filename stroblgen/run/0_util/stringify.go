// Package astutil provides shared helpers for reading dst nodes and naming generated identifiers.
package astutil

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/dst"
)

// BaseTypeName returns the name a type expression contributes when embedded or used as a receiver:
// pointers and type arguments are dropped, and a package selector yields the selected name.
// "*pkg.Thing[T]" becomes "Thing".
func BaseTypeName(expr dst.Expr) string {
	switch typedExpr := expr.(type) {
	case *dst.Ident:
		return typedExpr.Name
	case *dst.StarExpr:
		return BaseTypeName(typedExpr.X)
	case *dst.SelectorExpr:
		return typedExpr.Sel.Name
	case *dst.IndexExpr:
		return BaseTypeName(typedExpr.X)
	case *dst.IndexListExpr:
		return BaseTypeName(typedExpr.X)
	case *dst.ParenExpr:
		return BaseTypeName(typedExpr.X)
	default:
		return ""
	}
}

// ExportedName upper-cases the first rune of name so it can follow an exported or unexported prefix in a Go
// identifier. "clock" becomes "Clock".
func ExportedName(name string) string {
	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(first)) + name[size:]
}

// ReceiverName returns the conventional single-letter receiver name for typeName, or "x" when the name does not
// start with a letter.
func ReceiverName(typeName string) string {
	first, _ := utf8.DecodeRuneInString(typeName)
	if !unicode.IsLetter(first) {
		return "x"
	}

	return string(unicode.ToLower(first))
}

// StringifyExpr renders a dst type expression as Go source text. It covers the expressions that can appear in
// struct field and embedded types; anything else renders as its dst node type.
//
//nolint:cyclop // Type-switch dispatcher; complexity is inherent
func StringifyExpr(expr dst.Expr) string {
	if expr == nil {
		return ""
	}

	switch typedExpr := expr.(type) {
	case *dst.Ident:
		return typedExpr.Name
	case *dst.BasicLit:
		return typedExpr.Value
	case *dst.SelectorExpr:
		return StringifyExpr(typedExpr.X) + "." + typedExpr.Sel.Name
	case *dst.StarExpr:
		return "*" + StringifyExpr(typedExpr.X)
	case *dst.ArrayType:
		return "[" + StringifyExpr(typedExpr.Len) + "]" + StringifyExpr(typedExpr.Elt)
	case *dst.MapType:
		return "map[" + StringifyExpr(typedExpr.Key) + "]" + StringifyExpr(typedExpr.Value)
	case *dst.ChanType:
		return stringifyChanType(typedExpr)
	case *dst.FuncType:
		return "func(...)"
	case *dst.InterfaceType:
		if typedExpr.Methods == nil || len(typedExpr.Methods.List) == 0 {
			return "interface{}"
		}

		return "interface{...}"
	case *dst.StructType:
		if typedExpr.Fields == nil || len(typedExpr.Fields.List) == 0 {
			return "struct{}"
		}

		return "struct{...}"
	case *dst.Ellipsis:
		return "..." + StringifyExpr(typedExpr.Elt)
	case *dst.IndexExpr:
		return StringifyExpr(typedExpr.X) + "[" + StringifyExpr(typedExpr.Index) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typedExpr.Indices))
		for i, idx := range typedExpr.Indices {
			indices[i] = StringifyExpr(idx)
		}

		return StringifyExpr(typedExpr.X) + "[" + strings.Join(indices, ", ") + "]"
	case *dst.ParenExpr:
		return "(" + StringifyExpr(typedExpr.X) + ")"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

func stringifyChanType(chanType *dst.ChanType) string {
	switch chanType.Dir {
	case dst.SEND:
		return "chan<- " + StringifyExpr(chanType.Value)
	case dst.RECV:
		return "<-chan " + StringifyExpr(chanType.Value)
	default:
		return "chan " + StringifyExpr(chanType.Value)
	}
}
