package detect

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/dave/dst"
)

// Directives collects the directive comments ("//name" with no space after the slashes) from decorations.
func Directives(decorations ...dst.Decorations) []string {
	var directives []string

	for _, decs := range decorations {
		for _, line := range decs {
			line = strings.TrimSpace(line)
			if isDirective(line) {
				directives = append(directives, line)
			}
		}
	}

	return directives
}

// HasMarker reports whether any directive is marker, optionally followed by space-separated arguments.
func HasMarker(directives []string, marker string) bool {
	for _, directive := range directives {
		if MatchesMarker(directive, marker) {
			return true
		}
	}

	return false
}

// MatchesMarker reports whether a single comment line is the directive for marker.
func MatchesMarker(line, marker string) bool {
	if marker == "" {
		return false
	}

	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "//"+marker)
	if !ok {
		return false
	}

	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// MarkerText is how a marker appears in messages.
func MarkerText(marker string) string {
	return "//" + marker
}

// markerPos finds the comment carrying marker among the comments attached to node, falling back to the node itself.
func markerPos(node ast.Node, marker string) token.Pos {
	if node == nil {
		return token.NoPos
	}

	var groups []*ast.CommentGroup

	switch typed := node.(type) {
	case *ast.Field:
		groups = append(groups, typed.Doc, typed.Comment)
	case *ast.GenDecl:
		groups = append(groups, typed.Doc)
	case *ast.TypeSpec:
		groups = append(groups, typed.Doc, typed.Comment)
	case *ast.ValueSpec:
		groups = append(groups, typed.Doc, typed.Comment)
	case *ast.ImportSpec:
		groups = append(groups, typed.Doc, typed.Comment)
	case *ast.FuncDecl:
		groups = append(groups, typed.Doc)
	}

	for _, group := range groups {
		if group == nil {
			continue
		}

		for _, comment := range group.List {
			if MatchesMarker(comment.Text, marker) {
				return comment.Slash
			}
		}
	}

	return node.Pos()
}

func isDirective(line string) bool {
	rest, ok := strings.CutPrefix(line, "//")
	if !ok || rest == "" {
		return false
	}

	first := rest[0]

	return first != ' ' && first != '\t' && first != '/'
}
