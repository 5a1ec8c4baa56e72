package detect

import (
	"go/token"

	"github.com/dave/dst"

	astutil "github.com/gstrobl17/stroblmocks/stroblgen/run/0_util"
)

// FindDeclarations returns every type declaration in files that carries marker, in file order then source order.
// Methods declared anywhere in files count as members of their receiver's type in the same package clause, so a
// package and its external test package may declare types of the same name.
func FindDeclarations(positions Positions, files []*dst.File, marker string) []Declaration {
	methods := collectMethods(files)

	var decls []Declaration

	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if !ok {
					continue
				}

				directives := Directives(typeSpec.Decs.Start, typeSpec.Decs.End)

				// A lone spec's doc comment is decorated onto the GenDecl.
				markerNode := dst.Node(typeSpec)
				if !genDecl.Lparen {
					directives = append(Directives(genDecl.Decs.Start), directives...)
					markerNode = genDecl
				}

				if !HasMarker(directives, marker) {
					continue
				}

				built := buildDeclaration(positions, typeSpec, methods[methodKey(file.Name.Name, typeSpec.Name.Name)])
				built.PkgName = file.Name.Name
				built.Filename = positions.Filename(file)
				built.MarkerPos = positions.Position(markerPos(positions.AstNode(markerNode), marker))

				decls = append(decls, built)
			}
		}
	}

	return decls
}

func buildDeclaration(positions Positions, typeSpec *dst.TypeSpec, methods []*dst.FuncDecl) Declaration {
	decl := Declaration{
		Name: typeSpec.Name.Name,
		Kind: KindStructLike,
		Pos:  positions.Position(positions.Pos(typeSpec)),
	}

	if typeSpec.TypeParams != nil {
		for _, field := range typeSpec.TypeParams.List {
			for _, name := range field.Names {
				decl.TypeParams = append(decl.TypeParams, name.Name)
			}
		}
	}

	if typeSpec.Assign {
		decl.Kind = KindAlias

		return decl
	}

	switch typed := typeSpec.Type.(type) {
	case *dst.StructType:
		decl.Members = structMembers(positions, typed)

		for _, field := range typed.Fields.List {
			if len(field.Names) == 0 {
				decl.Supertypes = append(decl.Supertypes, astutil.StringifyExpr(field.Type))
			}
		}

		if len(decl.Supertypes) > 0 {
			decl.Kind = KindClassLike
		}
	case *dst.InterfaceType:
		decl.Members = interfaceMembers(positions, typed)
	}

	for _, method := range methods {
		decl.Members = append(decl.Members, Member{
			Kind:       MemberFunction,
			Name:       method.Name.Name,
			Directives: Directives(method.Decs.Start),
			Pos:        positions.Position(positions.Pos(method)),
			Members:    localContainers(positions, method.Body),
		})
	}

	return decl
}

// collectMethods groups method declarations by package name and receiver base type name, in source order.
func collectMethods(files []*dst.File) map[string][]*dst.FuncDecl {
	methods := make(map[string][]*dst.FuncDecl)

	for _, file := range files {
		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*dst.FuncDecl)
			if !ok || funcDecl.Recv == nil || len(funcDecl.Recv.List) == 0 {
				continue
			}

			key := methodKey(file.Name.Name, astutil.BaseTypeName(funcDecl.Recv.List[0].Type))
			methods[key] = append(methods[key], funcDecl)
		}
	}

	return methods
}

// inlineMembers returns the members of a struct or interface type literal reachable through pointer, slice, array,
// map-value and channel wrappers.
func inlineMembers(positions Positions, expr dst.Expr) []Member {
	switch typed := expr.(type) {
	case *dst.StructType:
		return structMembers(positions, typed)
	case *dst.InterfaceType:
		return interfaceMembers(positions, typed)
	case *dst.StarExpr:
		return inlineMembers(positions, typed.X)
	case *dst.ArrayType:
		return inlineMembers(positions, typed.Elt)
	case *dst.MapType:
		return inlineMembers(positions, typed.Value)
	case *dst.ChanType:
		return inlineMembers(positions, typed.Value)
	case *dst.ParenExpr:
		return inlineMembers(positions, typed.X)
	default:
		return nil
	}
}

func interfaceMembers(positions Positions, iface *dst.InterfaceType) []Member {
	if iface.Methods == nil {
		return nil
	}

	var members []Member

	for _, method := range iface.Methods.List {
		if _, ok := method.Type.(*dst.FuncType); !ok {
			continue
		}

		for _, name := range method.Names {
			members = append(members, Member{
				Kind:       MemberFunction,
				Name:       name.Name,
				Directives: Directives(method.Decs.Start, method.Decs.End),
				Pos:        positions.Position(positions.Pos(method)),
			})
		}
	}

	return members
}

// localContainers returns a container member for each type declared inside body, at any depth.
func localContainers(positions Positions, body *dst.BlockStmt) []Member {
	if body == nil {
		return nil
	}

	var containers []Member

	dst.Inspect(body, func(node dst.Node) bool {
		typeSpec, ok := node.(*dst.TypeSpec)
		if !ok {
			return true
		}

		containers = append(containers, Member{
			Kind:       MemberContainer,
			Name:       typeSpec.Name.Name,
			Directives: Directives(typeSpec.Decs.Start, typeSpec.Decs.End),
			Pos:        positions.Position(positions.Pos(typeSpec)),
			Members:    inlineMembers(positions, typeSpec.Type),
		})

		return false
	})

	return containers
}

func methodKey(pkgName, typeName string) string {
	return pkgName + "." + typeName
}

func nullabilityOf(expr dst.Expr) Nullability {
	switch typed := expr.(type) {
	case *dst.StarExpr:
		return NullabilityPointer
	case *dst.ArrayType:
		if typed.Len == nil {
			return NullabilityOptional
		}

		return NullabilityPlain
	case *dst.MapType, *dst.ChanType, *dst.FuncType, *dst.InterfaceType:
		return NullabilityOptional
	case *dst.Ident:
		if typed.Name == "any" || typed.Name == "error" {
			return NullabilityOptional
		}

		return NullabilityPlain
	case *dst.ParenExpr:
		return nullabilityOf(typed.X)
	default:
		return NullabilityPlain
	}
}

func structMembers(positions Positions, structType *dst.StructType) []Member {
	if structType.Fields == nil {
		return nil
	}

	var members []Member

	for _, field := range structType.Fields.List {
		base := Member{
			Kind:        MemberField,
			Directives:  Directives(field.Decs.Start, field.Decs.End),
			Nullability: nullabilityOf(field.Type),
			Pos:         positions.Position(positions.Pos(field)),
			Members:     inlineMembers(positions, field.Type),
		}

		if len(field.Names) == 0 {
			base.Name = astutil.BaseTypeName(field.Type)
			base.Embedded = true
			members = append(members, base)

			continue
		}

		for _, name := range field.Names {
			member := base
			member.Name = name.Name
			members = append(members, member)
		}
	}

	return members
}
