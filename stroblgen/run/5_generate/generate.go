// Package generate renders the mock enum and verification methods for an expanded declaration.
package generate

import (
	"bytes"
	"go/format"
	"path"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	astutil "github.com/gstrobl17/stroblmocks/stroblgen/run/0_util"
	detect "github.com/gstrobl17/stroblmocks/stroblgen/run/3_detect"
	expand "github.com/gstrobl17/stroblmocks/stroblgen/run/4_expand"
)

// Exported variables.
var (
	ErrDuplicateCase     = errors.New("mock fields map to the same enum constant")
	ErrNothingToGenerate = errors.New("declaration has no mock fields")
	ErrUnformattable     = errors.New("generated code does not format")
	ErrUnknownConvention = errors.New("unknown convention")
)

// runtimePackage is the name the generated code refers to the runtime package by.
const runtimePackage = "stroblmock"

// Options are the naming and import settings generation needs.
type Options struct {
	Generator     string
	EnumSuffix    string
	VerifyMethod  string
	RuntimeImport string
	MockMarker    string
}

// Output is the generated code for one declaration.
type Output struct {
	// Enum is the enum type, its values and String method, unformatted.
	Enum string
	// Verify holds the verification methods, unformatted. Empty under ConventionNone.
	Verify string
	// Source is the complete formatted file.
	Source string
}

type enumCase struct {
	Const string
	Field string
}

type enumData struct {
	EnumType   string
	DeclName   string
	MockMarker string
	Cases      []enumCase
}

type guard struct {
	Const    string
	Field    string
	NilCheck bool
}

type headerData struct {
	Generator  string
	PkgName    string
	StdImports []string
	ExtImports []string
}

type verifyData struct {
	Recv       string
	RecvType   string
	Method     string
	EnumType   string
	MockMarker string
	Guards     []guard
	Body       string
}

// Generate renders the file for exp. It fails when exp has no mock fields or when two fields would share an enum
// constant.
func Generate(exp expand.Expansion, opts Options) (Output, error) {
	decl := exp.Declaration

	if len(exp.MockFields) == 0 {
		return Output{}, errors.Wrapf(ErrNothingToGenerate, "%s", decl.Name)
	}

	templates := NewTemplateRegistry()
	enumType := decl.Name + opts.EnumSuffix

	cases, err := enumCases(enumType, exp.MockFields)
	if err != nil {
		return Output{}, errors.Wrapf(err, "%s", decl.Name)
	}

	var enumBuf bytes.Buffer

	templates.WriteEnum(&enumBuf, enumData{
		EnumType:   enumType,
		DeclName:   decl.Name,
		MockMarker: detect.MarkerText(opts.MockMarker),
		Cases:      cases,
	})

	verify, err := renderVerify(templates, exp, opts, enumType, cases)
	if err != nil {
		return Output{}, err
	}

	var file bytes.Buffer

	templates.WriteHeader(&file, headerData{
		Generator:  opts.Generator,
		PkgName:    decl.PkgName,
		StdImports: quoteAll(stdImports(exp.Convention)),
		ExtImports: extImports(exp.Convention, opts.RuntimeImport),
	})
	file.WriteString("\n")
	file.Write(enumBuf.Bytes())

	if verify != "" {
		file.WriteString("\n")
		file.WriteString(verify)
	}

	formatted, err := format.Source(file.Bytes())
	if err != nil {
		return Output{}, errors.Wrapf(ErrUnformattable, "%s: %v", decl.Name, err)
	}

	return Output{Enum: enumBuf.String(), Verify: verify, Source: string(formatted)}, nil
}

// RecvType renders the receiver type of decl, with its type parameters when it is generic.
func RecvType(decl detect.Declaration) string {
	if len(decl.TypeParams) == 0 {
		return decl.Name
	}

	return decl.Name + "[" + strings.Join(decl.TypeParams, ", ") + "]"
}

func enumCases(enumType string, fields []expand.MockField) ([]enumCase, error) {
	cases := make([]enumCase, 0, len(fields))
	seen := make(map[string]string, len(fields))

	for _, field := range fields {
		name := enumType + astutil.ExportedName(field.Name)
		if other, ok := seen[name]; ok {
			return nil, errors.Wrapf(ErrDuplicateCase, "%q and %q both map to %s", other, field.Name, name)
		}

		seen[name] = field.Name
		cases = append(cases, enumCase{Const: name, Field: field.Name})
	}

	return cases, nil
}

func extImports(convention expand.Convention, runtimeImport string) []string {
	if convention == expand.ConventionNone {
		return nil
	}

	if path.Base(runtimeImport) == runtimePackage {
		return []string{strconv.Quote(runtimeImport)}
	}

	return []string{runtimePackage + " " + strconv.Quote(runtimeImport)}
}

func quoteAll(paths []string) []string {
	quoted := make([]string, 0, len(paths))
	for _, p := range paths {
		quoted = append(quoted, strconv.Quote(p))
	}

	return quoted
}

func renderVerify(
	templates *TemplateRegistry,
	exp expand.Expansion,
	opts Options,
	enumType string,
	cases []enumCase,
) (string, error) {
	data := verifyData{
		Recv:       astutil.ReceiverName(exp.Declaration.Name),
		RecvType:   RecvType(exp.Declaration),
		Method:     opts.VerifyMethod,
		EnumType:   enumType,
		MockMarker: detect.MarkerText(opts.MockMarker),
	}

	for i, field := range exp.MockFields {
		data.Guards = append(data.Guards, guard{
			Const:    cases[i].Const,
			Field:    field.Name,
			NilCheck: field.Nullability != detect.NullabilityPlain,
		})
	}

	var body, buf bytes.Buffer

	switch exp.Convention {
	case expand.ConventionNone:
		return "", nil
	case expand.ConventionSuite:
		templates.WriteVerifyBody(&body, data)
		data.Body = body.String()
		templates.WriteSuiteVerify(&buf, data)
	case expand.ConventionTestFunctions:
		templates.WriteVerifyBody(&body, data)
		data.Body = body.String()
		templates.WriteTestFuncVerify(&buf, data)
	default:
		return "", errors.Wrapf(ErrUnknownConvention, "%d", int(exp.Convention))
	}

	return buf.String(), nil
}

func stdImports(convention expand.Convention) []string {
	switch convention {
	case expand.ConventionSuite:
		return []string{"fmt", "runtime", "slices", "strings"}
	case expand.ConventionTestFunctions:
		return []string{"fmt", "slices", "strings", "testing"}
	default:
		return []string{"fmt"}
	}
}
