// Package expand decides what a uses-mocks declaration expands to: which fields are mocks, which testing convention
// the verification method follows, and which diagnostics the declaration earns.
package expand

import (
	"fmt"

	detect "github.com/gstrobl17/stroblmocks/stroblgen/run/3_detect"
	"github.com/gstrobl17/stroblmocks/stroblgen/run/diag"
)

// Convention is the testing idiom the verification method is generated for.
type Convention int

// Convention values.
const (
	// ConventionNone generates the enum only.
	ConventionNone Convention = iota
	// ConventionSuite generates a method that fails through the embedded test suite.
	ConventionSuite
	// ConventionTestFunctions generates a method that records issues on a testing.TB argument.
	ConventionTestFunctions
)

// Diagnostic IDs.
const (
	IDClassContainsNoStroblMocks        = "ClassContainsNoStroblMocks"
	IDNoTestFunctionsFoundForAnnotation = "NoTestFunctionsFoundForAnnotation"
	IDStructContainsNoStroblMocks       = "StructContainsNoStroblMocks"
	IDUnexpectedSuperClass              = "UnexpectedSuperClass"
)

// Config names the markers and the suite base type expansion looks for.
type Config struct {
	UsesMocksMarker string
	MockMarker      string
	TestMarker      string
	TestBase        string
}

// Expansion is the outcome of expanding one declaration. An Expansion with no MockFields generates nothing.
type Expansion struct {
	Declaration detect.Declaration
	MockFields  []MockField
	Convention  Convention
	Diagnostics []diag.Diagnostic
}

// MockField is a field of the declaration carrying the mock marker.
type MockField struct {
	Name        string
	Nullability detect.Nullability
}

// Expand validates decl and works out its expansion. A type alias is a hard error and yields no expansion. Expand
// has no side effects: the same declaration and config always give the same result.
func Expand(decl detect.Declaration, cfg Config) (Expansion, error) {
	if decl.Kind == detect.KindAlias {
		return Expansion{}, detect.NewMarkerError(
			cfg.UsesMocksMarker,
			decl.MarkerPos,
			detect.ErrOnlyWorksDirectlyOnTypeDefinitions,
			"an alias adds no type of its own; mark the struct it refers to",
		)
	}

	exp := Expansion{
		Declaration: decl,
		MockFields:  MockFields(decl.Members, cfg.MockMarker),
	}

	if len(exp.MockFields) == 0 {
		id := IDStructContainsNoStroblMocks
		if decl.Kind == detect.KindClassLike {
			id = IDClassContainsNoStroblMocks
		}

		exp.Diagnostics = append(exp.Diagnostics, diag.Warning(
			decl.Pos, id, fmt.Sprintf("No %s definitions found", detect.MarkerText(cfg.MockMarker)),
		))

		return exp, nil
	}

	var warning *diag.Diagnostic

	exp.Convention, warning = DetectConvention(decl, cfg)
	if warning != nil {
		exp.Diagnostics = append(exp.Diagnostics, *warning)
	}

	return exp, nil
}

// DetectConvention picks the convention for decl. An embedded field comes first and wins even when it is not the
// suite base, in which case a warning explains the mismatch. Without embedded fields a marked test function anywhere
// in the member tree selects ConventionTestFunctions; otherwise nothing is generated beyond the enum and a warning
// says so.
func DetectConvention(decl detect.Declaration, cfg Config) (Convention, *diag.Diagnostic) {
	if len(decl.Supertypes) > 0 {
		if decl.Supertypes[0] == cfg.TestBase {
			return ConventionSuite, nil
		}

		warning := diag.Warning(decl.Pos, IDUnexpectedSuperClass, fmt.Sprintf(
			"%s is expected to be used on a type that embeds %s first",
			detect.MarkerText(cfg.UsesMocksMarker), cfg.TestBase,
		))

		return ConventionSuite, &warning
	}

	if detect.HasTestFunction(decl.Members, cfg.TestMarker) {
		return ConventionTestFunctions, nil
	}

	warning := diag.Warning(decl.Pos, IDNoTestFunctionsFoundForAnnotation, fmt.Sprintf(
		"No %s functions found and %s is not embedded; only the mock enum is generated",
		detect.MarkerText(cfg.TestMarker), cfg.TestBase,
	))

	return ConventionNone, &warning
}

// MockFields returns the fields among members that carry marker, in declaration order. Blank fields cannot be
// referenced and are skipped.
func MockFields(members []detect.Member, marker string) []MockField {
	var fields []MockField

	for _, member := range members {
		if member.Kind != detect.MemberField || member.Name == "_" || member.Name == "" {
			continue
		}

		if !member.HasMarker(marker) {
			continue
		}

		fields = append(fields, MockField{Name: member.Name, Nullability: member.Nullability})
	}

	return fields
}

func (c Convention) String() string {
	switch c {
	case ConventionNone:
		return "none"
	case ConventionSuite:
		return "suite"
	case ConventionTestFunctions:
		return "test-functions"
	default:
		return "unknown"
	}
}
