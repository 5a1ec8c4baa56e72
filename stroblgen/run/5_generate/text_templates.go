package generate

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateRegistry holds the parsed templates for generated files.
// Create one with NewTemplateRegistry.
type TemplateRegistry struct {
	headerTmpl         *template.Template
	enumTmpl           *template.Template
	verifyBodyTmpl     *template.Template
	suiteVerifyTmpl    *template.Template
	testFuncVerifyTmpl *template.Template
}

// NewTemplateRegistry parses every template. Templates are constants, so parsing cannot fail at runtime.
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{}

	templates := []struct {
		target  **template.Template
		name    string
		content string
	}{
		{&registry.headerTmpl, "header", tmplHeader},
		{&registry.enumTmpl, "enum", tmplEnum},
		{&registry.verifyBodyTmpl, "verifyBody", tmplVerifyBody},
		{&registry.suiteVerifyTmpl, "suiteVerify", tmplSuiteVerify},
		{&registry.testFuncVerifyTmpl, "testFuncVerify", tmplTestFuncVerify},
	}

	for _, def := range templates {
		*def.target = template.Must(template.New(def.name).Parse(def.content))
	}

	return registry
}

// WriteEnum writes the mock enum type, its values and its String method.
func (r *TemplateRegistry) WriteEnum(buf *bytes.Buffer, data any) {
	execute(r.enumTmpl, buf, data)
}

// WriteHeader writes the generated-code notice, package clause and imports.
func (r *TemplateRegistry) WriteHeader(buf *bytes.Buffer, data any) {
	execute(r.headerTmpl, buf, data)
}

// WriteSuiteVerify writes the verification methods that fail through the embedded suite.
func (r *TemplateRegistry) WriteSuiteVerify(buf *bytes.Buffer, data any) {
	execute(r.suiteVerifyTmpl, buf, data)
}

// WriteTestFuncVerify writes the verification method that records issues on a testing.TB.
func (r *TemplateRegistry) WriteTestFuncVerify(buf *bytes.Buffer, data any) {
	execute(r.testFuncVerifyTmpl, buf, data)
}

// WriteVerifyBody writes the statements shared by both verification methods, up to the failure call.
func (r *TemplateRegistry) WriteVerifyBody(buf *bytes.Buffer, data any) {
	execute(r.verifyBodyTmpl, buf, data)
}

// Template content.
const (
	tmplEnum = `// {{.EnumType}} identifies a {{.MockMarker}} field of {{.DeclName}}.
type {{.EnumType}} int

// {{.EnumType}} values.
const (
{{- range $i, $c := .Cases}}
	{{$c.Const}}{{if eq $i 0}} {{$.EnumType}} = iota{{end}}
{{- end}}
)

// String returns the name of the field v identifies.
func (v {{.EnumType}}) String() string {
	switch v {
{{- range .Cases}}
	case {{.Const}}:
		return "{{.Field}}"
{{- end}}
	}

	return fmt.Sprintf("{{.EnumType}}(%d)", int(v))
}
`

	tmplHeader = `// Code generated by {{.Generator}}. DO NOT EDIT.

package {{.PkgName}}

import (
{{- range .StdImports}}
	{{.}}
{{- end}}
{{- if .ExtImports}}
{{range .ExtImports}}
	{{.}}
{{- end}}
{{- end}}
)
`

	tmplSuiteVerify = `// {{.Method}} fails the suite when a {{.MockMarker}} field recorded calls or assigned parameters.
// Mocks listed in excludedMocks are not checked.
func ({{.Recv}} *{{.RecvType}}) {{.Method}}(excludedMocks ...{{.EnumType}}) {
	_, file, line, _ := runtime.Caller(1)
	{{.Recv}}.{{.Method}}At(file, line, excludedMocks...)
}

// {{.Method}}At is {{.Method}} reporting the given source location.
func ({{.Recv}} *{{.RecvType}}) {{.Method}}At(file string, line int, excludedMocks ...{{.EnumType}}) {
{{.Body}}
	{{.Recv}}.Fail(message, "verification requested at %s:%d", file, line)
}
`

	tmplTestFuncVerify = `// {{.Method}} records an error on tb when a {{.MockMarker}} field recorded calls or assigned parameters.
// Mocks listed in excludedMocks are not checked.
func ({{.Recv}} *{{.RecvType}}) {{.Method}}(tb testing.TB, excludedMocks ...{{.EnumType}}) {
	tb.Helper()

{{.Body}}
	tb.Error(message)
}
`

	tmplVerifyBody = `	var issues []string

	evaluate := func(name string, mock any) {
		if stroblmock.IsNil(mock) {
			return
		}

		reflectable, ok := mock.(stroblmock.Reflectable)
		if !ok {
			issues = append(issues, fmt.Sprintf(
				"'%s' does not appear to be a Strobl Mock. It does not conform to stroblmock.Reflectable.", name,
			))

			return
		}

		// Either calledMethods or calledStaticMethods must be present. The other labels are optional.
		calledMethodsFound := false

		for _, child := range reflectable.StroblMirror() {
			switch child.Label {
			case stroblmock.CalledMethods, stroblmock.CalledStaticMethods:
				calledMethodsFound = true
			}

			switch child.Label {
			case stroblmock.CalledMethods, stroblmock.AssignedParameters,
				stroblmock.CalledStaticMethods, stroblmock.AssignedStaticParameters:
				value, ok := child.Value.(fmt.Stringer)
				if !ok {
					issues = append(issues, fmt.Sprintf(
						"'%s' does not appear to be a Strobl Mock. '%s' is not a fmt.Stringer.", name, child.Label,
					))

					continue
				}

				if value.String() != stroblmock.EmptySet {
					issues = append(issues, fmt.Sprintf("'%s.%s' == '%s'", name, child.Label, value))
				}
			}
		}

		if !calledMethodsFound {
			issues = append(issues, fmt.Sprintf(
				"'%s' does not appear to be a Strobl Mock. Neither '%s' nor '%s' properties were found.",
				name, stroblmock.CalledMethods, stroblmock.CalledStaticMethods,
			))
		}
	}
{{range .Guards}}
	if !slices.Contains(excludedMocks, {{.Const}}){{if .NilCheck}} && {{$.Recv}}.{{.Field}} != nil{{end}} {
		evaluate("{{.Field}}", {{$.Recv}}.{{.Field}})
	}
{{end}}
	if len(issues) == 0 {
		return
	}

	if len(issues) > 1 {
		issues = append([]string{"The following problems were identified:"}, issues...)
	}

	message := strings.Join(issues, "\n\t")
`
)

func execute(tmpl *template.Template, buf *bytes.Buffer, data any) {
	err := tmpl.Execute(buf, data)
	if err != nil {
		panic(fmt.Sprintf("failed to execute %s template: %v", tmpl.Name(), err))
	}
}
