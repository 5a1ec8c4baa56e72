// Package run implements the main logic for the stroblgen tool in a testable way.
package run

import (
	"go/token"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/alexflint/go-arg"
	"github.com/cockroachdb/errors"
	"github.com/dave/dst"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	config "github.com/gstrobl17/stroblmocks/stroblgen/run/1_config"
	load "github.com/gstrobl17/stroblmocks/stroblgen/run/2_load"
	detect "github.com/gstrobl17/stroblmocks/stroblgen/run/3_detect"
	expand "github.com/gstrobl17/stroblmocks/stroblgen/run/4_expand"
	generate "github.com/gstrobl17/stroblmocks/stroblgen/run/5_generate"
	output "github.com/gstrobl17/stroblmocks/stroblgen/run/6_output"
	"github.com/gstrobl17/stroblmocks/stroblgen/run/diag"
)

// IDNoAnnotatedDeclarations is the diagnostic ID reported when nothing in scope carries the uses-mocks marker.
const IDNoAnnotatedDeclarations = "NoAnnotatedDeclarations"

// Exported variables.
var (
	ErrGenerationFailed = errors.New("generation failed")
	ErrTypeNotFound     = errors.New("type not found")
)

// FileSystem interface for mocking.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// PackageLoader loads a package directory as dst files.
type PackageLoader interface {
	Load(dir string) (*load.Package, error)
}

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Types   []string `arg:"--type,separate" help:"only generate for these annotated types (repeatable)"`
	Dir     string   `arg:"--dir"           help:"package directory to scan"                             default:"."`
	Config  string   `arg:"--config"        help:"config file (defaults to <dir>/stroblgen.toml when present)"`
	DryRun  bool     `arg:"--dry-run"       help:"print generated code instead of writing files"`
	Verbose bool     `arg:"-v,--verbose"    help:"log each step"`
	NoColor bool     `arg:"--no-color"      help:"never colour diagnostics"`
}

// Description is shown at the top of --help.
func (cliArgs) Description() string {
	return "stroblgen generates mock enums and VerifyStroblMocksUnused methods for //strobl:usesmocks types."
}

// generation carries what one Run works with.
type generation struct {
	cfg      config.Config
	pkg      *load.Package
	args     cliArgs
	fileSys  FileSystem
	out      io.Writer
	reporter diag.Reporter
	logger   *zap.Logger
}

// Run executes the stroblgen tool logic. It takes command-line arguments, an environment variable getter, a
// FileSystem for file operations, a PackageLoader, and the writer that status lines and diagnostics go to. Warnings
// never fail a run; hard errors are reported as diagnostics and the first one is returned.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, out io.Writer) error {
	parsed, err := parseArgs(args, out)
	if errors.Is(err, arg.ErrHelp) {
		return nil
	}

	if err != nil {
		return err
	}

	logger := newLogger(out, parsed.Verbose)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(parsed.Dir, parsed.Config, fileSys.ReadFile)
	if err != nil {
		return err
	}

	pkg, err := pkgLoader.Load(parsed.Dir)
	if err != nil {
		return errors.Wrapf(err, "failed to load package %s", parsed.Dir)
	}

	logger.Debug("loaded package", zap.String("dir", parsed.Dir), zap.Int("files", len(pkg.Files)))

	reported := &diag.Bag{}
	gen := &generation{
		cfg:      cfg,
		pkg:      pkg,
		args:     parsed,
		fileSys:  fileSys,
		out:      out,
		reporter: diag.Tee{reported, diag.NewPrinter(out, !parsed.NoColor)},
		logger:   logger,
	}

	err = gen.run(getEnv("GOFILE"))

	logger.Debug("finished",
		zap.Int("diagnostics", len(reported.Items())),
		zap.Bool("hardErrors", reported.HasErrors()),
	)

	return err
}

func (g *generation) run(goFile string) error {
	files := filesInScope(g.pkg, goFile)

	err := g.checkMockMarkers(files)
	if err != nil {
		return err
	}

	decls, err := g.declarationsInScope(goFile)
	if err != nil {
		return err
	}

	if len(decls) == 0 {
		diag.Emit(g.reporter, diag.Warning(
			token.Position{Filename: g.pkg.Dir},
			IDNoAnnotatedDeclarations,
			"No "+detect.MarkerText(g.cfg.Markers.UsesMocks)+" types found",
		))

		return nil
	}

	var firstErr error

	for _, decl := range decls {
		err := g.process(decl)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// checkMockMarkers enforces where the mock marker may appear. Any violation stops the run before generation.
func (g *generation) checkMockMarkers(files []*dst.File) error {
	errs := detect.CheckMockMarkers(g.pkg, files, g.cfg.Markers.Mock)
	for _, err := range errs {
		diag.Emit(g.reporter, diag.FromError(err))
	}

	if len(errs) > 0 {
		return errors.Wrapf(errs[0], "%d misplaced %s marker(s)", len(errs), detect.MarkerText(g.cfg.Markers.Mock))
	}

	return nil
}

// declarationsInScope finds the annotated declarations, restricted to goFile when set and to --type names when given.
func (g *generation) declarationsInScope(goFile string) ([]detect.Declaration, error) {
	all := detect.FindDeclarations(g.pkg, g.pkg.Files, g.cfg.Markers.UsesMocks)

	var decls []detect.Declaration

	for _, decl := range all {
		if goFile != "" && filepath.Base(decl.Filename) != goFile {
			continue
		}

		if len(g.args.Types) > 0 && !slices.Contains(g.args.Types, decl.Name) {
			continue
		}

		decls = append(decls, decl)
	}

	for _, name := range g.args.Types {
		if !slices.ContainsFunc(decls, func(d detect.Declaration) bool { return d.Name == name }) {
			return nil, errors.WithHint(
				errors.Wrapf(ErrTypeNotFound, "%s", name),
				"--type names a type declared with "+detect.MarkerText(g.cfg.Markers.UsesMocks),
			)
		}
	}

	return decls, nil
}

func (g *generation) process(decl detect.Declaration) error {
	logger := g.logger.With(zap.String("declaration", decl.Name), zap.String("file", decl.Filename))

	exp, err := expand.Expand(decl, expand.Config{
		UsesMocksMarker: g.cfg.Markers.UsesMocks,
		MockMarker:      g.cfg.Markers.Mock,
		TestMarker:      g.cfg.Markers.Test,
		TestBase:        g.cfg.Generation.TestBase,
	})
	if err != nil {
		diag.Emit(g.reporter, diag.FromError(err))

		return errors.Wrapf(err, "%s", decl.Name)
	}

	diag.Emit(g.reporter, exp.Diagnostics...)

	logger.Debug("expanded",
		zap.Stringer("kind", decl.Kind),
		zap.Stringer("convention", exp.Convention),
		zap.Int("mockFields", len(exp.MockFields)),
	)

	if len(exp.MockFields) == 0 {
		return nil
	}

	out, err := generate.Generate(exp, generate.Options{
		Generator:     "stroblgen",
		EnumSuffix:    g.cfg.Generation.EnumSuffix,
		VerifyMethod:  g.cfg.Generation.VerifyMethod,
		RuntimeImport: g.cfg.Generation.RuntimeImport,
		MockMarker:    g.cfg.Markers.Mock,
	})
	if err != nil {
		d := diag.FromError(err)
		d.Pos = decl.Pos
		diag.Emit(g.reporter, d)

		return errors.Mark(err, ErrGenerationFailed)
	}

	path, err := output.WriteGeneratedCode(output.File{
		Code:       out.Source,
		DeclName:   decl.Name,
		PkgName:    decl.PkgName,
		Dir:        g.pkg.Dir,
		SourceFile: decl.Filename,
	}, g.args.DryRun, g.fileSys, g.out, g.reporter, logger)
	if err != nil {
		return err
	}

	logger.Debug("generated", zap.String("output", path))

	return nil
}

// filesInScope returns the files of pkg the run looks at: all of them, or only goFile when go generate set it.
func filesInScope(pkg *load.Package, goFile string) []*dst.File {
	if goFile == "" {
		return pkg.Files
	}

	var files []*dst.File

	for _, file := range pkg.Files {
		if filepath.Base(pkg.Filename(file)) == goFile {
			files = append(files, file)
		}
	}

	return files
}

// newLogger returns a console logger on out when verbose, and a no-op logger otherwise.
func newLogger(out io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(out), zapcore.DebugLevel))
}

// parseArgs parses command-line arguments into cliArgs. --help writes usage to out and returns arg.ErrHelp.
func parseArgs(args []string, out io.Writer) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "stroblgen"}, &parsed)
	if err != nil {
		return cliArgs{}, errors.Wrap(err, "failed to create argument parser")
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if errors.Is(err, arg.ErrHelp) {
		parser.WriteHelp(out)

		return cliArgs{}, err
	}

	if err != nil {
		return cliArgs{}, errors.Wrap(err, "failed to parse arguments")
	}

	return parsed, nil
}
