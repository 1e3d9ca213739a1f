package envcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mwiater/ragnote/internal/logging"
)

const (
	// DefaultEnvFile is the configuration file loaded before validation.
	DefaultEnvFile = ".env"
	// DefaultSampleFile holds the placeholder values shipped with the notebooks.
	DefaultSampleFile = ".env.sample"
)

// ValidationReport holds the outcome of each phase.
type ValidationReport struct {
	VarErrors        bool
	URLErrors        bool
	ConnectionErrors bool
}

// Passed reports whether every phase finished without errors.
func (r ValidationReport) Passed() bool {
	return !r.VarErrors && !r.URLErrors && !r.ConnectionErrors
}

// Options configures a Validator. Zero values select the defaults described
// on each field.
type Options struct {
	// EnvPath defaults to .env in the working directory.
	EnvPath string
	// SamplePath defaults to .env.sample in the working directory.
	SamplePath string
	// SkipLoad leaves the environment untouched instead of loading EnvPath.
	SkipLoad bool
	// KeepExisting stops loaded values from replacing variables already set.
	KeepExisting bool
	// Spec defaults to DefaultSpec.
	Spec *EnvSpec
	// Env defaults to the process environment.
	Env Environment
	// Factory builds the connectivity probe client. A nil Factory reports the
	// client as unavailable.
	Factory ClientFactory
	// Out defaults to stdout.
	Out io.Writer
}

// Validator runs the environment checks in order.
type Validator struct {
	opts Options
}

// NewValidator applies defaults to opts.
func NewValidator(opts Options) *Validator {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	if opts.EnvPath == "" {
		opts.EnvPath = filepath.Join(cwd, DefaultEnvFile)
	}
	if opts.SamplePath == "" {
		opts.SamplePath = filepath.Join(cwd, DefaultSampleFile)
	}
	if opts.Spec == nil {
		spec := DefaultSpec()
		opts.Spec = &spec
	}
	if opts.Env == nil {
		opts.Env = OSEnvironment{}
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Validator{opts: opts}
}

// Run validates the environment, prints a banner and reports whether every
// check passed.
func (v *Validator) Run(ctx context.Context) bool {
	report := v.Report(ctx)
	w := v.opts.Out

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	if report.Passed() {
		color.New(color.FgGreen).Fprintln(w, "✅ All validation checks passed! Your environment is properly configured.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "You can now proceed with the tutorial.")
		return true
	}
	color.New(color.FgRed).Fprintln(w, "❌ Validation failed! Please check the errors above.")
	return false
}

// Report runs the three phases and returns their outcomes.
func (v *Validator) Report(ctx context.Context) ValidationReport {
	w := v.opts.Out
	env := v.opts.Env

	if !v.opts.SkipLoad {
		v.load(w, env)
	}

	fmt.Fprintln(w, "🔍 Validating environment configuration...")
	fmt.Fprintln(w)

	var report ValidationReport
	if err := v.opts.Spec.Validate(); err != nil {
		fail(w, "%v", err)
		report.VarErrors = true
	} else {
		defaults := v.sampleDefaults(w)
		report.VarErrors = CheckRequiredVariables(w, env, *v.opts.Spec, defaults)
	}

	baseURL := Getenv(env, VarAPIBaseURL)
	report.URLErrors = ValidateAPIURL(w, baseURL)
	report.ConnectionErrors = CheckAPIConnection(ctx, w, v.opts.Factory, baseURL, Getenv(env, VarAPIToken))

	logging.LogEvent("[ENV] validation finished: vars=%v url=%v connection=%v",
		report.VarErrors, report.URLErrors, report.ConnectionErrors)
	return report
}

func (v *Validator) load(w io.Writer, env Environment) {
	mutable, ok := env.(MutableEnvironment)
	if !ok {
		logging.LogEvent("[ENV] environment is read-only; not loading %s", v.opts.EnvPath)
		return
	}
	applied, err := LoadFile(mutable, v.opts.EnvPath, !v.opts.KeepExisting)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.LogEvent("[ENV] no configuration file at %s", v.opts.EnvPath)
			return
		}
		fail(w, "Could not load %s: %v", v.opts.EnvPath, err)
		return
	}
	logging.LogEvent("[ENV] loaded %d variables from %s", applied, v.opts.EnvPath)
}

// sampleDefaults is read on every run so edits to the sample file are seen.
func (v *Validator) sampleDefaults(w io.Writer) map[string]string {
	defaults, err := ReadSampleDefaults(v.opts.SamplePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fail(w, " Could not find %s file to check defaults", v.opts.SamplePath)
		} else {
			fail(w, " Error reading %s: %v", v.opts.SamplePath, err)
		}
	}
	return defaults
}
