package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/pflag"

	"fieldtmpl/internal/analyze"
	"fieldtmpl/internal/config"
	"fieldtmpl/internal/diagnostic"
	"fieldtmpl/internal/gen"
)

type genFlags struct {
	common     commonFlags
	types      []string
	out        string
	configPath string
	noComments bool
	dryRun     bool
}

func runGen(ctx context.Context, e *env, args []string) error {
	var flags genFlags

	fs := newFlagSet("gen", e)
	flags.common.register(fs)
	fs.StringSliceVar(&flags.types, "type", nil, "comma-separated struct type names")
	fs.StringVar(&flags.out, "out", "", "output directory (default: the package directory)")
	fs.StringVar(&flags.configPath, "config", "", "read targets from a YAML or JSONC config file")
	fs.BoolVar(&flags.noComments, "no-comments", false, "omit Go field names from generated switch cases")
	fs.BoolVar(&flags.dryRun, "dry-run", false, "print generated code instead of writing files")

	if err := parse(fs, e, &flags.common, args); err != nil {
		return err
	}

	cfg, err := genConfig(fs, &flags)
	if err != nil {
		return err
	}

	diags := config.Validate(cfg)
	logDiagnostics(ctx, e.logger, diags)
	if err := diags.Error(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	analyzer := analyze.NewAnalyzer(cfg.Dir)
	targets := make([]gen.Target, 0, len(cfg.Targets))

	for _, t := range cfg.Targets {
		pkg, err := analyzer.LoadPackage(ctx, t.Package)
		if err != nil {
			return fmt.Errorf("loading %s: %w", t.Package, err)
		}

		e.logger.DebugContext(ctx, "loaded package",
			slog.String("pattern", t.Package),
			slog.String("path", pkg.Path),
			slog.Int("types", len(pkg.Types)))

		targets = append(targets, gen.Target{
			PkgPath:   pkg.Path,
			Types:     t.Types,
			OutputDir: cfg.OutputDir(t),
		})
	}

	generator := gen.NewGenerator(gen.Config{
		TagKey:           cfg.Tag,
		GenerateComments: cfg.GenerateComments(),
		Logger:           e.logger,
	})

	res, err := generator.Generate(ctx, analyzer.Graph(), targets...)
	if res != nil {
		logDiagnostics(ctx, e.logger, &res.Diagnostics)
	}
	if err != nil {
		return err
	}

	if flags.dryRun {
		for _, file := range res.Files {
			fmt.Fprintf(e.stdout, "// %s\n%s", filepath.Join(file.Dir, file.Filename), file.Content)
		}

		return nil
	}

	written, err := gen.WriteFiles(res.Files)
	for _, path := range written {
		e.logger.InfoContext(ctx, "wrote", slog.String("file", path))
	}

	return err
}

// genConfig builds the run configuration from --config or from the
// command-line flags. Explicit --tag and --no-comments override the file.
func genConfig(fs *pflag.FlagSet, flags *genFlags) (*config.Config, error) {
	if flags.configPath == "" {
		if len(flags.types) == 0 {
			return nil, usagef("gen: --type or --config is required")
		}

		comments := !flags.noComments

		return &config.Config{
			Version:  config.CurrentVersion,
			Tag:      flags.common.tag,
			Comments: &comments,
			Targets: []config.Target{{
				Package: flags.common.pkg,
				Types:   flags.types,
				Output:  flags.out,
			}},
		}, nil
	}

	for _, name := range []string{"type", "out", "pkg"} {
		if fs.Changed(name) {
			return nil, usagef("gen: --%s cannot be combined with --config", name)
		}
	}

	cfg, err := config.LoadFile(flags.configPath)
	if err != nil {
		return nil, err
	}

	if fs.Changed("tag") {
		cfg.Tag = flags.common.tag
	}

	if fs.Changed("no-comments") {
		comments := !flags.noComments
		cfg.Comments = &comments
	}

	return cfg, nil
}

// logDiagnostics reports warnings and infos. Errors are returned to the
// caller instead.
func logDiagnostics(ctx context.Context, logger *slog.Logger, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		switch d.Severity {
		case diagnostic.SeverityWarning:
			logger.WarnContext(ctx, d.Message, diagAttrs(d)...)
		case diagnostic.SeverityInfo:
			logger.DebugContext(ctx, d.Message, diagAttrs(d)...)
		}
	}
}

func diagAttrs(d diagnostic.Diagnostic) []any {
	attrs := []any{slog.String("code", d.Code)}
	if d.Type != "" {
		attrs = append(attrs, slog.String("type", d.Type))
	}
	if d.Field != "" {
		attrs = append(attrs, slog.String("field", d.Field))
	}

	return attrs
}
