package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"fieldtmpl/internal/analyze"
	"fieldtmpl/internal/gen"
	"fieldtmpl/internal/match"
)

func runFields(ctx context.Context, e *env, args []string) error {
	var (
		common   commonFlags
		typeName string
	)

	fs := newFlagSet("fields", e)
	common.register(fs)
	fs.StringVar(&typeName, "type", "", "struct type name (required)")

	if err := parse(fs, e, &common, args); err != nil {
		return err
	}

	info, err := loadStruct(ctx, e, &common, typeName)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(e.stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "INDEX\tNAME\tFIELD\tTYPE\n")

	for i, f := range gen.Fields(info, common.tag) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, f.Name, f.Info.Name, f.Info.TypeString(info.ID.PkgPath))
	}

	return tw.Flush()
}

// loadStruct loads the packages matched by --pkg and returns the struct
// type named typeName. The name must be declared in exactly one of them.
func loadStruct(ctx context.Context, e *env, common *commonFlags, typeName string) (*analyze.TypeInfo, error) {
	if typeName == "" {
		return nil, usagef("--type is required")
	}

	graph, err := analyze.NewAnalyzer("").LoadPackages(ctx, common.pkg)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", common.pkg, err)
	}

	info, err := graph.Lookup(typeName)
	if errors.Is(err, analyze.ErrTypeNotFound) {
		return nil, fmt.Errorf("%w%s", err, match.Hint(typeName, graph.TypeNames()))
	}
	if err != nil {
		return nil, err
	}

	if pkg := graph.PackageOf(info.ID); pkg != nil {
		e.logger.DebugContext(ctx, "found type",
			slog.String("type", info.ID.Name),
			slog.String("package", pkg.Path),
			slog.String("dir", pkg.Dir))
	}

	if info.Kind != analyze.TypeKindStruct {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", info.ID, info.Kind)
	}

	return info, nil
}
