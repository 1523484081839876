package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"fieldtmpl/internal/gen"
	"fieldtmpl/internal/match"
	"fieldtmpl/tmpl"
)

func runCheck(ctx context.Context, e *env, args []string) error {
	var (
		common   commonFlags
		typeName string
		source   string
		sets     []string
	)

	fs := newFlagSet("check", e)
	common.register(fs)
	fs.StringVar(&typeName, "type", "", "struct type name (required)")
	fs.StringVar(&source, "template", "", "template source to compile (required)")
	fs.StringArrayVar(&sets, "set", nil, "field value as name=value; also renders the template")

	if err := parse(fs, e, &common, args); err != nil {
		return err
	}

	if !fs.Changed("template") {
		return usagef("--template is required")
	}

	info, err := loadStruct(ctx, e, &common, typeName)
	if err != nil {
		return err
	}

	fields := gen.Fields(info, common.tag)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	elems, err := tmpl.Compile(source, names)
	if err != nil {
		return fmt.Errorf("template does not compile against %s: %w%s", info.ID, err, unknownFieldHint(err, names))
	}

	e.logger.DebugContext(ctx, "compiled template",
		slog.Int("elements", len(elems)),
		slog.Any("fields", elems.Fields()))

	fmt.Fprintln(e.stdout, elems.Escape(names))

	if len(sets) == 0 {
		return nil
	}

	values := make([]string, len(names))
	for _, kv := range sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return usagef("--set %q: want name=value", kv)
		}

		i := slices.Index(names, name)
		if i < 0 {
			return fmt.Errorf("--set %s: %w%s", name, tmpl.ErrUnknownField, match.Hint(name, names))
		}
		values[i] = value
	}

	fmt.Fprintln(e.stdout, elems.Render(func(i int) string { return values[i] }))

	return nil
}

// unknownFieldHint suggests a field name when err reports an unknown one.
func unknownFieldHint(err error, names []string) string {
	var ce *tmpl.CompileError
	if !errors.As(err, &ce) || !errors.Is(ce.Err, tmpl.ErrUnknownField) {
		return ""
	}

	return match.Hint(ce.Field, names)
}
