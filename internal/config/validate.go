package config

import (
	"fmt"
	"go/token"
	"strings"

	"fieldtmpl/internal/diagnostic"
)

// Diagnostic codes reported by Validate.
const (
	CodeUnsupportedVersion = "unsupported-version"
	CodeInvalidTag         = "invalid-tag"
	CodeNoTargets          = "no-targets"
	CodeMissingPackage     = "missing-package"
	CodeMissingTypes       = "missing-types"
	CodeInvalidTypeName    = "invalid-type-name"
	CodeDuplicateType      = "duplicate-type"
)

// Validate checks a config for structural problems. It does not load any
// package; whether the named types exist is reported by the generator.
func Validate(cfg *Config) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if cfg == nil {
		res.AddError("config-is-nil", "config is nil", "", "")
		return res
	}

	if cfg.Version != CurrentVersion {
		res.AddError(CodeUnsupportedVersion,
			fmt.Sprintf("unsupported version %q (want %q)", cfg.Version, CurrentVersion), "", "")
	}

	if cfg.Tag == "" || strings.ContainsAny(cfg.Tag, " \t:\"`") {
		res.AddError(CodeInvalidTag, fmt.Sprintf("invalid struct tag key %q", cfg.Tag), "", "")
	}

	if len(cfg.Targets) == 0 {
		res.AddError(CodeNoTargets, "no targets configured", "", "")
		return res
	}

	seen := make(map[string]struct{})

	for i := range cfg.Targets {
		validateTarget(res, i, &cfg.Targets[i], seen)
	}

	return res
}

// validateTarget checks a single target. seen collects package/type pairs
// across targets.
func validateTarget(res *diagnostic.Diagnostics, i int, t *Target, seen map[string]struct{}) {
	where := fmt.Sprintf("targets[%d]", i)

	if t.Package == "" {
		res.AddError(CodeMissingPackage, "package is required", where, "")
	}

	if len(t.Types) == 0 {
		res.AddError(CodeMissingTypes, "at least one type is required", where, "")
		return
	}

	for _, name := range t.Types {
		if !token.IsIdentifier(name) {
			res.AddError(CodeInvalidTypeName, fmt.Sprintf("%q is not a Go identifier", name), where, name)
			continue
		}

		key := t.Package + "." + name
		if _, dup := seen[key]; dup {
			res.AddWarning(CodeDuplicateType, fmt.Sprintf("type %s listed more than once", key), where, name)
			continue
		}

		seen[key] = struct{}{}
	}
}
