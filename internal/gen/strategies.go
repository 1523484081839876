package gen

import (
	"go/types"
)

// renderStrategy selects how a field value is turned into text. Every
// strategy produces the same string fmt.Sprint would, so generated
// providers agree with reflectfields.
type renderStrategy int

const (
	strategySprint renderStrategy = iota // fmt.Sprint(x)
	strategyString                       // x, or string(x) for named strings
	strategyStringer                     // x.String()
	strategyError                        // x.Error()
	strategyBool                         // strconv.FormatBool
	strategyInt                          // strconv.FormatInt
	strategyUint                         // strconv.FormatUint
	strategyFloat32                      // strconv.FormatFloat(..., 32)
	strategyFloat64                      // strconv.FormatFloat(..., 64)
)

// selectStrategy mirrors fmt's own precedence: Formatter, then error, then
// Stringer, then the underlying kind.
func selectStrategy(t types.Type) renderStrategy {
	t = types.Unalias(t)

	switch t.Underlying().(type) {
	case *types.Interface, *types.Pointer:
		// nil values and dynamic types are left to fmt.
		return strategySprint
	}

	methods := types.NewMethodSet(t)
	switch {
	case isFormatter(methods):
		return strategySprint
	case hasStringMethod(t, methods, "Error"):
		return strategyError
	case hasStringMethod(t, methods, "String"):
		return strategyStringer
	}

	basic, ok := t.Underlying().(*types.Basic)
	if !ok {
		return strategySprint
	}

	info := basic.Info()
	switch {
	case info&types.IsString != 0:
		return strategyString
	case info&types.IsBoolean != 0:
		return strategyBool
	case info&types.IsUnsigned != 0:
		return strategyUint
	case info&types.IsInteger != 0:
		return strategyInt
	case basic.Kind() == types.Float32:
		return strategyFloat32
	case basic.Kind() == types.Float64:
		return strategyFloat64
	default:
		return strategySprint
	}
}

// isFormatter reports whether methods contains a fmt.Formatter style
// Format(fmt.State, rune) method.
func isFormatter(methods *types.MethodSet) bool {
	sel := methods.Lookup(nil, "Format")
	if sel == nil {
		return false
	}

	sig, ok := sel.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 2 || sig.Results().Len() != 0 {
		return false
	}

	verb, ok := sig.Params().At(1).Type().(*types.Basic)

	return ok && verb.Kind() == types.Int32
}

// hasStringMethod reports whether methods, the method set of t, contains
// name with the signature func() string. Methods promoted through an
// embedded pointer or interface are ignored: the embedded value may be nil,
// and calling them would panic in generated code.
func hasStringMethod(t types.Type, methods *types.MethodSet, name string) bool {
	sel := methods.Lookup(nil, name)
	if sel == nil || viaNilableEmbedding(t, sel) {
		return false
	}

	sig, ok := sel.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return false
	}

	res, ok := sig.Results().At(0).Type().(*types.Basic)

	return ok && res.Kind() == types.String
}

// viaNilableEmbedding reports whether the path of sel from t crosses an
// embedded field of pointer or interface type.
func viaNilableEmbedding(t types.Type, sel *types.Selection) bool {
	path := sel.Index()
	for _, i := range path[:len(path)-1] {
		st, ok := t.Underlying().(*types.Struct)
		if !ok {
			return false
		}

		t = st.Field(i).Type()
		switch t.Underlying().(type) {
		case *types.Pointer, *types.Interface:
			return true
		}
	}

	return false
}

// fieldExpr returns a Go expression rendering expr, of type t, as a
// string. Packages the expression needs are added to imports.
func fieldExpr(expr string, t types.Type, imports map[string]struct{}) string {
	switch selectStrategy(t) {
	case strategyString:
		return convert("string", expr, t)

	case strategyStringer:
		return expr + ".String()"

	case strategyError:
		return expr + ".Error()"

	case strategyBool:
		imports["strconv"] = struct{}{}
		return "strconv.FormatBool(" + convert("bool", expr, t) + ")"

	case strategyInt:
		imports["strconv"] = struct{}{}
		return "strconv.FormatInt(" + convert("int64", expr, t) + ", 10)"

	case strategyUint:
		imports["strconv"] = struct{}{}
		return "strconv.FormatUint(" + convert("uint64", expr, t) + ", 10)"

	case strategyFloat32:
		imports["strconv"] = struct{}{}
		return "strconv.FormatFloat(float64(" + expr + "), 'g', -1, 32)"

	case strategyFloat64:
		imports["strconv"] = struct{}{}
		return "strconv.FormatFloat(" + convert("float64", expr, t) + ", 'g', -1, 64)"

	default:
		imports["fmt"] = struct{}{}
		return "fmt.Sprint(" + expr + ")"
	}
}

// convert wraps expr in a conversion to the predeclared type target unless
// t already is that type.
func convert(target, expr string, t types.Type) string {
	if basic, ok := types.Unalias(t).(*types.Basic); ok && basic.Name() == target {
		return expr
	}

	return target + "(" + expr + ")"
}
