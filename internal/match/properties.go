package match

import (
	"github.com/plantmatch/core/internal/types"
)

// Logger is the narrow logging surface the Compatibility Builder needs. The
// concrete diagnostic sink (internal/diagnostics) satisfies it; tests can
// pass a recording fake instead of a real logger.
type Logger interface {
	Warnf(format string, args ...any)
}

// nopLogger discards everything; used when no logger is supplied.
type nopLogger struct{}

func (nopLogger) Warnf(string, ...any) {}

// warnedRangeAndDiscrete tracks which (resource, propertyID) pairs have
// already triggered the "range takes precedence over discrete" warning, so it
// is logged once per offending pair rather than once per step that happens to
// reference it.
type warnedRangeAndDiscrete struct {
	seen map[string]bool
}

func newWarnedRangeAndDiscrete() *warnedRangeAndDiscrete {
	return &warnedRangeAndDiscrete{seen: make(map[string]bool)}
}

func (w *warnedRangeAndDiscrete) warnOnce(log Logger, resourceKey string, p types.Property) {
	if p.Value.Kind != types.ValueRange {
		return
	}
	if len(p.Value.Numeric) == 0 && len(p.Value.Literal) == 0 {
		return
	}
	key := resourceKey + "\x00" + p.PropertyID
	if w.seen[key] {
		return
	}
	w.seen[key] = true
	log.Warnf("property %q on %s declares both a range and discrete values; the discrete branch is unreachable (range takes precedence)", p.PropertyID, resourceKey)
}

// propertyCompatible evaluates one parameter's expression against one
// property's declared value descriptor, per the spec's value-compatibility
// table. A malformed expression against a property that declares values
// rejects the property (MalformedValueExpression); a property with no
// declared value space accepts unconditionally.
func propertyCompatible(param types.Parameter, prop types.Property) (bool, error) {
	switch prop.Value.Kind {
	case types.ValueRange:
		e, err := ParseExpr(param.ValueString)
		if err != nil {
			return false, err
		}
		return e.SatisfiesRange(prop.Value.Min, prop.Value.Max), nil
	case types.ValueDiscreteNumeric:
		e, err := ParseExpr(param.ValueString)
		if err != nil {
			return false, err
		}
		return e.SatisfiesDiscrete(prop.Value.Numeric), nil
	default:
		// ValueUnspecified and ValueDiscreteLiteral (non-numeric discrete
		// values cannot be compared against a numeric parameter expression
		// and are treated as having no numeric value space to check).
		return true, nil
	}
}

// propertiesCompatible implements the spec's "Property / parameter
// compatibility" predicate for one capability entry against one step. An
// empty Parameters list is compatible with no matches recorded. Otherwise
// every parameter must find some property on the capability whose ID and
// (when both declare one) unit match, and whose value is compatible; the
// first such property per parameter is retained.
func propertiesCompatible(step types.Step, cap types.CapabilityEntry, resourceKey string, log Logger, warned *warnedRangeAndDiscrete) (bool, []types.PropertyMatch) {
	if len(step.Parameters) == 0 {
		return true, nil
	}

	var matches []types.PropertyMatch
	for _, param := range step.Parameters {
		found := false
		for _, prop := range cap.Properties {
			if prop.PropertyID != param.Key {
				continue
			}
			if param.UnitOfMeasure != "" && prop.PropertyUnit != "" && param.UnitOfMeasure != prop.PropertyUnit {
				continue
			}
			warned.warnOnce(log, resourceKey, prop)
			ok, err := propertyCompatible(param, prop)
			if err != nil {
				// Malformed expression rejects this property, not the whole
				// capability; keep scanning remaining properties for the
				// parameter in case another one matches.
				continue
			}
			if ok {
				matches = append(matches, types.PropertyMatch{Parameter: param, Property: prop})
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, matches
}
