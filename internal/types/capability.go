package types

import (
	"encoding/json"
	"sort"
	"strconv"
)

// ValueKind tags the shape of a property's declared value space, replacing
// the "sniff the keys present in the JSON object" approach of the source
// system with an explicit variant (spec design note, "dynamic typing of
// value descriptors").
type ValueKind int

const (
	// ValueUnspecified means the property declares neither a range nor
	// discrete values; any parameter expression is accepted unconditionally.
	ValueUnspecified ValueKind = iota
	// ValueRange means the property declares valueMin and/or valueMax.
	ValueRange
	// ValueDiscreteNumeric means the property declares one or more bare
	// numeric value/value1/value2/... entries.
	ValueDiscreteNumeric
	// ValueDiscreteLiteral means the property declares one or more
	// non-numeric value/value1/value2/... entries (kept for output shaping
	// only; matching always treats a parameter expression as numeric).
	ValueDiscreteLiteral
)

// ValueDescriptor is the parsed value-space of a single property.
type ValueDescriptor struct {
	Kind ValueKind

	// Populated when Kind == ValueRange. Either may be absent (nil).
	Min *float64
	Max *float64

	// Populated when Kind == ValueDiscreteNumeric, and alongside a range
	// when the property also declares numeric discrete values.
	Numeric []float64

	// Populated when Kind == ValueDiscreteLiteral, and alongside a range
	// when the property also declares non-numeric discrete values.
	Literal []string
}

// UnmarshalJSON resolves the source format's "sniff the keys" value
// descriptor shape into the tagged ValueDescriptor variant at the parsing
// boundary: a property's value object carries valueMin/valueMax for a
// range, or one or more value/value1/value2/... keys for a discrete set,
// or neither for an unspecified value space. Per spec §9's open question, a
// property declaring both a range and discrete values is treated as a
// range; the caller (the Compatibility Builder) is responsible for
// surfacing the one-time warning this implies.
func (v *ValueDescriptor) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	min, hasMin := parseFloatField(raw, "valueMin")
	max, hasMax := parseFloatField(raw, "valueMax")
	if hasMin || hasMax {
		*v = ValueDescriptor{Kind: ValueRange}
		if hasMin {
			v.Min = &min
		}
		if hasMax {
			v.Max = &max
		}
		// Discrete values declared alongside the range are kept so the
		// Compatibility Builder can see that both were declared.
		for _, k := range discreteValueKeys(raw) {
			var f float64
			if err := json.Unmarshal(raw[k], &f); err == nil {
				v.Numeric = append(v.Numeric, f)
				continue
			}
			var s string
			if err := json.Unmarshal(raw[k], &s); err == nil {
				v.Literal = append(v.Literal, s)
			}
		}
		return nil
	}

	keys := discreteValueKeys(raw)
	if len(keys) == 0 {
		*v = ValueDescriptor{Kind: ValueUnspecified}
		return nil
	}

	numeric := make([]float64, 0, len(keys))
	literal := make([]string, 0, len(keys))
	allNumeric := true
	for _, k := range keys {
		var s string
		if err := json.Unmarshal(raw[k], &s); err == nil {
			literal = append(literal, s)
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				numeric = append(numeric, f)
			} else {
				allNumeric = false
			}
			continue
		}
		var f float64
		if err := json.Unmarshal(raw[k], &f); err == nil {
			numeric = append(numeric, f)
			literal = append(literal, strconv.FormatFloat(f, 'g', -1, 64))
			continue
		}
		allNumeric = false
	}

	if allNumeric {
		*v = ValueDescriptor{Kind: ValueDiscreteNumeric, Numeric: numeric}
	} else {
		*v = ValueDescriptor{Kind: ValueDiscreteLiteral, Literal: literal}
	}
	return nil
}

func parseFloatField(raw map[string]json.RawMessage, key string) (float64, bool) {
	msg, ok := raw[key]
	if !ok {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(msg, &f); err != nil {
		return 0, false
	}
	return f, true
}

// discreteValueKeys returns the "value", "value1", "value2", ... keys
// present in raw, sorted so "value" sorts first and the rest in numeric
// suffix order, excluding valueType/valueMin/valueMax.
func discreteValueKeys(raw map[string]json.RawMessage) []string {
	var keys []string
	for k := range raw {
		if k == "valueType" || k == "valueMin" || k == "valueMax" {
			continue
		}
		if k == "value" || (len(k) > 5 && k[:5] == "value") {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return discreteKeyOrdinal(keys[i]) < discreteKeyOrdinal(keys[j])
	})
	return keys
}

func discreteKeyOrdinal(key string) int {
	if key == "value" {
		return 0
	}
	n, err := strconv.Atoi(key[5:])
	if err != nil {
		return 1 << 30
	}
	return n
}

// ConditionalType enumerates the kinds of property_constraint entries.
// Only "Pre" (precondition) is defined by the spec; others are carried
// through but never matched against.
type ConditionalType string

// ConditionalPre is the only conditional_type the Compatibility Builder acts on.
const ConditionalPre ConditionalType = "Pre"

// PropertyConstraint is a precondition attached to a property, checked
// against a step's input materials before the owning capability is accepted.
type PropertyConstraint struct {
	ConditionalType ConditionalType `json:"conditional_type"`
	ConstraintID    string          `json:"property_constraint_id"`
	ConstraintUnit  string          `json:"property_constraint_unit"`
	ConstraintValue string          `json:"property_constraint_value"`
}

// Property is a single declared property of a capability.
type Property struct {
	PropertyID   string               `json:"property_id"`
	PropertyName string               `json:"property_name"`
	PropertyUnit string               `json:"property_unit"`
	Value        ValueDescriptor      `json:"value"`
	Constraints  []PropertyConstraint `json:"property_constraint"`
}

// CapabilityEntry is one capability declared by a resource.
type CapabilityEntry struct {
	CapabilityName string     `json:"capability_name"`
	CapabilityID   string     `json:"capability_id"`
	GeneralizedBy  []string   `json:"generalized_by"`
	Properties     []Property `json:"properties"`
}

// ResourceCapabilities maps a resource key (e.g. "resource: Mixer1") to the
// capabilities that resource declares.
type ResourceCapabilities map[string][]CapabilityEntry

// CapabilitySet pairs a ResourceCapabilities map with the resource order the
// collaborator observed while building it (e.g. the order files were read
// from a directory). Go map iteration order is randomized per-process, so
// every pipeline stage that must be deterministic across runs (candidate
// construction, the encoder, solution ID assignment) threads this explicit
// Order slice through instead of ranging over the map directly.
type CapabilitySet struct {
	Capabilities ResourceCapabilities
	Order        []string
}

// ResourceKeys returns the resource keys in collaborator-insertion order,
// falling back to map iteration (sorted-free, but still complete) only if no
// explicit order was recorded.
func (c CapabilitySet) ResourceKeys() []string {
	if len(c.Order) > 0 {
		return c.Order
	}
	keys := make([]string, 0, len(c.Capabilities))
	for k := range c.Capabilities {
		keys = append(keys, k)
	}
	return keys
}

// PropertyByID returns the property with the given ID on this capability entry.
func (c CapabilityEntry) PropertyByID(id string) (Property, bool) {
	for _, p := range c.Properties {
		if p.PropertyID == id {
			return p, true
		}
	}
	return Property{}, false
}
