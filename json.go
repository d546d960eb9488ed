package goalgebra

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// JSON Serialization
// ============================================================

// ToJSON encodes e as a JSON object tree.
// Constants that are infinite or NaN cannot be encoded.
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	if err != nil {
		return "", fmt.Errorf("encode expression: %w", err)
	}
	return string(b), nil
}

// ToMap returns the generic map form of e, as accepted by FromJSON.
// It fails under the same conditions as ToJSON.
func ToMap(e Expr) (map[string]interface{}, error) {
	// Round trip through encoding/json so nested values have the same
	// dynamic types a decoded request would have.
	b, err := json.Marshal(e.toJSON())
	if err != nil {
		return nil, fmt.Errorf("encode expression: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return m, nil
}

// ParseJSON decodes a JSON document produced by ToJSON.
func ParseJSON(data []byte) (Expr, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return FromJSON(m)
}

// FromJSON rebuilds an expression from its decoded JSON object form.
// The tree is returned as encoded; it is not simplified.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	operands := func() ([]Expr, error) {
		v, ok := data["operands"]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, "operands")
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, "operands")
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: operands[%d] must be an object", typ, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: operands[%d]: %w", typ, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	switch typ {
	case "constant":
		v, ok := data["value"]
		if !ok {
			return nil, fmt.Errorf("constant: missing 'value'")
		}
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("constant: 'value' must be a number")
		}
		return C(f), nil

	case "variable":
		v, ok := data["name"]
		if !ok {
			return nil, fmt.Errorf("variable: missing 'name'")
		}
		name, ok := v.(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("variable: 'name' must be a non-empty string")
		}
		return V(name), nil

	case "add":
		ops, err := operands()
		if err != nil {
			return nil, err
		}
		return &Add{Operands: ops}, nil

	case "multiply":
		ops, err := operands()
		if err != nil {
			return nil, err
		}
		return &Multiply{Operands: ops}, nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}
