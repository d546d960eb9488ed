package goalgebra

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs one tool call. Expression parameters are given either
// as "source" (expression text) or as "expr" (a JSON tree from ToJSON).
func HandleToolCall(req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getTree := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		return FromJSON(m)
	}
	getExpr := func() (Expr, error) {
		if _, ok := req.Params["source"]; ok {
			src, err := getString("source")
			if err != nil {
				return nil, err
			}
			return Parse(src)
		}
		if _, ok := req.Params["expr"]; ok {
			return getTree("expr")
		}
		return nil, fmt.Errorf("missing param: source or expr")
	}
	errResp := func(err error) ToolResponse {
		return ToolResponse{Error: err.Error()}
	}
	exprResp := func(e Expr) ToolResponse {
		m, err := ToMap(e)
		if err != nil {
			return ToolResponse{Error: err.Error(), String: e.String()}
		}
		return ToolResponse{Result: m, String: e.String(), LaTeX: e.LaTeX()}
	}

	switch req.Tool {
	case "parse":
		e, err := getExpr()
		if err != nil {
			return errResp(err)
		}
		return exprResp(e)

	case "simplify":
		e, err := getExpr()
		if err != nil {
			return errResp(err)
		}
		return exprResp(e.Simplify())

	case "render":
		e, err := getExpr()
		if err != nil {
			return errResp(err)
		}
		return ToolResponse{String: e.String()}

	case "to_latex":
		e, err := getExpr()
		if err != nil {
			return errResp(err)
		}
		return ToolResponse{LaTeX: e.LaTeX()}

	case "debug":
		e, err := getExpr()
		if err != nil {
			return errResp(err)
		}
		return ToolResponse{String: Debug(e)}

	case "eval":
		e, err := getExpr()
		if err != nil {
			return errResp(err)
		}
		v, err := e.Eval()
		if err != nil {
			return errResp(err)
		}
		return exprResp(v)

	case "variables":
		e, err := getExpr()
		if err != nil {
			return errResp(err)
		}
		return ToolResponse{Result: Variables(e)}

	case "substitute":
		e, err := getExpr()
		if err != nil {
			return errResp(err)
		}
		name, err := getString("var")
		if err != nil {
			return errResp(err)
		}
		var value Expr
		if _, ok := req.Params["value_source"]; ok {
			src, err := getString("value_source")
			if err != nil {
				return errResp(err)
			}
			value, err = Parse(src)
			if err != nil {
				return errResp(err)
			}
		} else {
			value, err = getTree("value")
			if err != nil {
				return errResp(err)
			}
		}
		return exprResp(e.Substitute(name, value))

	case "tool_spec":
		return ToolResponse{String: ToolSpec()}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ToolSpec returns the JSON schema of the tools HandleToolCall accepts.
func ToolSpec() string {
	exprProps := map[string]string{"source": "string", "expr": "object"}
	tools := []map[string]interface{}{
		ts("parse", "Parse expression text into a tree without simplifying", nil, exprProps),
		ts("simplify", "Simplify an expression (flattening, identities, constant folding)", nil, exprProps),
		ts("render", "Render an expression as typesetter text", nil, exprProps),
		ts("to_latex", "Render an expression as LaTeX", nil, exprProps),
		ts("debug", "Indented structural dump of the tree", nil, exprProps),
		ts("eval", "Evaluate a terminal expression; composites are not supported", nil, exprProps),
		ts("variables", "Sorted distinct variable names", nil, exprProps),
		ts("substitute", "Replace a variable with value (tree) or value_source (text)", []string{"var"},
			map[string]string{"source": "string", "expr": "object", "var": "string", "value": "object", "value_source": "string"}),
		ts("tool_spec", "Return this tool schema", nil, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
