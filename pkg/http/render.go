package http

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST node back to wire format bytes.
//
// The node must be an ObjectNode with a "type" property of "request" or
// "response", as produced by RequestToNode or ResponseToNode.
func Render(node ast.SchemaNode) ([]byte, error) {
	const op = "Render"
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, convertErrorf(op, "expected ObjectNode, got %T", node)
	}

	props := obj.Properties()
	if _, ok := props["type"]; !ok {
		return nil, convertErrorf(op, "missing 'type' property")
	}
	msgType, err := stringProp(op, props, "type")
	if err != nil {
		return nil, err
	}

	switch msgType {
	case "request":
		req, err := NodeToRequest(node)
		if err != nil {
			return nil, fmt.Errorf("http: Render: %w", err)
		}
		return Marshal(req)

	case "response":
		resp, err := NodeToResponse(node)
		if err != nil {
			return nil, fmt.Errorf("http: Render: %w", err)
		}
		return Marshal(resp)

	default:
		return nil, convertErrorf(op, "unknown message type %q", msgType)
	}
}
