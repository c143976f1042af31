package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-message/pkg/stream"
	"github.com/shapestone/shape-message/pkg/uri"
)

var zeroPos = ast.Position{}

// URIToNode converts a URI to an AST ObjectNode. "port" is set only when
// the URI carries an explicit port.
func URIToNode(u uri.URI) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"scheme":   ast.NewLiteralNode(u.Scheme(), zeroPos),
		"userInfo": ast.NewLiteralNode(u.UserInfo(), zeroPos),
		"host":     ast.NewLiteralNode(u.Host(), zeroPos),
		"path":     ast.NewLiteralNode(u.Path(), zeroPos),
		"query":    ast.NewLiteralNode(u.Query(), zeroPos),
		"fragment": ast.NewLiteralNode(u.Fragment(), zeroPos),
	}
	if p, ok := u.RawPort(); ok {
		props["port"] = ast.NewLiteralNode(int64(p), zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

// NodeToURI converts an AST ObjectNode produced by URIToNode back to a URI.
// Every component is validated.
func NodeToURI(node ast.SchemaNode) (uri.URI, error) {
	const op = "NodeToURI"
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return uri.URI{}, convertErrorf(op, "expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	var p uri.Parts
	var err error
	fields := []struct {
		key string
		dst *string
	}{
		{"scheme", &p.Scheme},
		{"host", &p.Host},
		{"path", &p.Path},
		{"query", &p.Query},
		{"fragment", &p.Fragment},
	}
	for _, f := range fields {
		if *f.dst, err = stringProp(op, props, f.key); err != nil {
			return uri.URI{}, err
		}
	}
	info, err := stringProp(op, props, "userInfo")
	if err != nil {
		return uri.URI{}, err
	}
	p.User, p.Password, _ = strings.Cut(info, ":")

	u, err := uri.FromParts(p)
	if err != nil {
		return uri.URI{}, err
	}
	if n, ok := props["port"]; ok {
		port, err := nodeToInt(op, "port", n)
		if err != nil {
			return uri.URI{}, err
		}
		if u, err = u.WithPort(port); err != nil {
			return uri.URI{}, err
		}
	}
	return u, nil
}

// RequestToNode converts a Request to an AST ObjectNode.
func RequestToNode(req *Request) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":    ast.NewLiteralNode("request", zeroPos),
		"method":  ast.NewLiteralNode(req.method, zeroPos),
		"target":  ast.NewLiteralNode(req.RequestTarget(), zeroPos),
		"version": ast.NewLiteralNode(req.msg.version, zeroPos),
		"uri":     URIToNode(req.uri),
		"headers": headersToNode(req.msg.headers),
	}
	if body := bodyString(req.msg.body); body != "" {
		props["body"] = ast.NewLiteralNode(body, zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

// ResponseToNode converts a Response to an AST ObjectNode.
func ResponseToNode(resp *Response) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":       ast.NewLiteralNode("response", zeroPos),
		"version":    ast.NewLiteralNode(resp.msg.version, zeroPos),
		"statusCode": ast.NewLiteralNode(int64(resp.status.code), zeroPos),
		"reason":     ast.NewLiteralNode(resp.status.reason, zeroPos),
		"headers":    headersToNode(resp.msg.headers),
	}
	if body := bodyString(resp.msg.body); body != "" {
		props["body"] = ast.NewLiteralNode(body, zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

// NodeToRequest converts an AST ObjectNode produced by RequestToNode to a
// Request. Without a "uri" property the URI is parsed from "target". With
// one, a "target" that differs from the URI's default (or "*") becomes the
// explicit request-target.
func NodeToRequest(node ast.SchemaNode) (*Request, error) {
	const op = "NodeToRequest"
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, convertErrorf(op, "expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	method, err := stringProp(op, props, "method")
	if err != nil {
		return nil, err
	}
	target, err := stringProp(op, props, "target")
	if err != nil {
		return nil, err
	}

	var u uri.URI
	var explicit string
	switch n, ok := props["uri"]; {
	case ok:
		if u, err = NodeToURI(n); err != nil {
			return nil, err
		}
		explicit = target
	case target == "*":
		explicit = target
	case target != "":
		if u, err = uri.Parse(target); err != nil {
			return nil, err
		}
	}

	req, err := NewRequestFromURI(method, u)
	if err != nil {
		return nil, err
	}
	if explicit != "" && explicit != req.RequestTarget() {
		if req, err = req.WithRequestTarget(explicit); err != nil {
			return nil, err
		}
	}
	m, err := messageFromProps(op, props)
	if err != nil {
		return nil, err
	}
	if host := req.msg.headers.First("Host"); host != "" && !m.headers.Has("Host") {
		var h Headers
		h.set("Host", []string{host})
		for _, f := range m.headers.Fields() {
			h.set(f.Name, f.Values)
		}
		m.headers = h
	}
	req.msg = m
	return req, nil
}

// NodeToResponse converts an AST ObjectNode produced by ResponseToNode to
// a Response.
func NodeToResponse(node ast.SchemaNode) (*Response, error) {
	const op = "NodeToResponse"
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, convertErrorf(op, "expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	n, ok := props["statusCode"]
	if !ok {
		return nil, convertErrorf(op, "missing 'statusCode' property")
	}
	code, err := nodeToInt(op, "statusCode", n)
	if err != nil {
		return nil, err
	}
	resp, err := NewResponse(code)
	if err != nil {
		return nil, err
	}
	if _, ok := props["reason"]; ok {
		reason, err := stringProp(op, props, "reason")
		if err != nil {
			return nil, err
		}
		if resp.status, err = resp.status.WithReason(reason); err != nil {
			return nil, err
		}
	}
	if resp.msg, err = messageFromProps(op, props); err != nil {
		return nil, err
	}
	return resp, nil
}

// NodeToInterface converts an AST node to native Go types.
func NodeToInterface(node ast.SchemaNode) interface{} {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return n.Value()
	case *ast.ArrayDataNode:
		elements := n.Elements()
		arr := make([]interface{}, len(elements))
		for i, elem := range elements {
			arr[i] = NodeToInterface(elem)
		}
		return arr
	case *ast.ObjectNode:
		props := n.Properties()
		m := make(map[string]interface{}, len(props))
		for k, v := range props {
			m[k] = NodeToInterface(v)
		}
		return m
	default:
		return nil
	}
}

// messageFromProps builds a message core from the "version", "headers"
// and "body" properties.
func messageFromProps(op string, props map[string]ast.SchemaNode) (message, error) {
	m := newMessage()
	if _, ok := props["version"]; ok {
		v, err := stringProp(op, props, "version")
		if err != nil {
			return message{}, err
		}
		if v != "" {
			if m, err = m.withProtocolVersion(v); err != nil {
				return message{}, err
			}
		}
	}
	if n, ok := props["headers"]; ok {
		h, err := nodeToHeaders(op, n)
		if err != nil {
			return message{}, err
		}
		m.headers = h
	}
	body, err := stringProp(op, props, "body")
	if err != nil {
		return message{}, err
	}
	if body != "" {
		m.body = stream.NewString(body)
	}
	return m, nil
}

func headersToNode(h Headers) ast.SchemaNode {
	fields := h.Fields()
	elements := make([]ast.SchemaNode, len(fields))
	for i, f := range fields {
		var value ast.SchemaNode
		if len(f.Values) == 1 {
			value = ast.NewLiteralNode(f.Values[0], zeroPos)
		} else {
			vals := make([]ast.SchemaNode, len(f.Values))
			for j, v := range f.Values {
				vals[j] = ast.NewLiteralNode(v, zeroPos)
			}
			value = ast.NewArrayDataNode(vals, zeroPos)
		}
		elements[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"name":  ast.NewLiteralNode(f.Name, zeroPos),
			"value": value,
		}, zeroPos)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

// nodeToHeaders converts a headers array. Each value must be a string or
// a list of strings.
func nodeToHeaders(op string, node ast.SchemaNode) (Headers, error) {
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return Headers{}, convertErrorf(op, "expected ArrayDataNode for headers, got %T", node)
	}
	var h Headers
	for i, elem := range arr.Elements() {
		obj, ok := elem.(*ast.ObjectNode)
		if !ok {
			return Headers{}, convertErrorf(op, "header %d: expected ObjectNode, got %T", i, elem)
		}
		props := obj.Properties()
		name, err := stringProp(op, props, "name")
		if err != nil {
			return Headers{}, err
		}
		v, ok := props["value"]
		if !ok {
			return Headers{}, convertErrorf(op, "header %q: missing value", name)
		}
		values, err := HeaderValues(NodeToInterface(v))
		if err != nil {
			return Headers{}, fmt.Errorf("header %q: %w", name, err)
		}
		if err := h.Add(name, values...); err != nil {
			return Headers{}, err
		}
	}
	return h, nil
}

// stringProp returns the string literal stored under key, or "" when the
// key is absent.
func stringProp(op string, props map[string]ast.SchemaNode, key string) (string, error) {
	n, ok := props[key]
	if !ok {
		return "", nil
	}
	lit, ok := n.(*ast.LiteralNode)
	if !ok {
		return "", convertErrorf(op, "'%s' is not a literal", key)
	}
	s, ok := lit.Value().(string)
	if !ok {
		return "", convertErrorf(op, "'%s' is %T, want string", key, lit.Value())
	}
	return s, nil
}

func nodeToInt(op, key string, node ast.SchemaNode) (int, error) {
	lit, ok := node.(*ast.LiteralNode)
	if !ok {
		return 0, convertErrorf(op, "'%s' is not a literal", key)
	}
	switch v := lit.Value().(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	case float64:
		if v != float64(int(v)) {
			return 0, convertErrorf(op, "'%s' is not an integer: %v", key, v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, convertErrorf(op, "'%s' is not an integer: %q", key, v)
		}
		return n, nil
	}
	return 0, convertErrorf(op, "'%s' is %T, want integer", key, lit.Value())
}

func bodyString(body stream.Stream) string {
	if body == nil {
		return ""
	}
	return body.String()
}
