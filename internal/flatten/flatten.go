// Package flatten turns nested JSON documents into an ordered key/value table
// of strings. Object fields keep their document order and array elements are
// visited by index, so the same input always produces the same table.
package flatten

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Separator joins path segments from the document root to a leaf.
const Separator = " → "

// Kind identifies the JSON type of a Node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

// Field is a single object member. Fields preserve document order.
type Field struct {
	Name  string
	Value *Node
}

// Node is an order-preserving JSON value.
type Node struct {
	Kind   Kind
	Scalar string // raw string content, number literal, true/false or null
	Fields []Field
	Items  []*Node
}

// Parse decodes a single JSON document. Trailing data after the first value
// is rejected.
func Parse(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
		}
		return nil, err
	}
	return n, nil
}

func parseValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q at offset %d", v, dec.InputOffset())
		}
	case string:
		return &Node{Kind: KindString, Scalar: v}, nil
	case json.Number:
		return &Node{Kind: KindNumber, Scalar: v.String()}, nil
	case bool:
		return &Node{Kind: KindBool, Scalar: strconv.FormatBool(v)}, nil
	case nil:
		return &Node{Kind: KindNull, Scalar: "null"}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func parseObject(dec *json.Decoder) (*Node, error) {
	n := &Node{Kind: KindObject}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		n.Fields = append(n.Fields, Field{Name: name, Value: val})
	}
	// consume '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}

func parseArray(dec *json.Decoder) (*Node, error) {
	n := &Node{Kind: KindArray}
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		n.Items = append(n.Items, val)
	}
	// consume ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}

// Flatten walks n depth-first and records one table entry per scalar leaf.
// Containers never appear as values; an empty container contributes nothing.
// A bare scalar document yields a single entry under the empty key.
func Flatten(n *Node) *Table {
	t := NewTable()
	if n == nil {
		return t
	}
	flattenInto(t, n, nil)
	return t
}

func flattenInto(t *Table, n *Node, path []string) {
	switch n.Kind {
	case KindObject:
		for _, f := range n.Fields {
			flattenInto(t, f.Value, append(path, f.Name))
		}
	case KindArray:
		for i, item := range n.Items {
			flattenInto(t, item, append(path, strconv.Itoa(i)))
		}
	default:
		t.Set(strings.Join(path, Separator), n.Scalar)
	}
}

// FlattenJSON parses data and flattens the result.
func FlattenJSON(data []byte) (*Table, error) {
	n, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Flatten(n), nil
}
