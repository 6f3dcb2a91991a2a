package filesystem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"sort"

	"go.yaml.in/yaml/v3"
)

// keyOrder is the key layout of an existing document. Rewriting a document
// emits known keys in their original order and appends new keys sorted.
type keyOrder struct {
	keys     []string
	children map[string]*keyOrder
	items    []*keyOrder
}

func (o *keyOrder) child(key string) *keyOrder {
	if o == nil {
		return nil
	}
	return o.children[key]
}

func (o *keyOrder) item(i int) *keyOrder {
	if o == nil || i >= len(o.items) {
		return nil
	}
	return o.items[i]
}

// sortKeys orders keys by their position in o, unknown keys last.
func (o *keyOrder) sortKeys(keys []string) []string {
	var known []string
	if o != nil {
		for _, k := range o.keys {
			if slices.Contains(keys, k) {
				known = append(known, k)
			}
		}
	}
	var added []string
	for _, k := range keys {
		if !slices.Contains(known, k) {
			added = append(added, k)
		}
	}
	sort.Strings(added)
	return append(known, added...)
}

// jsonOrder records the key layout of JSON data. Invalid data yields nil.
func jsonOrder(data []byte) *keyOrder {
	dec := json.NewDecoder(bytes.NewReader(data))
	o, err := readJSONOrder(dec)
	if err != nil {
		return nil
	}
	return o
}

func readJSONOrder(dec *json.Decoder) (*keyOrder, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, nil
	}

	o := &keyOrder{}
	switch delim {
	case '{':
		o.children = make(map[string]*keyOrder)
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := tok.(string)
			child, err := readJSONOrder(dec)
			if err != nil {
				return nil, err
			}
			if _, seen := o.children[key]; !seen {
				o.keys = append(o.keys, key)
				o.children[key] = child
			}
		}
	case '[':
		for dec.More() {
			child, err := readJSONOrder(dec)
			if err != nil {
				return nil, err
			}
			o.items = append(o.items, child)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return o, nil
}

// yamlOrder records the key layout of a parsed YAML node.
func yamlOrder(n *yaml.Node) *keyOrder {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) > 0 {
			return yamlOrder(n.Content[0])
		}
	case yaml.AliasNode:
		return yamlOrder(n.Alias)
	case yaml.MappingNode:
		o := &keyOrder{children: make(map[string]*keyOrder)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if _, seen := o.children[key]; !seen {
				o.keys = append(o.keys, key)
				o.children[key] = yamlOrder(n.Content[i+1])
			}
		}
		return o
	case yaml.SequenceNode:
		o := &keyOrder{}
		for _, c := range n.Content {
			o.items = append(o.items, yamlOrder(c))
		}
		return o
	}
	return nil
}

// encodeJSON writes v as compact JSON with object keys laid out by o.
func encodeJSON(buf *bytes.Buffer, v any, o *keyOrder) error {
	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		if rv.IsNil() {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, key := range o.sortKeys(mapKeys(rv)) {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeLeaf(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeJSON(buf, rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())).Interface(), o.child(key)); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8:
		if rv.IsNil() {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('[')
		for i, size := 0, rv.Len(); i < size; i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSON(buf, rv.Index(i).Interface(), o.item(i)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}
	return encodeLeaf(buf, v)
}

func encodeLeaf(buf *bytes.Buffer, v any) error {
	var leaf bytes.Buffer
	enc := json.NewEncoder(&leaf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(leaf.Bytes(), "\n"))
	return nil
}

// yamlNode converts v into a node with mapping keys laid out by o.
func yamlNode(v any, o *keyOrder) (*yaml.Node, error) {
	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String && !rv.IsNil():
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range o.sortKeys(mapKeys(rv)) {
			value, err := yamlNode(rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())).Interface(), o.child(key))
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
		}
		return n, nil

	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 && !rv.IsNil():
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, size := 0, rv.Len(); i < size; i++ {
			item, err := yamlNode(rv.Index(i).Interface(), o.item(i))
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, item)
		}
		return n, nil
	}

	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding %v: %w", v, err)
	}
	return n, nil
}

func mapKeys(rv reflect.Value) []string {
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	return keys
}
