package post

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the canonical date layout for front matter, matching what
// Hexo writes into freshly scaffolded posts.
const DateLayout = "2006-01-02 15:04:05"

// dateLayouts are the accepted input layouts for front matter dates, tried
// in order.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02",
}

// ParseDate parses a front matter date value against the accepted layouts.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// FrontMatter is the ordered YAML mapping between the --- fences of a post
// file. Keys the CLI does not understand pass through parsing and rendering
// untouched, so the generator always reads back what it wrote.
type FrontMatter struct {
	node *yaml.Node
}

// NewFrontMatter returns an empty front matter mapping.
func NewFrontMatter() *FrontMatter {
	return &FrontMatter{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// decodeFrontMatter parses the YAML block between the fences. An empty
// block yields an empty mapping; a block that is valid YAML but not a
// mapping is an error.
func decodeFrontMatter(data []byte) (*FrontMatter, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return NewFrontMatter(), nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("front matter is not a key/value mapping")
	}
	return &FrontMatter{node: root}, nil
}

// encode renders the mapping as YAML, two-space indented, ending with a
// newline.
func (fm *FrontMatter) encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm.node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// find returns the value node for key, or nil.
func (fm *FrontMatter) find(key string) *yaml.Node {
	for i := 0; i+1 < len(fm.node.Content); i += 2 {
		if fm.node.Content[i].Value == key {
			return fm.node.Content[i+1]
		}
	}
	return nil
}

// set replaces the value node for an existing key in place, keeping its
// position, or appends a new key at the end of the mapping.
func (fm *FrontMatter) set(key string, value *yaml.Node) {
	if existing := fm.find(key); existing != nil {
		*existing = *value
		return
	}
	fm.node.Content = append(fm.node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

// Get returns the scalar value for key. The second return is false when
// the key is absent or its value is not a scalar.
func (fm *FrontMatter) Get(key string) (string, bool) {
	v := fm.find(key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return "", false
	}
	return v.Value, true
}

// Bool returns the boolean value for key. The second return is false when
// the key is absent or its value does not read as a boolean.
func (fm *FrontMatter) Bool(key string) (bool, bool) {
	raw, ok := fm.Get(key)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// Set stores a string value for key. The encoder quotes the value as
// needed, so titles with colons or quotes stay valid YAML.
func (fm *FrontMatter) Set(key, value string) {
	fm.set(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

// SetBool stores a boolean value for key.
func (fm *FrontMatter) SetBool(key string, value bool) {
	fm.set(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(value)})
}

// SetDate stores a timestamp for key in the canonical layout. The
// timestamp tag keeps the value unquoted, the way Hexo writes its own
// date lines.
func (fm *FrontMatter) SetDate(key string, t time.Time) {
	fm.set(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: t.Format(DateLayout)})
}

// Keys returns the mapping's keys in document order.
func (fm *FrontMatter) Keys() []string {
	var keys []string
	for i := 0; i+1 < len(fm.node.Content); i += 2 {
		keys = append(keys, fm.node.Content[i].Value)
	}
	return keys
}
