package bot

import (
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
	"github.com/msto63/chatbot/foundation/utils/stringx"
)

// ParseSyntax parses text as a single YAML value. Blank text, or a document
// without content, yields an empty mapping.
func ParseSyntax(text string) (*yaml.Node, error) {
	if stringx.IsBlank(text) {
		return emptyMapping(), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, mdwerror.Wrap(err, "invalid YAML").
			WithCode(mdwerror.CodeInvalidSyntax).
			WithDetail("syntax", text)
	}

	switch {
	case doc.Kind == yaml.DocumentNode && len(doc.Content) > 0:
		return doc.Content[0], nil
	case doc.Kind == yaml.DocumentNode, doc.Kind == 0:
		return emptyMapping(), nil
	default:
		return &doc, nil
	}
}

func emptyMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// IsEmptyMapping reports whether node is a mapping without entries.
func IsEmptyMapping(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.MappingNode && len(node.Content) == 0
}

// MappingValue returns the value stored under the first of keys present in
// the mapping node. Keys are aliases of each other, e.g. "regex" and "r".
func MappingValue(node *yaml.Node, keys ...string) (*yaml.Node, bool) {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, false
	}
	for _, key := range keys {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				return node.Content[i+1], true
			}
		}
	}
	return nil, false
}

// ScalarList interprets node as a scalar or a sequence of scalars.
func ScalarList(node *yaml.Node) ([]string, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		values := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, mdwerror.Newf("line %d: expected a scalar, got %s", item.Line, nodeKindName(item.Kind)).
					WithCode(mdwerror.CodeInvalidSyntax)
			}
			values = append(values, item.Value)
		}
		return values, nil
	default:
		return nil, mdwerror.Newf("line %d: expected a scalar or a sequence of scalars, got %s", node.Line, nodeKindName(node.Kind)).
			WithCode(mdwerror.CodeInvalidSyntax)
	}
}

// ScalarValue returns the value of a scalar node.
func ScalarValue(node *yaml.Node) (string, error) {
	if node == nil || node.Kind != yaml.ScalarNode {
		kind := yaml.Kind(0)
		if node != nil {
			kind = node.Kind
		}
		return "", mdwerror.Newf("expected a scalar, got %s", nodeKindName(kind)).
			WithCode(mdwerror.CodeInvalidSyntax)
	}
	return node.Value, nil
}

func nodeKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "nothing"
	}
}
