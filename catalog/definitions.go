package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Block is one definition block of an engine: the URL patterns it appears
// under plus the optional extraction metadata shared by those patterns.
// Params entries are either literal query parameter names or
// slash-delimited regular expressions.
type Block struct {
	URLs     []string `yaml:"urls"`
	Params   []string `yaml:"params"`
	Backlink string   `yaml:"backlink"`
	Charsets []string `yaml:"charsets"`
}

// EngineDefinitions groups the blocks declared under one engine name.
type EngineDefinitions struct {
	Name   string
	Blocks []Block
}

// Document is a parsed definitions document in document order. Order
// matters: flattening applies last-write-wins per URL pattern, and the
// name index keeps the first pattern seen per engine.
type Document []EngineDefinitions

// ParseDocument parses a YAML definitions document. The top level must be
// a mapping from engine name to a sequence of blocks; a block without a
// urls field is a data-format error, not a silent skip.
func ParseDocument(data []byte) (Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse definitions: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return Document{}, nil
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrMalformedDocument)
	}

	doc := make(Document, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		nameNode, value := mapping.Content[i], mapping.Content[i+1]
		name := nameNode.Value

		if value.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("%w: engine %q is not a sequence of blocks", ErrMalformedDocument, name)
		}

		blocks := make([]Block, 0, len(value.Content))
		for j, item := range value.Content {
			var blk Block
			if err := item.Decode(&blk); err != nil {
				return nil, fmt.Errorf("%w: engine %q block %d: %v", ErrMalformedDocument, name, j, err)
			}
			if len(blk.URLs) == 0 {
				return nil, fmt.Errorf("engine %q block %d: %w", name, j, ErrMissingURLs)
			}
			blocks = append(blocks, blk)
		}
		doc = append(doc, EngineDefinitions{Name: name, Blocks: blocks})
	}

	return doc, nil
}
