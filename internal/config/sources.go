package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/bigmatches/internal/feed"
)

// ErrSourcesMissing is returned when the sources file does not exist.
var ErrSourcesMissing = errors.New("sources file not found")

// Source is one label from the sources file with its feed URLs.
type Source struct {
	Label string
	URLs  []string
}

// LoadSources reads the sources file at path.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourcesMissing, path)
		}
		return nil, fmt.Errorf("reading sources: %w", err)
	}
	return ParseSources(data)
}

// ParseSources decodes a YAML mapping of label to URL list, keeping the
// mapping order. A label may also carry a single URL or nothing at all.
// webcal:// URLs are rewritten to https://.
//
//	Premier League:
//	  - webcal://example.com/pl.ics
//	La Liga:
//	  - https://example.com/laliga.ics
func ParseSources(data []byte) ([]Source, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing sources: %w", err)
	}

	// Empty document
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing sources: line %d: expected a mapping of competition to feed URLs", root.Line)
	}

	sources := make([]Source, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		urls, err := decodeURLs(value)
		if err != nil {
			return nil, fmt.Errorf("parsing sources: %q: %w", key.Value, err)
		}

		sources = append(sources, Source{Label: key.Value, URLs: urls})
	}

	return sources, nil
}

func decodeURLs(node *yaml.Node) ([]string, error) {
	var raw []string

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		raw = []string{node.Value}
	case yaml.SequenceNode:
		if err := node.Decode(&raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("line %d: expected a list of URLs", node.Line)
	}

	urls := make([]string, 0, len(raw))
	for _, u := range raw {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		urls = append(urls, feed.NormalizeURL(u))
	}
	return urls, nil
}
