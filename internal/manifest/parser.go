package manifest

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

var markdown = goldmark.New(goldmark.WithExtensions(meta.Meta))

// Frontmatter extracts the YAML frontmatter of a markdown document. A
// document without frontmatter yields an empty, non-nil map.
func Frontmatter(content []byte) (map[string]interface{}, error) {
	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := markdown.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, fmt.Errorf("parsing markdown: %w", err)
	}

	data, err := meta.TryGet(pctx)
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	return data, nil
}

// Parse extracts the frontmatter of content into a Document.
// It does not validate; see Validate.
func Parse(content []byte) (*Document, error) {
	data, err := Frontmatter(content)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	doc.Name, _ = data["name"].(string)
	doc.Description, _ = data["description"].(string)
	doc.Version, _ = data["version"].(string)
	if tags, ok := data["tags"].([]interface{}); ok {
		for _, t := range tags {
			if s, ok := t.(string); ok {
				doc.Tags = append(doc.Tags, s)
			}
		}
	}
	return doc, nil
}

// ParseFS reads and parses the entry document at path inside fsys.
func ParseFS(fsys fs.FS, path string) (*Document, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	doc, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
