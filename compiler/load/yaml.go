package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/syssam/facet/schema"
)

type yamlFile struct {
	Declarations []*schema.Declaration `yaml:"declarations"`
}

// decodeYAML decodes src strictly, then walks the node tree again to
// attach line numbers.
func decodeYAML(name string, src []byte) ([]*schema.Declaration, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	var file yamlFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &Error{Pos: name, Err: err}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(src, &root); err != nil {
		return nil, &Error{Pos: name, Err: err}
	}
	lines := declarationLines(&root)
	for i, d := range file.Declarations {
		if d == nil {
			return nil, &Error{Pos: name, Err: fmt.Errorf("declaration %d is empty", i)}
		}
		d.Pos = name
		if i < len(lines) {
			d.Pos = fmt.Sprintf("%s:%d", name, lines[i])
		}
		for j, a := range d.Accessors {
			if a == nil {
				return nil, &Error{Pos: d.Pos, Err: fmt.Errorf("accessor %d is empty", j)}
			}
		}
	}
	return file.Declarations, nil
}

// declarationLines returns the line of every item of the top-level
// "declarations" sequence.
func declarationLines(root *yaml.Node) []int {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != "declarations" {
			continue
		}
		var lines []int
		for _, item := range m.Content[i+1].Content {
			lines = append(lines, item.Line)
		}
		return lines
	}
	return nil
}
