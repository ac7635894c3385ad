package load

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/syssam/facet/schema"
)

// hclFile is the top-level structure of an HCL declaration file.
type hclFile struct {
	Declarations []*hclDeclaration `hcl:"declaration,block"`
}

type hclDeclaration struct {
	Name      string            `hcl:"name,label"`
	Namespace string            `hcl:"namespace,optional"`
	Extends   []string          `hcl:"extends,optional"`
	Imports   map[string]string `hcl:"imports,optional"`
	Comment   string            `hcl:"comment,optional"`
	Accessors []*hclAccessor    `hcl:"accessor,block"`
}

type hclAccessor struct {
	Name       string   `hcl:"name,label"`
	Result     string   `hcl:"result,optional"`
	Params     []string `hcl:"params,optional"`
	Collection string   `hcl:"collection,optional"`
	Optional   bool     `hcl:"optional,optional"`
	Reference  bool     `hcl:"reference,optional"`
	Skip       bool     `hcl:"skip,optional"`
	Comment    string   `hcl:"comment,optional"`
}

func decodeHCL(name string, src []byte) ([]*schema.Declaration, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", name, diags)
	}
	var parsed hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", name, diags)
	}
	ranges := declarationRanges(f.Body)
	decls := make([]*schema.Declaration, len(parsed.Declarations))
	for i, d := range parsed.Declarations {
		decl := &schema.Declaration{
			Name:       d.Name,
			Namespace:  d.Namespace,
			Supertypes: d.Extends,
			Imports:    d.Imports,
			Comment:    d.Comment,
			Pos:        name,
		}
		if i < len(ranges) {
			decl.Pos = fmt.Sprintf("%s:%d", name, ranges[i].Start.Line)
		}
		for _, a := range d.Accessors {
			decl.Accessors = append(decl.Accessors, &schema.Accessor{
				Name:       a.Name,
				Params:     a.Params,
				Result:     a.Result,
				Collection: a.Collection,
				Optional:   a.Optional,
				Reference:  a.Reference,
				Skip:       a.Skip,
				Comment:    a.Comment,
			})
		}
		decls[i] = decl
	}
	return decls, nil
}

// declarationRanges returns the definition range of every declaration
// block, in order.
func declarationRanges(body hcl.Body) []hcl.Range {
	b, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil
	}
	var rs []hcl.Range
	for _, block := range b.Blocks {
		if block.Type == "declaration" {
			rs = append(rs, block.DefRange())
		}
	}
	return rs
}
