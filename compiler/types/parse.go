package types

import (
	"fmt"
	"go/ast"
	"go/parser"
)

// Parse parses a Go type expression. Package qualifiers are resolved
// through imports (alias → import path); unknown qualifiers are taken as
// import paths themselves, which covers standard packages such as time.
//
//	Parse("map[string][]Point", nil)
//	Parse("geo.Pair[int, Point]", map[string]string{"geo": "example.com/geo"})
func Parse(expr string, imports map[string]string) (Descriptor, error) {
	x, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", expr, err)
	}
	d, err := convert(x, imports)
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", expr, err)
	}
	return d, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string, imports map[string]string) Descriptor {
	d, err := Parse(expr, imports)
	if err != nil {
		panic(err)
	}
	return d
}

func convert(x ast.Expr, imports map[string]string) (Descriptor, error) {
	switch x := x.(type) {
	case *ast.ParenExpr:
		return convert(x.X, imports)
	case *ast.Ident:
		if IsPredeclared(x.Name) {
			return &Basic{Name: x.Name}, nil
		}
		return &Named{Name: x.Name}, nil
	case *ast.SelectorExpr:
		pkg, ok := x.X.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("unsupported qualifier %T", x.X)
		}
		p, ok := imports[pkg.Name]
		if !ok {
			p = pkg.Name
		}
		return &Named{Pkg: p, Name: x.Sel.Name}, nil
	case *ast.StarExpr:
		elem, err := convert(x.X, imports)
		if err != nil {
			return nil, err
		}
		return &Pointer{Elem: elem}, nil
	case *ast.ArrayType:
		if x.Len != nil {
			return nil, fmt.Errorf("array types are not supported")
		}
		elem, err := convert(x.Elt, imports)
		if err != nil {
			return nil, err
		}
		return &Slice{Elem: elem}, nil
	case *ast.MapType:
		key, err := convert(x.Key, imports)
		if err != nil {
			return nil, err
		}
		elem, err := convert(x.Value, imports)
		if err != nil {
			return nil, err
		}
		return &Map{Key: key, Elem: elem}, nil
	case *ast.InterfaceType:
		if x.Methods != nil && len(x.Methods.List) > 0 {
			return nil, fmt.Errorf("interface literals are not supported")
		}
		return Any, nil
	case *ast.IndexExpr:
		return generic(x.X, []ast.Expr{x.Index}, imports)
	case *ast.IndexListExpr:
		return generic(x.X, x.Indices, imports)
	default:
		return nil, fmt.Errorf("unsupported expression %T", x)
	}
}

func generic(base ast.Expr, indices []ast.Expr, imports map[string]string) (Descriptor, error) {
	d, err := convert(base, imports)
	if err != nil {
		return nil, err
	}
	named, ok := d.(*Named)
	if !ok {
		return nil, fmt.Errorf("%s cannot be instantiated", d)
	}
	args := make([]Descriptor, len(indices))
	for i, idx := range indices {
		if args[i], err = convert(idx, imports); err != nil {
			return nil, err
		}
	}
	return &Named{Pkg: named.Pkg, Name: named.Name, Args: args}, nil
}
