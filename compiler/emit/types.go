package emit

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/facet/compiler/types"
)

// Type returns the Go type of d.
//
//	Set<out string>   → facet.Seq[string]
//	List<in Point>    → facet.Sink[PointView]
//	Bag<int>          → *facet.Bag[int]
//	PointData         → *PointData
//	PointView         → PointView
func Type(d types.Descriptor) *jen.Statement {
	switch d := d.(type) {
	case *types.Basic:
		return jen.Id(d.Name)
	case *types.Named:
		s := qual(d.Pkg, d.Name)
		if len(d.Args) > 0 {
			s = s.Types(typeList(d.Args)...)
		}
		return s
	case *types.Pointer:
		return jen.Op("*").Add(Type(d.Elem))
	case *types.Slice:
		return jen.Index().Add(Type(d.Elem))
	case *types.Map:
		return jen.Map(Type(d.Key)).Add(Type(d.Elem))
	case *types.Container:
		switch d.Variance {
		case types.Out:
			return jen.Qual(types.RuntimePackage, "Seq").Types(Type(d.Elem))
		case types.In:
			return jen.Qual(types.RuntimePackage, "Sink").Types(Type(d.Elem))
		default:
			return jen.Op("*").Qual(types.RuntimePackage, d.Multiplicity.Container()).Types(Type(d.Elem))
		}
	case *types.Artifact:
		s := qual(d.Ref.Path(), d.Ref.Name())
		if d.Ref.IsStruct() {
			return jen.Op("*").Add(s)
		}
		return s
	default:
		return jen.Id(d.String())
	}
}

func typeList(ds []types.Descriptor) []jen.Code {
	out := make([]jen.Code, len(ds))
	for i, d := range ds {
		out[i] = Type(d)
	}
	return out
}

func qual(pkg, name string) *jen.Statement {
	if pkg == "" {
		return jen.Id(name)
	}
	return jen.Qual(pkg, name)
}
