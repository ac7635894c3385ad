// Package schema defines the declarations consumed by the facet compiler.
//
// A Declaration is a class-like definition: a name, a namespace, direct
// supertypes and a list of accessors. Declarations can be written in Go
// with the builder functions of this package, or loaded from YAML and HCL
// files with the compiler/load package.
//
// # Quick Start
//
//	decls := schema.Declarations(
//		schema.Declare("Shape").Accessors(
//			schema.Get("Label", "string").Optional(),
//		),
//		schema.Declare("Point").Accessors(
//			schema.Get("X", "int"),
//			schema.Get("Y", "int"),
//		),
//		schema.Declare("Polygon").Extends("Shape").Accessors(
//			schema.Get("Points", "Point").List(),
//			schema.Get("Origin", "Point").Reference().Optional(),
//			schema.Is("Closed"),
//		),
//	)
//
// # Accessors
//
// Accessors become relations when they take no parameters, return a
// value and have a getter-shaped name:
//
//	schema.Get("Name", "string")     // GetName → name
//	schema.Is("Closed")              // IsClosed → closed (bool)
//	schema.Has("Holes")              // HasHoles → holes (bool)
//	schema.Method("Area", "float64") // dropped: no recognized prefix
//
// # Markers
//
//	.Optional()   // ZERO_OR_ONE instead of ONE
//	.List()       // LIST
//	.Set()        // SET
//	.Collection() // COLLECTION
//	.Reference()  // entity reference rather than owned value
//	.Skip()       // excluded, together with every override
package schema
