package schema

// Builder builds a Declaration in Go code.
//
//	schema.Declare("Polygon").
//		Extends("Shape").
//		Accessors(
//			schema.Get("Points", "Point").List(),
//			schema.Get("Label", "string").Optional(),
//			schema.Is("Closed"),
//		)
type Builder struct {
	desc *Declaration
}

// Declare starts a declaration with the given name.
func Declare(name string) *Builder {
	return &Builder{desc: &Declaration{Name: name}}
}

// In sets the namespace of the declaration.
func (b *Builder) In(namespace string) *Builder {
	b.desc.Namespace = namespace
	return b
}

// Extends appends direct supertypes.
func (b *Builder) Extends(supers ...string) *Builder {
	b.desc.Supertypes = append(b.desc.Supertypes, supers...)
	return b
}

// Import registers a package alias usable in result types.
//
//	schema.Declare("Route").
//		Import("geo", "example.com/geo").
//		Accessors(schema.Get("Start", "geo.Coord"))
func (b *Builder) Import(alias, path string) *Builder {
	if b.desc.Imports == nil {
		b.desc.Imports = make(map[string]string)
	}
	b.desc.Imports[alias] = path
	return b
}

// Comment sets the doc comment copied onto generated artifacts.
func (b *Builder) Comment(text string) *Builder {
	b.desc.Comment = text
	return b
}

// Annotate attaches a metadata entry.
func (b *Builder) Annotate(key string, v any) *Builder {
	if b.desc.Metadata == nil {
		b.desc.Metadata = make(map[string]any)
	}
	b.desc.Metadata[key] = v
	return b
}

// Accessors appends accessors.
func (b *Builder) Accessors(as ...*AccessorBuilder) *Builder {
	for _, a := range as {
		b.desc.Accessors = append(b.desc.Accessors, a.Descriptor())
	}
	return b
}

// Declaration returns the built declaration.
func (b *Builder) Declaration() *Declaration {
	return b.desc
}

// Declarations collects the declarations of the given builders, keeping
// their order.
func Declarations(bs ...*Builder) []*Declaration {
	decls := make([]*Declaration, len(bs))
	for i, b := range bs {
		decls[i] = b.Declaration()
	}
	return decls
}

// AccessorBuilder builds an Accessor.
type AccessorBuilder struct {
	desc *Accessor
}

// Get returns a value-style accessor "Get<name>" of the given result type.
func Get(name, result string) *AccessorBuilder {
	return Method("Get"+name, result)
}

// Is returns a boolean-style accessor "Is<name>".
func Is(name string) *AccessorBuilder {
	return Method("Is"+name, "bool")
}

// Has returns a boolean-style accessor "Has<name>".
func Has(name string) *AccessorBuilder {
	return Method("Has"+name, "bool")
}

// Method returns an accessor with a raw method name. It is used for
// names that do not follow the getter conventions.
func Method(name, result string) *AccessorBuilder {
	return &AccessorBuilder{desc: &Accessor{Name: name, Result: result}}
}

// Params sets the parameter types.
func (a *AccessorBuilder) Params(types ...string) *AccessorBuilder {
	a.desc.Params = append(a.desc.Params, types...)
	return a
}

// Optional marks the result as possibly absent.
func (a *AccessorBuilder) Optional() *AccessorBuilder {
	a.desc.Optional = true
	return a
}

// Reference marks an entity-typed result as a reference rather than an
// owned value.
func (a *AccessorBuilder) Reference() *AccessorBuilder {
	a.desc.Reference = true
	return a
}

// Skip excludes the accessor, and everything that overrides it, from
// generation.
func (a *AccessorBuilder) Skip() *AccessorBuilder {
	a.desc.Skip = true
	return a
}

// List marks the result as an ordered collection.
func (a *AccessorBuilder) List() *AccessorBuilder {
	a.desc.Collection = KindList
	return a
}

// Set marks the result as a collection without duplicates.
func (a *AccessorBuilder) Set() *AccessorBuilder {
	a.desc.Collection = KindSet
	return a
}

// Collection marks the result as an unordered collection.
func (a *AccessorBuilder) Collection() *AccessorBuilder {
	a.desc.Collection = KindCollection
	return a
}

// Comment sets the doc comment of the generated accessor.
func (a *AccessorBuilder) Comment(text string) *AccessorBuilder {
	a.desc.Comment = text
	return a
}

// Annotate attaches a metadata entry.
func (a *AccessorBuilder) Annotate(key string, v any) *AccessorBuilder {
	if a.desc.Metadata == nil {
		a.desc.Metadata = make(map[string]any)
	}
	a.desc.Metadata[key] = v
	return a
}

// Descriptor returns the built accessor.
func (a *AccessorBuilder) Descriptor() *Accessor {
	return a.desc
}
