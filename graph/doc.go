// Package graph builds the entity-relation graph the facet generators
// work on.
//
// # Graph Structure
//
// Each declaration becomes an Entity. Supertypes become the entity's
// direct super-entities, forming a DAG: multiple inheritance and
// diamonds are allowed, cycles are rejected.
//
//	type Entity struct {
//	    Name      string
//	    Supers    []*Entity    // direct super-entities
//	    Own       []*Relation  // derived from own accessors
//	    Relations []*Relation  // resolved, one per distinct name
//	}
//
// # Relations
//
// Zero-argument accessors with a getter prefix become relations:
//
//	GetName  string            → name: ONE string
//	GetLabel string (optional) → label: ZERO_OR_ONE string
//	GetTags  string (set)      → tags: SET string
//	IsClosed bool              → closed: ONE bool
//
// A relation targets an entity (EntityTarget), a reference to an entity
// (ReferenceTarget) or a plain type (PlainTarget). Dispatch over targets
// with MatchTarget.
//
// # Override Resolution
//
// Relations are resolved bottom-up over the DAG, each entity once. Every
// name inherited from any super-entity yields exactly one relation whose
// Overrides hold the super-entities' relations of that name. An own
// relation with that name is kept; otherwise a synthetic relation is
// added that copies the lowest consistent inherited shape:
//
//	Shape   { label }
//	Polygon : Shape { points }
//	Square  : Polygon, Named { side }
//	// Square.Relations: label, points, name, side
//
// # Skip Markers
//
// Skipped relations are removed after resolution. A relation is skipped
// when it, or any relation it transitively overrides, is skip-marked.
//
// # Diagnostics
//
// Malformed declarations never abort a build. The offending element is
// excluded, and a Diagnostic is recorded on the graph and logged.
package graph
