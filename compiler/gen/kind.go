package gen

import (
	"fmt"
	"slices"
)

// Kind is a kind of generated artifact.
type Kind int

// Artifact kinds. Per-entity kinds come first, in generation order.
const (
	KindView Kind = iota
	KindRecord
	KindData
	KindBuilder
	KindBuilderBase
	KindRecordBuilder
	KindRef
	KindLiteralRef
	KindProxyRef
	// KindProcessor marks graph-processor artifacts. They are generated
	// once per strategy, not per entity.
	KindProcessor
)

var kindNames = [...]string{
	KindView:          "view",
	KindRecord:        "record",
	KindData:          "data",
	KindBuilder:       "builder",
	KindBuilderBase:   "builder-base",
	KindRecordBuilder: "record-builder",
	KindRef:           "ref",
	KindLiteralRef:    "literal-ref",
	KindProxyRef:      "proxy-ref",
	KindProcessor:     "processor",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s && Kind(i) != KindProcessor {
			return Kind(i), nil
		}
	}
	return 0, NewConfigError("Kinds", s, "unknown artifact kind")
}

// Form returns whether artifacts of kind k are interfaces or structs.
func (k Kind) Form() Form {
	switch k {
	case KindData, KindBuilderBase, KindRecordBuilder, KindLiteralRef, KindProxyRef, KindProcessor:
		return Struct
	default:
		return Interface
	}
}

// Requires returns the kinds whose artifacts those of kind k refer to.
func (k Kind) Requires() []Kind {
	switch k {
	case KindView:
		return []Kind{KindRef}
	case KindRecord:
		return []Kind{KindView}
	case KindData:
		return []Kind{KindRecord}
	case KindBuilder:
		return []Kind{KindRef}
	case KindBuilderBase:
		return []Kind{KindBuilder}
	case KindRecordBuilder:
		return []Kind{KindBuilder, KindData}
	case KindRef:
		return []Kind{KindView}
	case KindLiteralRef, KindProxyRef:
		return []Kind{KindRef}
	default:
		return nil
	}
}

// AllKinds returns every per-entity kind.
func AllKinds() []Kind {
	return []Kind{
		KindView, KindRecord, KindData, KindBuilder, KindBuilderBase,
		KindRecordBuilder, KindRef, KindLiteralRef, KindProxyRef,
	}
}

// Closure returns kinds together with every kind they transitively
// require, sorted and without duplicates.
func Closure(kinds ...Kind) []Kind {
	seen := make(map[Kind]bool)
	var visit func(Kind)
	visit = func(k Kind) {
		if seen[k] {
			return
		}
		seen[k] = true
		for _, r := range k.Requires() {
			visit(r)
		}
	}
	for _, k := range kinds {
		visit(k)
	}
	out := make([]Kind, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
