package facet

// BuilderPhase is the phase of a record builder.
type BuilderPhase int

// Builder phases. Unopened → Opened → Closed; Closed is terminal.
const (
	Unopened BuilderPhase = iota
	Opened
	Closed
)

// String returns the phase name.
func (p BuilderPhase) String() string {
	switch p {
	case Unopened:
		return "unopened"
	case Opened:
		return "open"
	case Closed:
		return "closed"
	default:
		return "invalid"
	}
}

// BuilderState enforces the open/close protocol of generated record
// builders. Every violation panics with a *BuilderStateError.
type BuilderState struct {
	builder string
	phase   BuilderPhase
}

// NewBuilderState returns the state of an unopened builder.
func NewBuilderState(builder string) *BuilderState {
	return &BuilderState{builder: builder}
}

// Open moves the builder from Unopened to Opened.
func (s *BuilderState) Open() {
	if s.phase != Unopened {
		s.fail("Open")
	}
	s.phase = Opened
}

// Check requires the builder to be open before a per-relation call.
func (s *BuilderState) Check(op string) {
	if s.phase != Opened {
		s.fail(op)
	}
}

// Close moves the builder from Opened to Closed.
func (s *BuilderState) Close() {
	if s.phase != Opened {
		s.fail("Close")
	}
	s.phase = Closed
}

// Phase returns the current phase.
func (s *BuilderState) Phase() BuilderPhase {
	return s.phase
}

func (s *BuilderState) fail(op string) {
	panic(&BuilderStateError{Builder: s.builder, Op: op, Phase: s.phase})
}
