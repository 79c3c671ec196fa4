package pipeline

// Outcome reports what a transition did. Mutations never fail loudly on
// stale references; they say so here instead.
type Outcome int

const (
	// Applied means the board changed
	Applied Outcome = iota
	// Unchanged means the request was valid but a no-op
	Unchanged
	// NotFound means a referenced pipeline, stage, or deal does not exist
	NotFound
	// Stale means the deal is not at the position the caller saw it at
	Stale
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Unchanged:
		return "unchanged"
	case NotFound:
		return "not found"
	case Stale:
		return "stale"
	}
	return "unknown"
}

// Changed reports whether the board was mutated
func (o Outcome) Changed() bool {
	return o == Applied
}
