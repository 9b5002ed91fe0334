package models

// Filter selects entries by namespace set and minimum level. An empty
// namespace set matches every namespace; a nil MinLevel matches every level.
type Filter struct {
	Namespaces []string
	MinLevel   *Level
}

// Page is an offset cursor over the filtered result list.
//
// Prev counts matches already returned, not a sequence number. Any add, clear
// or capacity change between two pages can shift the filtered list, so a
// pagination session is only consistent while the store is not mutated.
// Callers that need a stable walk must restart from Prev=0 after a mutation.
type Page struct {
	Prev int
	// Take caps the page size; nil returns every remaining match.
	Take *int
}

// Matcher compiles the filter into a predicate. The namespace set is hashed
// once so matching is O(1) per entry.
func (f Filter) Matcher() func(*Entry) bool {
	var namespaces map[string]struct{}
	if len(f.Namespaces) > 0 {
		namespaces = make(map[string]struct{}, len(f.Namespaces))
		for _, ns := range f.Namespaces {
			namespaces[ns] = struct{}{}
		}
	}
	minLevel := f.MinLevel

	return func(e *Entry) bool {
		if namespaces != nil {
			if _, ok := namespaces[e.Namespace]; !ok {
				return false
			}
		}
		if minLevel != nil && !e.Level.AtLeast(*minLevel) {
			return false
		}
		return true
	}
}

// LevelPtr is a convenience for building filters inline.
func LevelPtr(l Level) *Level {
	return &l
}

// IntPtr is a convenience for building pages inline.
func IntPtr(n int) *int {
	return &n
}
