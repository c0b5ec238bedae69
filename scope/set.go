package scope

import (
	"fmt"
	"sort"
	"strings"
)

// Set is an unordered collection of unique scopes.
type Set map[Scope]struct{}

// NewSet builds a set from the given scopes, collapsing duplicates.
func NewSet(scopes ...Scope) Set {
	s := make(Set, len(scopes))
	for _, sc := range scopes {
		s[sc] = struct{}{}
	}
	return s
}

// Parse turns a space-delimited scope string into a set. Names are matched
// case-insensitively and any unknown name fails the whole parse.
func Parse(scopes string) (Set, error) {
	set := Set{}
	for _, name := range strings.Fields(scopes) {
		sc, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScope, name)
		}
		set[sc] = struct{}{}
	}
	return set, nil
}

// ParseNames is Parse for an already split list of names.
func ParseNames(names []string) (Set, error) {
	return Parse(strings.Join(names, " "))
}

// ParseBits converts a bitmask into a set. Zero and negative masks are empty.
func ParseBits(bits int) Set {
	set := Set{}
	if bits <= 0 {
		return set
	}
	for sc, e := range catalog {
		if bits&e.bit == e.bit {
			set[sc] = struct{}{}
		}
	}
	return set
}

// Has reports whether sc is in the set.
func (s Set) Has(sc Scope) bool {
	_, ok := s[sc]
	return ok
}

// Add inserts scopes into the set.
func (s Set) Add(scopes ...Scope) {
	for _, sc := range scopes {
		s[sc] = struct{}{}
	}
}

// Slice returns the scopes sorted by name.
func (s Set) Slice() []Scope {
	out := make([]Scope, 0, len(s))
	for sc := range s {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Names returns the upper-case scope names sorted.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for _, sc := range s.Slice() {
		names = append(names, string(sc))
	}
	return names
}

// Encode joins the lower-case scope names with a single space.
func (s Set) Encode() string {
	wire := make([]string, 0, len(s))
	for _, sc := range s.Slice() {
		wire = append(wire, sc.Wire())
	}
	return strings.Join(wire, " ")
}

// Equal reports whether both sets hold the same scopes.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for sc := range s {
		if !other.Has(sc) {
			return false
		}
	}
	return true
}

// RequiresPrivilege reports whether any scope in the set is privileged.
func (s Set) RequiresPrivilege() bool {
	for sc := range s {
		if sc.Tier() == Privileged {
			return true
		}
	}
	return false
}

// Merge combines known scopes with free-form custom scope names into the
// single space-delimited value sent to the authorization endpoint.
func Merge(s Set, custom []string) string {
	parts := []string{}
	if encoded := s.Encode(); encoded != "" {
		parts = append(parts, encoded)
	}
	seen := map[string]bool{}
	for _, c := range custom {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		if sc, ok := Lookup(c); ok && s.Has(sc) {
			continue
		}
		seen[c] = true
		parts = append(parts, c)
	}
	return strings.Join(parts, " ")
}
