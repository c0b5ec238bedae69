package scope

import (
	"sort"
	"strings"
)

// Tier is the sensitivity level of a scope.
type Tier int

const (
	// General scopes can be granted to any registered app.
	General Tier = iota
	// Privileged scopes need explicit approval for the app.
	Privileged
)

func (t Tier) String() string {
	if t == Privileged {
		return "PRIVILEGED"
	}
	return "GENERAL"
}

// Scope is a permission an app may request from a rider.
type Scope string

const (
	History        Scope = "HISTORY"
	HistoryLite    Scope = "HISTORY_LITE"
	PaymentMethods Scope = "PAYMENT_METHODS"
	Places         Scope = "PLACES"
	Profile        Scope = "PROFILE"
	RideWidgets    Scope = "RIDE_WIDGETS"
	Request        Scope = "REQUEST"
	RequestReceipt Scope = "REQUEST_RECEIPT"
	AllTrips       Scope = "ALL_TRIPS"
)

type entry struct {
	tier Tier
	bit  int
}

// catalog order defines the bit values.
var catalog = map[Scope]entry{
	History:        {General, 1 << 0},
	HistoryLite:    {General, 1 << 1},
	PaymentMethods: {General, 1 << 2},
	Places:         {General, 1 << 3},
	Profile:        {General, 1 << 4},
	RideWidgets:    {General, 1 << 5},
	Request:        {Privileged, 1 << 6},
	RequestReceipt: {Privileged, 1 << 7},
	AllTrips:       {Privileged, 1 << 8},
}

// All returns every known scope ordered by bit value.
func All() []Scope {
	all := make([]Scope, 0, len(catalog))
	for s := range catalog {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		return catalog[all[i]].bit < catalog[all[j]].bit
	})
	return all
}

// Lookup finds a scope by name, ignoring case.
func Lookup(name string) (Scope, bool) {
	s := Scope(strings.ToUpper(strings.TrimSpace(name)))
	_, ok := catalog[s]
	return s, ok
}

// Known reports whether s is part of the catalog.
func (s Scope) Known() bool {
	_, ok := catalog[s]
	return ok
}

// Tier returns the scope's tier. Unknown scopes report General.
func (s Scope) Tier() Tier {
	return catalog[s].tier
}

// BitValue returns the scope's bit in a scope bitmask, or 0 when unknown.
func (s Scope) BitValue() int {
	return catalog[s].bit
}

// Wire returns the lower-case name used on the wire.
func (s Scope) Wire() string {
	return strings.ToLower(string(s))
}

func (s Scope) String() string {
	return string(s)
}
