package query

// Family names a collection of related cache entries.
type Family string

const (
	Goals         Family = "goals"
	Checkpoints   Family = "checkpoints"
	BuddyRequests Family = "buddy-requests"
)

// Key identifies one cache entry. Scope narrows a family, for example to a
// user id, and may be empty.
type Key struct {
	Family Family
	Scope  string
}

func (k Key) String() string {
	if k.Scope == "" {
		return string(k.Family)
	}
	return string(k.Family) + "/" + k.Scope
}

// Pattern selects entries for invalidation.
type Pattern interface {
	Matches(key Key) bool
}

// Matches reports whether key belongs to the family. A Family is itself a
// pattern covering every scope.
func (f Family) Matches(key Key) bool {
	return key.Family == f
}

type exact Key

func (e exact) Matches(key Key) bool {
	return Key(e) == key
}

// Exact matches a single key.
func Exact(key Key) Pattern {
	return exact(key)
}
