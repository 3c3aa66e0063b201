package model

// Role is the closed set of privilege tiers an account can hold.
// Users always sit at the lowest tier; only admins can be promoted.
type Role string

const (
	RoleRegularMember Role = "Regular Member"
	RoleEditor        Role = "Editor"
	RoleGod           Role = "God"
)

var roleRank = map[Role]int{
	RoleRegularMember: 0,
	RoleEditor:        1,
	RoleGod:           2,
}

// Valid reports whether r is one of the known tiers.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r sits at or above other in the hierarchy.
// Unknown roles rank below everything.
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other]
}

// Elevated reports whether r grants any privilege beyond a regular member's.
func (r Role) Elevated() bool {
	return roleRank[r] > roleRank[RoleRegularMember]
}
