package clap

// Group is a named set of argument ids treated as one unit for
// require/conflict/exclusive semantics. Presence of
// any member counts as presence of the group; when Multiple is false,
// members implicitly conflict with one another.
type Group struct {
	id       ID
	members  []ID
	required bool
	multiple bool

	conflicts []ID
	requires  []ID
}

// NewGroup creates a Group with the given id. By default Multiple is false:
// members are mutually exclusive.
func NewGroup(id ID) *Group {
	return &Group{id: id}
}

// ID returns the group's identifier.
func (g *Group) ID() ID { return g.id }

// Arg adds a member argument id to the group.
func (g *Group) Arg(id ID) *Group {
	g.members = append(g.members, id)
	return g
}

// Required marks the group as required: at least one member must be
// explicitly present.
func (g *Group) Required(v bool) *Group { g.required = v; return g }

// Multiple controls whether more than one member may be present at once. The
// default (false) makes members pairwise-conflicting.
func (g *Group) Multiple(v bool) *Group { g.multiple = v; return g }

// ConflictsWith records a symmetric conflict between this group and another
// argument id.
func (g *Group) ConflictsWith(other ID) *Group {
	g.conflicts = append(g.conflicts, other)
	return g
}

// Requires records that presence of any group member requires other.
func (g *Group) Requires(other ID) *Group {
	g.requires = append(g.requires, other)
	return g
}

// has reports whether id is a member of the group.
func (g *Group) has(id ID) bool {
	for _, m := range g.members {
		if m == id {
			return true
		}
	}

	return false
}
