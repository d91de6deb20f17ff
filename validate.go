package clap

import (
	"sort"
	"strings"

	"github.com/clapgo/clap/clerr"
)

// validateCommand is the post-parse pass enforcing required, conflicts,
// mutual exclusion, and conditional requirements against a populated
// Matches. It walks the chosen subcommand chain so the
// terminal command's matcher is validated with the terminal command's rules.
func validateCommand(c *Command, m *Matches) *clerr.Error {
	err := validateOne(c, m)

	if err != nil && c.settings.Has(IgnoreErrors) && ignorableValidation(err.Kind) {
		err = nil
	}

	if err != nil {
		return err
	}

	name, sub, ok := m.Subcommand()
	if !ok {
		return nil
	}

	subCmd := c.findSubcommand(name)
	if subCmd == nil {
		return nil
	}

	return validateCommand(subCmd, sub)
}

// ignorableValidation mirrors ignorableKind for the validator's own error
// surface: user-input failures are swallowed under IgnoreErrors, display
// kinds never are.
func ignorableValidation(k clerr.Kind) bool {
	switch k {
	case clerr.ArgumentConflict, clerr.MissingRequiredArgument,
		clerr.MissingSubcommand, clerr.EmptyValue, clerr.InvalidValue:
		return true
	default:
		return false
	}
}

func validateOne(c *Command, m *Matches) *clerr.Error {
	present := c.explicitPresent(m)
	_, _, hasSub := m.Subcommand()
	_, _, hasExternal := m.ExternalSubcommand()
	subChosen := hasSub || hasExternal

	// Step 2: arg_required_else_help.
	if c.settings.Has(ArgRequiredElseHelp) && !subChosen && len(present) == 0 {
		return clerr.New(clerr.DisplayHelpOnMissingArgumentOrSubcommand)
	}

	// Step 3: subcommand_required.
	if c.settings.Has(SubcommandRequired) && !subChosen {
		return clerr.New(clerr.MissingSubcommand).
			WithStrings(clerr.ValidSubcommand, c.subcommandNames())
	}

	// Step 4: exclusives.
	if len(present) > 1 {
		for _, a := range present {
			if a.exclusive {
				return clerr.New(clerr.ArgumentConflict).
					WithString(clerr.InvalidArg, a.displayName()).
					WithString(clerr.Usage, c.usageSnippet(idsOf(present)))
			}
		}
	}

	// Step 5: pairwise conflicts.
	if err := c.checkConflicts(present); err != nil {
		return err
	}

	// Steps 6-8: the required graph and conditional requirements.
	missing := c.collectMissingRequired(m, present, subChosen)
	if len(missing) > 0 {
		usageIDs := idsOf(present)
		for _, a := range present {
			for _, req := range a.requires {
				if req.Predicate(m) {
					usageIDs = append(usageIDs, req.OtherID)
				}
			}
		}
		usageIDs = append(usageIDs, missing...)

		return clerr.New(clerr.MissingRequiredArgument).
			WithStrings(clerr.InvalidArg, c.displayNames(missing)).
			WithString(clerr.Usage, c.usageSnippet(usageIDs))
	}

	return nil
}

// explicitPresent returns the command's arguments that are explicitly
// present in m, ordered by first CLI appearance so conflict diagnostics can
// name a deterministic "prior" argument.
func (c *Command) explicitPresent(m *Matches) []*Arg {
	var present []*Arg

	for _, id := range m.explicitlyPresentIDs() {
		if a := c.km.ByID(id); a != nil {
			present = append(present, a)
		}
	}

	sort.SliceStable(present, func(i, j int) bool {
		return m.firstCLIIndex(present[i].id) < m.firstCLIIndex(present[j].id)
	})

	return present
}

// checkConflicts runs the pairwise conflict pass: for every explicitly-present
// argument, gather its direct blacklist, group-implied conflicts, and the
// symmetric closure, and fail if any other present argument lands in the
// set.
func (c *Command) checkConflicts(present []*Arg) *clerr.Error {
	for i, a := range present {
		conflicts := c.conflictSet(a)

		for j, b := range present {
			if i == j {
				continue
			}

			if !conflicts[b.id] {
				continue
			}

			// Name the later argument as the offender and the earlier as
			// prior; present is in first-CLI-appearance order.
			offender, prior := a, b
			if i < j {
				offender, prior = b, a
			}

			var names []string
			for id := range conflicts {
				if id != b.id {
					names = append(names, c.displayNameOf(id))
				}
			}
			sort.Strings(names)

			e := clerr.New(clerr.ArgumentConflict).
				WithString(clerr.InvalidArg, offender.displayName()).
				WithString(clerr.PriorArg, prior.displayName()).
				WithString(clerr.Usage, c.usageSnippet(idsOf(present)))
			if len(names) > 0 {
				e = e.WithStrings(clerr.Suggested, names)
			}

			return e
		}
	}

	return nil
}

// conflictSet gathers every id that may not co-occur with a: the argument's
// own blacklist, members of its single-select groups, conflicts declared on
// its groups, its overrides, and the symmetric direction of all of the
// above.
func (c *Command) conflictSet(a *Arg) map[ID]bool {
	set := map[ID]bool{}

	for _, id := range a.conflicts {
		set[id] = true
	}

	for _, id := range a.overrides {
		set[id] = true
	}

	for _, gid := range a.groups {
		g := c.findGroup(gid)
		if g == nil {
			continue
		}

		if !g.multiple {
			for _, member := range g.members {
				if member != a.id {
					set[member] = true
				}
			}
		}

		for _, id := range g.conflicts {
			set[id] = true
		}
	}

	// Symmetric closure: anything that conflicts with (or overrides) a.
	for _, other := range c.args {
		if other.id == a.id {
			continue
		}

		for _, id := range other.conflicts {
			if id == a.id {
				set[other.id] = true
			}
		}

		for _, id := range other.overrides {
			if id == a.id {
				set[other.id] = true
			}
		}
	}

	// Group-level conflicts aimed at a group a belongs to.
	for _, g := range c.groups {
		for _, id := range g.conflicts {
			for _, gid := range a.groups {
				if id == gid {
					for _, member := range g.members {
						if member != a.id {
							set[member] = true
						}
					}
				}
			}
		}
	}

	delete(set, a.id)

	return set
}

// collectMissingRequired walks the required graph and the conditional
// requirements, returning the ids (args and groups) that should have been
// present but were not.
func (c *Command) collectMissingRequired(m *Matches, present []*Arg, subChosen bool) []ID {
	presentSet := map[ID]bool{}
	for _, a := range present {
		presentSet[a.id] = true
	}

	negated := subChosen && c.settings.Has(SubcommandNegatesReqs)

	// Seed: command-level required arguments and groups, plus entailments
	// from explicitly-present arguments and their groups.
	seeds := map[ID]bool{}

	if !negated {
		for _, a := range c.args {
			if a.required {
				seeds[a.id] = true
			}
		}

		for _, g := range c.groups {
			if g.required {
				seeds[g.id] = true
			}
		}
	}

	for _, a := range present {
		for _, req := range a.requires {
			if req.Predicate(m) {
				seeds[req.OtherID] = true
			}
		}

		for _, gid := range a.groups {
			if g := c.findGroup(gid); g != nil {
				for _, id := range g.requires {
					seeds[id] = true
				}
			}
		}
	}

	var missing []ID

	for id := range seeds {
		if c.requirementSatisfied(id, presentSet) {
			continue
		}

		if c.excusedByConflict(id, presentSet) {
			continue
		}

		missing = append(missing, id)
	}

	// Step 7: conditional required.
	for _, a := range c.args {
		if presentSet[a.id] || negated {
			continue
		}

		if len(a.requiredIfAny) > 0 {
			for _, req := range a.requiredIfAny {
				if presentSet[req.OtherID] && req.Predicate(m) {
					missing = append(missing, a.id)
					break
				}
			}
		}

		if len(a.requiredIfAll) > 0 {
			all := true
			for _, req := range a.requiredIfAll {
				if !presentSet[req.OtherID] || !req.Predicate(m) {
					all = false
					break
				}
			}
			if all {
				missing = append(missing, a.id)
			}
		}
	}

	// Step 8: required-unless.
	for _, a := range c.args {
		if presentSet[a.id] || negated {
			continue
		}

		if len(a.requiredUnlessAny) > 0 {
			any := false
			for _, id := range a.requiredUnlessAny {
				if presentSet[id] {
					any = true
					break
				}
			}
			if !any {
				missing = append(missing, a.id)
			}
		}

		if len(a.requiredUnlessAll) > 0 {
			all := true
			for _, id := range a.requiredUnlessAll {
				if !presentSet[id] {
					all = false
					break
				}
			}
			if !all {
				missing = append(missing, a.id)
			}
		}
	}

	missing = dedupeIDs(missing)

	sort.Slice(missing, func(i, j int) bool {
		return c.declarationOrder(missing[i]) < c.declarationOrder(missing[j])
	})

	return missing
}

// requirementSatisfied reports whether the required node id (an argument or
// a group) is satisfied: the argument itself is present, any member of its
// groups is present, or (for a group node) any group member is present.
func (c *Command) requirementSatisfied(id ID, presentSet map[ID]bool) bool {
	if presentSet[id] {
		return true
	}

	if a := c.km.ByID(id); a != nil {
		for _, gid := range a.groups {
			g := c.findGroup(gid)
			if g == nil {
				continue
			}
			for _, member := range g.members {
				if presentSet[member] {
					return true
				}
			}
		}

		return false
	}

	if g := c.findGroup(id); g != nil {
		for _, member := range g.members {
			if presentSet[member] {
				return true
			}
		}
	}

	return false
}

// excusedByConflict reports whether a missing required argument is excused
// because something explicitly present conflicts with it.
func (c *Command) excusedByConflict(id ID, presentSet map[ID]bool) bool {
	a := c.km.ByID(id)
	if a == nil {
		return false
	}

	conflicts := c.conflictSet(a)
	for other := range conflicts {
		if presentSet[other] {
			return true
		}
	}

	return false
}

// usageSnippet renders the compact usage line attached to conflict and
// missing-required errors: the given ids deduplicated, filtered of hidden
// arguments, and rendered in the order the command declares them.
func (c *Command) usageSnippet(ids []ID) string {
	ids = dedupeIDs(ids)

	want := map[ID]bool{}
	for _, id := range ids {
		want[id] = true
	}

	var parts []string

	for _, a := range c.args {
		if !want[a.id] || a.hidden {
			continue
		}

		parts = append(parts, usageFor(a))
		delete(want, a.id)
	}

	// Remaining ids are groups: render as a member alternation.
	for _, g := range c.groups {
		if !want[g.id] {
			continue
		}

		var members []string
		for _, id := range g.members {
			if a := c.km.ByID(id); a != nil && !a.hidden {
				members = append(members, usageFor(a))
			}
		}

		parts = append(parts, "<"+strings.Join(members, "|")+">")
	}

	out := c.BinName()
	if len(parts) > 0 {
		out += " " + strings.Join(parts, " ")
	}

	return out
}

// usageFor renders one argument the way a usage line does: flags with a
// value placeholder, positionals in angle brackets.
func usageFor(a *Arg) string {
	switch {
	case a.long != "":
		if a.takesValue() {
			return "--" + a.long + " <" + string(a.id) + ">"
		}
		return "--" + a.long
	case a.short != 0:
		if a.takesValue() {
			return "-" + string(a.short) + " <" + string(a.id) + ">"
		}
		return "-" + string(a.short)
	default:
		return "<" + string(a.id) + ">"
	}
}

// displayNames renders each id (argument or group) for diagnostics.
func (c *Command) displayNames(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = c.displayNameOf(id)
	}
	return out
}

func (c *Command) displayNameOf(id ID) string {
	if a := c.km.ByID(id); a != nil {
		return a.displayName()
	}

	if g := c.findGroup(id); g != nil {
		return "<" + string(g.id) + ">"
	}

	return string(id)
}

// declarationOrder returns the position of id among the command's declared
// arguments (groups sort after all arguments), giving diagnostics a stable,
// declaration-driven order.
func (c *Command) declarationOrder(id ID) int {
	for i, a := range c.args {
		if a.id == id {
			return i
		}
	}

	for i, g := range c.groups {
		if g.id == id {
			return len(c.args) + i
		}
	}

	return len(c.args) + len(c.groups)
}

// subcommandNames lists the names of every subcommand except the synthetic
// help subcommand, for MissingSubcommand diagnostics.
func (c *Command) subcommandNames() []string {
	var names []string
	for _, s := range c.subcommands {
		if s.name == HelpSubcommandName {
			continue
		}
		names = append(names, s.name)
	}
	return names
}

func idsOf(args []*Arg) []ID {
	ids := make([]ID, len(args))
	for i, a := range args {
		ids[i] = a.id
	}
	return ids
}

func dedupeIDs(ids []ID) []ID {
	seen := map[ID]bool{}
	var out []ID
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
