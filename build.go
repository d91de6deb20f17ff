package clap

import "strconv"

// Build is the once-per-command materialization pass that assigns
// positional indices, propagates global arguments and settings, and
// generates the synthetic help/version arguments and help subcommand. It is
// idempotent: a second call is a no-op.
func (c *Command) Build() *Command {
	buildCommand(c, 0, c.name)
	return c
}

func buildCommand(c *Command, inheritedGlobal Setting, binName string) {
	if c.built {
		return
	}

	// Step 1: deferred builder replacement is modeled as an in-place copy
	// of the replacement's fields, since callers hold a pointer to c.
	if c.deferredBuilder != nil {
		replacement := c.deferredBuilder(c)
		if replacement != nil && replacement != c {
			*c = *replacement
		}
		c.deferredBuilder = nil
	}

	c.binName = binName

	// Step 2: merge global settings down.
	c.globalSettings = c.globalSettings.Set(inheritedGlobal)
	c.settings = c.settings.Set(c.globalSettings)

	// Step 3.
	if c.settings.Has(Multicall) {
		c.settings = c.settings.Set(SubcommandRequired | DisableHelpFlag | DisableVersionFlag)
	}

	// Step 4.
	if c.settings.Has(ArgsConflictWithSubcommands) {
		c.settings = c.settings.Set(SubcommandNegatesReqs)
	}

	// Step 5.
	if c.externalSubcommandParser != nil {
		c.settings = c.settings.Set(AllowExternalSubcommands)
	}

	// Step 6.
	if len(c.subcommands) == 0 {
		c.settings = c.settings.Set(DisableHelpSubcommand)
	}

	// Step 7: propagate global arguments into existing subcommands, before
	// the synthetic help subcommand is appended (step 11), so it is
	// naturally exempt.
	propagateGlobalArgs(c)

	// Step 8: positional indices, group membership, hide_possible_values.
	// Arguments whose action never consumes a value default to zero arity
	// unless NumArgs was called explicitly.
	assignPositionalIndices(c)
	assignGroupMembership(c)
	for _, a := range c.args {
		if !a.numArgsSet && !a.action.TakesValue() {
			a.numArgs = Exactly(0)
		}
	}
	if c.hidePossibleValues {
		for _, a := range c.args {
			a.hidePossible = true
		}
	}

	// Step 9.
	if !c.settings.Has(DisableHelpFlag) {
		prependHelpArg(c)
	}

	// Step 10.
	if !c.settings.Has(DisableVersionFlag) && (c.version != "" || c.longVersion != "") {
		prependVersionArg(c)
	}

	// Step 11.
	if !c.settings.Has(DisableHelpSubcommand) {
		appendHelpSubcommand(c)
	}

	// Step 12: recurse, propagating version if requested, computing bin
	// names.
	for _, sub := range c.subcommands {
		if c.settings.Has(PropagateVersion) {
			if sub.version == "" {
				sub.version = c.version
			}
			if sub.longVersion == "" {
				sub.longVersion = c.longVersion
			}
		}

		buildCommand(sub, c.globalSettings, c.BinName()+" "+sub.name)
	}

	// Build the key map now that args/subcommands are final for this node.
	c.km = newKeyMap()
	for _, a := range c.args {
		c.km.index(a)
	}

	// Step 13: invariant assertions (debug only).
	assertInvariants(c)

	c.built = true
}

func propagateGlobalArgs(c *Command) {
	var globals []*Arg

	for _, a := range c.args {
		if a.global {
			globals = append(globals, a)
		}
	}

	if len(globals) == 0 {
		return
	}

	for _, sub := range c.subcommands {
		for _, g := range globals {
			if sub.FindArg(g.id) != nil {
				continue
			}

			cp := *g
			sub.args = append(sub.args, &cp)
		}
	}
}

func assignPositionalIndices(c *Command) {
	taken := map[int]bool{}

	for _, a := range c.args {
		if a.positionSet && a.positional > 0 {
			taken[a.positional] = true
		}
	}

	next := 1

	for _, a := range c.args {
		if !a.positionSet {
			continue
		}

		if a.positional != 0 {
			continue
		}

		for taken[next] {
			next++
		}

		a.positional = next
		taken[next] = true
		next++
	}
}

func assignGroupMembership(c *Command) {
	for _, g := range c.groups {
		for _, a := range c.args {
			if g.has(a.id) {
				a.groups = append(a.groups, g.id)
			}
		}
	}
}

func prependHelpArg(c *Command) {
	if c.FindArg(HelpID) != nil {
		return
	}

	short := rune('h')
	if hasShort(c.args, 'h') {
		short = 0
	}

	help := NewArg(HelpID).Long("help").NumArgs(Exactly(0)).ActionFn(Help).
		Help("Print help", "")
	if short != 0 {
		help.Short(short)
	}

	c.args = append([]*Arg{help}, c.args...)
}

func prependVersionArg(c *Command) {
	if c.FindArg(VersionID) != nil {
		return
	}

	short := rune('V')
	if hasShort(c.args, 'V') {
		short = 0
	}

	version := NewArg(VersionID).Long("version").NumArgs(Exactly(0)).ActionFn(Version).
		Help("Print version", "")
	if short != 0 {
		version.Short(short)
	}

	c.args = append([]*Arg{version}, c.args...)
}

func hasShort(args []*Arg, short rune) bool {
	for _, a := range args {
		if a.short == short {
			return true
		}
	}

	return false
}

func appendHelpSubcommand(c *Command) {
	if c.findSubcommand(HelpSubcommandName) != nil {
		return
	}

	help := New(HelpSubcommandName)
	help.About("Print this message or the help of the given subcommand(s)")
	help.Arg(NewArg(ID("path")).Positional(1).NumArgs(AtLeast(0)))
	help.NoBinaryName(true)
	help.DisableHelpFlag(true)
	help.DisableVersionFlag(true)
	help.DisableHelpSubcommand(true)

	c.Subcommand(help)
}

// assertInvariants panics on programmer errors caught by the Build pass:
// duplicate ids, misplaced Last/TrailingVarArg, RequireEquals without a long
// name, and defaults that fail their own value parser. These are debug
// assertions for programmer mistakes, not user-input errors.
func assertInvariants(c *Command) {
	seen := map[ID]bool{}

	for _, a := range c.args {
		if seen[a.id] {
			panic("clap: duplicate argument id " + string(a.id) + " in command " + c.name)
		}

		seen[a.id] = true
	}

	maxIndex := 0

	for _, a := range c.km.positionals {
		if a.positional > maxIndex {
			maxIndex = a.positional
		}
	}

	for _, a := range c.km.positionals {
		if (a.last || a.trailingVarArg) && a.positional != maxIndex {
			panic("clap: only the final positional may set Last or TrailingVarArg (argument " + string(a.id) + ")")
		}
	}

	for _, a := range c.args {
		if a.requireEquals && a.long == "" {
			panic("clap: RequireEquals(true) requires a long name (argument " + string(a.id) + ")")
		}

		for _, v := range a.defaultVals {
			if _, err := parseOne(a, v); err != nil {
				panic("clap: default value " + strconv.Quote(v) + " fails the value parser of argument " + string(a.id))
			}
		}

		for _, v := range a.defaultMissing {
			if _, err := parseOne(a, v); err != nil {
				panic("clap: default-missing value " + strconv.Quote(v) + " fails the value parser of argument " + string(a.id))
			}
		}
	}
}
