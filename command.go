package clap

// Command is the declarative tree node holding arguments, groups,
// subcommands, and command-wide flags. A Command is built once via Build
// (idempotent) and then may parse any number of argv streams.
type Command struct {
	name        string
	binName     string
	displayName string
	version     string
	longVersion string
	about       string

	settings Setting

	args        []*Arg
	groups      []*Group
	subcommands []*Command
	subAliases  map[string][]string // subcommand name -> aliases

	subLongFlags  map[string]string // "--name" form -> subcommand name
	subShortFlags map[rune]string   // "-c" form -> subcommand name

	externalSubcommandParser ValueParser
	deferredBuilder          func(*Command) *Command

	globalSettings     Setting
	hidePossibleValues bool

	// Derived by Build; nil until built.
	km *keyMap

	built  bool
	parent *Command
}

// New creates an unbuilt Command with the given name. NumArgs/action
// defaults are applied per-Arg, not per-Command.
func New(name string) *Command {
	return &Command{
		name:       name,
		subAliases: map[string][]string{},
	}
}

// Name returns the command's declared name.
func (c *Command) Name() string { return c.name }

// BinName returns the resolved display name (parent chain + own name),
// computed by Build. Before Build it returns the declared name.
func (c *Command) BinName() string {
	if c.binName != "" {
		return c.binName
	}

	return c.name
}

// Version sets the short and long version strings.
func (c *Command) Version(short, long string) *Command {
	c.version = short
	c.longVersion = long
	return c
}

// About sets the cosmetic short description, consumed only by an external
// help-rendering collaborator.
func (c *Command) About(s string) *Command {
	c.about = s
	return c
}

// Arg adds an argument to the command.
func (c *Command) Arg(a *Arg) *Command {
	c.args = append(c.args, a)
	return c
}

// ArgGroup adds a group to the command.
func (c *Command) ArgGroup(g *Group) *Command {
	c.groups = append(c.groups, g)
	return c
}

// Subcommand adds a child command.
func (c *Command) Subcommand(sub *Command) *Command {
	sub.parent = c
	c.subcommands = append(c.subcommands, sub)
	return c
}

// SubcommandAlias registers an additional name that resolves to an existing
// subcommand name.
func (c *Command) SubcommandAlias(subName, alias string) *Command {
	c.subAliases[subName] = append(c.subAliases[subName], alias)
	return c
}

// SubcommandLongFlag registers a `--flag` spelling that resolves to an
// existing subcommand name, so `prog --list` behaves like `prog list`.
func (c *Command) SubcommandLongFlag(subName, flag string) *Command {
	if c.subLongFlags == nil {
		c.subLongFlags = map[string]string{}
	}

	c.subLongFlags[flag] = subName

	return c
}

// SubcommandShortFlag registers a `-c` spelling that resolves to an existing
// subcommand name. The parser checks short arguments before short-flag
// subcommands within a cluster.
func (c *Command) SubcommandShortFlag(subName string, flag rune) *Command {
	if c.subShortFlags == nil {
		c.subShortFlags = map[rune]string{}
	}

	c.subShortFlags[flag] = subName

	return c
}

// ExternalSubcommandParser enables AllowExternalSubcommands implicitly and
// sets the parser used to convert the captured external values.
func (c *Command) ExternalSubcommandParser(p ValueParser) *Command {
	c.externalSubcommandParser = p
	return c
}

// DeferredBuilder sets a callback invoked once at the start of Build,
// replacing the command with its return value.
func (c *Command) DeferredBuilder(f func(*Command) *Command) *Command {
	c.deferredBuilder = f
	return c
}

// EnableSettings turns on every bit in s.
func (c *Command) EnableSettings(s Setting) *Command {
	c.settings = c.settings.Set(s)
	return c
}

// DisableSettings turns off every bit in s.
func (c *Command) DisableSettings(s Setting) *Command {
	c.settings = c.settings.Clear(s)
	return c
}

// Has reports whether every bit of s is set on this command.
func (c *Command) Has(s Setting) bool {
	return c.settings.Has(s)
}

// The following are thin, named convenience wrappers over EnableSettings,
// one per command-wide setting.

func (c *Command) NoBinaryName(v bool) *Command       { return c.toggle(NoBinaryName, v) }
func (c *Command) Multicall(v bool) *Command          { return c.toggle(Multicall, v) }
func (c *Command) SubcommandRequired(v bool) *Command { return c.toggle(SubcommandRequired, v) }
func (c *Command) AllowExternalSubcommands(v bool) *Command {
	return c.toggle(AllowExternalSubcommands, v)
}
func (c *Command) ArgsConflictWithSubcommands(v bool) *Command {
	return c.toggle(ArgsConflictWithSubcommands, v)
}
func (c *Command) SubcommandNegatesReqs(v bool) *Command { return c.toggle(SubcommandNegatesReqs, v) }
func (c *Command) SubcommandPrecedenceOverArg(v bool) *Command {
	return c.toggle(SubcommandPrecedenceOverArg, v)
}
func (c *Command) AllowMissingPositional(v bool) *Command { return c.toggle(AllowMissingPositional, v) }
func (c *Command) DontDelimitTrailingValues(v bool) *Command {
	return c.toggle(DontDelimitTrailingValues, v)
}
func (c *Command) IgnoreErrors(v bool) *Command       { return c.toggle(IgnoreErrors, v) }
func (c *Command) InferLongArgs(v bool) *Command      { return c.toggle(InferLongArgs, v) }
func (c *Command) InferSubcommands(v bool) *Command   { return c.toggle(InferSubcommands, v) }
func (c *Command) DisableHelpFlag(v bool) *Command    { return c.toggle(DisableHelpFlag, v) }
func (c *Command) DisableVersionFlag(v bool) *Command { return c.toggle(DisableVersionFlag, v) }
func (c *Command) DisableHelpSubcommand(v bool) *Command {
	return c.toggle(DisableHelpSubcommand, v)
}
func (c *Command) PropagateVersion(v bool) *Command    { return c.toggle(PropagateVersion, v) }
func (c *Command) ArgsOverrideSelf(v bool) *Command    { return c.toggle(ArgsOverrideSelf, v) }
func (c *Command) ArgRequiredElseHelp(v bool) *Command { return c.toggle(ArgRequiredElseHelp, v) }

// GlobalSettings enables s on this command and marks it to propagate to
// every descendant command during Build.
func (c *Command) GlobalSettings(s Setting) *Command {
	c.globalSettings = c.globalSettings.Set(s)
	c.settings = c.settings.Set(s)
	return c
}

// HidePossibleValues hides every argument's possible-value list from a help
// collaborator.
func (c *Command) HidePossibleValues(v bool) *Command {
	c.hidePossibleValues = v
	return c
}

func (c *Command) toggle(s Setting, v bool) *Command {
	if v {
		return c.EnableSettings(s)
	}

	return c.DisableSettings(s)
}

// Args returns the command's own declared arguments (post-Build this
// includes synthetic help/version and any propagated global arguments).
func (c *Command) Args() []*Arg { return c.args }

// Groups returns the command's declared groups.
func (c *Command) Groups() []*Group { return c.groups }

// Subcommands returns the command's child commands.
func (c *Command) Subcommands() []*Command { return c.subcommands }

// FindArg looks up an argument by id among this command's own arguments.
func (c *Command) FindArg(id ID) *Arg {
	for _, a := range c.args {
		if a.id == id {
			return a
		}
	}

	return nil
}

// findGroup looks up a group by id.
func (c *Command) findGroup(id ID) *Group {
	for _, g := range c.groups {
		if g.id == id {
			return g
		}
	}

	return nil
}

// findSubcommand looks up a direct child by exact name.
func (c *Command) findSubcommand(name string) *Command {
	for _, s := range c.subcommands {
		if s.name == name {
			return s
		}
	}

	return nil
}
