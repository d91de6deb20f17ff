package clap

import "fmt"

// Range is a closed range [Min, Max] over a non-negative integer, used for
// NumArgs. Max may equal Min for an exact count; a Max of
// Unbounded means "no upper bound".
type Range struct {
	Min, Max int
}

// Unbounded marks a Range with no upper bound.
const Unbounded = -1

// Contains reports whether n falls within the range.
func (r Range) Contains(n int) bool {
	if n < r.Min {
		return false
	}

	return r.Max == Unbounded || n <= r.Max
}

// TakesNoValue reports whether the range is exactly {0, 0}.
func (r Range) TakesNoValue() bool {
	return r.Min == 0 && r.Max == 0
}

// AllowsMultiple reports whether more than one value can be bound.
func (r Range) AllowsMultiple() bool {
	return r.Max == Unbounded || r.Max > 1
}

// Exactly builds a Range accepting exactly n values.
func Exactly(n int) Range { return Range{Min: n, Max: n} }

// AtLeast builds a Range accepting n or more values.
func AtLeast(n int) Range { return Range{Min: n, Max: Unbounded} }

// Between builds a Range accepting between min and max values, inclusive.
func Between(min, max int) Range { return Range{Min: min, Max: max} }

// Alias is a secondary name for an argument; Hidden aliases resolve during
// lookup but are never listed by a help collaborator.
type Alias struct {
	Name   string
	Hidden bool
}

// PossibleValue constrains an argument's value to a fixed catalog entry. A
// Hidden entry is still accepted but never listed in diagnostics.
type PossibleValue struct {
	Value  string
	Help   string
	Hidden bool
}

// ValuePredicate evaluates a condition against a populated Matches, used by
// conditional defaults and conditional requirements.
type ValuePredicate func(m *Matches) bool

// HasID returns a ValuePredicate satisfied when id is explicitly present.
func HasID(id ID) ValuePredicate {
	return func(m *Matches) bool { return m.IsPresent(id) }
}

// ValueEquals returns a ValuePredicate satisfied when id's first value
// equals want.
func ValueEquals(id ID, want string) ValuePredicate {
	return func(m *Matches) bool {
		v, ok := m.GetString(id)
		return ok && v == want
	}
}

// conditionalDefault is one (other_id, predicate, value) triple.
type conditionalDefault struct {
	Predicate ValuePredicate
	Value     string
}

// requirement is one (predicate, other_id) entailment recorded by Requires.
type requirement struct {
	OtherID   ID
	Predicate ValuePredicate
}

// CondRequirement pairs an argument id with a predicate, used by
// RequiredIfAny/RequiredIfAll to express "required if other's condition
// holds".
type CondRequirement struct {
	ID        ID
	Predicate ValuePredicate
}

// ValueParser converts a raw argv token into a typed value, or fails.
// Implementations are provided by the valueparse package or by the caller.
type ValueParser func(raw string) (any, error)

// Arg is the declarative descriptor for a single argument: its identity,
// arity, action, value handling, and relations to other arguments. Every
// setter returns the receiver so declarations can be chained.
type Arg struct {
	id ID

	long    string
	short   rune
	aliases []Alias

	positional  int // 1-based; 0 means "not positional"
	positionSet bool

	numArgs    Range
	numArgsSet bool

	valueDelimiter  rune
	hasDelimiter    bool
	valueTerminator string
	requireEquals   bool
	last            bool
	trailingVarArg  bool
	allowHyphenVals bool
	allowNegNumbers bool

	action Action

	valueParser    ValueParser
	possibleValues []PossibleValue
	defaultVals    []string
	defaultMissing []string
	condDefaults   []conditionalDefault

	requires          []requirement
	conflicts         []ID
	overrides         []ID
	groups            []ID
	required          bool
	requiredUnlessAny []ID
	requiredUnlessAll []ID
	requiredIfAny     []requirement
	requiredIfAll     []requirement
	global            bool
	exclusive         bool

	helpText     string
	longHelp     string
	displayOrder int
	heading      string

	hidden       bool
	hidePossible bool
}

// NewArg creates an Arg with the given id and a default arity of exactly one
// value, action Set. Use the chained setters to customize it.
func NewArg(id ID) *Arg {
	return &Arg{
		id:      id,
		numArgs: Exactly(1),
		action:  Set,
	}
}

// ID returns the argument's identifier.
func (a *Arg) ID() ID { return a.id }

// Long sets the long (`--name`) form.
func (a *Arg) Long(name string) *Arg { a.long = name; return a }

// Short sets the short (`-c`) form.
func (a *Arg) Short(c rune) *Arg { a.short = c; return a }

// AliasVisible adds a visible alias.
func (a *Arg) AliasVisible(name string) *Arg {
	a.aliases = append(a.aliases, Alias{Name: name})
	return a
}

// AliasHidden adds a hidden alias (resolves during lookup, never listed).
func (a *Arg) AliasHidden(name string) *Arg {
	a.aliases = append(a.aliases, Alias{Name: name, Hidden: true})
	return a
}

// Positional marks the argument as positional at the given 1-based index. A
// value of 0 requests auto-assignment during the Build pass.
func (a *Arg) Positional(index int) *Arg {
	a.positional = index
	a.positionSet = true
	return a
}

// IsPositional reports whether Positional was ever called on this Arg.
func (a *Arg) IsPositional() bool { return a.positionSet }

// NumArgs sets the arity range.
func (a *Arg) NumArgs(r Range) *Arg {
	a.numArgs = r
	a.numArgsSet = true
	return a
}

// ValueDelimiter sets the char used to split an attached value into multiple
// values (e.g. `--list a,b,c`).
func (a *Arg) ValueDelimiter(c rune) *Arg {
	a.valueDelimiter = c
	a.hasDelimiter = true
	return a
}

// ValueTerminator sets a literal token that ends value collection for this
// argument without being consumed as a value itself.
func (a *Arg) ValueTerminator(s string) *Arg { a.valueTerminator = s; return a }

// RequireEquals requires `--name=value` form; bare `--name value` is
// rejected unless MinArgs is 0. Only valid on long options.
func (a *Arg) RequireEquals(v bool) *Arg { a.requireEquals = v; return a }

// Last reserves the argument for after `--`; only the final (highest-index)
// positional may set this.
func (a *Arg) Last(v bool) *Arg { a.last = v; return a }

// TrailingVarArg makes this positional, once reached, switch the parser into
// trailing-values mode so every remaining token (including hyphen-prefixed
// ones) becomes one of its values.
func (a *Arg) TrailingVarArg(v bool) *Arg { a.trailingVarArg = v; return a }

// AllowHyphenValues permits hyphen-prefixed tokens to be accepted as values
// for this argument instead of being mistaken for another flag.
func (a *Arg) AllowHyphenValues(v bool) *Arg { a.allowHyphenVals = v; return a }

// AllowNegativeNumbers permits tokens that look like negative numbers to be
// accepted as values (and, for positionals, suppresses short-cluster
// classification of such tokens at this position).
func (a *Arg) AllowNegativeNumbers(v bool) *Arg { a.allowNegNumbers = v; return a }

// ActionFn sets the fold action.
func (a *Arg) ActionFn(act Action) *Arg { a.action = act; return a }

// Parser sets the value parser.
func (a *Arg) Parser(p ValueParser) *Arg { a.valueParser = p; return a }

// PossibleValues sets the closed catalog of accepted values.
func (a *Arg) PossibleValues(values ...PossibleValue) *Arg {
	a.possibleValues = values
	return a
}

// Default appends a static default value, injected when the argument was
// never explicitly set.
func (a *Arg) Default(values ...string) *Arg {
	a.defaultVals = append(a.defaultVals, values...)
	return a
}

// DefaultMissing sets the value(s) substituted when the flag occurs with no
// attached/following value.
func (a *Arg) DefaultMissing(values ...string) *Arg {
	a.defaultMissing = append(a.defaultMissing, values...)
	return a
}

// DefaultIf adds a conditional default, injected when pred holds against the
// matcher and no earlier conditional default for this Arg has already fired.
func (a *Arg) DefaultIf(pred ValuePredicate, value string) *Arg {
	a.condDefaults = append(a.condDefaults, conditionalDefault{Predicate: pred, Value: value})
	return a
}

// Requires records an unconditional requirement: if self is present, other
// must also be present, or the validator reports it missing.
func (a *Arg) Requires(other ID) *Arg {
	a.requires = append(a.requires, requirement{OtherID: other, Predicate: func(*Matches) bool { return true }})
	return a
}

// RequiresIf records a conditional requirement: if self is present and pred
// holds, other must also be present.
func (a *Arg) RequiresIf(other ID, pred ValuePredicate) *Arg {
	a.requires = append(a.requires, requirement{OtherID: other, Predicate: pred})
	return a
}

// ConflictsWith records a symmetric conflict: self and other may never both
// be explicitly present.
func (a *Arg) ConflictsWith(other ID) *Arg {
	a.conflicts = append(a.conflicts, other)
	return a
}

// OverridesWith records that, on occurrence of self, any prior values for
// other are cleared; transitive if other also overrides self back.
func (a *Arg) OverridesWith(other ID) *Arg {
	a.overrides = append(a.overrides, other)
	return a
}

// Required marks the argument as unconditionally required.
func (a *Arg) Required(v bool) *Arg { a.required = v; return a }

// RequiredUnlessAny is satisfied if self is present OR any of others is
// present.
func (a *Arg) RequiredUnlessAny(others ...ID) *Arg {
	a.requiredUnlessAny = append(a.requiredUnlessAny, others...)
	return a
}

// RequiredUnlessAll is satisfied if self is present OR all of others are
// present.
func (a *Arg) RequiredUnlessAll(others ...ID) *Arg {
	a.requiredUnlessAll = append(a.requiredUnlessAll, others...)
	return a
}

// RequiredIfAny adds a requirement triggered when any of the given (id,
// predicate) pairs holds.
func (a *Arg) RequiredIfAny(reqs ...CondRequirement) *Arg {
	for _, r := range reqs {
		a.requiredIfAny = append(a.requiredIfAny, requirement{OtherID: r.ID, Predicate: r.Predicate})
	}
	return a
}

// RequiredIfAll adds requirements that must all hold for self to be
// considered conditionally required.
func (a *Arg) RequiredIfAll(reqs ...CondRequirement) *Arg {
	for _, r := range reqs {
		a.requiredIfAll = append(a.requiredIfAll, requirement{OtherID: r.ID, Predicate: r.Predicate})
	}
	return a
}

// Global marks the argument to propagate to every descendant command during
// the Build pass.
func (a *Arg) Global(v bool) *Arg { a.global = v; return a }

// Exclusive marks the argument as unable to co-occur with any other
// explicitly-present argument.
func (a *Arg) Exclusive(v bool) *Arg { a.exclusive = v; return a }

// Help sets the short and long help text (cosmetic; consumed only by an
// external help-rendering collaborator).
func (a *Arg) Help(short, long string) *Arg {
	a.helpText = short
	a.longHelp = long
	return a
}

// DisplayOrder sets the cosmetic ordering hint.
func (a *Arg) DisplayOrder(n int) *Arg { a.displayOrder = n; return a }

// Heading sets the cosmetic section heading.
func (a *Arg) Heading(h string) *Arg { a.heading = h; return a }

// Hidden hides the argument from a help collaborator and from "did you mean"
// suggestions.
func (a *Arg) Hidden(v bool) *Arg { a.hidden = v; return a }

// takesValue reports whether this argument's action+arity combination ever
// consumes a value token.
func (a *Arg) takesValue() bool {
	if a.numArgs.TakesNoValue() {
		return false
	}

	return true
}

// displayName renders the argument's primary name for diagnostics, in the
// style clap itself uses: "--long", "-c", or "<positional>".
func (a *Arg) displayName() string {
	switch {
	case a.long != "":
		return "--" + a.long
	case a.short != 0:
		return "-" + string(a.short)
	case a.positionSet:
		return fmt.Sprintf("<%s>", a.id)
	default:
		return string(a.id)
	}
}
