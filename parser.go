package clap

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/clapgo/clap/clerr"
	"github.com/clapgo/clap/internal/levenshtein"
)

// pendingKind distinguishes the two ways a token can be "owed" to an
// argument that hasn't finished collecting its values yet.
type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingOpt
)

// parser is the token-by-token state machine that walks a tokenStream,
// consults the keyMap built by Build, and reacts into a Matches. One parser
// is created per Command in the subcommand chain.
type parser struct {
	cmd    *Command
	stream *tokenStream
	m      *Matches

	state         pendingState
	pendingValues []string
	pendingHasEq  bool

	posCounter     int
	trailingValues bool
	validArgFound  bool
}

type pendingState struct {
	kind pendingKind
	id   ID
}

// Parse runs the full pipeline: Build (if not already run), the
// lexer/parser/matcher over argv, and the validator over the resulting tree
// of Matches. argv includes the program name in argv[0], as os.Args does,
// unless NoBinaryName or Multicall changes how that first element is
// consumed.
func (c *Command) Parse(argv []string) (*Matches, *clerr.Error) {
	if !c.built {
		c.Build()
	}

	items := argv

	if c.settings.Has(Multicall) {
		if len(items) > 0 {
			items = append([]string{fileStem(items[0])}, items[1:]...)
		}
	} else if !c.settings.Has(NoBinaryName) && len(items) > 0 {
		items = items[1:]
	}

	stream := newTokenStream(items)
	m := newMatches()

	if err := parseCommand(c, stream, m); err != nil {
		return m, withHelpRef(c, err)
	}

	propagateGlobalMatches(c, m)

	if err := validateCommand(c, m); err != nil {
		return m, withHelpRef(c, err)
	}

	return m, nil
}

// withHelpRef fills in the "for more information try '…'" surface on an
// outgoing error: `--help` if the synthetic flag is enabled, else the `help`
// subcommand if present, else a user-defined Help-action argument.
func withHelpRef(c *Command, e *clerr.Error) *clerr.Error {
	if e == nil || e.HelpRef != "" {
		return e
	}

	if !c.settings.Has(DisableHelpFlag) {
		e.HelpRef = "--help"
		return e
	}

	if !c.settings.Has(DisableHelpSubcommand) && c.findSubcommand(HelpSubcommandName) != nil {
		e.HelpRef = HelpSubcommandName
		return e
	}

	for _, a := range c.args {
		if a.action != Help {
			continue
		}

		switch {
		case a.long != "":
			e.HelpRef = "--" + a.long
		case a.short != 0:
			e.HelpRef = "-" + string(a.short)
		}

		return e
	}

	return e
}

// propagateGlobalMatches copies every global argument's matcher entry into
// the matcher of each descendant reached along the chosen subcommand path,
// by reference, unless the descendant explicitly set the same id.
func propagateGlobalMatches(c *Command, m *Matches) {
	name, sub, ok := m.Subcommand()
	if !ok {
		return
	}

	for _, a := range c.args {
		if !a.global {
			continue
		}

		ma, found := m.byID[a.id]
		if !found {
			continue
		}

		if existing, set := sub.byID[a.id]; set && (existing.occurrences > 0 || existing.explicit()) {
			continue
		}

		sub.byID[a.id] = ma
	}

	if subCmd := c.findSubcommand(name); subCmd != nil {
		propagateGlobalMatches(subCmd, sub)
	}
}

// fileStem strips any directory components and the final extension from a
// path, used by Multicall to derive the applet name from argv[0].
func fileStem(path string) string {
	base := path
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

// parseCommand runs the main loop for one Command against the shared
// stream, recursing into a fresh Matches for whichever subcommand is chosen.
func parseCommand(cmd *Command, stream *tokenStream, m *Matches) *clerr.Error {
	p := &parser{cmd: cmd, stream: stream, m: m, posCounter: 1}
	err := p.run()
	applyDefaults(cmd, m)

	if err != nil && cmd.settings.Has(IgnoreErrors) && ignorableKind(err.Kind) {
		err = nil
	}

	return err
}

// ignorableKind reports whether IgnoreErrors may swallow an error of this
// kind: value and arity failures are swallowed, while structural failures
// (subcommand resolution) and display-flow kinds still propagate.
func ignorableKind(k clerr.Kind) bool {
	switch k {
	case clerr.EmptyValue, clerr.InvalidValue, clerr.TooManyValues,
		clerr.TooFewValues, clerr.WrongNumberOfValues, clerr.UnknownArgument:
		return true
	default:
		return false
	}
}

func (p *parser) run() *clerr.Error {
	for {
		raw, ok := p.stream.Peek()
		if !ok {
			break
		}

		if !p.trailingValues && (p.cmd.settings.Has(SubcommandPrecedenceOverArg) || p.state.kind == pendingNone) {
			if sub, name, matched := p.cmd.lookupSubcommand(raw, p.cmd.settings.Has(InferSubcommands)); matched {
				if err := p.resolvePending(); err != nil {
					return err
				}

				p.stream.Next()

				if name == HelpSubcommandName && !p.cmd.settings.Has(DisableHelpSubcommand) {
					path := p.stream.Rest()
					addressed := resolveHelpPath(p.cmd, path)
					return clerr.New(clerr.DisplayHelp).WithString(clerr.InvalidSubcommandCtx, addressed.BinName())
				}

				return p.enterSubcommand(sub, name)
			}
		}

		tok := classify(raw, p.allowNegativeNumbersHere())

		if !p.trailingValues {
			if (tok.kind == tokLong || tok.kind == tokShort) && !utf8.ValidString(tok.name) {
				return clerr.New(clerr.InvalidUtf8).WithString(clerr.InvalidArg, strconv.Quote(raw))
			}

			switch tok.kind {
			case tokEscape:
				if p.state.kind == pendingOpt && p.pendingAllowsHyphen() {
					p.stream.Next()
					p.pendingValues = append(p.pendingValues, tok.raw)
					continue
				}

				p.stream.Next()
				if err := p.resolvePending(); err != nil {
					return err
				}
				p.trailingValues = true
				continue

			case tokLong:
				p.stream.Next()
				if err := p.handleLong(tok); err != nil {
					return err
				}
				continue

			case tokShort:
				p.stream.Next()
				if err := p.handleShort(tok); err != nil {
					return err
				}
				continue
			}
		}

		if p.state.kind == pendingOpt {
			arg := p.cmd.km.ByID(p.state.id)

			if arg.valueTerminator != "" && raw == arg.valueTerminator {
				p.stream.Next()
				if err := p.resolvePending(); err != nil {
					return err
				}
				continue
			}

			p.stream.Next()
			p.pendingValues = append(p.pendingValues, raw)

			if arg.numArgs.Max != Unbounded && len(p.pendingValues) >= arg.numArgs.Max {
				if err := p.resolvePending(); err != nil {
					return err
				}
			}

			continue
		}

		p.posCounter = p.advancePositionalCounter(p.posCounter)

		arg := p.cmd.km.ByPositional(p.posCounter)
		if arg == nil {
			if p.cmd.settings.Has(AllowExternalSubcommands) {
				p.stream.Next()
				rest := p.stream.Rest()
				return p.captureExternalSubcommand(raw, rest)
			}

			return p.unknownArgumentError(raw)
		}

		p.stream.Next()

		if err := p.bindPositional(arg, raw); err != nil {
			return err
		}
	}

	if err := p.resolvePending(); err != nil {
		return err
	}

	return nil
}

// allowNegativeNumbersHere reports whether the current position should
// tolerate a "-1"-shaped token as a value rather than a short cluster: true
// when the pending option or the current positional opts in.
func (p *parser) allowNegativeNumbersHere() bool {
	if p.state.kind == pendingOpt {
		if arg := p.cmd.km.ByID(p.state.id); arg != nil && arg.allowNegNumbers {
			return true
		}
	}

	if arg := p.cmd.km.ByPositional(p.posCounter); arg != nil && arg.allowNegNumbers {
		return true
	}

	return false
}

// pendingAllowsHyphen reports whether the argument currently collecting
// values accepts hyphen-prefixed tokens as values.
func (p *parser) pendingAllowsHyphen() bool {
	arg := p.cmd.km.ByID(p.state.id)
	return arg != nil && arg.allowHyphenVals
}

// resolvePending finalizes whatever value collection is in flight, reacting
// the pending argument with however many values it accumulated (possibly
// zero). Called at every point that could otherwise silently drop pending
// values: before a subcommand handoff, before a new long/short flag takes
// over, at a `--` escape, and at end of input.
func (p *parser) resolvePending() *clerr.Error {
	if p.state.kind != pendingOpt {
		return nil
	}

	arg := p.cmd.km.ByID(p.state.id)
	hasEq := p.pendingHasEq
	vals := p.pendingValues

	p.state = pendingState{}
	p.pendingValues = nil
	p.pendingHasEq = false

	return p.react(arg, SourceCLI, vals, hasEq)
}

// enterSubcommand hands the rest of the stream to sub with a fresh Matches,
// recording the chosen name on the current matcher. Reached from the main
// loop on a name/alias match and from the long/short flag-subcommand tables.
func (p *parser) enterSubcommand(sub *Command, name string) *clerr.Error {
	if p.validArgFound && p.cmd.settings.Has(ArgsConflictWithSubcommands) {
		return clerr.New(clerr.ArgumentConflict).
			WithString(clerr.InvalidSubcommandCtx, name)
	}

	subMatches := newMatches()
	subErr := parseCommand(sub, p.stream, subMatches)
	p.m.subcommandName = name
	p.m.subcommand = subMatches

	if subErr != nil {
		swallow := p.cmd.settings.Has(IgnoreErrors) && ignorableKind(subErr.Kind)
		if !swallow {
			return subErr
		}
	}

	return nil
}

// handleLong resolves one long token and dispatches its value handling.
func (p *parser) handleLong(tok token) *clerr.Error {
	if p.state.kind == pendingOpt && p.pendingAllowsHyphen() {
		p.pendingValues = append(p.pendingValues, tok.raw)
		return nil
	}

	if err := p.resolvePending(); err != nil {
		return err
	}

	arg := p.cmd.km.ByLong(tok.name, p.cmd.settings.Has(InferLongArgs))
	if arg == nil {
		if subName, ok := p.cmd.subLongFlags[tok.name]; ok && !tok.hasEq {
			if sub := p.cmd.findSubcommand(subName); sub != nil {
				return p.enterSubcommand(sub, subName)
			}
		}

		if a := p.cmd.km.ByPositional(p.posCounter); a != nil && a.allowHyphenVals {
			return p.bindPositional(a, tok.raw)
		}

		return p.unknownArgumentError(tok.raw)
	}

	p.validArgFound = true

	if arg.numArgs.TakesNoValue() {
		if tok.hasEq {
			return clerr.New(clerr.InvalidValue).
				WithString(clerr.InvalidArg, arg.displayName()).
				WithString(clerr.InvalidValueCtx, tok.value)
		}

		return p.react(arg, SourceCLI, nil, false)
	}

	if tok.hasEq {
		return p.react(arg, SourceCLI, []string{tok.value}, true)
	}

	if arg.requireEquals {
		if arg.numArgs.Min == 0 {
			return p.react(arg, SourceCLI, nil, false)
		}

		return clerr.New(clerr.InvalidValue).WithString(clerr.InvalidArg, arg.displayName())
	}

	p.state = pendingState{kind: pendingOpt, id: arg.id}
	p.pendingValues = nil
	p.pendingHasEq = false

	return nil
}

// handleShort walks a short cluster char by char.
func (p *parser) handleShort(tok token) *clerr.Error {
	if p.state.kind == pendingOpt && p.pendingAllowsHyphen() {
		p.pendingValues = append(p.pendingValues, tok.raw)
		return nil
	}

	if err := p.resolvePending(); err != nil {
		return err
	}

	cluster := tok.name

	if a := p.cmd.km.ByPositional(p.posCounter); a != nil && a.allowHyphenVals {
		allKnown := true
		for _, c := range cluster {
			if p.cmd.km.ByShort(c) == nil {
				allKnown = false
				break
			}
		}
		if !allKnown {
			return p.bindPositional(a, tok.raw)
		}
	}

	runes := []rune(cluster)

	for i := 0; i < len(runes); i++ {
		c := runes[i]

		arg := p.cmd.km.ByShort(c)
		if arg == nil {
			if subName, ok := p.cmd.subShortFlags[c]; ok {
				if sub := p.cmd.findSubcommand(subName); sub != nil {
					// Commit the subcommand path unconditionally; the
					// remaining cluster chars are not reprocessed.
					return p.enterSubcommand(sub, subName)
				}
			}

			return p.unknownArgumentError("-" + string(c))
		}

		p.validArgFound = true

		if arg.numArgs.TakesNoValue() {
			if err := p.react(arg, SourceCLI, nil, false); err != nil {
				return err
			}
			continue
		}

		rem := string(runes[i+1:])
		hasEq := false

		if strings.HasPrefix(rem, "=") {
			rem = rem[1:]
			hasEq = true
		}

		if rem != "" {
			return p.react(arg, SourceCLI, []string{rem}, hasEq)
		}

		if arg.requireEquals {
			if arg.numArgs.Min == 0 {
				return p.react(arg, SourceCLI, nil, false)
			}

			return clerr.New(clerr.InvalidValue).WithString(clerr.InvalidArg, arg.displayName())
		}

		p.state = pendingState{kind: pendingOpt, id: arg.id}
		p.pendingValues = nil
		p.pendingHasEq = false

		return nil
	}

	return nil
}

// advancePositionalCounter implements the "positional counter adjustment"
// rule: a positional whose arity allows multiple values and which is
// not the last positional, or (under AllowMissingPositional) the
// second-to-last positional, may be skipped over when there are not enough
// remaining tokens to both bind it and satisfy every later required
// positional's minimum.
//
// The skip decision treats every not-yet-consumed stream token as a
// candidate positional value, which is exact whenever positionals are not
// interleaved with options (the common case) and conservative otherwise.
func (p *parser) advancePositionalCounter(start int) int {
	km := p.cmd.km

	last := lastPositionalIndex(km)

	if p.trailingValues && last > start {
		if a := km.ByPositional(last); a != nil && (a.last || p.cmd.settings.Has(AllowMissingPositional)) {
			return last
		}
	}

	pos := start

	for {
		arg := km.ByPositional(pos)
		if arg == nil {
			return pos
		}

		isLast := pos == last
		gate := !arg.required &&
			((arg.numArgs.AllowsMultiple() && !isLast) ||
				(p.cmd.settings.Has(AllowMissingPositional) && pos == last-1 && !p.trailingValues))

		if !gate {
			return pos
		}

		avail := p.stream.Remaining()
		laterMin := sumMinAfter(km, pos)

		if avail-1 < laterMin {
			pos++
			continue
		}

		return pos
	}
}

func lastPositionalIndex(km *keyMap) int {
	max := 0
	for idx := range km.byPositional {
		if idx > max {
			max = idx
		}
	}
	return max
}

func sumMinAfter(km *keyMap, pos int) int {
	sum := 0
	for idx, a := range km.byPositional {
		if idx > pos {
			sum += a.numArgs.Min
		}
	}
	return sum
}

// bindPositional binds one raw token to a positional Arg. Positionals always
// fold by appending (never clearing on repeat bind), since a single CLI
// occurrence of a multi-value positional is spread across many bindPositional
// calls rather than one react call with every value at once.
func (p *parser) bindPositional(arg *Arg, raw string) *clerr.Error {
	if arg.last && !p.trailingValues {
		return clerr.New(clerr.UnknownArgument).WithString(clerr.InvalidArg, raw)
	}

	if arg.trailingVarArg {
		p.trailingValues = true
	}

	p.validArgFound = true

	vals := []string{raw}

	if arg.hasDelimiter && !(p.trailingValues && p.cmd.settings.Has(DontDelimitTrailingValues)) {
		vals = splitDelimited(vals, arg.valueDelimiter)
	}

	if err := p.removeOverrides(arg); err != nil {
		return err
	}

	p.m.bumpOccurrence(arg.id)

	for _, v := range vals {
		typed, err := parseOne(arg, v)
		if err != nil {
			return err
		}

		p.m.push(arg.id, SourceCLI, v, typed)
	}

	if !arg.numArgs.AllowsMultiple() {
		p.posCounter++
	}

	return nil
}

// captureExternalSubcommand records name plus every remaining raw token as
// an opaque external subcommand,
// parsed through the configured parser if one was set.
func (p *parser) captureExternalSubcommand(name string, rest []string) *clerr.Error {
	p.m.externalName = name
	p.m.externalValues = append([]string{}, rest...)

	if p.cmd.externalSubcommandParser != nil {
		for _, v := range rest {
			if _, err := p.cmd.externalSubcommandParser(v); err != nil {
				return clerr.New(clerr.InvalidValue).WithString(clerr.InvalidValueCtx, v).WithSource(err)
			}
		}
	}

	return nil
}

// react handles one option occurrence: override removal, arity checking, delimiter
// splitting, default-missing substitution, and action dispatch for a flag or
// option occurrence (not used for positionals, which fold by unconditional
// append via bindPositional).
func (p *parser) react(arg *Arg, source Source, rawVals []string, hasEq bool) *clerr.Error {
	if err := p.removeOverrides(arg); err != nil {
		return err
	}

	if len(rawVals) == 0 && len(arg.defaultMissing) > 0 {
		rawVals = append([]string{}, arg.defaultMissing...)
	}

	n := len(rawVals)
	r := arg.numArgs

	if arg.action.TakesValue() || n > 0 {
		if n < r.Min || (r.Max != Unbounded && n > r.Max) {
			switch {
			case n == 0 && r.Min > 0:
				e := clerr.New(clerr.EmptyValue).WithString(clerr.InvalidArg, arg.displayName())
				if valid := visiblePossibleValues(arg); len(valid) > 0 {
					e = e.WithStrings(clerr.ValidValue, valid)
				}
				return e
			case r.Min == r.Max:
				return clerr.New(clerr.WrongNumberOfValues).
					WithString(clerr.InvalidArg, arg.displayName()).
					WithInt(clerr.ExpectedNumValues, r.Min).
					WithInt(clerr.ActualNumValues, n)
			case n < r.Min:
				return clerr.New(clerr.TooFewValues).
					WithString(clerr.InvalidArg, arg.displayName()).
					WithInt(clerr.MinValues, r.Min).
					WithInt(clerr.ActualNumValues, n)
			default:
				return clerr.New(clerr.TooManyValues).
					WithString(clerr.InvalidArg, arg.displayName()).
					WithInt(clerr.ActualNumValues, n)
			}
		}
	}

	if n > 0 && arg.hasDelimiter && !(p.trailingValues && p.cmd.settings.Has(DontDelimitTrailingValues)) {
		rawVals = splitDelimited(rawVals, arg.valueDelimiter)
	}

	switch arg.action {
	case Set:
		p.m.clear(arg.id)
		for _, v := range rawVals {
			typed, err := parseOne(arg, v)
			if err != nil {
				return err
			}
			p.m.push(arg.id, source, v, typed)
		}
		if source == SourceCLI {
			p.m.bumpOccurrence(arg.id)
		}

	case Append:
		for _, v := range rawVals {
			typed, err := parseOne(arg, v)
			if err != nil {
				return err
			}
			p.m.push(arg.id, source, v, typed)
		}
		if source == SourceCLI {
			p.m.bumpOccurrence(arg.id)
		}

	case SetTrue, SetFalse:
		lit := "true"
		if arg.action == SetFalse {
			lit = "false"
		}
		if len(rawVals) > 0 {
			lit = rawVals[0]
		}
		b, perr := strconv.ParseBool(lit)
		if perr != nil {
			return clerr.New(clerr.InvalidValue).WithString(clerr.InvalidValueCtx, lit).WithString(clerr.InvalidArg, arg.displayName())
		}
		p.m.clear(arg.id)
		p.m.push(arg.id, source, lit, b)
		if source == SourceCLI {
			p.m.bumpOccurrence(arg.id)
		}

	case Count:
		cur := 0
		if prev, ok := p.m.GetAny(arg.id); ok {
			if i, ok := prev.(int); ok {
				cur = i
			}
		}

		next := cur
		if cur < math.MaxInt {
			next = cur + 1
		}
		if len(rawVals) > 0 {
			v, perr := strconv.Atoi(rawVals[0])
			if perr != nil {
				return clerr.New(clerr.InvalidValue).WithString(clerr.InvalidValueCtx, rawVals[0]).WithString(clerr.InvalidArg, arg.displayName())
			}
			next = v
		}

		p.m.clear(arg.id)
		p.m.push(arg.id, source, strconv.Itoa(next), next)
		if source == SourceCLI {
			p.m.bumpOccurrence(arg.id)
		}

	case Help:
		return clerr.New(clerr.DisplayHelp).WithString(clerr.InvalidArg, p.cmd.BinName())

	case Version:
		return clerr.New(clerr.DisplayVersion).WithString(clerr.InvalidArg, p.cmd.BinName())
	}

	return nil
}

// removeOverrides clears every argument reachable from arg over the
// overrides graph, in both directions: ids arg overrides, and args that
// override arg, transitively, so an override cycle clears every member and
// only the latter-in-argv occurrence survives.
func (p *parser) removeOverrides(arg *Arg) *clerr.Error {
	queue := append([]ID{}, arg.overrides...)
	queue = append(queue, p.overriddenBy(arg.id)...)

	if len(queue) == 0 {
		return nil
	}

	seen := map[ID]bool{arg.id: true}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if seen[id] {
			continue
		}
		seen[id] = true

		p.m.clearAll(id)

		if other := p.cmd.km.ByID(id); other != nil {
			queue = append(queue, other.overrides...)
			queue = append(queue, p.overriddenBy(other.id)...)
		}
	}

	return nil
}

// overriddenBy returns the ids of every argument whose overrides list names
// id.
func (p *parser) overriddenBy(id ID) []ID {
	var out []ID

	for _, other := range p.cmd.args {
		for _, o := range other.overrides {
			if o == id {
				out = append(out, other.id)
				break
			}
		}
	}

	return out
}

// visiblePossibleValues lists the non-hidden entries of an argument's
// possible-value catalog, for diagnostics.
func visiblePossibleValues(arg *Arg) []string {
	var valid []string
	for _, pv := range arg.possibleValues {
		if !pv.Hidden {
			valid = append(valid, pv.Value)
		}
	}
	return valid
}

// parseOne checks a raw value against the argument's possible-value catalog,
// if any, and then runs its value parser (or the identity parser, if none
// was set).
func parseOne(arg *Arg, raw string) (any, *clerr.Error) {
	if len(arg.possibleValues) > 0 {
		found := false
		for _, pv := range arg.possibleValues {
			if pv.Value == raw {
				found = true
				break
			}
		}
		if !found {
			e := clerr.New(clerr.InvalidValue).
				WithString(clerr.InvalidValueCtx, raw).
				WithString(clerr.InvalidArg, arg.displayName()).
				WithStrings(clerr.ValidValue, visiblePossibleValues(arg))
			if sug := levenshtein.Suggestions(raw, visiblePossibleValues(arg), 0); len(sug) > 0 {
				e = e.WithString(clerr.SuggestedValue, sug[0])
			}
			return nil, e
		}
	}

	if arg.valueParser == nil {
		return raw, nil
	}

	typed, err := arg.valueParser(raw)
	if err != nil {
		return nil, clerr.New(clerr.InvalidValue).
			WithString(clerr.InvalidValueCtx, raw).
			WithString(clerr.InvalidArg, arg.displayName()).
			WithSource(err)
	}

	return typed, nil
}

func splitDelimited(vals []string, delim rune) []string {
	var out []string
	for _, v := range vals {
		out = append(out, strings.Split(v, string(delim))...)
	}
	return out
}

// unknownArgumentError builds an UnknownArgument error, suggesting the
// closest long-name or subcommand-name matches.
func (p *parser) unknownArgumentError(raw string) *clerr.Error {
	var choices []string
	for _, name := range p.cmd.km.longNames {
		choices = append(choices, "--"+name)
	}
	for _, sub := range p.cmd.subcommands {
		choices = append(choices, sub.name)
	}

	suggestions := levenshtein.Suggestions(raw, choices, 0)

	e := clerr.New(clerr.UnknownArgument).WithString(clerr.InvalidArg, raw)
	if len(suggestions) > 0 {
		e = e.WithStrings(clerr.Suggested, suggestions)
	}

	return e
}

// lookupSubcommand resolves raw to a direct child Command by exact name,
// exact alias, or (if infer is set) unique prefix over names and aliases.
func (c *Command) lookupSubcommand(raw string, infer bool) (*Command, string, bool) {
	for _, sub := range c.subcommands {
		if sub.name == raw {
			return sub, sub.name, true
		}
		for _, alias := range c.subAliases[sub.name] {
			if alias == raw {
				return sub, sub.name, true
			}
		}
	}

	if !infer || raw == "" {
		return nil, "", false
	}

	type candidate struct {
		sub  *Command
		name string
	}

	var matches []candidate

	seen := map[*Command]bool{}

	for _, sub := range c.subcommands {
		names := append([]string{sub.name}, c.subAliases[sub.name]...)
		for _, n := range names {
			if strings.HasPrefix(n, raw) {
				if !seen[sub] {
					seen[sub] = true
					matches = append(matches, candidate{sub: sub, name: sub.name})
				}
				break
			}
		}
	}

	if len(matches) != 1 {
		return nil, "", false
	}

	return matches[0].sub, matches[0].name, true
}

// resolveHelpPath walks a sequence of subcommand names starting at root,
// returning the deepest Command reached; an unrecognized or empty path
// returns root itself.
func resolveHelpPath(root *Command, path []string) *Command {
	cur := root
	for _, name := range path {
		sub, _, ok := cur.lookupSubcommand(name, cur.settings.Has(InferSubcommands))
		if !ok {
			break
		}
		cur = sub
	}
	return cur
}

// applyDefaults runs after the main loop: for every argument of cmd that was
// never explicitly set, inject its first-matching conditional default, else
// its static defaults, recorded with Source = SourceDefaultValue.
func applyDefaults(cmd *Command, m *Matches) {
	for _, a := range cmd.args {
		if m.IsPresent(a.id) {
			continue
		}

		injected := false

		for _, cd := range a.condDefaults {
			if cd.Predicate(m) {
				typed, err := parseOne(a, cd.Value)
				if err != nil {
					continue
				}
				m.push(a.id, SourceDefaultValue, cd.Value, typed)
				injected = true
				break
			}
		}

		if injected {
			continue
		}

		for _, v := range a.defaultVals {
			typed, err := parseOne(a, v)
			if err != nil {
				continue
			}
			m.push(a.id, SourceDefaultValue, v, typed)
		}
	}
}
