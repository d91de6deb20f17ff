package clap

import "strings"

// keyMap provides O(1) lookup of an Arg by long name, short char, or
// positional index, populated once by the Build pass. The index is flat per
// Command since Build already flattens propagated globals into each
// subcommand's own arg list.
type keyMap struct {
	byLong       map[string]*Arg
	byShort      map[rune]*Arg
	byPositional map[int]*Arg
	byID         map[ID]*Arg
	positionals  []*Arg // in declaration order, not sorted by index

	longNames []string // for prefix search and "did you mean", declaration order
}

func newKeyMap() *keyMap {
	return &keyMap{
		byLong:       map[string]*Arg{},
		byShort:      map[rune]*Arg{},
		byPositional: map[int]*Arg{},
		byID:         map[ID]*Arg{},
	}
}

func (km *keyMap) index(a *Arg) {
	km.byID[a.id] = a

	if a.long != "" {
		km.byLong[a.long] = a
		km.longNames = append(km.longNames, a.long)
	}

	for _, alias := range a.aliases {
		km.byLong[alias.Name] = a
		if !alias.Hidden {
			km.longNames = append(km.longNames, alias.Name)
		}
	}

	if a.short != 0 {
		km.byShort[a.short] = a
	}

	if a.positionSet {
		km.byPositional[a.positional] = a
		km.positionals = append(km.positionals, a)
	}
}

// ByLong resolves name to an Arg by exact match, or (if infer is set) by
// unique prefix among long names and visible aliases. Hidden aliases resolve
// by exact match only.
func (km *keyMap) ByLong(name string, infer bool) *Arg {
	if a, ok := km.byLong[name]; ok {
		return a
	}

	if !infer || name == "" {
		return nil
	}

	var match *Arg

	seen := map[*Arg]bool{}

	for _, long := range km.longNames {
		if strings.HasPrefix(long, name) {
			a := km.byLong[long]
			if !seen[a] {
				seen[a] = true
				if match != nil && match != a {
					return nil // ambiguous: >=2 distinct candidates
				}
				match = a
			}
		}
	}

	return match
}

// ByShort resolves an exact short char.
func (km *keyMap) ByShort(c rune) *Arg {
	return km.byShort[c]
}

// ByPositional resolves an exact 1-based positional index.
func (km *keyMap) ByPositional(index int) *Arg {
	return km.byPositional[index]
}

// ByID resolves an exact argument id.
func (km *keyMap) ByID(id ID) *Arg {
	return km.byID[id]
}
