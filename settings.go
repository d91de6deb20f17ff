package clap

// Setting is one command-wide flag affecting parsing. Settings compose as a
// bitmask so a Command can test, set, and propagate them cheaply; the Build
// pass ORs a command's settings with its global ancestors'.
type Setting uint32

const (
	NoBinaryName Setting = 1 << iota
	Multicall
	SubcommandRequired
	AllowExternalSubcommands
	ArgsConflictWithSubcommands
	SubcommandNegatesReqs
	SubcommandPrecedenceOverArg
	AllowMissingPositional
	DontDelimitTrailingValues
	IgnoreErrors
	InferLongArgs
	InferSubcommands
	DisableHelpFlag
	DisableVersionFlag
	DisableHelpSubcommand
	PropagateVersion
	ArgsOverrideSelf
	ArgRequiredElseHelp
)

// Has reports whether every bit in want is set in s.
func (s Setting) Has(want Setting) bool {
	return s&want == want
}

// Set returns s with every bit of add turned on.
func (s Setting) Set(add Setting) Setting {
	return s | add
}

// Clear returns s with every bit of remove turned off.
func (s Setting) Clear(remove Setting) Setting {
	return s &^ remove
}
