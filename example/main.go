package main

import (
	"fmt"
	"os"

	"github.com/clapgo/clap"
	"github.com/clapgo/clap/clerr"
	"github.com/clapgo/clap/valueparse"
)

func main() {
	// The command tree is declared once and reused for every parse.
	// Here: a small release tool with a single-select version-bump
	// group and a validated server address.
	cmd := clap.New("release").
		Version("1.4.0", "release 1.4.0 (stable)").
		Arg(clap.NewArg("verbose").Short('v').ActionFn(clap.Count).Global(true).
			Help("Increase output verbosity", "")).
		Arg(clap.NewArg("registry").Long("registry").
			Parser(valueparse.URL()).
			Default("https://registry.example.com").
			Help("Registry to publish to", "")).
		Arg(clap.NewArg("set-ver").Long("set-ver").
			Help("Set the version explicitly", "")).
		Arg(clap.NewArg("major").Long("major").ActionFn(clap.SetTrue)).
		Arg(clap.NewArg("minor").Long("minor").ActionFn(clap.SetTrue)).
		Arg(clap.NewArg("patch").Long("patch").ActionFn(clap.SetTrue)).
		ArgGroup(clap.NewGroup("vers").
			Arg("set-ver").Arg("major").Arg("minor").Arg("patch").
			Required(true)).
		Subcommand(clap.New("publish").
			Arg(clap.NewArg("package").Positional(1).Required(true)).
			Arg(clap.NewArg("dry-run").Long("dry-run").ActionFn(clap.SetTrue)))

	m, err := cmd.Parse(os.Args)
	if err != nil {
		// Display-flow "errors" are not failures: print and exit 0.
		if err.IsDisplay() {
			fmt.Println(err.Error())
			os.Exit(0)
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if usage, ok := err.Context(clerr.Usage); ok && usage.String != "" {
			fmt.Fprintf(os.Stderr, "usage: %s\n", usage.String)
		}
		if err.HelpRef != "" {
			fmt.Fprintf(os.Stderr, "for more information, try '%s'\n", err.HelpRef)
		}

		os.Exit(err.ExitCode())
	}

	if n := m.Occurrences("verbose"); n > 0 {
		fmt.Printf("verbosity: %d\n", n)
	}

	registry, _ := m.GetString("registry")
	fmt.Printf("registry: %s\n", registry)

	switch {
	case m.IsPresent("major"):
		fmt.Println("bumping major version")
	case m.IsPresent("minor"):
		fmt.Println("bumping minor version")
	case m.IsPresent("patch"):
		fmt.Println("bumping patch version")
	default:
		v, _ := m.GetString("set-ver")
		fmt.Printf("setting version to %s\n", v)
	}

	if name, sub, ok := m.Subcommand(); ok && name == "publish" {
		pkg, _ := sub.GetString("package")
		if sub.IsPresent("dry-run") {
			fmt.Printf("would publish %s\n", pkg)
			return
		}

		fmt.Printf("publishing %s\n", pkg)
	}
}
