package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
)

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds     map[string]*Command
	fallback string
}

// NewRegistry returns an empty command registry. fallback names the command Execute runs when
// no subcommand is given or the first argument is a flag.
func NewRegistry(fallback string) *Registry {
	return &Registry{cmds: make(map[string]*Command), fallback: fallback}
}

// Register adds a subcommand. fs is that command's FlagSet; run is called after fs.Parse(args[1:]) succeeds.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 || (len(args[0]) > 0 && args[0][0] == '-') {
		args = append([]string{r.fallback}, args...)
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Run()
}

// PrintUsage writes one line per registered command, sorted by name.
func (r *Registry) PrintUsage(w io.Writer) {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-8s %s\n", n, r.cmds[n].Usage)
	}
}
