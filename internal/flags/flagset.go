package flags

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
)

type FlagSetWithVisit struct {
	fs       *flag.FlagSet
	out      io.Writer
	visited  map[string]bool
	aliases  map[string]string // short name → long name
	usageMap map[string]string // long name → usage string
}

func NewFlagSetWithVisit(name string, handling flag.ErrorHandling) *FlagSetWithVisit {
	fs := flag.NewFlagSet(name, handling)

	fsv := &FlagSetWithVisit{
		fs:       fs,
		out:      os.Stderr,
		visited:  make(map[string]bool),
		aliases:  make(map[string]string),
		usageMap: make(map[string]string),
	}

	// Override default usage
	fs.Usage = func() {
		fmt.Fprintf(fsv.out, "Usage of %s:\n", name)
		fsv.printUsage()
	}

	return fsv
}

// SetOutput redirects usage and error messages.
func (fsv *FlagSetWithVisit) SetOutput(w io.Writer) {
	fsv.out = w
	fsv.fs.SetOutput(w)
}

func (fsv *FlagSetWithVisit) register(name, short, usage string) {
	if short != "" {
		fsv.aliases[short] = name
	}
	fsv.usageMap[name] = usage
}

// Register a bool flag with optional short alias
func (fsv *FlagSetWithVisit) BoolVar(p *bool, name, short string, value bool, usage string) {
	fsv.fs.BoolVar(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Register a string flag with optional short alias
func (fsv *FlagSetWithVisit) StringVar(p *string, name, short, value, usage string) {
	fsv.fs.StringVar(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Register an int flag with optional short alias
func (fsv *FlagSetWithVisit) IntVar(p *int, name, short string, value int, usage string) {
	fsv.fs.IntVar(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Register an int64 flag with optional short alias
func (fsv *FlagSetWithVisit) Int64Var(p *int64, name, short string, value int64, usage string) {
	fsv.fs.Int64Var(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Register a float64 flag with optional short alias
func (fsv *FlagSetWithVisit) Float64Var(p *float64, name, short string, value float64, usage string) {
	fsv.fs.Float64Var(p, name, value, usage)
	fsv.register(name, short, usage)
}

// Expand short aliases and parse args
func (fsv *FlagSetWithVisit) Parse(args []string) error {
	args = fsv.expandAliases(args)
	err := fsv.fs.Parse(args)
	if err != nil {
		return err
	}
	fsv.fs.Visit(func(f *flag.Flag) {
		fsv.visited[f.Name] = true
	})
	return nil
}

// Replace short flags (e.g. -r) with full names (e.g. -reset)
func (fsv *FlagSetWithVisit) expandAliases(args []string) []string {
	var expanded []string
	for _, arg := range args {
		// Match: -r or -r=value
		if len(arg) >= 2 && arg[0] == '-' && arg[1] != '-' {
			eqIdx := -1
			for i := 1; i < len(arg); i++ {
				if arg[i] == '=' {
					eqIdx = i
					break
				}
			}
			name := arg[1:]
			value := ""
			if eqIdx != -1 {
				name = arg[1:eqIdx]
				value = arg[eqIdx:]
			}
			if full, ok := fsv.aliases[name]; ok {
				expanded = append(expanded, "-"+full+value)
			} else {
				expanded = append(expanded, arg)
			}
		} else {
			expanded = append(expanded, arg)
		}
	}
	return expanded
}

// Check if a specific flag was explicitly set
func (fsv *FlagSetWithVisit) IsCustom(name string) bool {
	return fsv.visited[name]
}

func (fsv *FlagSetWithVisit) Usage() {
	fsv.fs.Usage()
}

// Print formatted usage with short aliases
func (fsv *FlagSetWithVisit) printUsage() {
	var names []string
	var nameLen int
	for name := range fsv.usageMap {
		names = append(names, name)
		if len(name) > nameLen {
			nameLen = len(name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		usage := fsv.usageMap[name]
		short := ""
		for s, full := range fsv.aliases {
			if full == name {
				short = s
				break
			}
		}
		if short != "" {
			fmt.Fprintf(fsv.out, "  -%s, -%-*s\t%s\n", short, nameLen, name, usage)
		} else {
			fmt.Fprintf(fsv.out, "      -%-*s\t%s\n", nameLen, name, usage)
		}
	}
}
