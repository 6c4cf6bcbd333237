// Package flagx holds small helpers that let several independent loaders
// (JSON file, .env file, command-line overrides) share os.Args without
// tripping over each other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the flags named in allowed, together with their
// values. Both "-f value" and "-f=value" forms are understood; a value is
// assumed to follow when the next argument does not start with '-'.
// The result is never nil.
func FilterArgs(args []string, allowed []string) []string {
	known := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		known[f] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if known[name] {
				out = append(out, arg)
			}
			continue
		}

		if !known[arg] {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// lookupString parses a single string flag known under several aliases.
func lookupString(args []string, aliases ...string) string {
	dashed := make([]string, 0, 2*len(aliases))
	for _, a := range aliases {
		dashed = append(dashed, "-"+a, "--"+a)
	}

	var v string
	fs := flag.NewFlagSet("flagx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, a := range aliases {
		fs.StringVar(&v, a, "", "")
	}
	_ = fs.Parse(FilterArgs(args, dashed))
	return v
}

// ConfigFileFlag returns the JSON config path given with -c or -config,
// or "" when absent.
func ConfigFileFlag(args []string) string {
	return lookupString(args, "c", "config")
}

// EnvFileFlag returns the dotenv path given with -env-file, or "" when absent.
func EnvFileFlag(args []string) string {
	return lookupString(args, "env-file")
}
