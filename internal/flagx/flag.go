// Package flagx lets several config layers read their own flags from the
// same command line without tripping over each other's flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in allowedFlags, together with their
// values. Both "-f value" and "-f=value" forms are recognised. A token that
// starts with "-" is never consumed as a value.
//
// The result is never nil, so it can be passed straight to FlagSet.Parse.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFileFlag returns the JSON config path given with -c or -config, or ""
// when neither is present. When both are given the last one wins.
func ConfigFileFlag() string {
	return lookupString(os.Args[1:], "c", "config")
}

// EnvFileFlag returns the dotenv path given with -e or -env, or "".
func EnvFileFlag() string {
	return lookupString(os.Args[1:], "e", "env")
}

func lookupString(args []string, short, long string) string {
	var v string

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.StringVar(&v, long, "", "")
	fs.StringVar(&v, short, "", "")
	_ = fs.Parse(FilterArgs(args, []string{"-" + short, "-" + long}))

	return v
}
