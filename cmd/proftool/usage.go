package proftool

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

const usageText = `proftool - print profile statistics
Usage: proftool [options] file[s]
Options:
   --apparmor - print profiles without apparmor
   --caps - print profiles without caps
   --ssh - print profiles without "include disable-common.inc"
   --noexec - print profiles without "include disable-exec.inc"
   --private-dev - print profiles without private-dev
   --private-tmp - print profiles without private-tmp
   --seccomp - print profiles without seccomp
   --whitelist-var - print profiles without "include whitelist-var-common.inc"
   --debug

Output and traversal:
   --json - print the full result as JSON
   --sarif - print warnings as SARIF 2.1.0
   --table - print the report as a table
   --no-color - disable colorized warnings
   --strict-prefix - require whitespace or end of line after a directive
   --max-depth N - include nesting limit (default 32)
   --include-dir DIR - extra directory to resolve includes from (repeatable)
   --exclude GLOBS - comma-separated globs of input files to skip
   --config FILE - read configuration from FILE
   --log-level LEVEL - debug, info, warn or error (default warn)

`

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// precheck scans the leading options in order, the way they are consumed
// before the first file name. It handles --help and rejects unknown options
// so that whichever comes first wins. done is true when the caller should
// exit with code.
func precheck(fs *pflag.FlagSet, args []string, stdout, stderr io.Writer) (code int, done bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			return 0, false
		}
		if arg == "--help" || arg == "-h" {
			printUsage(stdout)
			return 0, true
		}
		var fl *pflag.Flag
		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch {
		case strings.HasPrefix(arg, "--"):
			fl = fs.Lookup(name)
		case len(name) == 1:
			fl = fs.ShorthandLookup(name)
		}
		if fl == nil {
			fmt.Fprintf(stderr, "Error: invalid option %s\n", arg)
			return 1, true
		}
		if fl.NoOptDefVal == "" && !hasValue {
			i++ // value is the next argument
		}
	}
	return 0, false
}
