package cmd

import "strings"

// reorderArgs moves positional arguments to the end so that Go's flag package
// can parse all flags regardless of where the file arguments appear.
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if strings.HasPrefix(args[i], "-") && args[i] != "-" {
			flags = append(flags, args[i])
			// Consume the next arg as the flag's value unless it looks like a flag itself.
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") && !strings.Contains(args[i], "=") && !boolFlags[strings.TrimLeft(args[i], "-")] {
				flags = append(flags, args[i+1])
				i++
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}

// boolFlags take no value, so the argument after them is positional.
var boolFlags = map[string]bool{
	"quiet": true,
}
