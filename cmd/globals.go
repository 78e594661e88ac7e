package cmd

import "strings"

// globalOptions holds the root persistent flags.
type globalOptions struct {
	debug   bool
	cfgFile string
	wpPath  string
	wpBin   string
}

// extract pulls the root persistent flags out of raw, for commands that
// receive their arguments unparsed, and returns what remains.
func (g *globalOptions) extract(raw []string) []string {
	rest := make([]string, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		a := raw[i]
		if a == "--" {
			rest = append(rest, raw[i:]...)
			break
		}
		name, value, hasValue := strings.Cut(a, "=")
		switch name {
		case "-d", "--debug":
			g.debug = !hasValue || value == "true"
		case "-c", "--config", "--path", "--wp-bin":
			if !hasValue {
				if i+1 >= len(raw) {
					rest = append(rest, a)
					continue
				}
				i++
				value = raw[i]
			}
			switch name {
			case "-c", "--config":
				g.cfgFile = value
			case "--path":
				g.wpPath = value
			case "--wp-bin":
				g.wpBin = value
			}
		default:
			rest = append(rest, a)
		}
	}
	return rest
}

func wantsHelp(raw []string) bool {
	for _, a := range raw {
		if a == "--" {
			return false
		}
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}
