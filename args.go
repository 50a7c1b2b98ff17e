package strata

import (
	"context"
	"strings"
)

// ArgsSource reads configuration from command-line arguments.
// Supported forms: "--key=value", "--key value", "/key=value",
// "/key value", and plain "key=value". Switch mappings translate
// short "-s" and alternate "--long" switches into configuration keys;
// a single-dash switch without a mapping is skipped.
type ArgsSource struct {
	args     []string
	switches map[string]string
}

// NewArgsSource creates a source over the given arguments, typically
// os.Args[1:].
func NewArgsSource(args []string) *ArgsSource {
	return &ArgsSource{args: args}
}

// SwitchMappings sets the switch alias table. Map keys keep their
// dashes (e.g. "-h" or "--hostname") and map to the configuration key
// the value is stored under.
func (s *ArgsSource) SwitchMappings(mappings map[string]string) *ArgsSource {
	s.switches = make(map[string]string, len(mappings))
	for alias, key := range mappings {
		s.switches[NormalizeKey(alias)] = key
	}
	return s
}

// Build returns the provider for this source.
func (s *ArgsSource) Build() Provider {
	return &argsProvider{
		MapProvider: NewMapProvider("args"),
		source:      s,
	}
}

// Ensure ArgsSource implements Source.
var _ Source = (*ArgsSource)(nil)

type argsProvider struct {
	*MapProvider
	source *ArgsSource
}

// Load parses the arguments and replaces the store. Later duplicates
// of a key win, matching provider precedence semantics within one
// argument list.
func (p *argsProvider) Load(_ context.Context) error {
	values := make(map[string]*string)
	args := p.source.args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "/key" behaves like "--key"
		if strings.HasPrefix(arg, "/") {
			arg = "--" + arg[1:]
		}

		keyStart := 0
		switch {
		case strings.HasPrefix(arg, "--"):
			keyStart = 2
		case strings.HasPrefix(arg, "-"):
			keyStart = 1
		}

		var key, value string
		if sep := strings.Index(arg, "="); sep >= 0 {
			mapped, ok := p.source.switches[NormalizeKey(arg[:sep])]
			switch {
			case ok:
				key = mapped
			case keyStart == 1:
				// Unmapped single-dash switch, skip
				continue
			default:
				key = arg[keyStart:sep]
			}
			value = arg[sep+1:]
		} else {
			if keyStart == 0 {
				// Bare token without "=", skip
				continue
			}
			mapped, ok := p.source.switches[NormalizeKey(arg)]
			switch {
			case ok:
				key = mapped
			case keyStart == 1:
				continue
			default:
				key = arg[keyStart:]
			}
			if i+1 >= len(args) {
				// Switch without a value, skip
				continue
			}
			i++
			value = args[i]
		}

		if key == "" {
			continue
		}
		values[key] = String(value)
	}

	p.Replace(values)
	return nil
}
