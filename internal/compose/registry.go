package compose

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tech-arch1tect/compose-resource/types"
)

const DefaultCommand = "up"

type OptionKind int

const (
	FlagOption OptionKind = iota
	ValuedOption
	RepeatedKeyedOption
)

func (k OptionKind) String() string {
	switch k {
	case FlagOption:
		return "flag"
	case ValuedOption:
		return "valued"
	case RepeatedKeyedOption:
		return "repeated_keyed"
	default:
		return fmt.Sprintf("OptionKind(%d)", int(k))
	}
}

// OptionRule turns one entry of the options object into argv tokens.
type OptionRule struct {
	Key       string
	Kind      OptionKind
	Serialize func(types.Value) ([]string, error)
}

type CommandSpec struct {
	Name           string
	AllowsServices bool
	// Detached commands always run with "-d --no-build" right after the name.
	Detached bool
	Rules    []OptionRule
}

var registry = map[string]CommandSpec{
	"down": {
		Name: "down",
		Rules: []OptionRule{
			valued("rmi", "--rmi"),
			flag("volumes", "--volumes"),
			flag("remove_orphans", "--remove-orphans"),
			valued("timeout", "--timeout"),
		},
	},
	"kill": {
		Name:           "kill",
		AllowsServices: true,
		Rules: []OptionRule{
			valued("signal", "-s"),
		},
	},
	"restart": {
		Name: "restart",
	},
	"start": {
		Name:           "start",
		AllowsServices: true,
	},
	"stop": {
		Name:           "stop",
		AllowsServices: true,
		Rules: []OptionRule{
			valued("timeout", "--timeout"),
		},
	},
	"up": {
		Name:           "up",
		AllowsServices: true,
		Detached:       true,
		Rules: []OptionRule{
			flag("no_deps", "--no-deps"),
			flag("force_recreate", "--force-recreate"),
			flag("no_recreate", "--no-recreate"),
			flag("renew_anon_volumes", "--renew-anon-volumes"),
			flag("remove_orphans", "--remove-orphans"),
			keyed("scale", "--scale"),
			valued("timeout", "--timeout"),
		},
	},
}

var supportedCommands = func() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}()

func SupportedCommands() []string {
	return slices.Clone(supportedCommands)
}

// Resolve looks up a lifecycle command. An empty name selects DefaultCommand.
func Resolve(name string) (CommandSpec, error) {
	if name == "" {
		name = DefaultCommand
	}
	spec, ok := registry[name]
	if !ok {
		return CommandSpec{}, &UnsupportedCommandError{Command: name, Supported: SupportedCommands()}
	}
	return spec, nil
}

// Serialize walks the rules in declaration order and collects the tokens of
// every option present in options. Absent and null options emit nothing.
func (s CommandSpec) Serialize(options types.Object) ([]string, error) {
	var tokens []string
	for _, rule := range s.Rules {
		value, ok := options.Get(rule.Key)
		if !ok || value.IsNull() {
			continue
		}
		out, err := rule.Serialize(value)
		if err != nil {
			return nil, &OptionError{Command: s.Name, Key: rule.Key, Err: err}
		}
		tokens = append(tokens, out...)
	}
	return tokens, nil
}

func flag(key, token string) OptionRule {
	return OptionRule{
		Key:  key,
		Kind: FlagOption,
		Serialize: func(v types.Value) ([]string, error) {
			if !v.Truthy() {
				return nil, nil
			}
			return []string{token}, nil
		},
	}
}

func valued(key, token string) OptionRule {
	return OptionRule{
		Key:  key,
		Kind: ValuedOption,
		Serialize: func(v types.Value) ([]string, error) {
			s, err := v.Scalar()
			if err != nil {
				return nil, err
			}
			return []string{token, s}, nil
		},
	}
}

func keyed(key, token string) OptionRule {
	return OptionRule{
		Key:  key,
		Kind: RepeatedKeyedOption,
		Serialize: func(v types.Value) ([]string, error) {
			pairs, err := v.Object()
			if err != nil {
				return nil, err
			}
			tokens := make([]string, 0, 2*len(pairs))
			for _, pair := range pairs {
				count, err := pair.Value.Scalar()
				if err != nil {
					return nil, fmt.Errorf("%s: %w", pair.Key, err)
				}
				tokens = append(tokens, token, pair.Key+"="+count)
			}
			return tokens, nil
		},
	}
}

type UnsupportedCommandError struct {
	Command   string
	Supported []string
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("Unsupported command: %s\nPossible commands: %s\n", e.Command, strings.Join(e.Supported, ", "))
}

var ErrInvalidOption = errors.New("invalid option")

type OptionError struct {
	Command string
	Key     string
	Err     error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid option %q for %s: %v", e.Key, e.Command, e.Err)
}

func (e *OptionError) Unwrap() []error {
	return []error{ErrInvalidOption, e.Err}
}
