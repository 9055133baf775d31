package directive

import "fmt"

// UnknownAliasError reports a directive that references an alias name before
// the module defines it.
type UnknownAliasError struct {
	Name      string
	Line      int
	Character int
}

func (e *UnknownAliasError) Error() string {
	return fmt.Sprintf("line %d:%d: alias %q referenced before its definition", e.Line, e.Character, e.Name)
}

type aliasEntry struct {
	command string
	args    []string
}

// Registry accumulates alias definitions during one module's directive scan.
// It is rebuilt fresh for every module; entries never outlive the scan and
// are never shared across modules.
type Registry struct {
	aliases map[string]aliasEntry
	known   map[string]bool
}

// NewRegistry returns an empty registry primed with every alias name defined
// anywhere in ds. Knowing the full name set lets Expand tell a forward
// reference to a not-yet-defined alias apart from a plain command.
func NewRegistry(ds []Directive) *Registry {
	known := make(map[string]bool)
	for i := range ds {
		if ds[i].IsAlias() {
			known[ds[i].AliasName] = true
		}
	}
	return &Registry{
		aliases: make(map[string]aliasEntry),
		known:   known,
	}
}

// Define records an alias. A later definition overwrites an earlier one with
// the same name.
func (r *Registry) Define(name, command string, args []string) {
	r.aliases[name] = aliasEntry{
		command: command,
		args:    append([]string(nil), args...),
	}
}

// Resolve returns the command and args bound to name, if defined so far.
func (r *Registry) Resolve(name string) (string, []string, bool) {
	entry, ok := r.aliases[name]
	if !ok {
		return "", nil, false
	}
	return entry.command, entry.args, true
}

// Expand resolves d's command against the registry. When the command matches
// a defined alias, the alias's command is substituted and the alias's args
// come before d's own args. The substituted command is never itself resolved
// again, so aliases do not chain. A command naming an alias that the module
// defines only on a later line is an UnknownAliasError.
func (r *Registry) Expand(d Directive) (Directive, error) {
	entry, ok := r.aliases[d.Command]
	if !ok {
		if r.known[d.Command] {
			return Directive{}, &UnknownAliasError{
				Name:      d.Command,
				Line:      d.Line,
				Character: d.Character,
			}
		}
		return d, nil
	}
	out := d
	out.Command = entry.command
	out.Args = append(append([]string(nil), entry.args...), d.Args...)
	return out, nil
}
