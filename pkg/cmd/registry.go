package cmd

// Registry stores commands in registration order. It does not perform dispatch;
// each adapter looks up commands and invokes them with its own context.
type Registry struct {
	order    []Command
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command. Registering a name again replaces the earlier
// command in place, keeping its position.
func (r *Registry) Register(c Command) {
	if _, ok := r.commands[c.Name()]; ok {
		for i, existing := range r.order {
			if existing.Name() == c.Name() {
				r.order[i] = c
			}
		}
	} else {
		r.order = append(r.order, c)
	}
	r.commands[c.Name()] = c
}

// GetAll returns all registered commands in registration order.
func (r *Registry) GetAll() []Command {
	return append([]Command(nil), r.order...)
}

// Matching returns, in registration order, the commands whose root implements
// Matcher and accepts input.
func (r *Registry) Matching(input string) []Command {
	var out []Command
	for _, c := range r.order {
		if m, ok := Root(c).(Matcher); ok && m.Match(input) {
			out = append(out, c)
		}
	}
	return out
}
