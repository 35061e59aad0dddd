package actions

import "fmt"

// State is the evaluated menu entry for one action.
type State struct {
	ID      ID
	Label   string
	Enabled bool
}

// Registry holds the actions menu. Registration order is menu order.
type Registry struct {
	actions []Action
	byID    map[ID]Action
}

// NewRegistry returns a registry holding the given actions.
// It panics on duplicate IDs.
func NewRegistry(actions ...Action) *Registry {
	r := &Registry{byID: make(map[ID]Action)}
	for _, a := range actions {
		if err := r.Register(a); err != nil {
			panic(err)
		}
	}
	return r
}

// Default returns a registry holding the built-in actions.
func Default() *Registry {
	return NewRegistry(Builtins()...)
}

// Register appends an action to the menu.
func (r *Registry) Register(a Action) error {
	if _, dup := r.byID[a.ID()]; dup {
		return fmt.Errorf("action %q already registered", a.ID())
	}
	r.actions = append(r.actions, a)
	r.byID[a.ID()] = a
	return nil
}

// Get returns the action with the given ID.
func (r *Registry) Get(id ID) (Action, bool) {
	a, ok := r.byID[id]
	return a, ok
}

// IDs returns the registered IDs in menu order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, len(r.actions))
	for i, a := range r.actions {
		ids[i] = a.ID()
	}
	return ids
}

// Evaluate recomputes every action's enablement against env.
func (r *Registry) Evaluate(env *Env) []State {
	states := make([]State, len(r.actions))
	for i, a := range r.actions {
		states[i] = State{ID: a.ID(), Label: a.Label(), Enabled: a.Enabled(env)}
	}
	return states
}

// Enabled reports whether the action is currently enabled. Unknown IDs are
// disabled.
func (r *Registry) Enabled(id ID, env *Env) bool {
	a, ok := r.byID[id]
	return ok && a.Enabled(env)
}

// Prompt returns the confirmation prompt for id, or "" if the action runs
// without confirmation.
func (r *Registry) Prompt(id ID, env *Env) string {
	if c, ok := r.byID[id].(Confirming); ok {
		return c.Prompt(env)
	}
	return ""
}

// Run checks the action is enabled, asks for confirmation when the action
// requires it, and runs it. The enablement check is repeated here because
// the menu may be showing stale state.
func (r *Registry) Run(id ID, env *Env, confirm Confirmer) (*Job, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, id)
	}
	if !a.Enabled(env) {
		return nil, fmt.Errorf("%s: %w", id, ErrActionDisabled)
	}
	if c, ok := a.(Confirming); ok && confirm != nil {
		if !confirm.Confirm(c.Prompt(env)) {
			return nil, ErrAborted
		}
	}
	return a.Run(env)
}
