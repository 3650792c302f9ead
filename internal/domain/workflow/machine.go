package workflow

import (
	"context"
	"fmt"
)

// GuardFunc decides whether a guarded transition may be taken
type GuardFunc func(ctx context.Context) bool

// StateMachine tracks the current status level and validates transitions
type StateMachine interface {
	State() State
	Fire(ctx context.Context, trigger Trigger) error
}

type transition struct {
	to    State
	guard GuardFunc
}

// Builder collects transitions before a machine is built.
type Builder struct {
	table map[State]map[Trigger][]transition
}

// NewBuilder creates an empty transition table
func NewBuilder() *Builder {
	return &Builder{table: make(map[State]map[Trigger][]transition)}
}

// Permit allows trigger to move from one state to another.
func (b *Builder) Permit(from State, trigger Trigger, to State) *Builder {
	return b.PermitIf(from, trigger, to, nil)
}

// PermitIf is Permit with a guard; guarded transitions are tried in registration order.
func (b *Builder) PermitIf(from State, trigger Trigger, to State, guard GuardFunc) *Builder {
	if !from.IsValid() || !to.IsValid() {
		panic(fmt.Sprintf("invalid transition %s -> %s", from, to))
	}
	if b.table[from] == nil {
		b.table[from] = make(map[Trigger][]transition)
	}
	b.table[from][trigger] = append(b.table[from][trigger], transition{to: to, guard: guard})
	return b
}

// Build returns a machine starting at initial. Later builder changes do not affect it.
func (b *Builder) Build(initial State) StateMachine {
	if !initial.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initial))
	}

	table := make(map[State]map[Trigger][]transition, len(b.table))
	for from, triggers := range b.table {
		table[from] = make(map[Trigger][]transition, len(triggers))
		for trigger, ts := range triggers {
			table[from][trigger] = append([]transition(nil), ts...)
		}
	}
	return &machine{current: initial, table: table}
}

type machine struct {
	current State
	table   map[State]map[Trigger][]transition
}

func (m *machine) State() State {
	return m.current
}

func (m *machine) Fire(ctx context.Context, trigger Trigger) error {
	ts := m.table[m.current][trigger]
	if len(ts) == 0 {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, trigger, m.current)
	}
	for _, t := range ts {
		if t.guard == nil || t.guard(ctx) {
			m.current = t.to
			return nil
		}
	}
	return fmt.Errorf("%w: %s from %s", ErrGuardFailed, trigger, m.current)
}
