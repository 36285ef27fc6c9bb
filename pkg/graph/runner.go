package graph

import (
	"context"
	"fmt"
)

// defaultMaxSteps bounds a run so a miswired cycle cannot spin forever.
const defaultMaxSteps = 50

// Runner is a compiled, immutable graph. Safe for concurrent Invoke calls;
// the only shared state is the checkpointer.
type Runner[S State[S]] struct {
	nodes    map[string]NodeFunc[S]
	edges    map[string]string
	branches map[string]branch[S]
	entry    string
	maxSteps int

	checkpointer Checkpointer[S]
	// memento projects the slots that survive between runs (the append-only
	// memory) out of the final state. Everything else is discarded.
	memento func(S) S
}

// RunnerOption configures a compiled graph.
type RunnerOption[S State[S]] func(*Runner[S])

// WithCheckpointer enables cross-run persistence. memento selects the
// persisted projection of the final state; it is saved under the thread id
// after a successful run and merged under the initial state on the next one.
func WithCheckpointer[S State[S]](cp Checkpointer[S], memento func(S) S) RunnerOption[S] {
	return func(r *Runner[S]) {
		r.checkpointer = cp
		r.memento = memento
	}
}

// WithMaxSteps overrides the default cycle guard.
func WithMaxSteps[S State[S]](n int) RunnerOption[S] {
	return func(r *Runner[S]) {
		if n > 0 {
			r.maxSteps = n
		}
	}
}

// Invoke executes one run. The initial patch is merged over any checkpointed
// memory for threadID, then nodes execute per the edge table until END.
// On success the memory projection of the final state is saved back under
// threadID; on failure nothing is persisted and the error is returned with
// the failing node's name attached.
func (r *Runner[S]) Invoke(ctx context.Context, initial S, threadID string) (S, error) {
	var zero S

	state := initial
	if r.checkpointer != nil && threadID != "" {
		saved, found, err := r.checkpointer.Load(ctx, threadID)
		if err != nil {
			return zero, fmt.Errorf("load checkpoint %q: %w", threadID, err)
		}
		if found {
			state = saved.Merge(initial)
		}
	}

	current := r.entry
	for step := 0; ; step++ {
		if step >= r.maxSteps {
			return zero, fmt.Errorf("graph: exceeded %d steps at node %q", r.maxSteps, current)
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		patch, err := r.nodes[current](ctx, state)
		if err != nil {
			return zero, fmt.Errorf("node %q: %w", current, err)
		}
		state = state.Merge(patch)

		next, err := r.next(current, state)
		if err != nil {
			return zero, err
		}
		if next == END {
			break
		}
		current = next
	}

	if r.checkpointer != nil && threadID != "" {
		if err := r.checkpointer.Save(ctx, threadID, r.memento(state)); err != nil {
			return zero, fmt.Errorf("save checkpoint %q: %w", threadID, err)
		}
	}
	return state, nil
}

func (r *Runner[S]) next(current string, state S) (string, error) {
	if to, ok := r.edges[current]; ok {
		return to, nil
	}
	br := r.branches[current]
	label := br.route(state)
	to, ok := br.targets[label]
	if !ok {
		// Unreachable when the router's output domain matches its table.
		return "", fmt.Errorf("graph: node %q routed to undeclared label %q", current, label)
	}
	return to, nil
}
