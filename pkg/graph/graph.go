// Package graph implements a small state-graph execution engine.
//
// A graph threads a mutable state value through a sequence of named nodes.
// Each node returns a patch that is merged into the running state; edges
// (plain or conditional) decide which node runs next. Graphs with a
// checkpointer persist conversational memory between runs keyed by a
// thread id.
package graph

import (
	"context"
	"errors"
	"fmt"
)

// END is the reserved edge target that terminates a run.
const END = "__end__"

// State is the constraint every graph state type must satisfy.
// Merge overlays a patch onto the receiver: set fields replace, append-only
// slots (declared by the concrete type) concatenate. Merge must not mutate
// the receiver or the patch.
type State[S any] interface {
	Merge(patch S) S
}

// NodeFunc is a unit of work. It receives the accumulated state and returns
// a patch, not a full replacement. Returning an error fails the whole run.
type NodeFunc[S State[S]] func(ctx context.Context, state S) (S, error)

// RouteFunc inspects the accumulated state and returns the label of the
// edge to follow. The label must be a key of the dispatch table declared
// with AddConditionalEdges.
type RouteFunc[S State[S]] func(state S) string

var (
	ErrNoEntryPoint = errors.New("graph: entry point not set")
	ErrCompiled     = errors.New("graph: already compiled")
)

type branch[S State[S]] struct {
	route   RouteFunc[S]
	targets map[string]string
}

// StateGraph is the builder. Assemble nodes and edges, then Compile.
type StateGraph[S State[S]] struct {
	nodes    map[string]NodeFunc[S]
	edges    map[string]string
	branches map[string]branch[S]
	entry    string
	err      error
}

// NewStateGraph creates an empty graph builder.
func NewStateGraph[S State[S]]() *StateGraph[S] {
	return &StateGraph[S]{
		nodes:    make(map[string]NodeFunc[S]),
		edges:    make(map[string]string),
		branches: make(map[string]branch[S]),
	}
}

// AddNode registers a named node. Registering the same name twice is a
// construction error surfaced by Compile.
func (g *StateGraph[S]) AddNode(name string, fn NodeFunc[S]) *StateGraph[S] {
	if name == END {
		g.fail(fmt.Errorf("graph: node name %q is reserved", END))
		return g
	}
	if _, exists := g.nodes[name]; exists {
		g.fail(fmt.Errorf("graph: node %q registered twice", name))
		return g
	}
	g.nodes[name] = fn
	return g
}

// AddEdge declares an unconditional transition from one node to another
// (or to END).
func (g *StateGraph[S]) AddEdge(from, to string) *StateGraph[S] {
	if _, exists := g.edges[from]; exists {
		g.fail(fmt.Errorf("graph: node %q already has an outgoing edge", from))
		return g
	}
	if _, exists := g.branches[from]; exists {
		g.fail(fmt.Errorf("graph: node %q already has conditional edges", from))
		return g
	}
	g.edges[from] = to
	return g
}

// AddConditionalEdges declares a dispatch table on a node: after the node
// runs, route is evaluated against the state and the resulting label is
// looked up in targets. The label set of targets is the complete output
// domain of route; a label missing from the table is a configuration error.
func (g *StateGraph[S]) AddConditionalEdges(from string, route RouteFunc[S], targets map[string]string) *StateGraph[S] {
	if _, exists := g.edges[from]; exists {
		g.fail(fmt.Errorf("graph: node %q already has an outgoing edge", from))
		return g
	}
	if _, exists := g.branches[from]; exists {
		g.fail(fmt.Errorf("graph: node %q already has conditional edges", from))
		return g
	}
	if len(targets) == 0 {
		g.fail(fmt.Errorf("graph: conditional edges on %q need at least one target", from))
		return g
	}
	g.branches[from] = branch[S]{route: route, targets: targets}
	return g
}

// SetEntryPoint names the node every run starts at.
func (g *StateGraph[S]) SetEntryPoint(name string) *StateGraph[S] {
	g.entry = name
	return g
}

// SetFinishPoint marks a node as terminal (an edge to END).
func (g *StateGraph[S]) SetFinishPoint(name string) *StateGraph[S] {
	return g.AddEdge(name, END)
}

func (g *StateGraph[S]) fail(err error) {
	if g.err == nil {
		g.err = err
	}
}

// Compile validates the topology and returns a Runner. Validation errors
// abort compilation; nothing is deferred to run time except dispatch-label
// lookups, which are unreachable when the router's output domain matches
// its declared table.
func (g *StateGraph[S]) Compile(opts ...RunnerOption[S]) (*Runner[S], error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.entry == "" {
		return nil, ErrNoEntryPoint
	}
	if _, ok := g.nodes[g.entry]; !ok {
		return nil, fmt.Errorf("graph: entry point %q is not a registered node", g.entry)
	}
	for from, to := range g.edges {
		if _, ok := g.nodes[from]; !ok {
			return nil, fmt.Errorf("graph: edge from unknown node %q", from)
		}
		if to != END {
			if _, ok := g.nodes[to]; !ok {
				return nil, fmt.Errorf("graph: edge %q -> unknown node %q", from, to)
			}
		}
	}
	for from, br := range g.branches {
		if _, ok := g.nodes[from]; !ok {
			return nil, fmt.Errorf("graph: conditional edges from unknown node %q", from)
		}
		for label, to := range br.targets {
			if to == END {
				continue
			}
			if _, ok := g.nodes[to]; !ok {
				return nil, fmt.Errorf("graph: conditional edge %q[%s] -> unknown node %q", from, label, to)
			}
		}
	}
	// Every node must either terminate or lead somewhere.
	for name := range g.nodes {
		_, hasEdge := g.edges[name]
		_, hasBranch := g.branches[name]
		if !hasEdge && !hasBranch {
			return nil, fmt.Errorf("graph: node %q has no outgoing edge and is not a finish point", name)
		}
	}

	r := &Runner[S]{
		nodes:    g.nodes,
		edges:    g.edges,
		branches: g.branches,
		entry:    g.entry,
		maxSteps: defaultMaxSteps,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}
