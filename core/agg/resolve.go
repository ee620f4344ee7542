package agg

import "github.com/fuikk/fuikk/schema"

// Resolver maps a course code to the code its data should be merged into.
type Resolver interface {
	Resolve(code string) string
}

// singleHop follows at most one replacement edge.
type singleHop struct {
	graph schema.ReplacementGraph
}

// SingleHop returns a Resolver that looks up one replacement and stops.
// A code whose successor was itself replaced is not walked further.
func SingleHop(graph schema.ReplacementGraph) Resolver {
	return singleHop{graph: graph}
}

func (r singleHop) Resolve(code string) string {
	if next, ok := r.graph[code]; ok {
		return next
	}
	return code
}

// transitive follows replacement edges to the end of the chain.
type transitive struct {
	graph schema.ReplacementGraph
}

// Transitive returns a Resolver that walks the full replacement chain.
// On a cycle it stops at the last code before one repeats.
func Transitive(graph schema.ReplacementGraph) Resolver {
	return transitive{graph: graph}
}

func (r transitive) Resolve(code string) string {
	seen := map[string]struct{}{code: {}}
	current := code
	for {
		next, ok := r.graph[current]
		if !ok {
			return current
		}
		if _, loop := seen[next]; loop {
			return current
		}
		seen[next] = struct{}{}
		current = next
	}
}

// NewResolver picks the Resolver for a configured mode.
func NewResolver(mode schema.ResolveMode, graph schema.ReplacementGraph) Resolver {
	if mode == schema.TransitiveResolve {
		return Transitive(graph)
	}
	return SingleHop(graph)
}
