// Package graph builds and evaluates inference graphs.
//
// # Structure
//
// A Graph owns an arena: one Node per configuration entry, addressed by the
// entry's position, plus one stage.Stage per distinct layer referenced by a
// feed-forward node. Nodes refer to their upstream nodes and stages through
// NodeID and StageID handles into that arena, so two feed-forward nodes that
// apply the same layer share one Stage.
//
//	config.Model ──Build──▶ arena{nodes, stages} ──ComputeNode(src, id)──▶ []float64
//
// # Building
//
// Build resolves entries recursively in increasing id order. Dependencies are
// built before their dependents, input nodes end a chain, and the chain of
// ancestors is threaded through the recursion to reject back-edges while still
// allowing diamonds. Any configuration fault aborts the build and no Graph is
// returned.
//
// # Evaluation
//
// Evaluation is a pure function of the Source: every call recomputes the
// whole upstream subgraph, nothing is cached between or within calls, and no
// state is mutated. A Graph can therefore be evaluated from many goroutines at
// once as long as the Source itself is safe for concurrent use.
package graph
