// Package app contains the application lifecycle: it loads a graph
// configuration, builds the graph and then evaluates it once, writes the
// configuration back out, or serves evaluations over HTTP. It is decoupled
// from any specific entrypoint like a CLI.
package app
