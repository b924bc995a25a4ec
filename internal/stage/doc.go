// Package stage implements the weight-bearing transforms applied by
// feed-forward nodes.
//
// A Stage is built once from the width of the vector it will receive and a
// config.Layer, validates the layer's shapes at that point, and afterwards
// only maps vectors to vectors. Architectures are looked up by name in a
// registry; "dense" and "normalization" are registered by this package.
package stage
