// Package config defines the format-agnostic configuration records of a
// graph and the Loader interface implemented by concrete file formats.
//
// The `config.Model` is the only thing the graph builder reads. Node and layer
// identifiers are positions in Model.Nodes and Model.Layers. Concrete loaders,
// such as the HCL one, live in separate packages.
package config
