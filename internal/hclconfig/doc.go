// Package hclconfig loads graph configurations written in HCL (native or JSON
// syntax) into the format-agnostic config.Model, and writes a model back out
// as canonical HCL.
//
// A configuration is a sequence of blocks:
//
//	input "jets" {
//	  variables = ["pt", "eta"]
//	}
//
//	node "input" {
//	  sources = [0]   # external slot
//	  index   = 2     # width
//	}
//
//	node "feed_forward" {
//	  sources = [0]   # upstream node
//	  index   = 0     # layer
//	}
//
//	layer "dense" {
//	  activation = "rectified"
//	  weights    = concat([1, 0], [0, 1])
//	  bias       = [0, 0]
//	}
//
// Node and layer ids are the positions of their blocks, counted across all
// files in the order they are loaded. Number lists may use the functions
// concat, flatten, range, reverse, length, min and max.
package hclconfig
