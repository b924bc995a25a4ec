package hclconfig

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// newEvalContext exposes the list helpers that make large weight matrices
// bearable to write by hand.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"concat":  stdlib.ConcatFunc,
			"flatten": stdlib.FlattenFunc,
			"length":  stdlib.LengthFunc,
			"max":     stdlib.MaxFunc,
			"min":     stdlib.MinFunc,
			"range":   stdlib.RangeFunc,
			"reverse": stdlib.ReverseListFunc,
		},
	}
}
