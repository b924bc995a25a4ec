package hclconfig

import (
	"fmt"
	"slices"

	"github.com/carloslema/lwtnn/internal/config"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclGraphFile is the top-level structure of one configuration file.
type hclGraphFile struct {
	Inputs []*hclInput `hcl:"input,block"`
	Nodes  []*hclNode  `hcl:"node,block"`
	Layers []*hclLayer `hcl:"layer,block"`
}

type hclInput struct {
	Name      string   `hcl:"name,label"`
	Variables []string `hcl:"variables,optional"`
}

type hclNode struct {
	Kind    string         `hcl:"kind,label"`
	Sources hcl.Expression `hcl:"sources,optional"`
	Index   *int           `hcl:"index,optional"`
	Body    hcl.Body       `hcl:",remain"`
}

type hclLayer struct {
	Architecture string         `hcl:"architecture,label"`
	Activation   string         `hcl:"activation,optional"`
	Weights      hcl.Expression `hcl:"weights,optional"`
	Bias         hcl.Expression `hcl:"bias,optional"`
}

// decodeFile appends the blocks of one parsed file to model.
func decodeFile(file *hcl.File, evalCtx *hcl.EvalContext, model *config.Model) hcl.Diagnostics {
	var parsed hclGraphFile
	diags := gohcl.DecodeBody(file.Body, evalCtx, &parsed)
	if diags.HasErrors() {
		return diags
	}

	for _, in := range parsed.Inputs {
		model.Inputs = append(model.Inputs, config.Input{Name: in.Name, Variables: in.Variables})
	}

	for _, n := range parsed.Nodes {
		node, nodeDiags := decodeNode(n, evalCtx)
		diags = append(diags, nodeDiags...)
		model.Nodes = append(model.Nodes, node)
	}

	for _, l := range parsed.Layers {
		layer := config.Layer{
			Architecture: config.Architecture(l.Architecture),
			Activation:   config.Activation(l.Activation),
		}
		diags = append(diags, decodeList(l.Weights, evalCtx, &layer.Weights)...)
		diags = append(diags, decodeList(l.Bias, evalCtx, &layer.Bias)...)
		model.Layers = append(model.Layers, layer)
	}

	return diags
}

func decodeNode(n *hclNode, evalCtx *hcl.EvalContext) (config.Node, hcl.Diagnostics) {
	node := config.Node{Kind: config.ParseNodeKind(n.Kind)}
	diags := unsupportedArguments(n.Body)
	diags = append(diags, decodeList(n.Sources, evalCtx, &node.Sources)...)

	switch {
	case n.Index != nil:
		node.Index = *n.Index
	case node.Kind == config.KindInput || node.Kind == config.KindFeedForward:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing required argument",
			Detail:   fmt.Sprintf("A %q node requires an \"index\" argument.", n.Kind),
			Subject:  n.Body.MissingItemRange().Ptr(),
		})
	}
	return node, diags
}

// unsupportedArguments reports anything left in a node body after the known
// arguments were decoded.
func unsupportedArguments(body hcl.Body) hcl.Diagnostics {
	attrs, diags := body.JustAttributes()
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported argument",
			Detail:   fmt.Sprintf("An argument named %q is not expected in a node block.", name),
			Subject:  attrs[name].NameRange.Ptr(),
		})
	}
	return diags
}

// decodeList evaluates expr as a list of numbers and stores it in target,
// which must point at a slice of a numeric type. A missing attribute leaves
// target untouched.
func decodeList(expr hcl.Expression, evalCtx *hcl.EvalContext, target any) hcl.Diagnostics {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() || val.IsNull() {
		return diags
	}

	list, err := convert.Convert(val, cty.List(cty.Number))
	if err == nil && !list.IsWhollyKnown() {
		err = fmt.Errorf("value is not known")
	}
	if err == nil {
		err = gocty.FromCtyValue(list, target)
	}
	if err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid number list",
			Detail:   fmt.Sprintf("A list of numbers is required: %s.", err),
			Subject:  expr.Range().Ptr(),
		})
	}
	return diags
}
