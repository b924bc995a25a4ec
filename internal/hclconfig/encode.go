package hclconfig

import (
	"io"

	"github.com/carloslema/lwtnn/internal/config"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Encode writes m as canonical HCL that Load reads back into an equal model.
func Encode(w io.Writer, m *config.Model) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	first := true
	block := func(typeName, label string) *hclwrite.Body {
		if !first {
			body.AppendNewline()
		}
		first = false
		return body.AppendNewBlock(typeName, []string{label}).Body()
	}

	for _, in := range m.Inputs {
		b := block("input", in.Name)
		b.SetAttributeValue("variables", stringTuple(in.Variables))
	}

	for _, n := range m.Nodes {
		b := block("node", n.Kind.String())
		b.SetAttributeValue("sources", intTuple(n.Sources))
		if n.Kind != config.KindConcatenate {
			b.SetAttributeValue("index", cty.NumberIntVal(int64(n.Index)))
		}
	}

	for _, l := range m.Layers {
		b := block("layer", string(l.Architecture))
		if l.Activation != "" {
			b.SetAttributeValue("activation", cty.StringVal(string(l.Activation)))
		}
		b.SetAttributeValue("weights", floatTuple(l.Weights))
		if len(l.Bias) > 0 {
			b.SetAttributeValue("bias", floatTuple(l.Bias))
		}
	}

	_, err := w.Write(hclwrite.Format(f.Bytes()))
	return err
}

func stringTuple(values []string) cty.Value {
	if len(values) == 0 {
		return cty.EmptyTupleVal
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.TupleVal(vals)
}

func intTuple(values []int) cty.Value {
	if len(values) == 0 {
		return cty.EmptyTupleVal
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.NumberIntVal(int64(v))
	}
	return cty.TupleVal(vals)
}

func floatTuple(values []float64) cty.Value {
	if len(values) == 0 {
		return cty.EmptyTupleVal
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.NumberFloatVal(v)
	}
	return cty.TupleVal(vals)
}
