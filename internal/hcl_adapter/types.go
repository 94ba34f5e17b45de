package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileSchema lists the top-level blocks a graph file may contain. Anything
// else is reported as an error by hcl.Body.Content.
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "stat", LabelNames: []string{"kind", "name"}},
		{Type: "connect", LabelNames: []string{"source", "target"}},
	},
}

// statBody is the body of a `stat "<kind>" "<name>"` block. Every attribute
// is optional at decode time; which ones are allowed depends on the kind.
type statBody struct {
	Value          hcl.Expression `hcl:"value,optional"`
	Formula        hcl.Expression `hcl:"formula,optional"`
	Inputs         hcl.Expression `hcl:"inputs,optional"`
	BaseValue      hcl.Expression `hcl:"base_value,optional"`
	AboveThreshold hcl.Expression `hcl:"above_threshold,optional"`
}

// attributes pairs each attribute name with its expression.
func (b *statBody) attributes() map[string]hcl.Expression {
	return map[string]hcl.Expression{
		"value":           b.Value,
		"formula":         b.Formula,
		"inputs":          b.Inputs,
		"base_value":      b.BaseValue,
		"above_threshold": b.AboveThreshold,
	}
}

// connectBody is the body of a `connect "<source>" "<target>"` block.
type connectBody struct {
	Kind  string `hcl:"kind"`
	Input string `hcl:"input,optional"`
}
