package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// isExprDefined reports whether an optional attribute was actually written.
// gohcl fills omitted optional expressions with a zero-width placeholder, so
// a nil check is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

// decodeValue evaluates a constant expression, converts it to want and stores
// it in target.
func decodeValue(expr hcl.Expression, name string, want cty.Type, target any) hcl.Diagnostics {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	converted, err := convert.Convert(val, want)
	if err == nil && converted.IsNull() {
		err = fmt.Errorf("value must not be null")
	}
	if err == nil {
		err = gocty.FromCtyValue(converted, target)
	}
	if err != nil {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid value for " + name,
			Detail:   fmt.Sprintf("Expected %s: %s.", want.FriendlyName(), err),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return nil
}

func errorDiag(summary, detail string, subject *hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  subject,
	}
}
