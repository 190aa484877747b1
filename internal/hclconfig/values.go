package hclconfig

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// exprString evaluates a static expression and renders it as the raw
// string the loot grammar expects. Null or absent values yield "". A tuple
// or list is rendered as its comma separated elements, so `[5, 2]` and
// `"5,2"` are equivalent.
func exprString(expr hcl.Expression) (string, hcl.Diagnostics) {
	if expr == nil {
		return "", nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() {
		return "", nil
	}
	if !val.IsWhollyKnown() {
		return "", invalidValue(expr, "The value must be known when the file is loaded.")
	}

	ty := val.Type()
	if ty.IsTupleType() || ty.IsListType() {
		parts := make([]string, 0, val.LengthInt())
		for _, elem := range val.AsValueSlice() {
			s, err := ctyString(elem)
			if err != nil {
				return "", invalidValue(expr, err.Error())
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	}

	s, err := ctyString(val)
	if err != nil {
		return "", invalidValue(expr, err.Error())
	}
	return s, nil
}

func ctyString(val cty.Value) (string, error) {
	if val.IsNull() {
		return "", fmt.Errorf("null element")
	}
	strVal, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("a %s cannot be used here: %w", val.Type().FriendlyName(), err)
	}
	return strVal.AsString(), nil
}

func invalidValue(expr hcl.Expression, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid value",
		Detail:   detail,
		Subject:  expr.Range().Ptr(),
	}}
}

// fieldCollector evaluates several expressions, accumulating diagnostics.
type fieldCollector struct {
	diags hcl.Diagnostics
}

func (c *fieldCollector) str(expr hcl.Expression) string {
	s, diags := exprString(expr)
	c.diags = append(c.diags, diags...)
	return s
}
