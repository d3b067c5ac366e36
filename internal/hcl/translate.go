// This file contains the logic for translating the HCL schema structs into
// the format-agnostic configuration model defined in the config package.

package hcl

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/bundlecfg/internal/config"
	"github.com/vk/bundlecfg/internal/ctxlog"
	"github.com/vk/bundlecfg/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

func (l *Loader) translate(ctx context.Context, f *schema.BuildFile) (*config.Raw, error) {
	raw := &config.Raw{
		NoParse: slices.Clone(f.NoParse),
	}
	for _, e := range f.Entries {
		raw.Entries = append(raw.Entries, config.RawEntry{
			Name:    e.Name,
			Sources: slices.Clone(e.Sources),
		})
	}
	if f.Output != nil {
		raw.Output = config.RawOutput{Path: f.Output.Path, Filename: f.Output.Filename}
	}
	for _, r := range f.Rules {
		raw.Rules = append(raw.Rules, config.RawRule{
			Test:    r.Test,
			Exclude: slices.Clone(r.Exclude),
			Use:     slices.Clone(r.Use),
			Loader:  r.Loader,
		})
	}
	if f.DevServer != nil {
		opts, err := translateDevServer(ctx, f.DevServer.Body)
		if err != nil {
			return nil, err
		}
		raw.DevServer = opts
	}
	return raw, nil
}

// translateDevServer evaluates every dev_server attribute without variables
// or functions and converts the results into plain Go values.
func translateDevServer(ctx context.Context, body hcl.Body) (map[string]any, error) {
	logger := ctxlog.FromContext(ctx)
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("dev_server: %w", diags)
	}

	out := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("dev_server.%s: %w", name, diags)
		}
		goVal, err := ctyToGo(val)
		if err != nil {
			return nil, fmt.Errorf("dev_server.%s: %w", name, err)
		}
		logger.Debug("Translated dev_server attribute.", "name", name, "type", val.Type().FriendlyName())
		out[name] = goVal
	}
	return out, nil
}

// ctyToGo converts a known cty.Value into bool, string, float64, []any or
// map[string]any. Nulls become nil.
func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	ty := v.Type()
	switch {
	case ty.Equals(cty.Bool):
		return v.True(), nil
	case ty.Equals(cty.String):
		return v.AsString(), nil
	case ty.Equals(cty.Number):
		f, _ := v.AsBigFloat().Float64()
		return f, nil
	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			goVal, err := ctyToGo(ev)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k.AsString(), err)
			}
			m[k.AsString()] = goVal
		}
		return m, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		var list []any
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			goVal, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			list = append(list, goVal)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}
