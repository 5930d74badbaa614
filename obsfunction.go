/*
Copyright © 2021 the UFO authors.
This file is part of UFO.

UFO is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

UFO is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with UFO.  If not, see <http://www.gnu.org/licenses/>.
*/

package ufo

import (
	"github.com/spf13/cast"
	"gonum.org/v1/gonum/floats"
)

// FunctionRef identifies a named obs function together with its
// configured options.
type FunctionRef struct {
	Name    string
	Options map[string]interface{}
}

// ObsFunction produces one value per observation location when
// evaluated against a store. Implementations are expected to be pure:
// evaluating twice against an unchanged store yields the same column.
type ObsFunction interface {
	// DType reports the element type of the produced column.
	DType() DType
	// Evaluate computes the column over the full location set.
	Evaluate(o *ObsSpace) (interface{}, error)
}

// FunctionConstructor builds an ObsFunction from its configured
// options, returning a ConfigurationError if they are invalid.
type FunctionConstructor func(options map[string]interface{}) (ObsFunction, error)

// Registry resolves function references to obs functions. A new
// registry holds the built-in functions "expression",
// "error_model_ramp", "column_statistic", and "constant".
type Registry struct {
	constructors map[string]FunctionConstructor
}

// NewRegistry returns a registry populated with the built-in
// functions.
func NewRegistry() *Registry {
	r := &Registry{constructors: make(map[string]FunctionConstructor)}
	r.Register("expression", newExpressionFunction)
	r.Register("error_model_ramp", newErrorModelRamp)
	r.Register("column_statistic", newColumnStatistic)
	r.Register("constant", newConstantFunction)
	return r
}

// Register adds a constructor under the given name, replacing any
// existing registration.
func (r *Registry) Register(name string, c FunctionConstructor) {
	r.constructors[name] = c
}

// New resolves a function reference, constructing the function from
// the reference's options.
func (r *Registry) New(ref FunctionRef) (ObsFunction, error) {
	c, ok := r.constructors[ref.Name]
	if !ok {
		return nil, configErrorf("unknown obs function `%s`", ref.Name)
	}
	return c(ref.Options)
}

func optionString(options map[string]interface{}, key string) (string, error) {
	v, ok := options[key]
	if !ok {
		return "", configErrorf("obs function option `%s` is required", key)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", configErrorf("obs function option `%s`: %v", key, err)
	}
	return s, nil
}

func optionFloat(options map[string]interface{}, key string) (float64, error) {
	v, ok := options[key]
	if !ok {
		return 0, configErrorf("obs function option `%s` is required", key)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, configErrorf("obs function option `%s`: %v", key, err)
	}
	return f, nil
}

// expressionFunction evaluates an arithmetic expression over store
// variables at each location. Example options:
//
//	function:
//	  name: expression
//	  options:
//	    expression: "0.1 * abs([latitude@MetaData]) / 90"
type expressionFunction struct {
	expr string
}

func newExpressionFunction(options map[string]interface{}) (ObsFunction, error) {
	expr, err := optionString(options, "expression")
	if err != nil {
		return nil, err
	}
	return &expressionFunction{expr: expr}, nil
}

func (f *expressionFunction) DType() DType { return DTypeFloat }

func (f *expressionFunction) Evaluate(o *ObsSpace) (interface{}, error) {
	vals, err := evaluateOverLocations(f.expr, o)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		x, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, typeMismatchErrorf("expression `%s` does not evaluate to a number: %v", f.expr, err)
		}
		out[i] = x
	}
	return out, nil
}

// errorModelRamp assigns err0 where the input variable is at or below
// x0, err1 where it is at or above x1, and interpolates linearly in
// between. Locations where the input is missing stay missing.
type errorModelRamp struct {
	xvar               string
	x0, x1, err0, err1 float64
}

func newErrorModelRamp(options map[string]interface{}) (ObsFunction, error) {
	xvar, err := optionString(options, "xvar")
	if err != nil {
		return nil, err
	}
	f := &errorModelRamp{xvar: xvar}
	for _, opt := range []struct {
		key string
		dst *float64
	}{{"x0", &f.x0}, {"x1", &f.x1}, {"err0", &f.err0}, {"err1", &f.err1}} {
		v, err := optionFloat(options, opt.key)
		if err != nil {
			return nil, err
		}
		*opt.dst = v
	}
	if f.x1 <= f.x0 {
		return nil, configErrorf("error_model_ramp: x1 (%g) must be greater than x0 (%g)", f.x1, f.x0)
	}
	return f, nil
}

func (f *errorModelRamp) DType() DType { return DTypeFloat }

func (f *errorModelRamp) Evaluate(o *ObsSpace) (interface{}, error) {
	x, err := o.floatView(f.xvar)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		switch {
		case v == MissingFloat:
			out[i] = MissingFloat
		case v <= f.x0:
			out[i] = f.err0
		case v >= f.x1:
			out[i] = f.err1
		default:
			out[i] = f.err0 + (f.err1-f.err0)*(v-f.x0)/(f.x1-f.x0)
		}
	}
	return out, nil
}

// columnStatistic broadcasts a statistic (mean, sum, min, or max) of a
// numeric variable to every location. Missing values are excluded
// from the statistic.
type columnStatistic struct {
	variable  string
	statistic string
}

func newColumnStatistic(options map[string]interface{}) (ObsFunction, error) {
	variable, err := optionString(options, "variable")
	if err != nil {
		return nil, err
	}
	statistic, err := optionString(options, "statistic")
	if err != nil {
		return nil, err
	}
	switch statistic {
	case "mean", "sum", "min", "max":
	default:
		return nil, configErrorf("column_statistic: invalid statistic `%s`; "+
			"valid statistics are mean, sum, min, and max", statistic)
	}
	return &columnStatistic{variable: variable, statistic: statistic}, nil
}

func (f *columnStatistic) DType() DType { return DTypeFloat }

func (f *columnStatistic) Evaluate(o *ObsSpace) (interface{}, error) {
	vals, err := o.floatView(f.variable)
	if err != nil {
		return nil, err
	}
	present := vals[:0:0]
	for _, v := range vals {
		if v != MissingFloat {
			present = append(present, v)
		}
	}
	stat := MissingFloat
	if len(present) > 0 {
		switch f.statistic {
		case "mean":
			stat = floats.Sum(present) / float64(len(present))
		case "sum":
			stat = floats.Sum(present)
		case "min":
			stat = floats.Min(present)
		case "max":
			stat = floats.Max(present)
		}
	}
	out := make([]float64, o.NLocations())
	for i := range out {
		out[i] = stat
	}
	return out, nil
}

// constantFunction broadcasts a configured constant of a given type.
// It is mostly useful for testing filter configurations before the
// real function is available.
type constantFunction struct {
	dtype DType
	value interface{}
}

func newConstantFunction(options map[string]interface{}) (ObsFunction, error) {
	text, err := optionString(options, "value")
	if err != nil {
		return nil, err
	}
	typeName, err := optionString(options, "type")
	if err != nil {
		return nil, err
	}
	t, err := ParseDType(typeName)
	if err != nil {
		return nil, err
	}
	v, err := ParseLiteral(text, t)
	if err != nil {
		return nil, err
	}
	return &constantFunction{dtype: t, value: v}, nil
}

func (f *constantFunction) DType() DType { return f.dtype }

func (f *constantFunction) Evaluate(o *ObsSpace) (interface{}, error) {
	return broadcast(f.value, f.dtype, o.NLocations())
}
