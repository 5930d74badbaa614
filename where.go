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
	"fmt"
	"math"
	"time"

	"github.com/Knetic/govaluate"
	"github.com/spf13/cast"
)

// WhereCondition is one declarative location-selection condition.
// Range and membership conditions name a store variable; expression
// conditions evaluate a boolean expression over store variables
// instead (variable names containing characters such as '@' must be
// escaped in [brackets]). A location is selected by a condition list
// only if it satisfies every condition.
type WhereCondition struct {
	// Variable names the store variable tested by the range and
	// membership fields below.
	Variable string
	// MinValue and MaxValue select locations where the variable lies
	// in the inclusive range [MinValue, MaxValue]; either bound may be
	// omitted for an open-ended range.
	MinValue *float64
	MaxValue *float64
	// IsIn selects locations where the variable equals one of the
	// listed values; IsNotIn selects the complement.
	IsIn    []string
	IsNotIn []string
	// Expression is a boolean expression evaluated at each location,
	// e.g. "[latitude@MetaData] > 60 && [sensor_zenith_angle] < 30".
	Expression string
}

// EvaluateWhere computes the location mask selected by a list of where
// conditions. An empty list selects all locations. Locations where a
// tested variable holds the missing-value marker are never selected by
// range or membership conditions.
func EvaluateWhere(conditions []WhereCondition, o *ObsSpace) ([]bool, error) {
	mask := make([]bool, o.NLocations())
	for i := range mask {
		mask[i] = true
	}
	for _, cond := range conditions {
		var m []bool
		var err error
		switch {
		case cond.Expression != "":
			m, err = evaluateExpressionMask(cond.Expression, o)
		case cond.Variable == "":
			return nil, configErrorf("a where condition must name a variable or give an expression")
		case cond.MinValue != nil || cond.MaxValue != nil:
			m, err = evaluateRange(cond, o)
		case len(cond.IsIn) > 0 || len(cond.IsNotIn) > 0:
			m, err = evaluateMembership(cond, o)
		default:
			return nil, configErrorf("where condition on %s selects nothing: "+
				"give minvalue/maxvalue, is_in/is_not_in, or an expression", cond.Variable)
		}
		if err != nil {
			return nil, err
		}
		for i := range mask {
			mask[i] = mask[i] && m[i]
		}
	}
	return mask, nil
}

func evaluateRange(cond WhereCondition, o *ObsSpace) ([]bool, error) {
	vals, err := o.floatView(cond.Variable)
	if err != nil {
		return nil, err
	}
	mask := make([]bool, len(vals))
	for i, v := range vals {
		if v == MissingFloat {
			continue
		}
		mask[i] = (cond.MinValue == nil || v >= *cond.MinValue) &&
			(cond.MaxValue == nil || v <= *cond.MaxValue)
	}
	return mask, nil
}

func evaluateMembership(cond WhereCondition, o *ObsSpace) ([]bool, error) {
	col, err := o.Read(cond.Variable)
	if err != nil {
		return nil, err
	}
	member := func(s string) bool {
		for _, x := range cond.IsIn {
			if x == s {
				return true
			}
		}
		return false
	}
	excluded := func(s string) bool {
		for _, x := range cond.IsNotIn {
			if x == s {
				return true
			}
		}
		return false
	}
	n := columnLen(col)
	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		var s string
		var missing bool
		switch c := col.(type) {
		case []int:
			s, missing = cast.ToString(c[i]), c[i] == MissingInt
		case []float64:
			s, missing = cast.ToString(c[i]), c[i] == MissingFloat
		case []string:
			s, missing = c[i], c[i] == MissingString
		case []bool:
			s = cast.ToString(c[i])
		case []time.Time:
			s, missing = c[i].Format(time.RFC3339), c[i].Equal(MissingDateTime)
		}
		if missing {
			continue
		}
		if len(cond.IsIn) > 0 && !member(s) {
			continue
		}
		if excluded(s) {
			continue
		}
		mask[i] = true
	}
	return mask, nil
}

// exprFunctions are the named functions available inside where and
// obs-function expressions.
var exprFunctions = map[string]govaluate.ExpressionFunction{
	"exp": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("ufo: got %d arguments for function 'exp', but needs 1", len(arg))
		}
		return math.Exp(arg[0].(float64)), nil
	},
	"abs": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("ufo: got %d arguments for function 'abs', but needs 1", len(arg))
		}
		return math.Abs(arg[0].(float64)), nil
	},
	"sqrt": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("ufo: got %d arguments for function 'sqrt', but needs 1", len(arg))
		}
		return math.Sqrt(arg[0].(float64)), nil
	},
	"min": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 2 {
			return nil, fmt.Errorf("ufo: got %d arguments for function 'min', but needs 2", len(arg))
		}
		return math.Min(arg[0].(float64), arg[1].(float64)), nil
	},
	"max": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 2 {
			return nil, fmt.Errorf("ufo: got %d arguments for function 'max', but needs 2", len(arg))
		}
		return math.Max(arg[0].(float64), arg[1].(float64)), nil
	},
}

// evaluateOverLocations compiles expr and evaluates it once per
// observation location, with every store variable the expression
// references bound to its value at that location.
func evaluateOverLocations(expr string, o *ObsSpace) ([]interface{}, error) {
	compiled, err := govaluate.NewEvaluableExpressionWithFunctions(expr, exprFunctions)
	if err != nil {
		return nil, configErrorf("cannot parse expression `%s`: %v", expr, err)
	}
	names := removeDuplicates(compiled.Vars())
	params := make(map[string][]interface{}, len(names))
	for _, name := range names {
		col, err := o.Read(name)
		if err != nil {
			return nil, err
		}
		vals := make([]interface{}, o.NLocations())
		switch c := col.(type) {
		case []bool:
			for i, v := range c {
				vals[i] = v
			}
		case []int:
			for i, v := range c {
				vals[i] = float64(v)
			}
		case []float64:
			for i, v := range c {
				vals[i] = v
			}
		case []string:
			for i, v := range c {
				vals[i] = v
			}
		default:
			return nil, configErrorf("variable %s of type datetime cannot be used in an expression", name)
		}
		params[name] = vals
	}
	out := make([]interface{}, o.NLocations())
	loc := make(map[string]interface{}, len(names))
	for i := 0; i < o.NLocations(); i++ {
		for _, name := range names {
			loc[name] = params[name][i]
		}
		v, err := compiled.Evaluate(loc)
		if err != nil {
			return nil, fmt.Errorf("ufo: evaluating expression `%s`: %v", expr, err)
		}
		out[i] = v
	}
	return out, nil
}

func evaluateExpressionMask(expr string, o *ObsSpace) ([]bool, error) {
	vals, err := evaluateOverLocations(expr, o)
	if err != nil {
		return nil, err
	}
	mask := make([]bool, len(vals))
	for i, v := range vals {
		b, ok := v.(bool)
		if !ok {
			return nil, configErrorf("where expression `%s` does not evaluate to a boolean", expr)
		}
		mask[i] = b
	}
	return mask, nil
}

// removeDuplicates removes all duplicated strings from a slice,
// returning a slice that contains only unique strings.
func removeDuplicates(s []string) []string {
	result := make([]string, 0, len(s))
	seen := make(map[string]string)
	for _, val := range s {
		if _, ok := seen[val]; !ok {
			result = append(result, val)
			seen[val] = val
		}
	}
	return result
}
