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

package ufoutil

import (
	"fmt"
	"strings"

	"github.com/erinjones2/ufo"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// Filters builds the filter list configured under the "Filters" key.
// Each entry names a filter kind ("Variable Assignment" is the only
// kind currently available) and carries that kind's options.
func Filters(cfg *viper.Viper) ([]ufo.Filter, error) {
	raw := cfg.Get("Filters")
	if raw == nil {
		return nil, fmt.Errorf("ufo: there are no filters specified. Please fill in " +
			"the Filters configuration and try again.")
	}
	list, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("ufo: the Filters configuration must be a list: %v", err)
	}
	var filters []ufo.Filter
	for i, item := range list {
		m, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, fmt.Errorf("ufo: Filters[%d] must be a table: %v", i, err)
		}
		kind := cast.ToString(configKey(m, "Filter"))
		switch kind {
		case "Variable Assignment":
			params, err := variableAssignmentParameters(m)
			if err != nil {
				return nil, err
			}
			f, err := ufo.NewVariableAssignment(params, nil)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("ufo: Filters[%d]: unknown filter kind `%s`", i, kind)
		}
	}
	return filters, nil
}

// configKey looks up a key in a configuration table. Viper lowercases
// the keys of tables it reads from configuration files, so the lookup
// is case-insensitive.
func configKey(m map[string]interface{}, key string) interface{} {
	if v, ok := m[key]; ok {
		return v
	}
	return m[strings.ToLower(key)]
}

func variableAssignmentParameters(m map[string]interface{}) (ufo.VariableAssignmentParameters, error) {
	var p ufo.VariableAssignmentParameters
	p.DeferToPost = cast.ToBool(configKey(m, "DeferToPost"))

	if raw := configKey(m, "Assignments"); raw != nil {
		list, err := cast.ToSliceE(raw)
		if err != nil {
			return p, fmt.Errorf("ufo: Assignments must be a list: %v", err)
		}
		for _, item := range list {
			am, err := cast.ToStringMapE(item)
			if err != nil {
				return p, fmt.Errorf("ufo: each assignment must be a table: %v", err)
			}
			ap, err := assignmentParameters(am)
			if err != nil {
				return p, err
			}
			p.Assignments = append(p.Assignments, ap)
		}
	}

	if raw := configKey(m, "Where"); raw != nil {
		list, err := cast.ToSliceE(raw)
		if err != nil {
			return p, fmt.Errorf("ufo: Where must be a list: %v", err)
		}
		for _, item := range list {
			wm, err := cast.ToStringMapE(item)
			if err != nil {
				return p, fmt.Errorf("ufo: each where condition must be a table: %v", err)
			}
			cond, err := whereCondition(wm)
			if err != nil {
				return p, err
			}
			p.Where = append(p.Where, cond)
		}
	}
	return p, nil
}

func assignmentParameters(m map[string]interface{}) (ufo.AssignmentParameters, error) {
	var p ufo.AssignmentParameters
	p.Name = cast.ToString(configKey(m, "Name"))
	p.Channels = cast.ToString(configKey(m, "Channels"))
	p.Type = cast.ToString(configKey(m, "Type"))
	if raw := configKey(m, "Value"); raw != nil {
		v, err := cast.ToStringE(raw)
		if err != nil {
			return p, fmt.Errorf("ufo: assignment to %s: Value: %v", p.Name, err)
		}
		p.Value = &v
	}
	if raw := configKey(m, "Function"); raw != nil {
		fm, err := cast.ToStringMapE(raw)
		if err != nil {
			return p, fmt.Errorf("ufo: assignment to %s: Function must be a table: %v", p.Name, err)
		}
		ref := ufo.FunctionRef{Name: cast.ToString(configKey(fm, "Name"))}
		if opts := configKey(fm, "Options"); opts != nil {
			ref.Options, err = cast.ToStringMapE(opts)
			if err != nil {
				return p, fmt.Errorf("ufo: assignment to %s: Function options: %v", p.Name, err)
			}
		}
		p.Function = &ref
	}
	return p, nil
}

func whereCondition(m map[string]interface{}) (ufo.WhereCondition, error) {
	var cond ufo.WhereCondition
	cond.Variable = cast.ToString(configKey(m, "Variable"))
	cond.Expression = cast.ToString(configKey(m, "Expression"))
	if raw := configKey(m, "MinValue"); raw != nil {
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return cond, fmt.Errorf("ufo: where condition on %s: MinValue: %v", cond.Variable, err)
		}
		cond.MinValue = &v
	}
	if raw := configKey(m, "MaxValue"); raw != nil {
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return cond, fmt.Errorf("ufo: where condition on %s: MaxValue: %v", cond.Variable, err)
		}
		cond.MaxValue = &v
	}
	if raw := configKey(m, "IsIn"); raw != nil {
		v, err := cast.ToStringSliceE(raw)
		if err != nil {
			return cond, fmt.Errorf("ufo: where condition on %s: IsIn: %v", cond.Variable, err)
		}
		cond.IsIn = v
	}
	if raw := configKey(m, "IsNotIn"); raw != nil {
		v, err := cast.ToStringSliceE(raw)
		if err != nil {
			return cond, fmt.Errorf("ufo: where condition on %s: IsNotIn: %v", cond.Variable, err)
		}
		cond.IsNotIn = v
	}
	return cond, nil
}
