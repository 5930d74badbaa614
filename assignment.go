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
	"strings"
)

// AssignmentParameters is the configured form of one assignment rule.
// Exactly one of Value and Function must be given.
type AssignmentParameters struct {
	// Name of the variable to which new values should be assigned.
	Name string
	// Channels is the set of channels to which new values should be
	// assigned, in "1-5,8" syntax. Empty means the variable is scalar.
	Channels string
	// Value is a string-encoded constant to be assigned at all
	// selected locations.
	Value *string
	// Function references an obs function whose output should be
	// assigned at all selected locations.
	Function *FunctionRef
	// Type (bool, int, float, string or datetime) of the target
	// variable. Required if the variable doesn't exist yet; if it
	// does, the stored type must match.
	Type string
}

// source is the origin of assigned values: a literal constant or an
// obs-function reference, never both and never neither.
type source struct {
	literal  string
	function *FunctionRef
}

// AssignmentSpec is one validated assignment rule. Specs are built
// from configuration at filter construction time and are immutable
// afterwards.
type AssignmentSpec struct {
	name     string
	channels []int
	src      source
	dtype    DType // DTypeUnknown when the configuration declares no type
}

// NewAssignmentSpec validates p and returns the corresponding spec.
// Malformed rules (value and function both present or both absent, a
// bad channel set, an invalid type name) fail here rather than at
// apply time.
func NewAssignmentSpec(p AssignmentParameters) (*AssignmentSpec, error) {
	if p.Name == "" {
		return nil, configErrorf("assignment: name is required")
	}
	if (p.Value != nil) == (p.Function != nil) {
		return nil, configErrorf("assignment to %s: exactly one of the `value` and `function` options must be present", p.Name)
	}
	channels, err := ParseChannelSet(p.Channels)
	if err != nil {
		return nil, err
	}
	dtype := DTypeUnknown
	if p.Type != "" {
		dtype, err = ParseDType(p.Type)
		if err != nil {
			return nil, err
		}
	}
	s := &AssignmentSpec{name: p.Name, channels: channels, dtype: dtype}
	if p.Value != nil {
		s.src.literal = *p.Value
	} else {
		fn := *p.Function
		s.src.function = &fn
	}
	return s, nil
}

// VariableNames returns the names of the variable instances this spec
// assigns to: the bare name for a scalar variable, or one
// channel-qualified instance per channel.
func (s *AssignmentSpec) VariableNames() []string {
	if len(s.channels) == 0 {
		return []string{s.name}
	}
	names := make([]string, len(s.channels))
	for i, ch := range s.channels {
		names[i] = ChannelVariableName(s.name, ch)
	}
	return names
}

// VariableAssignmentParameters configures a VariableAssignment filter.
type VariableAssignmentParameters struct {
	// Assignments are applied in declaration order.
	Assignments []AssignmentParameters
	// Where selects the locations where assignment is performed. If
	// empty, assignment is performed at all locations.
	Where []WhereCondition
	// DeferToPost makes the filter run in the post-operator pass.
	DeferToPost bool
}

// VariableAssignment assigns constants or obs-function outputs to
// observation-space variables at the locations selected by the where
// conditions. Variables that don't exist yet are created, with
// unselected locations initialized to the missing-value marker.
//
// Example configuration:
//
//	[[Filters]]
//	Filter = "Variable Assignment"
//	  [[Filters.Assignments]]
//	  Name = "air_temperature@GrossErrorProbability"
//	  Type = "float"    # required if the variable doesn't exist yet
//	  Value = "0.1"
//	  [[Filters.Where]]
//	  Variable = "latitude@MetaData"
//	  MinValue = -30.0
//	  MaxValue = 30.0
type VariableAssignment struct {
	specs       []*AssignmentSpec
	where       []WhereCondition
	deferToPost bool
	registry    *Registry
}

// NewVariableAssignment validates the configured assignment rules and
// returns the filter. registry may be nil, in which case the built-in
// obs functions are used.
func NewVariableAssignment(p VariableAssignmentParameters, registry *Registry) (*VariableAssignment, error) {
	if registry == nil {
		registry = NewRegistry()
	}
	f := &VariableAssignment{
		where:       p.Where,
		deferToPost: p.DeferToPost,
		registry:    registry,
	}
	for _, ap := range p.Assignments {
		spec, err := NewAssignmentSpec(ap)
		if err != nil {
			return nil, err
		}
		f.specs = append(f.specs, spec)
	}
	return f, nil
}

// RequiresPostPass reports whether the filter must run after the
// forward operator has produced model equivalents.
func (f *VariableAssignment) RequiresPostPass() bool { return f.deferToPost }

func (f *VariableAssignment) String() string {
	names := make([]string, len(f.specs))
	for i, s := range f.specs {
		names[i] = s.name
	}
	return fmt.Sprintf("Variable Assignment: assigns to %s (%d where conditions)",
		strings.Join(names, ", "), len(f.where))
}

// Apply resolves every assignment rule against the store in
// declaration order. The where mask is computed once and shared by all
// rules. On error, assignments already applied by earlier rules are
// retained; nothing is rolled back.
func (f *VariableAssignment) Apply(o *ObsSpace) error {
	mask, err := EvaluateWhere(f.where, o)
	if err != nil {
		return err
	}
	for _, spec := range f.specs {
		if err := f.applySpec(spec, o, mask); err != nil {
			return err
		}
	}
	return nil
}

// applySpec assigns values for one rule. All per-instance type checks
// run before any variable is created or written, so a type conflict
// leaves the store untouched by this rule.
func (f *VariableAssignment) applySpec(spec *AssignmentSpec, o *ObsSpace, mask []bool) error {
	names := spec.VariableNames()
	targets := make([]DType, len(names))
	var create []int
	for i, name := range names {
		if o.Has(name) {
			stored, err := o.DTypeOf(name)
			if err != nil {
				return err
			}
			if spec.dtype != DTypeUnknown && spec.dtype != stored {
				return configErrorf("assignment to %s: declared type %s conflicts with stored type %s",
					name, spec.dtype, stored)
			}
			targets[i] = stored
		} else {
			if spec.dtype == DTypeUnknown {
				return configErrorf("assignment to %s: type must be specified if the variable doesn't already exist", name)
			}
			targets[i] = spec.dtype
			create = append(create, i)
		}
	}

	var fnVals interface{}
	var fnType DType
	if spec.src.function != nil {
		fn, err := f.registry.New(*spec.src.function)
		if err != nil {
			return err
		}
		fnType = fn.DType()
		for i, name := range names {
			if !assignable(fnType, targets[i]) {
				return typeMismatchErrorf("function %s produces %s values, which cannot be assigned to variable %s of type %s",
					spec.src.function.Name, fnType, name, targets[i])
			}
		}
		fnVals, err = fn.Evaluate(o)
		if err != nil {
			return err
		}
		if columnDType(fnVals) != fnType {
			return typeMismatchErrorf("function %s declared type %s but produced %s values",
				spec.src.function.Name, fnType, columnDType(fnVals))
		}
		if n := columnLen(fnVals); n != o.NLocations() {
			return fmt.Errorf("ufo: function %s produced %d values for %d locations",
				spec.src.function.Name, n, o.NLocations())
		}
	}

	for _, i := range create {
		if err := o.Create(names[i], targets[i]); err != nil {
			return err
		}
	}
	for i, name := range names {
		var vals interface{}
		if spec.src.function != nil {
			vals = convertColumn(fnVals, targets[i])
		} else {
			// Literal path: parse once per instance into the target
			// type and broadcast to all locations.
			v, err := ParseLiteral(spec.src.literal, targets[i])
			if err != nil {
				return err
			}
			vals, err = broadcast(v, targets[i], o.NLocations())
			if err != nil {
				return err
			}
		}
		if err := o.WriteMasked(name, mask, vals); err != nil {
			return err
		}
	}
	return nil
}

// assignable reports whether a column of type from may be assigned to
// a variable of type to. The only permitted coercion is int to float;
// everything else requires an exact match.
func assignable(from, to DType) bool {
	return from == to || (from == DTypeInt && to == DTypeFloat)
}

// convertColumn coerces col to the target type. Only the int-to-float
// conversion changes anything; missing ints map to missing floats.
func convertColumn(col interface{}, to DType) interface{} {
	if c, ok := col.([]int); ok && to == DTypeFloat {
		out := make([]float64, len(c))
		for i, v := range c {
			if v == MissingInt {
				out[i] = MissingFloat
			} else {
				out[i] = float64(v)
			}
		}
		return out
	}
	return col
}
