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
	"sort"
	"time"
)

// ObsSpace is an in-memory observation-space store: a mapping from
// variable name to a fixed-length column of typed values, one element
// per observation location. All columns have the same length. An
// ObsSpace is not safe for concurrent use; the framework serializes
// filter invocations per store.
type ObsSpace struct {
	nlocs int
	vars  map[string]*column
}

type column struct {
	dtype DType
	data  interface{} // []bool, []int, []float64, []string, or []time.Time
}

// NewObsSpace returns an empty store holding nlocs observation
// locations.
func NewObsSpace(nlocs int) *ObsSpace {
	return &ObsSpace{
		nlocs: nlocs,
		vars:  make(map[string]*column),
	}
}

// NLocations returns the number of observation locations in the store.
func (o *ObsSpace) NLocations() int { return o.nlocs }

// Has reports whether the store contains a variable with the given
// name.
func (o *ObsSpace) Has(name string) bool {
	_, ok := o.vars[name]
	return ok
}

// DTypeOf returns the element type of the named variable.
func (o *ObsSpace) DTypeOf(name string) (DType, error) {
	v, ok := o.vars[name]
	if !ok {
		return DTypeUnknown, fmt.Errorf("ufo: variable %s is not in the observation space", name)
	}
	return v.dtype, nil
}

// VarNames returns the names of all variables in the store, sorted so
// that output is deterministic.
func (o *ObsSpace) VarNames() []string {
	names := make([]string, 0, len(o.vars))
	for n := range o.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Create adds a new variable of type t, with every location
// initialized to the missing-value marker for that type. It is an
// error if the variable already exists.
func (o *ObsSpace) Create(name string, t DType) error {
	if o.Has(name) {
		return fmt.Errorf("ufo: variable %s already exists in the observation space", name)
	}
	data, err := missingColumn(t, o.nlocs)
	if err != nil {
		return err
	}
	o.vars[name] = &column{dtype: t, data: data}
	return nil
}

// Read returns a copy of the named variable's column as a []bool,
// []int, []float64, []string, or []time.Time depending on its type.
func (o *ObsSpace) Read(name string) (interface{}, error) {
	v, ok := o.vars[name]
	if !ok {
		return nil, fmt.Errorf("ufo: variable %s is not in the observation space", name)
	}
	switch d := v.data.(type) {
	case []bool:
		return append([]bool(nil), d...), nil
	case []int:
		return append([]int(nil), d...), nil
	case []float64:
		return append([]float64(nil), d...), nil
	case []string:
		return append([]string(nil), d...), nil
	case []time.Time:
		return append([]time.Time(nil), d...), nil
	default:
		return nil, fmt.Errorf("ufo: variable %s has unsupported storage", name)
	}
}

// WriteMasked overwrites the named variable at every location where
// mask is true, leaving other locations untouched. values must be a
// full-length column of the variable's type; a nil mask selects all
// locations.
func (o *ObsSpace) WriteMasked(name string, mask []bool, values interface{}) error {
	v, ok := o.vars[name]
	if !ok {
		return fmt.Errorf("ufo: variable %s is not in the observation space", name)
	}
	if t := columnDType(values); t != v.dtype {
		return typeMismatchErrorf("cannot write %s values to variable %s of type %s",
			t, name, v.dtype)
	}
	if n := columnLen(values); n != o.nlocs {
		return fmt.Errorf("ufo: variable %s: got %d values for %d locations", name, n, o.nlocs)
	}
	if mask != nil && len(mask) != o.nlocs {
		return fmt.Errorf("ufo: variable %s: mask length %d does not match %d locations",
			name, len(mask), o.nlocs)
	}
	selected := func(i int) bool { return mask == nil || mask[i] }
	switch dst := v.data.(type) {
	case []bool:
		src := values.([]bool)
		for i := range dst {
			if selected(i) {
				dst[i] = src[i]
			}
		}
	case []int:
		src := values.([]int)
		for i := range dst {
			if selected(i) {
				dst[i] = src[i]
			}
		}
	case []float64:
		src := values.([]float64)
		for i := range dst {
			if selected(i) {
				dst[i] = src[i]
			}
		}
	case []string:
		src := values.([]string)
		for i := range dst {
			if selected(i) {
				dst[i] = src[i]
			}
		}
	case []time.Time:
		src := values.([]time.Time)
		for i := range dst {
			if selected(i) {
				dst[i] = src[i]
			}
		}
	}
	return nil
}

// floatView returns the named variable as float64 values, converting
// int columns and leaving missing-value markers in place (MissingInt
// maps to MissingFloat). It is used by the where-condition and
// obs-function machinery, which operate on numeric views of the store.
func (o *ObsSpace) floatView(name string) ([]float64, error) {
	v, ok := o.vars[name]
	if !ok {
		return nil, fmt.Errorf("ufo: variable %s is not in the observation space", name)
	}
	switch d := v.data.(type) {
	case []float64:
		return append([]float64(nil), d...), nil
	case []int:
		out := make([]float64, len(d))
		for i, x := range d {
			if x == MissingInt {
				out[i] = MissingFloat
			} else {
				out[i] = float64(x)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("ufo: variable %s of type %s has no numeric view", name, v.dtype)
	}
}
