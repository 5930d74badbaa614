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
	"time"

	"github.com/spf13/cast"
)

// DType identifies the element type of an observation-space variable.
type DType int

const (
	// DTypeUnknown is the zero value; it marks a variable whose type
	// was not declared in the configuration.
	DTypeUnknown DType = iota
	DTypeBool
	DTypeInt
	DTypeFloat
	DTypeString
	DTypeDateTime
)

// Missing-value markers. Newly created variables are filled with the
// marker for their type, and locations not selected by a where mask
// keep it. Boolean variables have no reserved marker; they are
// initialized to false.
const (
	MissingInt    = -2147483647
	MissingFloat  = -3.3687953e38
	MissingString = "*** MISSING ***"
)

// MissingDateTime is the reserved datetime denoting "no data".
var MissingDateTime = time.Date(9996, time.February, 29, 23, 58, 57, 0, time.UTC)

func (t DType) String() string {
	switch t {
	case DTypeBool:
		return "bool"
	case DTypeInt:
		return "int"
	case DTypeFloat:
		return "float"
	case DTypeString:
		return "string"
	case DTypeDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// ParseDType converts a configuration type name to a DType.
func ParseDType(s string) (DType, error) {
	switch s {
	case "bool":
		return DTypeBool, nil
	case "int":
		return DTypeInt, nil
	case "float":
		return DTypeFloat, nil
	case "string":
		return DTypeString, nil
	case "datetime":
		return DTypeDateTime, nil
	default:
		return DTypeUnknown, configErrorf("invalid variable type `%s`; "+
			"valid types are bool, int, float, string, and datetime", s)
	}
}

// ParseLiteral converts the string form of a configured constant to a
// value of type t. Datetimes use RFC 3339 (e.g. 2018-04-20T21:00:00Z).
func ParseLiteral(text string, t DType) (interface{}, error) {
	switch t {
	case DTypeBool:
		v, err := cast.ToBoolE(text)
		if err != nil {
			return nil, configErrorf("cannot parse `%s` as bool: %v", text, err)
		}
		return v, nil
	case DTypeInt:
		v, err := cast.ToIntE(text)
		if err != nil {
			return nil, configErrorf("cannot parse `%s` as int: %v", text, err)
		}
		return v, nil
	case DTypeFloat:
		v, err := cast.ToFloat64E(text)
		if err != nil {
			return nil, configErrorf("cannot parse `%s` as float: %v", text, err)
		}
		return v, nil
	case DTypeString:
		return text, nil
	case DTypeDateTime:
		v, err := time.Parse(time.RFC3339, text)
		if err != nil {
			return nil, configErrorf("cannot parse `%s` as datetime: %v", text, err)
		}
		return v, nil
	default:
		return nil, configErrorf("cannot parse `%s`: variable type is unknown", text)
	}
}

// broadcast returns a length-n column holding val at every index.
func broadcast(val interface{}, t DType, n int) (interface{}, error) {
	switch t {
	case DTypeBool:
		out := make([]bool, n)
		v := val.(bool)
		for i := range out {
			out[i] = v
		}
		return out, nil
	case DTypeInt:
		out := make([]int, n)
		v := val.(int)
		for i := range out {
			out[i] = v
		}
		return out, nil
	case DTypeFloat:
		out := make([]float64, n)
		v := val.(float64)
		for i := range out {
			out[i] = v
		}
		return out, nil
	case DTypeString:
		out := make([]string, n)
		v := val.(string)
		for i := range out {
			out[i] = v
		}
		return out, nil
	case DTypeDateTime:
		out := make([]time.Time, n)
		v := val.(time.Time)
		for i := range out {
			out[i] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("ufo: cannot broadcast value of unknown type")
	}
}

// missingColumn returns a length-n column filled with the missing-value
// marker for type t.
func missingColumn(t DType, n int) (interface{}, error) {
	switch t {
	case DTypeBool:
		return make([]bool, n), nil
	case DTypeInt:
		return broadcast(MissingInt, t, n)
	case DTypeFloat:
		return broadcast(float64(MissingFloat), t, n)
	case DTypeString:
		return broadcast(MissingString, t, n)
	case DTypeDateTime:
		return broadcast(MissingDateTime, t, n)
	default:
		return nil, fmt.Errorf("ufo: cannot initialize a column of unknown type")
	}
}

// columnDType reports the DType of a column value, or DTypeUnknown if
// the value is not one of the supported slice types.
func columnDType(col interface{}) DType {
	switch col.(type) {
	case []bool:
		return DTypeBool
	case []int:
		return DTypeInt
	case []float64:
		return DTypeFloat
	case []string:
		return DTypeString
	case []time.Time:
		return DTypeDateTime
	default:
		return DTypeUnknown
	}
}

// columnLen reports the number of elements in a column value.
func columnLen(col interface{}) int {
	switch c := col.(type) {
	case []bool:
		return len(c)
	case []int:
		return len(c)
	case []float64:
		return len(c)
	case []string:
		return len(c)
	case []time.Time:
		return len(c)
	default:
		return 0
	}
}
