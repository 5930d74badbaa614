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
	"os"

	"github.com/ctessum/cdf"
)

// LoadObsSpace reads an observation-space snapshot from a NetCDF file.
// The file must have a single "nlocs" dimension; every variable is a
// 1-D numeric column over that dimension. Float variables load as
// float columns and integer variables as int columns; string and
// datetime columns exist in memory only.
func LoadObsSpace(r cdf.ReaderWriterAt) (*ObsSpace, error) {
	f, err := cdf.Open(r)
	if err != nil {
		return nil, fmt.Errorf("ufo.LoadObsSpace: %v", err)
	}
	var o *ObsSpace
	for _, v := range f.Header.Variables() {
		dims := f.Header.Lengths(v)
		if len(dims) != 1 {
			return nil, fmt.Errorf("ufo.LoadObsSpace: variable %s has %d dimensions; "+
				"observation variables must be 1-D", v, len(dims))
		}
		if o == nil {
			o = NewObsSpace(dims[0])
		} else if dims[0] != o.NLocations() {
			return nil, fmt.Errorf("ufo.LoadObsSpace: variable %s has %d locations but "+
				"the first variable has %d", v, dims[0], o.NLocations())
		}
		rdr := f.Reader(v, nil, nil)
		buf := rdr.Zero(dims[0])
		if _, err := rdr.Read(buf); err != nil {
			return nil, fmt.Errorf("ufo.LoadObsSpace: reading variable %s: %v", v, err)
		}
		var col *column
		switch b := buf.(type) {
		case []float32:
			data := make([]float64, len(b))
			for i, x := range b {
				data[i] = float64(x)
			}
			col = &column{dtype: DTypeFloat, data: data}
		case []float64:
			col = &column{dtype: DTypeFloat, data: append([]float64(nil), b...)}
		case []int32:
			data := make([]int, len(b))
			for i, x := range b {
				data[i] = int(x)
			}
			col = &column{dtype: DTypeInt, data: data}
		default:
			return nil, fmt.Errorf("ufo.LoadObsSpace: variable %s has unsupported element type %T", v, buf)
		}
		o.vars[v] = col
	}
	if o == nil {
		return nil, fmt.Errorf("ufo.LoadObsSpace: file contains no variables")
	}
	return o, nil
}

// WriteNCF writes the store's numeric columns to a NetCDF file with a
// single "nlocs" dimension. Float columns are written as float32 and
// int columns as int32; bool, string, and datetime columns are
// skipped.
func (o *ObsSpace) WriteNCF(w *os.File) error {
	h := cdf.NewHeader([]string{"nlocs"}, []int{o.nlocs})
	h.AddAttribute("", "comment", "UFO observation-space snapshot")

	names := make([]string, 0, len(o.vars))
	for _, name := range o.VarNames() {
		switch o.vars[name].dtype {
		case DTypeFloat:
			h.AddVariable(name, []string{"nlocs"}, []float32{0})
			names = append(names, name)
		case DTypeInt:
			h.AddVariable(name, []string{"nlocs"}, []int32{0})
			names = append(names, name)
		}
	}
	h.Define()

	f, err := cdf.Create(w, h) // writes the header to w
	if err != nil {
		return fmt.Errorf("ufo.WriteNCF: %v", err)
	}
	for _, name := range names {
		if err := writeNCFColumn(f, name, o.vars[name]); err != nil {
			return fmt.Errorf("ufo: writing variable %s to netcdf file: %v", name, err)
		}
	}
	return cdf.UpdateNumRecs(w)
}

func writeNCFColumn(f *cdf.File, name string, col *column) error {
	var buf interface{}
	switch d := col.data.(type) {
	case []float64:
		data32 := make([]float32, len(d))
		for i, e := range d {
			data32[i] = float32(e)
		}
		buf = data32
	case []int:
		data32 := make([]int32, len(d))
		for i, e := range d {
			data32[i] = int32(e)
		}
		buf = data32
	default:
		return fmt.Errorf("unsupported column type %s", col.dtype)
	}
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	w := f.Writer(name, start, end)
	_, err := w.Write(buf)
	return err
}
