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
	"testing"

	"github.com/erinjones2/ufo"
	"github.com/lnashier/viper"
)

// filterConfig mimics the structure viper produces when reading a
// Filters list from a configuration file (keys lowercased).
func filterConfig(filters ...map[string]interface{}) *viper.Viper {
	cfg := viper.New()
	list := make([]interface{}, len(filters))
	for i, f := range filters {
		list[i] = f
	}
	cfg.Set("Filters", list)
	return cfg
}

func TestFilters(t *testing.T) {
	cfg := filterConfig(map[string]interface{}{
		"filter": "Variable Assignment",
		"assignments": []interface{}{
			map[string]interface{}{
				"name":  "air_temperature@GrossErrorProbability",
				"type":  "float",
				"value": "0.05",
			},
		},
		"where": []interface{}{
			map[string]interface{}{
				"variable": "latitude@MetaData",
				"minvalue": -30.0,
				"maxvalue": 30.0,
			},
		},
	})
	filters, err := Filters(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(filters) != 1 {
		t.Fatalf("got %d filters, want 1", len(filters))
	}
	if filters[0].RequiresPostPass() {
		t.Error("the filter should default to the pre pass")
	}

	o := ufo.NewObsSpace(3)
	if err := o.Create("latitude@MetaData", ufo.DTypeFloat); err != nil {
		t.Fatal(err)
	}
	if err := o.WriteMasked("latitude@MetaData", nil, []float64{-45, 0, 45}); err != nil {
		t.Fatal(err)
	}
	if err := filters[0].Apply(o); err != nil {
		t.Fatal(err)
	}
	col, err := o.Read("air_temperature@GrossErrorProbability")
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{ufo.MissingFloat, 0.05, ufo.MissingFloat}
	for i, v := range col.([]float64) {
		if v != want[i] {
			t.Errorf("location %d = %g, want %g", i, v, want[i])
		}
	}
}

func TestFiltersFunctionAndDefer(t *testing.T) {
	cfg := filterConfig(map[string]interface{}{
		"filter":      "Variable Assignment",
		"defertopost": true,
		"assignments": []interface{}{
			map[string]interface{}{
				"name": "relative_humidity@GrossErrorProbability",
				"type": "float",
				"function": map[string]interface{}{
					"name": "error_model_ramp",
					"options": map[string]interface{}{
						"xvar": "latitude@MetaData",
						"x0":   -30.0, "x1": 30.0,
						"err0": 0.1, "err1": 0.05,
					},
				},
			},
		},
	})
	filters, err := Filters(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(filters) != 1 {
		t.Fatalf("got %d filters, want 1", len(filters))
	}
	if !filters[0].RequiresPostPass() {
		t.Error("DeferToPost should put the filter in the post pass")
	}
}

func TestFiltersErrors(t *testing.T) {
	cases := []*viper.Viper{
		viper.New(), // no Filters key
		filterConfig(map[string]interface{}{"filter": "Background Check"}), // unknown kind
		filterConfig(map[string]interface{}{ // neither value nor function
			"filter": "Variable Assignment",
			"assignments": []interface{}{
				map[string]interface{}{"name": "x@ObsError", "type": "float"},
			},
		}),
	}
	for i, cfg := range cases {
		if _, err := Filters(cfg); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
