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
	"reflect"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestEvaluateWhereEmpty(t *testing.T) {
	o := newTestObsSpace(t)
	mask, err := EvaluateWhere(nil, o)
	if err != nil {
		t.Fatal(err)
	}
	for i, m := range mask {
		if !m {
			t.Errorf("location %d: empty condition list should select all locations", i)
		}
	}
}

func TestEvaluateWhereRange(t *testing.T) {
	o := newTestObsSpace(t)
	// Latitudes are -60, -25, 0, 15, 45, 80.
	conds := []WhereCondition{{
		Variable: "latitude@MetaData",
		MinValue: floatPtr(-30),
		MaxValue: floatPtr(30),
	}}
	mask, err := EvaluateWhere(conds, o)
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{false, true, true, true, false, false}
	if !reflect.DeepEqual(mask, want) {
		t.Errorf("mask = %v, want %v", mask, want)
	}
}

func TestEvaluateWhereOpenEndedRange(t *testing.T) {
	o := newTestObsSpace(t)
	conds := []WhereCondition{{
		Variable: "latitude@MetaData",
		MinValue: floatPtr(40),
	}}
	mask, err := EvaluateWhere(conds, o)
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{false, false, false, false, true, true}
	if !reflect.DeepEqual(mask, want) {
		t.Errorf("mask = %v, want %v", mask, want)
	}
}

func TestEvaluateWhereRangeExcludesMissing(t *testing.T) {
	o := newTestObsSpace(t)
	lats := []float64{MissingFloat, -25, 0, 15, 45, 80}
	if err := o.WriteMasked("latitude@MetaData", nil, lats); err != nil {
		t.Fatal(err)
	}
	conds := []WhereCondition{{
		Variable: "latitude@MetaData",
		MaxValue: floatPtr(30),
	}}
	mask, err := EvaluateWhere(conds, o)
	if err != nil {
		t.Fatal(err)
	}
	if mask[0] {
		t.Error("a missing value should never be selected by a range condition")
	}
	want := []bool{false, true, true, true, false, false}
	if !reflect.DeepEqual(mask, want) {
		t.Errorf("mask = %v, want %v", mask, want)
	}
}

func TestEvaluateWhereMembership(t *testing.T) {
	o := newTestObsSpace(t)
	// Scan positions are 1, 2, 3, 1, 2, 3.
	conds := []WhereCondition{{
		Variable: "scan_position@MetaData",
		IsIn:     []string{"1", "3"},
	}}
	mask, err := EvaluateWhere(conds, o)
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{true, false, true, true, false, true}
	if !reflect.DeepEqual(mask, want) {
		t.Errorf("is_in mask = %v, want %v", mask, want)
	}

	conds = []WhereCondition{{
		Variable: "scan_position@MetaData",
		IsNotIn:  []string{"2"},
	}}
	mask, err = EvaluateWhere(conds, o)
	if err != nil {
		t.Fatal(err)
	}
	want = []bool{true, false, true, true, false, true}
	if !reflect.DeepEqual(mask, want) {
		t.Errorf("is_not_in mask = %v, want %v", mask, want)
	}
}

func TestEvaluateWhereExpression(t *testing.T) {
	o := newTestObsSpace(t)
	conds := []WhereCondition{{
		Expression: "[latitude@MetaData] > 0 && [scan_position@MetaData] < 3",
	}}
	mask, err := EvaluateWhere(conds, o)
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{false, false, false, true, true, false}
	if !reflect.DeepEqual(mask, want) {
		t.Errorf("mask = %v, want %v", mask, want)
	}
}

func TestEvaluateWhereConditionsCombine(t *testing.T) {
	o := newTestObsSpace(t)
	conds := []WhereCondition{
		{Variable: "latitude@MetaData", MinValue: floatPtr(-30), MaxValue: floatPtr(30)},
		{Variable: "scan_position@MetaData", IsIn: []string{"1", "2"}},
	}
	mask, err := EvaluateWhere(conds, o)
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{false, true, false, true, false, false}
	if !reflect.DeepEqual(mask, want) {
		t.Errorf("mask = %v, want %v", mask, want)
	}
}

func TestEvaluateWhereErrors(t *testing.T) {
	o := newTestObsSpace(t)
	cases := []WhereCondition{
		{},                                    // names nothing
		{Variable: "latitude@MetaData"},       // no selection
		{Variable: "nonexistent", MinValue: floatPtr(0)},
		{Expression: "[latitude@MetaData] +"}, // malformed
		{Expression: "[latitude@MetaData] + 1"}, // not boolean
	}
	for i, cond := range cases {
		if _, err := EvaluateWhere([]WhereCondition{cond}, o); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
