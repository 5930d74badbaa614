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
	"errors"
	"reflect"
	"testing"
)

func TestParseChannelSet(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"", nil},
		{"4", []int{4}},
		{"1-5,8", []int{1, 2, 3, 4, 5, 8}},
		{"1,3-4", []int{1, 3, 4}},
		{" 2 , 7 ", []int{2, 7}},
		{"3,1-4", []int{3, 1, 2, 4}},
	}
	for _, test := range tests {
		got, err := ParseChannelSet(test.in)
		if err != nil {
			t.Errorf("ParseChannelSet(%q): %v", test.in, err)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("ParseChannelSet(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestParseChannelSetErrors(t *testing.T) {
	for _, in := range []string{"a", "1-", "-3", "5-2", "1,,2", "1.5"} {
		_, err := ParseChannelSet(in)
		if err == nil {
			t.Errorf("ParseChannelSet(%q): expected error", in)
			continue
		}
		var perr *ChannelParseError
		if !errors.As(err, &perr) {
			t.Errorf("ParseChannelSet(%q): error %v is not a ChannelParseError", in, err)
		}
	}
}

func TestChannelVariableName(t *testing.T) {
	tests := []struct {
		base string
		ch   int
		want string
	}{
		{"brightness_temperature", 4, "brightness_temperature_4"},
		{"brightness_temperature_", 1, "brightness_temperature_1"},
		{"brightness_temperature@ObsError", 7, "brightness_temperature_7@ObsError"},
		{"brightness_temperature_@ObsError", 7, "brightness_temperature_7@ObsError"},
	}
	for _, test := range tests {
		if got := ChannelVariableName(test.base, test.ch); got != test.want {
			t.Errorf("ChannelVariableName(%q, %d) = %q, want %q", test.base, test.ch, got, test.want)
		}
	}
}
