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
	"strconv"
	"strings"
)

// ParseChannelSet parses a channel-set string consisting of
// comma-separated singletons and inclusive ranges, e.g. "1-5,8".
// Channel numbers are returned in the order they appear; duplicates are
// removed. An empty string returns a nil slice, meaning the variable is
// scalar (no channel qualification).
func ParseChannelSet(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var channels []int
	seen := make(map[int]bool)
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, channelErrorf("empty entry in channel set `%s`", s)
		}
		var lo, hi int
		if i := strings.Index(token, "-"); i > 0 {
			var err error
			lo, err = strconv.Atoi(token[:i])
			if err != nil {
				return nil, channelErrorf("invalid range start `%s` in channel set `%s`", token[:i], s)
			}
			hi, err = strconv.Atoi(token[i+1:])
			if err != nil {
				return nil, channelErrorf("invalid range end `%s` in channel set `%s`", token[i+1:], s)
			}
			if hi < lo {
				return nil, channelErrorf("descending range `%s` in channel set `%s`", token, s)
			}
		} else {
			ch, err := strconv.Atoi(token)
			if err != nil {
				return nil, channelErrorf("invalid channel `%s` in channel set `%s`", token, s)
			}
			lo, hi = ch, ch
		}
		if lo < 1 {
			return nil, channelErrorf("channel numbers must be positive in channel set `%s`", s)
		}
		for ch := lo; ch <= hi; ch++ {
			if !seen[ch] {
				seen[ch] = true
				channels = append(channels, ch)
			}
		}
	}
	return channels, nil
}

// ChannelVariableName returns the name of the channel-qualified
// instance of a variable, e.g. ("brightness_temperature", 4) yields
// "brightness_temperature_4". A trailing underscore on the base name
// collapses into the separator, and for names carrying a "@Group"
// suffix the channel number is inserted before the group.
func ChannelVariableName(base string, channel int) string {
	name, group := base, ""
	if i := strings.Index(base, "@"); i >= 0 {
		name, group = base[:i], base[i:]
	}
	name = strings.TrimSuffix(name, "_")
	return name + "_" + strconv.Itoa(channel) + group
}
