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

import "fmt"

// ConfigurationError reports an invalid filter configuration: mutually
// exclusive options specified together (or neither), a declared type
// conflicting with an existing variable's stored type, or a missing
// type declaration for a variable that doesn't exist yet. All
// configuration errors abort the enclosing filter invocation.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string {
	return "ufo: configuration: " + e.msg
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// TypeMismatchError reports that a computed value sequence cannot be
// stored in the target variable because the types are incompatible.
type TypeMismatchError struct {
	msg string
}

func (e *TypeMismatchError) Error() string {
	return "ufo: type mismatch: " + e.msg
}

func typeMismatchErrorf(format string, args ...interface{}) error {
	return &TypeMismatchError{msg: fmt.Sprintf(format, args...)}
}

// ChannelParseError reports a malformed channel-set string such as
// "1-" or "a,b".
type ChannelParseError struct {
	msg string
}

func (e *ChannelParseError) Error() string {
	return "ufo: channels: " + e.msg
}

func channelErrorf(format string, args ...interface{}) error {
	return &ChannelParseError{msg: fmt.Sprintf(format, args...)}
}
