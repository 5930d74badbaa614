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

// Package ufo implements observation-space filters for data
// assimilation in numerical weather prediction. Filters operate on an
// ObsSpace, a store of typed per-location variables, and are
// configured declaratively: which variables to touch, where (a
// location-selection predicate), and what values to assign (constants
// or obs-function outputs).
package ufo

// Version gives the version number.
const Version = "0.1.0"
