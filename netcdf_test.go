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
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestObsSpaceNetCDFRoundTrip(t *testing.T) {
	const tolerance = 1e-6

	o := newTestObsSpace(t)
	if err := o.Create("station_name@MetaData", DTypeString); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "obs.nc")
	w, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.WriteNCF(w); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := LoadObsSpace(r)
	if err != nil {
		t.Fatal(err)
	}

	if got.NLocations() != o.NLocations() {
		t.Fatalf("loaded %d locations, want %d", got.NLocations(), o.NLocations())
	}
	if got.Has("station_name@MetaData") {
		t.Error("string columns should not round-trip through the NetCDF file")
	}

	lats := readFloats(t, o, "latitude@MetaData")
	gotLats := readFloats(t, got, "latitude@MetaData")
	for i := range lats {
		if math.Abs(lats[i]-gotLats[i]) > tolerance {
			t.Errorf("latitude %d = %g, want %g", i, gotLats[i], lats[i])
		}
	}

	scans, err := o.Read("scan_position@MetaData")
	if err != nil {
		t.Fatal(err)
	}
	gotScans, err := got.Read("scan_position@MetaData")
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range gotScans.([]int) {
		if v != scans.([]int)[i] {
			t.Errorf("scan position %d = %d, want %d", i, v, scans.([]int)[i])
		}
	}
}
