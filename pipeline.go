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

// Filter mutates an observation-space store in place. One invocation
// processes one store snapshot to completion; no partial results are
// observable from outside.
type Filter interface {
	// Apply runs the filter against the store.
	Apply(o *ObsSpace) error
	// RequiresPostPass reports whether the filter needs variables that
	// only exist after the forward operator has run (model
	// equivalents), and so must be deferred to the post pass.
	RequiresPostPass() bool
}

// Pipeline runs a sequence of filters in two passes around the forward
// observation operator: filters that don't require post-pass variables
// run in the pre pass, the rest in the post pass. Within a pass,
// filters run in declaration order.
type Pipeline struct {
	filters []Filter
}

// NewPipeline returns a pipeline over the given filters.
func NewPipeline(filters ...Filter) *Pipeline {
	return &Pipeline{filters: filters}
}

// PrePass applies every filter that does not require the post pass.
func (p *Pipeline) PrePass(o *ObsSpace) error {
	return p.run(o, false)
}

// PostPass applies every filter that requires the post pass.
func (p *Pipeline) PostPass(o *ObsSpace) error {
	return p.run(o, true)
}

func (p *Pipeline) run(o *ObsSpace, post bool) error {
	for _, f := range p.filters {
		if f.RequiresPostPass() == post {
			if err := f.Apply(o); err != nil {
				return err
			}
		}
	}
	return nil
}
