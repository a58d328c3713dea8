/*
 * unique.go, part of gopharm.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * Gopharm is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 */

package pharm

import "go.uber.org/zap"

// UniquePoint is a pharmacophoric point that keeps track of how many times it has been seen
// in a set of pharmacophores, such as the frames of a molecular dynamics trajectory.
type UniquePoint struct {
	Point     *Point
	Count     int
	Frequency float64
	//The frames in which the point was observed.
	Timesteps []int
}

// NewUniquePoint returns a UniquePoint built from a copy of p, without direction,
// which has been seen once.
func NewUniquePoint(p *Point) *UniquePoint {
	np := p.Copy()
	np.SetDirection(nil)
	return &UniquePoint{Point: np, Count: 1, Timesteps: []int{}}
}

// Observe registers a new sighting of the point at the given timestep.
func (U *UniquePoint) Observe(timestep int) {
	U.Count++
	U.Timesteps = append(U.Timesteps, timestep)
}

// UpdateFrequency sets the frequency of the point as the ratio between its
// count and total, and returns it.
func (U *UniquePoint) UpdateFrequency(total int) float64 {
	if total <= 0 {
		U.Frequency = 0
	} else {
		U.Frequency = float64(U.Count) / float64(total)
	}
	return U.Frequency
}

func (U *UniquePoint) String() string {
	return U.Point.String()
}

// Aggregator collects the pharmacophoric points of several frames into a set of
// unique points. Two points are the same if they have the same kind and are formed
// by the same atoms.
type Aggregator struct {
	unique []*UniquePoint
	frames int
}

// Add adds the points of a frame to the aggregator. A point matching an already
// known unique point is counted at most once per frame.
func (A *Aggregator) Add(points []*Point, timestep int) {
	A.frames++
	seen := make(map[*UniquePoint]bool)
	for _, p := range points {
		if p == nil {
			continue
		}
		var match *UniquePoint
		for _, u := range A.unique {
			if u.Point.SameFeature(p) {
				match = u
				break
			}
		}
		if match == nil {
			u := NewUniquePoint(p)
			u.Timesteps = append(u.Timesteps, timestep)
			A.unique = append(A.unique, u)
			seen[u] = true
			continue
		}
		if !seen[match] {
			match.Observe(timestep)
			seen[match] = true
		}
	}
	logger.Debug("frame aggregated", zap.Int("timestep", timestep), zap.Int("unique_points", len(A.unique)))
}

// Frames returns the number of frames added so far.
func (A *Aggregator) Frames() int { return A.frames }

// UniquePoints returns the unique points found so far, in the order they were first
// seen, with their frequencies updated.
func (A *Aggregator) UniquePoints() []*UniquePoint {
	ret := make([]*UniquePoint, len(A.unique))
	for i, u := range A.unique {
		u.UpdateFrequency(A.frames)
		ret[i] = u
	}
	return ret
}

// Pharmacophore returns a pharmacophore with copies of the unique points that
// have a frequency of at least minFrequency.
func (A *Aggregator) Pharmacophore(minFrequency float64) *Pharmacophore {
	ph := New()
	for _, u := range A.UniquePoints() {
		if u.Frequency >= minFrequency {
			ph.Add(u.Point.Copy())
		}
	}
	return ph
}

// Deduplicate returns the points in points without those that are Equal to an
// earlier one. The order is kept.
func Deduplicate(points []*Point) []*Point {
	ret := make([]*Point, 0, len(points))
	for _, p := range points {
		repeated := false
		for _, r := range ret {
			if r.Equal(p) {
				repeated = true
				break
			}
		}
		if !repeated {
			ret = append(ret, p)
		}
	}
	return ret
}
