/*
 * graph.go, part of gopharm.
 *
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
 */

// Package chemgraph builds distance graphs between the features of a pharmacophore.
// The graphs implement gonum's graph.WeightedUndirected, so the gonum graph
// algorithms can be used on them.
package chemgraph

import (
	"math"
	"sort"

	pharm "github.com/rmera/gopharm"
	v3 "github.com/rmera/gopharm/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/mat"
)

// Feature is a node in the graph: a pharmacophoric feature and its index in the
// pharmacophore.
type Feature struct {
	pharm.GenericFeature
	Index int
	Edges []*Edge
}

// ID returns the index of the feature in the pharmacophore.
func (F *Feature) ID() int64 {
	return int64(F.Index)
}

// Edge joins two features closer than the cutoff of the graph. Edges are not
// directional.
type Edge struct {
	F1, F2   *Feature
	Distance float64
}

func (E *Edge) From() graph.Node {
	return E.F1
}

func (E *Edge) To() graph.Node {
	return E.F2
}

// ReversedEdge returns a new edge with the ends swapped.
func (E *Edge) ReversedEdge() graph.Edge {
	return &Edge{F1: E.F2, F2: E.F1, Distance: E.Distance}
}

// Weight is the distance between the centers of the two features, in angstroms.
func (E *Edge) Weight() float64 {
	return E.Distance
}

// Nodes implements gonum's graph.Nodes
type Nodes struct {
	Features []*Feature
	curr     int
}

func newNodes(f []*Feature) *Nodes {
	return &Nodes{Features: f, curr: -1}
}

func (N *Nodes) Len() int {
	return len(N.Features) - (N.curr + 1)
}
func (N *Nodes) Reset() {
	N.curr = -1
}
func (N *Nodes) Next() bool {
	if N.curr+1 >= len(N.Features) {
		return false
	}
	N.curr++
	return true
}
func (N *Nodes) Node() graph.Node {
	if N.curr < 0 || N.curr >= len(N.Features) {
		return nil
	}
	return N.Features[N.curr]
}

// Graph implements gonum's graph.Graph, graph.Undirected and graph.Weighted interfaces
// for the features of a pharmacophore.
type Graph struct {
	features []*Feature
	edges    []*Edge
	cutoff   float64
}

// New returns the graph of the features in P, where two features are joined by an edge
// if their centers are less than cutoff angstroms apart. Only features of the kinds in
// kinds are included. If no kinds are given, all the kinds are included.
func New(P *pharm.Pharmacophore, cutoff float64, kinds ...pharm.FeatureKind) *Graph {
	G := &Graph{cutoff: cutoff}
	allowed := func(k pharm.FeatureKind) bool {
		if len(kinds) == 0 {
			return true
		}
		for _, v := range kinds {
			if v == k {
				return true
			}
		}
		return false
	}
	F := P.Features()
	for i := 0; F.Next(); i++ {
		g := F.Feature()
		if !allowed(g.Kind) {
			continue
		}
		G.features = append(G.features, &Feature{GenericFeature: g, Index: i})
	}
	for i, f1 := range G.features {
		for _, f2 := range G.features[i+1:] {
			d := floats.Distance(f1.Center[:], f2.Center[:], 2)
			if d >= cutoff {
				continue
			}
			e := &Edge{F1: f1, F2: f2, Distance: d}
			G.edges = append(G.edges, e)
			f1.Edges = append(f1.Edges, e)
			f2.Edges = append(f2.Edges, e)
		}
	}
	return G
}

// Cutoff returns the distance cutoff used to build G.
func (G *Graph) Cutoff() float64 {
	return G.cutoff
}

// Len returns the number of edges in G.
func (G *Graph) Len() int {
	return len(G.edges)
}

func (G *Graph) feature(id int64) *Feature {
	i := sort.Search(len(G.features), func(i int) bool { return G.features[i].ID() >= id })
	if i < len(G.features) && G.features[i].ID() == id {
		return G.features[i]
	}
	return nil
}

// Node returns the feature with the given id, or nil if it is not in G.
func (G *Graph) Node(id int64) graph.Node {
	f := G.feature(id)
	if f == nil {
		return nil
	}
	return f
}

func (G *Graph) Nodes() graph.Nodes {
	return newNodes(G.features)
}

// From returns the features joined to the one with the given id.
func (G *Graph) From(id int64) graph.Nodes {
	f := G.feature(id)
	if f == nil {
		return graph.Empty
	}
	ret := make([]*Feature, 0, len(f.Edges))
	for _, e := range f.Edges {
		//undirected graph
		if e.F1 == f {
			ret = append(ret, e.F2)
		} else {
			ret = append(ret, e.F1)
		}
	}
	return newNodes(ret)
}

func (G *Graph) edge(id1, id2 int64) *Edge {
	f := G.feature(id1)
	if f == nil {
		return nil
	}
	for _, e := range f.Edges {
		if (e.F1.ID() == id1 && e.F2.ID() == id2) || (e.F1.ID() == id2 && e.F2.ID() == id1) {
			return e
		}
	}
	return nil
}

func (G *Graph) HasEdgeBetween(id1, id2 int64) bool {
	return G.edge(id1, id2) != nil
}

// Edge returns the edge between the two features, or nil. The returned edge goes
// from id1 to id2.
func (G *Graph) Edge(id1, id2 int64) graph.Edge {
	e := G.edge(id1, id2)
	if e == nil {
		return nil
	}
	if e.F1.ID() != id1 {
		return e.ReversedEdge()
	}
	return e
}

func (G *Graph) EdgeBetween(id1, id2 int64) graph.Edge {
	return G.Edge(id1, id2)
}

func (G *Graph) WeightedEdge(id1, id2 int64) graph.WeightedEdge {
	e := G.Edge(id1, id2)
	if e == nil {
		return nil
	}
	return e.(*Edge)
}

func (G *Graph) WeightedEdgeBetween(id1, id2 int64) graph.WeightedEdge {
	return G.WeightedEdge(id1, id2)
}

// Weight returns the distance between two joined features. A feature is at 0
// distance from itself. If the features are not joined, it returns +Inf and false.
func (G *Graph) Weight(id1, id2 int64) (w float64, ok bool) {
	if id1 == id2 && G.feature(id1) != nil {
		return 0.0, true
	}
	e := G.edge(id1, id2)
	if e == nil {
		return math.Inf(1), false
	}
	return e.Weight(), true
}

// Clusters returns the connected components of G, as lists of pharmacophore
// indexes. Each cluster is sorted, and clusters are sorted by their first index.
func (G *Graph) Clusters() [][]int {
	cc := topo.ConnectedComponents(G)
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		ids := make([]int, 0, len(c))
		for _, n := range c {
			ids = append(ids, int(n.ID()))
		}
		sort.Ints(ids)
		ret = append(ret, ids)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

// Path returns the shortest path, through the edges of G, between the features with
// pharmacophore indexes i and j, and its length in angstroms. If there is no path,
// it returns nil and +Inf.
func (G *Graph) Path(i, j int) ([]int, float64) {
	from := G.Node(int64(i))
	if from == nil || G.Node(int64(j)) == nil {
		return nil, math.Inf(1)
	}
	sp := path.DijkstraFrom(from, G)
	nodes, w := sp.To(int64(j))
	if len(nodes) == 0 {
		return nil, math.Inf(1)
	}
	ret := make([]int, len(nodes))
	for k, n := range nodes {
		ret[k] = int(n.ID())
	}
	return ret, w
}

// Distances returns the matrix of distances between all the features in G, in the
// order they appear in the pharmacophore, regardless of the cutoff. It returns nil
// for a graph without features.
func (G *Graph) Distances() *mat.SymDense {
	n := len(G.features)
	if n == 0 {
		return nil
	}
	coords := v3.Zeros(n)
	for i, f := range G.features {
		coords.SetRow(i, f.Center[:])
	}
	diff := v3.Zeros(coords.NVecs())
	ret := mat.NewSymDense(n, nil)
	for i := range G.features {
		diff.SubVec(coords, coords.VecView(i))
		for j := i + 1; j < n; j++ {
			ret.SetSym(i, j, diff.VecView(j).Norm())
		}
	}
	return ret
}
