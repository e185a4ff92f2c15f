package algo

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"
)

// Graph is the campus graph: buildings and stops joined by measured walking distances.
// 建图后只读，多个搜索可以并发使用，不需要加锁
type Graph struct {
	// 点，下标即为节点id
	nodes []Node
	// 邻接表，node -> neighbor -> 边权（米）
	edges []map[int]float64
	// 按id排序的邻居，保证遍历顺序确定
	adj [][]int
	// 名称 -> 节点id
	index map[string]int
	// 无向边数
	edgeCount int
}

func newGraph() *Graph {
	return &Graph{
		nodes: make([]Node, 0),
		edges: make([]map[int]float64, 0),
		index: make(map[string]int),
	}
}

func (g *Graph) initNode(name string, kind NodeKind, c Coord) int {
	id := len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id, Name: name, Kind: kind, Coord: c})
	g.edges = append(g.edges, make(map[int]float64))
	g.index[name] = id
	return id
}

// 双向边，重复写入时后者覆盖前者
func (g *Graph) initEdge(u, v int, w float64) {
	if _, ok := g.edges[u][v]; !ok {
		g.edgeCount++
	}
	g.edges[u][v] = w
	g.edges[v][u] = w
}

func (g *Graph) sortAdjacency() {
	g.adj = make([][]int, len(g.edges))
	for u, neighbors := range g.edges {
		ids := lo.Keys(neighbors)
		sort.Ints(ids)
		g.adj[u] = ids
	}
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsInf(w, 1)
}

// Build constructs the graph from coordinate tables and the stop -> building distance table.
// Only stops that are keys of distances and buildings that appear in some inner table are admitted,
// and their coordinates must be valid.
// The input is fully validated before any node is created, so a failed build leaves nothing behind.
func Build(buildings, stops map[string]Coord, distances map[string]map[string]float64) (*Graph, error) {
	for name := range buildings {
		if _, ok := stops[name]; ok {
			return nil, fmt.Errorf("%w: %q is both a building and a stop", ErrDuplicateName, name)
		}
	}
	stopNames := lo.Keys(distances)
	sort.Strings(stopNames)
	buildingSet := make(map[string]struct{})
	for _, stop := range stopNames {
		c, ok := stops[stop]
		if !ok {
			return nil, fmt.Errorf("%w: stop %q has no coordinates", ErrUnknownLocation, stop)
		}
		if !c.Valid() {
			return nil, fmt.Errorf("%w: stop %q at %+v", ErrInvalidCoord, stop, c)
		}
		for building, w := range distances[stop] {
			c, ok := buildings[building]
			if !ok {
				return nil, fmt.Errorf("%w: building %q has no coordinates", ErrUnknownLocation, building)
			}
			if !c.Valid() {
				return nil, fmt.Errorf("%w: building %q at %+v", ErrInvalidCoord, building, c)
			}
			// NaN不满足w >= 0
			if !validWeight(w) {
				return nil, fmt.Errorf("%w: %v between stop %q and building %q", ErrInvalidWeight, w, stop, building)
			}
			buildingSet[building] = struct{}{}
		}
	}
	buildingNames := lo.Keys(buildingSet)
	sort.Strings(buildingNames)

	g := newGraph()
	for _, stop := range stopNames {
		g.initNode(stop, Stop, stops[stop])
	}
	for _, building := range buildingNames {
		g.initNode(building, Building, buildings[building])
	}
	for _, stop := range stopNames {
		row := distances[stop]
		names := lo.Keys(row)
		sort.Strings(names)
		for _, building := range names {
			g.initEdge(g.index[stop], g.index[building], row[building])
		}
	}
	g.sortAdjacency()
	return g, nil
}

// getter

func (g *Graph) Lookup(name string) (int, error) {
	if id, ok := g.index[name]; ok {
		return id, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrNodeNotFound, name)
}

// NodesOfKind returns the ids of all nodes of the kind in ascending order.
func (g *Graph) NodesOfKind(kind NodeKind) []int {
	ids := make([]int, 0)
	for _, n := range g.nodes {
		if n.Kind == kind {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func (g *Graph) HasNode(id int) bool {
	return id >= 0 && id < len(g.nodes)
}

func (g *Graph) Node(id int) Node {
	return g.nodes[id]
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

func (g *Graph) EdgeWeight(u, v int) (float64, bool) {
	if !g.HasNode(u) || !g.HasNode(v) {
		return 0, false
	}
	w, ok := g.edges[u][v]
	return w, ok
}

func (g *Graph) Neighbors(id int) []int {
	return g.adj[id]
}
