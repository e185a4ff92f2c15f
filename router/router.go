package router

import (
	"errors"

	"github.com/PrishaShah30/AIProject/router/algo"
)

var (
	// 错误：不是图中的建筑
	ErrUnknownBuilding = errors.New("unknown building")
)

type Router struct {
	// campus graph topo
	//   [Bldg]·----w----·[Stop]----w----·[Bldg]
	// 1. 拓扑中的点为有实测距离的建筑和车站
	// 2. 拓扑中的边为车站与建筑之间的实测步行距离（米），双向
	// 3. 建图后只读，搜索之间不共享可变状态
	graph *algo.Graph
	// 图中的建筑名称，已排序
	buildings []string
	// 搜索终点集合：全部车站
	stops []int
	// A*启发式策略
	policy algo.HeuristicPolicy
}

func New(data *CampusData, policy algo.HeuristicPolicy) (*Router, error) {
	g, err := initGraph(data)
	if err != nil {
		return nil, err
	}
	r := &Router{graph: g, policy: policy}
	for _, id := range g.NodesOfKind(algo.Building) {
		r.buildings = append(r.buildings, g.Node(id).Name)
	}
	r.stops = g.NodesOfKind(algo.Stop)
	log.Infof("campus graph: %v buildings, %v stops, %v edges",
		len(r.buildings), len(r.stops), g.EdgeCount())
	return r, nil
}

// getter

func (r *Router) Graph() *algo.Graph {
	return r.graph
}

// Buildings returns the names of the buildings admitted in the graph.
func (r *Router) Buildings() []string {
	return append([]string(nil), r.buildings...)
}

func (r *Router) HasBuilding(name string) bool {
	id, err := r.graph.Lookup(name)
	return err == nil && r.graph.Node(id).Kind == algo.Building
}
