package router

import (
	"fmt"
	"sort"

	"github.com/PrishaShah30/AIProject/router/algo"
	"github.com/samber/lo"
)

// 将坐标表与距离表转换为搜索图
func initGraph(data *CampusData) (*algo.Graph, error) {
	if data == nil {
		return nil, fmt.Errorf("no campus data")
	}
	// 坐标表中未出现在距离表里的地点不会进入图中
	measured := make(map[string]struct{})
	for stop, row := range data.Distances {
		measured[stop] = struct{}{}
		for building := range row {
			measured[building] = struct{}{}
		}
	}
	skipped := lo.Filter(
		append(lo.Keys(data.Buildings), lo.Keys(data.Stops)...),
		func(name string, _ int) bool {
			_, ok := measured[name]
			return !ok
		},
	)
	if len(skipped) > 0 {
		sort.Strings(skipped)
		log.Warnf("%v locations have no measured distances and are left out: %v", len(skipped), skipped)
	}
	g, err := algo.Build(data.Buildings, data.Stops, data.Distances)
	if err != nil {
		return nil, fmt.Errorf("failed to build campus graph: %w", err)
	}
	return g, nil
}
