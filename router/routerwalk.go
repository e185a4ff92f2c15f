package router

import (
	"context"
	"fmt"

	"github.com/PrishaShah30/AIProject/router/algo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/samber/lo"
)

func estimate(meters float64, toMinutes func(float64) (int, error)) (TravelEstimate, error) {
	miles, err := algo.MetersToMiles(meters)
	if err != nil {
		return TravelEstimate{}, err
	}
	minutes, err := toMinutes(meters)
	if err != nil {
		return TravelEstimate{}, err
	}
	return TravelEstimate{DistanceMeters: meters, DistanceMiles: miles, TimeMinutes: minutes}, nil
}

// SearchNearestStop finds the stop with the cheapest walking path from the building.
func (r *Router) SearchNearestStop(ctx context.Context, building string) (ret *NearestStopResult, err error) {
	// panic recover
	defer func() {
		if e := recover(); e != nil {
			ret = nil
			err = fmt.Errorf("panic: SearchNearestStop %v with input building=%q", e, building)
			log.Errorln(err)
		}
	}()

	if !r.HasBuilding(building) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuilding, building)
	}
	start, _ := r.graph.Lookup(building)
	res, err := r.graph.ShortestPathToAny(ctx, start, r.stops, algo.WithHeuristic(r.policy))
	if err != nil {
		log.Debugf("routing failed from %q: %v", building, err)
		return nil, err
	}

	walking, err := estimate(res.Cost, algo.MetersToMinutes)
	if err != nil {
		return nil, err
	}
	driving, err := estimate(res.Cost, algo.MetersToDrivingMinutes)
	if err != nil {
		return nil, err
	}
	// 将搜索结果转换为路由结果
	nodes := lo.Map(res.Path, func(id int, _ int) algo.Node {
		return r.graph.Node(id)
	})
	startNode, goalNode := nodes[0], nodes[len(nodes)-1]
	log.Debugf("nearest stop of %q is %q (%.1fm, %v nodes)", building, goalNode.Name, res.Cost, len(nodes))
	return &NearestStopResult{
		BuildingName:     startNode.Name,
		BuildingLocation: startNode.Coord,
		NearestStop: NearestStop{
			Name:     goalNode.Name,
			Location: goalNode.Coord,
			Walking:  walking,
			Driving:  driving,
		},
		Path: lo.Map(nodes, func(n algo.Node, _ int) PathPoint {
			return PathPoint{Name: n.Name, Kind: n.Kind.String(), Location: n.Coord}
		}),
		Geometry: geojson.NewGeometry(orb.LineString(lo.Map(nodes, func(n algo.Node, _ int) orb.Point {
			return n.Point()
		}))),
	}, nil
}
