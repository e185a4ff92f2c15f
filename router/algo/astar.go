package algo

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb/geo"
	"github.com/samber/lo"
)

type HeuristicPolicy int

const (
	// 以直线距离起点最近的终点为锚点，所有节点的h都是到锚点的球面距离
	// 搜索可能在另一个边权更小的终点结束，此时h并不是严格可采纳的
	HeuristicAnchor HeuristicPolicy = iota
	// 每个节点的h取到任一终点的最小球面距离
	HeuristicNearestGoal
)

type searchOptions struct {
	policy HeuristicPolicy
}

type SearchOption func(*searchOptions)

func WithHeuristic(policy HeuristicPolicy) SearchOption {
	return func(o *searchOptions) {
		o.policy = policy
	}
}

// Haversine returns the great-circle distance between two nodes in meters.
func (g *Graph) Haversine(u, v int) float64 {
	return geo.DistanceHaversine(g.nodes[u].Point(), g.nodes[v].Point())
}

func (g *Graph) heuristic(start int, goals []int, policy HeuristicPolicy) func(int) float64 {
	switch policy {
	case HeuristicNearestGoal:
		return func(n int) float64 {
			best := math.Inf(0)
			for _, goal := range goals {
				best = math.Min(best, g.Haversine(n, goal))
			}
			return best
		}
	default:
		anchor := g.AnchorGoal(start, goals)
		return func(n int) float64 {
			return g.Haversine(n, anchor)
		}
	}
}

// AnchorGoal returns the goal with the minimum great-circle distance to start.
// goals must be sorted and non-empty so that ties resolve to the lowest id.
// If no distance is comparable the lowest goal is the anchor.
func (g *Graph) AnchorGoal(start int, goals []int) int {
	anchor, best := goals[0], math.Inf(0)
	for _, goal := range goals {
		if d := g.Haversine(start, goal); d < best {
			anchor, best = goal, d
		}
	}
	return anchor
}

func (g *Graph) reconstructPath(cameFrom map[int]int, curNode int) ([]int, float64) {
	pathBeforeReversed := []int{curNode}
	for {
		if from, ok := cameFrom[curNode]; ok {
			curNode = from
			pathBeforeReversed = append(pathBeforeReversed, curNode)
		} else {
			break
		}
	}
	path := lo.Reverse(pathBeforeReversed)
	// 按路径顺序累加边权，与搜索时的g值一致
	cost := .0
	for i := 0; i < len(path)-1; i++ {
		cost += g.edges[path[i]][path[i+1]]
	}
	return path, cost
}

// ShortestPathToAny runs A* from start and stops at the first goal popped from the open set.
func (g *Graph) ShortestPathToAny(ctx context.Context, start int, goals []int, opts ...SearchOption) (*SearchResult, error) {
	o := searchOptions{policy: HeuristicAnchor}
	for _, opt := range opts {
		opt(&o)
	}
	if !g.HasNode(start) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStart, start)
	}
	validGoals := lo.Uniq(lo.Filter(goals, func(id int, _ int) bool {
		return g.HasNode(id)
	}))
	if len(validGoals) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoalSet, goals)
	}
	sort.Ints(validGoals)
	goalSet := make(map[int]struct{}, len(validGoals))
	for _, id := range validGoals {
		goalSet[id] = struct{}{}
	}
	h := g.heuristic(start, validGoals, o.policy)

	openSet := make(PriorityQueue, 1)
	openSetMap := make(map[int]*Item, 1) // openSet value -> openSet item
	cameFrom := make(map[int]int, 0)
	gScore := make(map[int]float64, 0)
	gScore[start] = .0
	openSet[0] = &Item{Value: start, Priority: h(start), Index: 0}
	openSetMap[start] = openSet[0]
	heap.Init(&openSet)
	for openSet.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		cur := heap.Pop(&openSet).(*Item).Value
		if _, ok := goalSet[cur]; ok {
			path, cost := g.reconstructPath(cameFrom, cur)
			return &SearchResult{Path: path, Cost: cost, Goal: cur}, nil
		}
		for _, neighbor := range g.adj[cur] {
			gScoreTentative := gScore[cur] + g.edges[cur][neighbor]
			gScoreNeighbor, ok := gScore[neighbor]
			if !ok {
				gScoreNeighbor = math.Inf(0)
			}
			if gScoreTentative < gScoreNeighbor {
				cameFrom[neighbor] = cur
				gScore[neighbor] = gScoreTentative
				fScore := gScoreTentative + h(neighbor)
				if item, ok := openSetMap[neighbor]; ok && item.Index >= 0 {
					// 仍在heap中的节点，修改其优先级
					item.Priority = fScore
					heap.Fix(&openSet, item.Index)
				} else {
					// 新访问或已弹出的节点重新入堆
					item := &Item{Value: neighbor, Priority: fScore}
					heap.Push(&openSet, item)
					openSetMap[neighbor] = item
				}
			}
		}
	}
	return nil, fmt.Errorf("%w: from %d to any of %v", ErrNotFound, start, validGoals)
}
