package router_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/PrishaShah30/AIProject/router"
	"github.com/PrishaShah30/AIProject/router/algo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCampus() *router.CampusData {
	return &router.CampusData{
		Buildings: map[string]algo.Coord{
			"Bldg1":     {Lat: 40.5240, Lon: -74.4370},
			"Bldg2":     {Lat: 40.5230, Lon: -74.4370},
			"Far Hall":  {Lat: 40.5100, Lon: -74.4500},
			"Lone Hall": {Lat: 40.5300, Lon: -74.4600},
		},
		Stops: map[string]algo.Coord{
			"StopA":     {Lat: 40.5231, Lon: -74.4370},
			"StopB":     {Lat: 40.5233, Lon: -74.4370},
			"Dead Stop": {Lat: 40.5300, Lon: -74.4601},
		},
		Distances: map[string]map[string]float64{
			"StopA":     {"Bldg1": 100, "Bldg2": 500},
			"StopB":     {"Bldg2": 50},
			"Dead Stop": {},
		},
	}
}

func newTestRouter(t *testing.T, policy algo.HeuristicPolicy) *router.Router {
	r, err := router.New(testCampus(), policy)
	require.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	r := newTestRouter(t, algo.HeuristicAnchor)
	assert.Equal(t, []string{"Bldg1", "Bldg2"}, r.Buildings())
	assert.True(t, r.HasBuilding("Bldg1"))
	assert.False(t, r.HasBuilding("Far Hall"))
	assert.False(t, r.HasBuilding("StopA"))
	assert.Equal(t, 5, r.Graph().NodeCount())
}

func TestNewRejectsNegativeWeight(t *testing.T) {
	campus := testCampus()
	campus.Distances["StopB"]["Bldg1"] = -3
	r, err := router.New(campus, algo.HeuristicAnchor)
	assert.ErrorIs(t, err, algo.ErrInvalidWeight)
	assert.Nil(t, r)

	r, err = router.New(nil, algo.HeuristicAnchor)
	assert.Error(t, err)
	assert.Nil(t, r)
}

func TestSearchNearestStop(t *testing.T) {
	for _, policy := range []algo.HeuristicPolicy{algo.HeuristicAnchor, algo.HeuristicNearestGoal} {
		r := newTestRouter(t, policy)
		ret, err := r.SearchNearestStop(context.Background(), "Bldg2")
		require.NoError(t, err)
		assert.Equal(t, "Bldg2", ret.BuildingName)
		assert.Equal(t, algo.Coord{Lat: 40.5230, Lon: -74.4370}, ret.BuildingLocation)
		assert.Equal(t, "StopB", ret.NearestStop.Name)
		assert.Equal(t, algo.Coord{Lat: 40.5233, Lon: -74.4370}, ret.NearestStop.Location)
		assert.Equal(t, 50.0, ret.NearestStop.Walking.DistanceMeters)
		assert.InDelta(t, 50/1609.34, ret.NearestStop.Walking.DistanceMiles, 1e-12)
		assert.Equal(t, 1, ret.NearestStop.Walking.TimeMinutes)
		assert.Equal(t, 1, ret.NearestStop.Driving.TimeMinutes)
		require.Len(t, ret.Path, 2)
		assert.Equal(t, router.PathPoint{Name: "Bldg2", Kind: "building", Location: ret.BuildingLocation}, ret.Path[0])
		assert.Equal(t, "stop", ret.Path[1].Kind)
	}
}

func TestSearchNearestStopMultiHop(t *testing.T) {
	r := newTestRouter(t, algo.HeuristicAnchor)
	ret, err := r.SearchNearestStop(context.Background(), "Bldg1")
	require.NoError(t, err)
	assert.Equal(t, "StopA", ret.NearestStop.Name)
	assert.Equal(t, 100.0, ret.NearestStop.Walking.DistanceMeters)
	assert.Equal(t, 2, ret.NearestStop.Walking.TimeMinutes)
}

func TestSearchNearestStopGeometry(t *testing.T) {
	r := newTestRouter(t, algo.HeuristicAnchor)
	ret, err := r.SearchNearestStop(context.Background(), "Bldg2")
	require.NoError(t, err)
	data, err := json.Marshal(ret.Geometry)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"LineString","coordinates":[[-74.437,40.523],[-74.437,40.5233]]}`, string(data))
}

func TestSearchNearestStopErrors(t *testing.T) {
	r := newTestRouter(t, algo.HeuristicAnchor)
	ctx := context.Background()

	_, err := r.SearchNearestStop(ctx, "Nowhere Hall")
	assert.ErrorIs(t, err, router.ErrUnknownBuilding)
	// 没有实测距离的建筑不在图中
	_, err = r.SearchNearestStop(ctx, "Far Hall")
	assert.ErrorIs(t, err, router.ErrUnknownBuilding)
	// 车站不是合法的起点建筑
	_, err = r.SearchNearestStop(ctx, "StopA")
	assert.ErrorIs(t, err, router.ErrUnknownBuilding)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = r.SearchNearestStop(cancelled, "Bldg1")
	assert.ErrorIs(t, err, algo.ErrCancelled)
}
