package router

import (
	"github.com/PrishaShah30/AIProject/router/algo"
	"github.com/paulmach/orb/geojson"
)

// CampusData holds the externally supplied tables the graph is built from.
type CampusData struct {
	Buildings map[string]algo.Coord `yaml:"buildings" json:"buildings"`
	Stops     map[string]algo.Coord `yaml:"stops" json:"stops"`
	// stop -> building -> 实测步行距离（米）
	Distances map[string]map[string]float64 `yaml:"distances" json:"distances"`
}

type TravelEstimate struct {
	DistanceMeters float64 `json:"distance_meters"`
	DistanceMiles  float64 `json:"distance_miles"`
	TimeMinutes    int     `json:"time_minutes"`
}

type NearestStop struct {
	Name     string         `json:"name"`
	Location algo.Coord     `json:"location"`
	Walking  TravelEstimate `json:"walking"`
	// 沿同一路径的驾车估计
	Driving TravelEstimate `json:"driving"`
}

type PathPoint struct {
	Name     string     `json:"name"`
	Kind     string     `json:"kind"`
	Location algo.Coord `json:"location"`
}

type NearestStopResult struct {
	BuildingName     string            `json:"building_name"`
	BuildingLocation algo.Coord        `json:"building_location"`
	NearestStop      NearestStop       `json:"nearest_stop"`
	Path             []PathPoint       `json:"path"`
	Geometry         *geojson.Geometry `json:"geometry"`
}
