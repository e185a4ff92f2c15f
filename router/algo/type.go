package algo

import "github.com/paulmach/orb"

type NodeKind int

const (
	Building NodeKind = iota
	Stop
)

func (k NodeKind) String() string {
	switch k {
	case Building:
		return "building"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Coord is a WGS-84 position in degrees.
type Coord struct {
	Lat float64 `yaml:"lat" json:"lat" bson:"lat"`
	Lon float64 `yaml:"lon" json:"lon" bson:"lon"`
}

// Valid reports whether the coordinate is finite and within [-90, 90] x [-180, 180].
func (c Coord) Valid() bool {
	// NaN不满足任何比较
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// orb的点为[lon, lat]
func (c Coord) Point() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

type Node struct {
	ID   int
	Name string
	Kind NodeKind
	Coord
}

type SearchResult struct {
	Path []int   // 起点到终点的节点序列
	Cost float64 // 路径边权之和（米）
	Goal int     // 到达的终点
}
