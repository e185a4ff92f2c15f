package algo

import "errors"

const (
	// 步行速度（米/分钟）
	WALK_SPEED = 83.0
	// 校园内车辆速度（米/分钟），约24km/h
	DRIVE_SPEED = 400.0

	// 每英里的米数
	METERS_PER_MILE = 1609.34
)

var (
	// 错误：边权为负数
	ErrInvalidWeight = errors.New("invalid edge weight")
	// 错误：距离表引用了没有坐标的地点
	ErrUnknownLocation = errors.New("unknown location")
	// 错误：坐标不是有限值或超出经纬度范围
	ErrInvalidCoord = errors.New("invalid coordinate")
	// 错误：建筑与车站重名
	ErrDuplicateName = errors.New("duplicate location name")
	// 错误：图中没有该点
	ErrNodeNotFound = errors.New("node not found")
	// 错误：起点不在图中
	ErrInvalidStart = errors.New("invalid start node")
	// 错误：终点集合为空或全部不在图中
	ErrInvalidGoalSet = errors.New("invalid goal set")
	// 错误：起点无法到达任一终点
	ErrNotFound = errors.New("no path found")
	// 错误：距离为负数、NaN或无穷大
	ErrInvalidDistance = errors.New("invalid distance")
	// 错误：搜索被调用方取消
	ErrCancelled = errors.New("search cancelled")
)
