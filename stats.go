package main

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// RequestCounters tallies the nearest-stop requests seen by one RoutingServer.
type RequestCounters struct {
	total     *xsync.Counter
	succeeded *xsync.Counter
	failed    *xsync.Counter
	// 维护模式下被拒绝的请求
	rejected   *xsync.Counter
	byBuilding *xsync.MapOf[string, *xsync.Counter]
}

type CounterSnapshot struct {
	Total      int64            `json:"total"`
	Succeeded  int64            `json:"succeeded"`
	Failed     int64            `json:"failed"`
	Rejected   int64            `json:"rejected"`
	ByBuilding map[string]int64 `json:"by_building"`
}

func NewRequestCounters() *RequestCounters {
	return &RequestCounters{
		total:      xsync.NewCounter(),
		succeeded:  xsync.NewCounter(),
		failed:     xsync.NewCounter(),
		rejected:   xsync.NewCounter(),
		byBuilding: xsync.NewMapOf[string, *xsync.Counter](),
	}
}

func (c *RequestCounters) building(name string) {
	counter, _ := c.byBuilding.LoadOrCompute(name, func() *xsync.Counter {
		return xsync.NewCounter()
	})
	counter.Inc()
}

func (c *RequestCounters) Snapshot() CounterSnapshot {
	s := CounterSnapshot{
		Total:      c.total.Value(),
		Succeeded:  c.succeeded.Value(),
		Failed:     c.failed.Value(),
		Rejected:   c.rejected.Value(),
		ByBuilding: make(map[string]int64),
	}
	c.byBuilding.Range(func(name string, counter *xsync.Counter) bool {
		s.ByBuilding[name] = counter.Value()
		return true
	})
	return s
}
