package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/PrishaShah30/AIProject/router"
	"github.com/PrishaShah30/AIProject/router/algo"
	"github.com/gorilla/mux"
)

var (
	// 错误：服务处于维护模式
	ErrMaintenance = errors.New("service is under maintenance")
	// 错误：请求中没有建筑
	ErrNoBuilding = errors.New("no building in request")
)

type RoutingServer struct {
	router   *router.Router
	counters *RequestCounters

	// 维护模式下拒绝查询
	maintenance atomic.Bool
	// 单次搜索的超时时间，0表示不限制
	searchTimeout time.Duration
}

func NewRoutingServer(r *router.Router, searchTimeout time.Duration) *RoutingServer {
	return &RoutingServer{
		router:        r,
		counters:      NewRequestCounters(),
		searchTimeout: searchTimeout,
	}
}

// FindNearestStop applies the service policies around one nearest-stop search.
func (s *RoutingServer) FindNearestStop(ctx context.Context, building string) (*router.NearestStopResult, error) {
	if s.maintenance.Load() {
		s.counters.rejected.Inc()
		return nil, ErrMaintenance
	}
	s.counters.total.Inc()
	if building == "" {
		s.counters.failed.Inc()
		return nil, ErrNoBuilding
	}
	if s.router.HasBuilding(building) {
		s.counters.building(building)
	}
	if s.searchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.searchTimeout)
		defer cancel()
	}
	log.Debugf("search nearest stop of %q", building)
	ret, err := s.router.SearchNearestStop(ctx, building)
	if err != nil {
		s.counters.failed.Inc()
		return nil, err
	}
	s.counters.succeeded.Inc()
	return ret, nil
}

// 暂停查询服务
func (s *RoutingServer) Suspend() {
	s.maintenance.Store(true)
	log.Warn("maintenance mode on")
}

// 恢复查询服务
func (s *RoutingServer) Resume() {
	s.maintenance.Store(false)
	log.Info("maintenance mode off")
}

func (s *RoutingServer) Suspended() bool {
	return s.maintenance.Load()
}

func (s *RoutingServer) Stats() CounterSnapshot {
	return s.counters.Snapshot()
}

// 关闭查询服务：之后的请求按维护模式拒绝，并输出累计的请求统计
func (s *RoutingServer) Close() {
	s.maintenance.Store(true)
	stats := s.counters.Snapshot()
	log.Infof("routing server closed: total=%v succeeded=%v failed=%v rejected=%v",
		stats.Total, stats.Succeeded, stats.Failed, stats.Rejected)
}

// http

func (s *RoutingServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/buildings", s.handleBuildings).Methods(http.MethodGet)
	api.HandleFunc("/find_nearest_stop", s.handleFindNearestStop).Methods(http.MethodPost)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/maintenance", s.handleGetMaintenance).Methods(http.MethodGet)
	api.HandleFunc("/maintenance", s.handleSetMaintenance).Methods(http.MethodPut)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrMaintenance):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrNoBuilding), errors.Is(err, router.ErrUnknownBuilding):
		return http.StatusBadRequest
	case errors.Is(err, algo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, algo.ErrCancelled):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *RoutingServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "maintenance": s.Suspended()})
}

func (s *RoutingServer) handleBuildings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"buildings": s.router.Buildings()})
}

// 支持表单字段building或JSON {"building": ...}
func buildingFromRequest(r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body struct {
			Building string `json:"building"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", fmt.Errorf("invalid request body: %w", err)
		}
		return body.Building, nil
	}
	return r.FormValue("building"), nil
}

func (s *RoutingServer) handleFindNearestStop(w http.ResponseWriter, r *http.Request) {
	building, err := buildingFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ret, err := s.FindNearestStop(r.Context(), building)
	if err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			log.Errorf("find nearest stop of %q: %v", building, err)
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, ret)
}

func (s *RoutingServer) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Stats())
}

func (s *RoutingServer) handleGetMaintenance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": s.Suspended()})
}

func (s *RoutingServer) handleSetMaintenance(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Enabled == nil {
		writeError(w, http.StatusBadRequest, errors.New(`expect {"enabled": true|false}`))
		return
	}
	if *body.Enabled {
		s.Suspend()
	} else {
		s.Resume()
	}
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": s.Suspended()})
}
