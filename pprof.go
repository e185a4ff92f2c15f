package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"

	"github.com/gorilla/mux"
)

// 调试接口：/debug/pprof/下为pprof实时分析页面，/debug/counters为请求统计
func newDebugHandler(server *RoutingServer) http.Handler {
	r := mux.NewRouter()
	d := r.PathPrefix("/debug").Subrouter()
	d.HandleFunc("/pprof/cmdline", pprof.Cmdline)
	d.HandleFunc("/pprof/profile", pprof.Profile)
	d.HandleFunc("/pprof/symbol", pprof.Symbol)
	d.HandleFunc("/pprof/trace", pprof.Trace)
	// heap、goroutine、block等命名profile由Index分发
	d.PathPrefix("/pprof/").HandlerFunc(pprof.Index)
	d.HandleFunc("/counters", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, server.Stats())
	}).Methods(http.MethodGet)
	return r
}

// startHTTPDebugger serves the debug handler until ctx is done.
func startHTTPDebugger(ctx context.Context, addr string, server *RoutingServer) {
	s := &http.Server{Addr: addr, Handler: newDebugHandler(server)}
	go func() {
		<-ctx.Done()
		s.Close()
	}()
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warnf("pprof server stopped: %v", err)
		}
	}()
	log.Infof("pprof listening at %v", addr)
}
