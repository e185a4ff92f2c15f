package main

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type benchmarkOptions struct {
	count int
	seed  int64
	cpu   int
}

func newBenchmarkCmd() *cobra.Command {
	opts := benchmarkOptions{}
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Run random nearest-stop searches and report timings",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := newServerFromFlags(cmd)
			if err != nil {
				return err
			}
			defer server.Close()
			runBenchmark(cmd.Context(), server, opts)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.count, "count", 1000, "the random routing count for benchmark")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "the seed for benchmark")
	cmd.Flags().IntVar(&opts.cpu, "cpu", 1, "the cpu count for benchmark")
	return cmd
}

func runBenchmark(ctx context.Context, server *RoutingServer, opts benchmarkOptions) int32 {
	// 只在benchmark期间屏蔽单次查询的日志
	level := log.Logger.GetLevel()
	log.Logger.SetLevel(logrus.WarnLevel)
	defer log.Logger.SetLevel(level)
	// 设置随机种子
	e := rand.New(rand.NewSource(opts.seed))
	buildings := server.router.Buildings()
	if len(buildings) == 0 || opts.count <= 0 {
		log.Warn("nothing to benchmark")
		return 0
	}
	// 随机生成count个请求，每个请求的起点建筑都是随机的
	reqs := make([]string, opts.count)
	for i := range reqs {
		reqs[i] = buildings[e.Intn(len(buildings))]
	}

	// 开始benchmark
	start := time.Now()
	var success atomic.Int32
	run := func(building string) {
		if _, err := server.FindNearestStop(ctx, building); err != nil {
			log.Error("benchmark failed, err:", err)
			return
		}
		success.Add(1)
	}
	if opts.cpu <= 1 {
		for _, req := range reqs {
			run(req)
		}
	} else {
		// 设置cpu数量
		defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(opts.cpu))
		var wg sync.WaitGroup
		wg.Add(len(reqs))
		for _, req := range reqs {
			go func(req string) {
				defer wg.Done()
				run(req)
			}(req)
		}
		wg.Wait()
	}
	timeCost := time.Since(start)
	log.Warn(
		"benchmark finished", "\n",
		"count:", opts.count, "\n",
		"time:", timeCost, "\n",
		"avg:", timeCost/time.Duration(opts.count), "\n",
		"success:", success.Load(), "\n",
	)
	return success.Load()
}
