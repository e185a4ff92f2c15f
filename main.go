package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/PrishaShah30/AIProject/router"
	"github.com/PrishaShah30/AIProject/router/algo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

var (
	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}

	HEURISTICS = map[string]algo.HeuristicPolicy{
		"anchor":  algo.HeuristicAnchor,
		"nearest": algo.HeuristicNearestGoal,
	}
)

func main() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})

	rootCmd := &cobra.Command{
		Use:   "campus-routing",
		Short: "Nearest transit stop for campus buildings",
		Long: `campus-routing finds, for a campus building, the transit stop with the
shortest measured walking path and serves it over HTTP.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	// 配置信息
	rootCmd.PersistentFlags().String("data", "", "campus data [format: {fspath} or {db}.{col}, empty means embedded Livingston data]")
	rootCmd.PersistentFlags().String("mongo_uri", "", "mongo db uri")
	rootCmd.PersistentFlags().String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")
	rootCmd.PersistentFlags().String("heuristic", "anchor", "A* heuristic [anchor, nearest]")
	rootCmd.PersistentFlags().Duration("search-timeout", time.Second, "deadline of one search (0 means no deadline)")
	rootCmd.Flags().String("listen", "localhost:52101", "http listening address")
	rootCmd.Flags().String("pprof", "", "pprof listening address (empty means disable)")

	rootCmd.AddCommand(
		newNearestCmd(),
		newBuildingsCmd(),
		newBenchmarkCmd(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// 根据命令行参数加载数据并初始化服务
func newServerFromFlags(cmd *cobra.Command) (*RoutingServer, error) {
	logLevel, _ := cmd.Flags().GetString("log-level")
	level, ok := LOG_LEVELS[logLevel]
	if !ok {
		return nil, fmt.Errorf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)

	heuristic, _ := cmd.Flags().GetString("heuristic")
	policy, ok := HEURISTICS[heuristic]
	if !ok {
		return nil, fmt.Errorf("invalid heuristic: %s", heuristic)
	}
	dataStr, _ := cmd.Flags().GetString("data")
	dataPath, err := NewPath(dataStr)
	if err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}
	mongoURI, _ := cmd.Flags().GetString("mongo_uri")
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	campus, err := LoadCampusData(ctx, mongoURI, dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load campus data from %s: %w", dataPath, err)
	}
	r, err := router.New(campus, policy)
	if err != nil {
		return nil, err
	}
	searchTimeout, _ := cmd.Flags().GetDuration("search-timeout")
	return NewRoutingServer(r, searchTimeout), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	server, err := newServerFromFlags(cmd)
	if err != nil {
		return err
	}
	debugCtx, stopDebugger := context.WithCancel(cmd.Context())
	defer stopDebugger()
	if pprofAddr, _ := cmd.Flags().GetString("pprof"); pprofAddr != "" {
		// 启动pprof
		startHTTPDebugger(debugCtx, pprofAddr, server)
	}

	addr, _ := cmd.Flags().GetString("listen")
	// 使用HTTP/2 w.o. TLS
	s := &http.Server{
		Addr:    addr,
		Handler: h2c.NewHandler(server.Handler(), &http2.Server{}),
	}

	// 优雅退出
	// 创建监听退出chan
	signalCh := make(chan os.Signal, 1)
	//监听指定信号 ctrl+c kill
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		log.Info("stopping...")
		go func() {
			<-signalCh
			os.Exit(1) // 强制结束
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Shutdown(ctx)
	}()

	log.Infof("server listening at %v", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	server.Close()
	log.Info("campus routing closes")
	return nil
}

func newNearestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nearest <building>",
		Short: "Print the nearest stop of a building as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := newServerFromFlags(cmd)
			if err != nil {
				return err
			}
			defer server.Close()
			ret, err := server.FindNearestStop(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(ret)
		},
	}
}

func newBuildingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buildings",
		Short: "List the buildings that can be searched",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := newServerFromFlags(cmd)
			if err != nil {
				return err
			}
			defer server.Close()
			for _, name := range server.router.Buildings() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
