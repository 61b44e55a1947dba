package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"predsim/internal/config"
	"predsim/internal/engine"
)

func main() {
	// 命令行参数
	configPath := flag.String("config", "", "TOML 配置文件路径（缺省使用内置默认值）")
	ticks := flag.Int("ticks", 600, "离线模式推进的帧数")
	realtime := flag.Bool("realtime", false, "按配置 TPS 实时推进，Ctrl+C 停止")
	prediction := flag.String("prediction", "", "覆盖重建算法: none/interpolation/extrapolation/catmull")
	movement := flag.String("movement", "", "覆盖运动类型: linear/planet/boids")
	seed := flag.Int64("seed", -1, "覆盖随机种子（负数表示不覆盖）")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *prediction, *movement, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置错误: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sim, err := engine.New(cfg, logger)
	if err != nil {
		logger.Fatal("引擎构建失败", zap.Error(err))
	}
	sim.Init()

	if *realtime {
		runRealtime(sim, logger)
	} else {
		sim.Run(*ticks)
	}

	stats := sim.Stats()
	seconds := float64(stats.Tick) / float64(cfg.Simulation.TicksPerSecond)
	mean := 0.0
	if seconds > 0 {
		mean = float64(stats.DataSent) / seconds
	}
	logger.Info("运行结束",
		zap.Uint32("总帧数", stats.Tick),
		zap.Int("实体总数", stats.Entities),
		zap.Int("被跟踪实体", stats.Tracked),
		zap.Uint64("投递快照", stats.DataSent),
		zap.Int("在途快照", stats.InFlight),
		zap.Float64("平均每秒快照", mean),
	)
	sim.Destroy()
}

// runRealtime 实时推进直到收到中断信号
func runRealtime(sim *engine.Engine, logger *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("收到停止信号", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := sim.RunRealtime(ctx); err != nil {
		logger.Error("实时循环异常退出", zap.Error(err))
	}
}

// loadConfig 加载配置并应用命令行覆盖
func loadConfig(path, prediction, movement string, seed int64) (*config.Config, error) {
	var cfg *config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if prediction != "" {
		cfg.Simulation.Prediction = prediction
	}
	if movement != "" {
		cfg.Simulation.Movement = movement
	}
	if seed >= 0 {
		cfg.Simulation.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger 按配置构建 zap 日志器
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("未知日志级别 %q: %w", cfg.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
