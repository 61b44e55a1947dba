package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"predsim/internal/config"
	"predsim/internal/engine"
	"predsim/internal/view"
	"predsim/pkg/core"
)

func main() {
	configPath := flag.String("config", "", "TOML 配置文件路径（缺省使用内置默认值）")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "配置错误: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	sim, err := engine.New(cfg, logger)
	if err != nil {
		logger.Fatal("引擎构建失败", zap.Error(err))
	}
	sim.Init()
	defer sim.Destroy()

	game := view.NewGame(sim)

	// 设置窗口选项
	ebiten.SetWindowSize(core.ScreenWidth, core.ScreenHeight)
	ebiten.SetWindowTitle("predsim - 预测重建查看器 [" + cfg.Simulation.Prediction + "/" + cfg.Simulation.Movement + "]")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(cfg.Simulation.TicksPerSecond)

	// 运行查看器
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("查看器退出", zap.Error(err))
	}
}
