// Package view 仿真查看器（Ebiten 游戏循环）
// 只读消费共享位置存储：实心圆是客户端真实轨迹，
// 空心圆是服务端重建结果，连线标出同一逻辑实体的误差。
// 仿真核心对查看器一无所知。
package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"predsim/internal/config"
	"predsim/internal/engine"
	"predsim/pkg/core"
)

var hudFont = text.NewGoXFace(basicfont.Face7x13)

// keyTracker 边沿触发的按键检测
type keyTracker struct {
	prev map[ebiten.Key]bool
}

func (k *keyTracker) JustPressed(key ebiten.Key) bool {
	if k.prev == nil {
		k.prev = make(map[ebiten.Key]bool)
	}
	now := ebiten.IsKeyPressed(key)
	pressed := now && !k.prev[key]
	k.prev[key] = now
	return pressed
}

// Game 查看器主结构
type Game struct {
	engine *engine.Engine
	input  keyTracker
}

// NewGame 创建查看器，engine 必须已 Init
func NewGame(e *engine.Engine) *Game {
	return &Game{engine: e}
}

// Update 每帧推进一次仿真并处理交互按键
func (g *Game) Update() error {
	// 1-4 切换重建算法
	if g.input.JustPressed(ebiten.Key1) {
		g.engine.Server().SetPrediction(config.PredictionNone)
	}
	if g.input.JustPressed(ebiten.Key2) {
		g.engine.Server().SetPrediction(config.PredictionInterpolation)
	}
	if g.input.JustPressed(ebiten.Key3) {
		g.engine.Server().SetPrediction(config.PredictionExtrapolation)
	}
	if g.input.JustPressed(ebiten.Key4) {
		g.engine.Server().SetPrediction(config.PredictionCatmull)
	}
	// M 循环切换运动类型
	if g.input.JustPressed(ebiten.KeyM) {
		next := (g.engine.Client().Movement() + 1) % 3
		g.engine.Client().SetMovement(next)
	}

	g.engine.Update()
	return nil
}

// Draw 渲染一帧
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{18, 18, 24, 255})

	transforms := g.engine.Transforms()
	clients := g.engine.Client().Entities()
	server := g.engine.Server()

	truthColor := color.RGBA{80, 200, 120, 255} // 客户端真实位置
	reconColor := color.RGBA{230, 120, 80, 255} // 服务端重建位置
	linkColor := color.RGBA{150, 150, 160, 120} // 误差连线

	for _, remote := range clients {
		truth := transforms.Position(remote)
		vector.FillCircle(screen, float32(truth.X), float32(truth.Y), 5, truthColor, true)

		local, ok := server.Table().Lookup(remote)
		if !ok {
			continue // 服务端还没见过这个实体
		}
		recon := transforms.Position(local)
		vector.StrokeLine(screen,
			float32(truth.X), float32(truth.Y),
			float32(recon.X), float32(recon.Y),
			1, linkColor, true)
		vector.StrokeCircle(screen, float32(recon.X), float32(recon.Y), 7, 2, reconColor, true)
	}

	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	stats := g.engine.Stats()
	msg := fmt.Sprintf("[1-4] 重建: %s  [M] 运动: %s  帧: %d  本秒快照: %d  累计: %d  在途: %d",
		g.engine.Server().Prediction(),
		g.engine.Client().Movement(),
		stats.Tick,
		stats.PerSecond,
		stats.DataSent,
		stats.InFlight,
	)

	options := &text.DrawOptions{}
	options.GeoM.Translate(8, 8)
	options.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, msg, hudFont, options)
}

// Layout 固定窗口大小
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return core.ScreenWidth, core.ScreenHeight
}
