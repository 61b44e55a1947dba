// Package engine 仿真引擎：持有共享实体基座和两个角色，驱动固定步长的帧循环。
// 单线程协作式推进，不存在并发写：客户端只写自有实体，服务端只写被跟踪实体。
package engine

import (
	"context"
	"math/rand"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"predsim/internal/client"
	"predsim/internal/config"
	"predsim/internal/server"
	"predsim/pkg/core"
	"predsim/pkg/netsim"
)

// Engine 仿真引擎
type Engine struct {
	cfg *config.Config
	log *zap.Logger

	entities   *core.EntityManager
	transforms *core.TransformManager
	velocities *core.VelocityManager
	queue      *netsim.DelayQueue

	client *client.Role
	server *server.Role

	tick uint32
	dt   float64
}

// Stats 引擎运行统计
type Stats struct {
	Tick      uint32
	Entities  int
	Tracked   int
	DataSent  uint64
	InFlight  int // 延迟队列中在途快照数
	PerSecond uint64
}

// New 构建引擎。配置必须已通过校验，随机源从配置种子派生：
// 客户端和延迟队列各持一个独立的可复现随机源
func New(cfg *config.Config, log *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	entities := core.NewEntityManager()
	transforms := core.NewTransformManager()
	velocities := core.NewVelocityManager()

	queueRNG := rand.New(rand.NewSource(cfg.Simulation.Seed + 1))
	queue := netsim.NewDelayQueue(
		uint32(cfg.Network.DelayMinTicks),
		uint32(cfg.Network.DelayMaxTicks),
		queueRNG,
	)

	clientRNG := rand.New(rand.NewSource(cfg.Simulation.Seed))
	clientRole := client.NewRole(queue, entities, transforms, velocities, cfg, clientRNG, log)

	serverRole := server.NewRole(
		queue, entities, transforms, velocities,
		cfg.PredictionType(),
		cfg.Network.HistoryCapacity,
		cfg.Simulation.TicksPerSecond,
		log,
	)

	return &Engine{
		cfg:        cfg,
		log:        log,
		entities:   entities,
		transforms: transforms,
		velocities: velocities,
		queue:      queue,
		client:     clientRole,
		server:     serverRole,
		dt:         1.0 / float64(cfg.Simulation.TicksPerSecond),
	}, nil
}

// Init 初始化两个角色
func (e *Engine) Init() {
	e.client.Init()
	e.log.Info("仿真启动",
		zap.String("重建算法", e.server.Prediction().String()),
		zap.String("运动类型", e.client.Movement().String()),
		zap.Int("TPS", e.cfg.Simulation.TicksPerSecond),
		zap.Int64("种子", e.cfg.Simulation.Seed),
	)
}

// Update 推进一帧：帧号自增后先客户端生产、再服务端消费
// 固定顺序保证零延迟快照也要到下一帧才对服务端可见
func (e *Engine) Update() {
	e.tick++
	e.client.Update(e.tick, e.dt)
	e.server.Update(e.tick, e.dt)
}

// Run 批量推进指定帧数（离线模式）
func (e *Engine) Run(ticks int) {
	for i := 0; i < ticks; i++ {
		e.Update()
	}
}

// RunRealtime 按配置 TPS 实时推进，直到上下文取消
func (e *Engine) RunRealtime(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Limit(e.cfg.Simulation.TicksPerSecond), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil // 正常取消
			}
			return err
		}
		e.Update()
	}
}

// Destroy 销毁两个角色，之后不再推进
func (e *Engine) Destroy() {
	e.client.Destroy()
	e.server.Destroy()
	e.log.Info("仿真结束", zap.Uint32("总帧数", e.tick))
}

// Tick 当前帧号
func (e *Engine) Tick() uint32 {
	return e.tick
}

// DeltaTime 固定步长（秒）
func (e *Engine) DeltaTime() float64 {
	return e.dt
}

// Client 客户端角色
func (e *Engine) Client() *client.Role {
	return e.client
}

// Server 服务端角色
func (e *Engine) Server() *server.Role {
	return e.server
}

// Transforms 共享位置存储（查看器只读消费）
func (e *Engine) Transforms() *core.TransformManager {
	return e.transforms
}

// Stats 当前运行统计
func (e *Engine) Stats() Stats {
	return Stats{
		Tick:      e.tick,
		Entities:  e.entities.Count(),
		Tracked:   len(e.server.Tracked()),
		DataSent:  e.server.Bandwidth().DataSent,
		InFlight:  e.queue.Len(),
		PerSecond: e.server.Bandwidth().CurrentSecond,
	}
}
