// Package client 客户端角色：持有一组本地实体，
// 按选定的运动生成器推进各实体的真实轨迹，并周期性向延迟队列发布快照。
package client

import (
	"math/rand"

	"go.uber.org/zap"

	"predsim/internal/config"
	"predsim/pkg/core"
	"predsim/pkg/netsim"
)

// Role 客户端角色
type Role struct {
	entities   *core.EntityManager
	transforms *core.TransformManager
	velocities *core.VelocityManager
	queue      *netsim.DelayQueue
	rng        *rand.Rand

	movement config.MovementType
	linear   config.LinearConfig
	planet   config.PlanetConfig
	boids    config.BoidsConfig

	count        int
	emitInterval int
	actors       []actorState
	log          *zap.Logger
}

// NewRole 创建客户端角色，所有依赖显式注入
func NewRole(
	queue *netsim.DelayQueue,
	entities *core.EntityManager,
	transforms *core.TransformManager,
	velocities *core.VelocityManager,
	cfg *config.Config,
	rng *rand.Rand,
	log *zap.Logger,
) *Role {
	return &Role{
		entities:     entities,
		transforms:   transforms,
		velocities:   velocities,
		queue:        queue,
		rng:          rng,
		movement:     cfg.MovementType(),
		linear:       cfg.Movement.Linear,
		planet:       cfg.Movement.Planet,
		boids:        cfg.Movement.Boids,
		count:        cfg.Simulation.Entities,
		emitInterval: cfg.Network.EmissionInterval,
		log:          log,
	}
}

// Init 创建受管实体，随机摆位并按运动类型初始化参数
func (r *Role) Init() {
	r.actors = make([]actorState, r.count)
	for i := range r.actors {
		s := &r.actors[i]
		s.entity = r.entities.Create()
		s.emitCountdown = r.emitInterval
		r.transforms.SetPosition(s.entity, core.Vec2{
			X: r.rng.Float64() * core.ScreenWidth,
			Y: r.rng.Float64() * core.ScreenHeight,
		})
		r.initActorState(s, r.rng)
	}
	r.log.Info("客户端就绪",
		zap.Int("实体数", r.count),
		zap.String("运动类型", r.movement.String()),
	)
}

// Update 每帧推进：运动 → 写回状态 → 按发送间隔发布快照
func (r *Role) Update(currentTick uint32, dt float64) {
	for i := range r.actors {
		s := &r.actors[i]
		pos, vel := r.advance(s, dt)
		r.transforms.SetPosition(s.entity, pos)
		r.velocities.SetVelocity(s.entity, vel)

		s.emitCountdown--
		if s.emitCountdown > 0 {
			continue
		}
		s.emitCountdown = r.emitInterval
		r.queue.Enqueue(netsim.ActorSnapshot{
			Tick:     currentTick,
			Entity:   s.entity,
			Position: pos,
			Velocity: vel,
		}, currentTick)
	}
}

// SetMovement 切换运动类型并重抽各实体的运动参数（查看器交互用）
func (r *Role) SetMovement(m config.MovementType) {
	r.movement = m
	for i := range r.actors {
		r.initActorState(&r.actors[i], r.rng)
	}
}

// Movement 当前运动类型
func (r *Role) Movement() config.MovementType {
	return r.movement
}

// Entities 受管实体列表（按创建顺序）
func (r *Role) Entities() []core.Entity {
	out := make([]core.Entity, len(r.actors))
	for i := range r.actors {
		out[i] = r.actors[i].entity
	}
	return out
}

// Destroy 释放受管实体，之后不再发布快照
func (r *Role) Destroy() {
	for i := range r.actors {
		r.entities.Destroy(r.actors[i].entity)
	}
	r.actors = nil
}
