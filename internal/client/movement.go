package client

import (
	"math"
	"math/rand"

	"predsim/internal/config"
	"predsim/pkg/core"
)

// actorState 单个客户端实体的运动状态
type actorState struct {
	entity core.Entity

	// Linear
	heading         float64 // 当前航向（弧度）
	speed           float64 // 像素/秒
	changePeriod    uint32  // 变向周期（帧）
	changeCountdown uint32

	// Planet
	orbitCenter core.Vec2
	orbitRadius float64
	orbitAngle  float64
	omega       float64 // 角速度，弧度/秒

	// 发送节奏
	emitCountdown int
}

// advance 按运动类型推进一个实体，返回新位置和速度
// 运动类型是封闭枚举，在这里穷尽匹配
func (r *Role) advance(s *actorState, dt float64) (core.Vec2, core.Vec2) {
	switch r.movement {
	case config.MovementLinear:
		return r.advanceLinear(s, dt)
	case config.MovementPlanet:
		return r.advancePlanet(s, dt)
	case config.MovementBoids:
		return r.advanceBoids(s, dt)
	}
	return r.transforms.Position(s.entity), r.velocities.Velocity(s.entity)
}

// advanceLinear 匀速直线运动，每 changePeriod 帧随机换一次航向
// 越界时反射回屏幕内，保证实体始终可观测
func (r *Role) advanceLinear(s *actorState, dt float64) (core.Vec2, core.Vec2) {
	if s.changeCountdown == 0 {
		s.heading = r.rng.Float64() * 2 * math.Pi
		s.changeCountdown = s.changePeriod
	}
	s.changeCountdown--

	vel := core.Vec2{
		X: math.Cos(s.heading),
		Y: math.Sin(s.heading),
	}.Scale(s.speed)

	pos := r.transforms.Position(s.entity).Add(vel.Scale(dt))
	pos, vel = reflectIntoBounds(pos, vel)
	// 反射后航向跟随速度，避免下一帧又撞出去
	s.heading = math.Atan2(vel.Y, vel.X)
	return pos, vel
}

// advancePlanet 绕固定圆心的轨道运动
// 速度写为解析切向速度，外推算法因此有意义
func (r *Role) advancePlanet(s *actorState, dt float64) (core.Vec2, core.Vec2) {
	s.orbitAngle += s.omega * dt
	pos := s.orbitCenter.Add(core.Vec2{
		X: math.Cos(s.orbitAngle),
		Y: math.Sin(s.orbitAngle),
	}.Scale(s.orbitRadius))
	vel := core.Vec2{
		X: -math.Sin(s.orbitAngle),
		Y: math.Cos(s.orbitAngle),
	}.Scale(s.orbitRadius * s.omega)
	return pos, vel
}

// advanceBoids 群体运动：分离 + 对齐 + 聚合三条规则的加权和，
// 叠加边界回推后限速积分
func (r *Role) advanceBoids(s *actorState, dt float64) (core.Vec2, core.Vec2) {
	cfg := r.boids
	pos := r.transforms.Position(s.entity)
	vel := r.velocities.Velocity(s.entity)

	var (
		separation core.Vec2
		alignSum   core.Vec2
		cohereSum  core.Vec2
		neighbors  int
	)

	for i := range r.actors {
		other := &r.actors[i]
		if other.entity == s.entity {
			continue
		}
		otherPos := r.transforms.Position(other.entity)
		d := pos.Dist(otherPos)
		if d > cfg.NeighborRadius {
			continue
		}
		neighbors++
		alignSum = alignSum.Add(r.velocities.Velocity(other.entity))
		cohereSum = cohereSum.Add(otherPos)
		if d < cfg.SeparationRadius && d > 0 {
			// 距离越近推力越大
			away := pos.Sub(otherPos).Normalize().Scale((cfg.SeparationRadius - d) / cfg.SeparationRadius)
			separation = separation.Add(away)
		}
	}

	steer := core.Vec2{}
	if neighbors > 0 {
		avgVel := alignSum.Scale(1 / float64(neighbors))
		avgPos := cohereSum.Scale(1 / float64(neighbors))
		steer = steer.Add(avgVel.Sub(vel).Normalize().Scale(cfg.AlignmentWeight))
		steer = steer.Add(avgPos.Sub(pos).Normalize().Scale(cfg.CohesionWeight))
	}
	steer = steer.Add(separation.Scale(cfg.SeparationWeight))
	steer = steer.Add(boundsSteer(pos).Scale(cfg.BoundsWeight))

	vel = vel.Add(steer.Scale(cfg.MaxSpeed * dt)).ClampLen(cfg.MaxSpeed)
	pos = pos.Add(vel.Scale(dt))
	return pos, vel
}

// boundsSteer 离开屏幕边缘时的回推方向
func boundsSteer(pos core.Vec2) core.Vec2 {
	const margin = 40.0
	var steer core.Vec2
	if pos.X < margin {
		steer.X = 1
	} else if pos.X > core.ScreenWidth-margin {
		steer.X = -1
	}
	if pos.Y < margin {
		steer.Y = 1
	} else if pos.Y > core.ScreenHeight-margin {
		steer.Y = -1
	}
	return steer
}

// reflectIntoBounds 位置越界时镜像回屏幕内并翻转对应速度分量
func reflectIntoBounds(pos, vel core.Vec2) (core.Vec2, core.Vec2) {
	if pos.X < 0 {
		pos.X = -pos.X
		vel.X = -vel.X
	} else if pos.X > core.ScreenWidth {
		pos.X = 2*core.ScreenWidth - pos.X
		vel.X = -vel.X
	}
	if pos.Y < 0 {
		pos.Y = -pos.Y
		vel.Y = -vel.Y
	} else if pos.Y > core.ScreenHeight {
		pos.Y = 2*core.ScreenHeight - pos.Y
		vel.Y = -vel.Y
	}
	return pos, vel
}

// initActorState 按运动类型初始化一个实体的运动参数
func (r *Role) initActorState(s *actorState, rng *rand.Rand) {
	switch r.movement {
	case config.MovementLinear:
		s.speed = r.linear.Speed
		s.changePeriod = uint32(r.linear.PeriodMin)
		if span := r.linear.PeriodMax - r.linear.PeriodMin; span > 0 {
			s.changePeriod += uint32(rng.Intn(span + 1))
		}
		s.changeCountdown = 0 // 第一帧就抽一个航向
	case config.MovementPlanet:
		s.orbitCenter = core.Vec2{X: core.ScreenWidth / 2, Y: core.ScreenHeight / 2}
		s.orbitRadius = r.planet.RadiusMin
		if span := r.planet.RadiusMax - r.planet.RadiusMin; span > 0 {
			s.orbitRadius += rng.Float64() * span
		}
		s.orbitAngle = rng.Float64() * 2 * math.Pi
		s.omega = r.planet.AngularVelocity
	case config.MovementBoids:
		heading := rng.Float64() * 2 * math.Pi
		initial := core.Vec2{
			X: math.Cos(heading),
			Y: math.Sin(heading),
		}.Scale(r.boids.MaxSpeed * 0.5)
		r.velocities.SetVelocity(s.entity, initial)
	}
}
