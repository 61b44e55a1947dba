package server

import (
	"predsim/internal/config"
	"predsim/pkg/core"
)

// Reconstruct 按选定算法从历史缓冲重建实体当前位置
// 历史不足时沿降级链 Catmull → Interpolation → None 退化，永不报错
// 空缓冲返回 false，调用方跳过该实体（位置保持不变）
func Reconstruct(pred config.PredictionType, h *HistoryBuffer, currentTick uint32, dt float64) (core.Vec2, bool) {
	if h.Len() == 0 {
		return core.Vec2{}, false
	}

	switch pred {
	case config.PredictionNone:
		return reconstructNone(h), true
	case config.PredictionInterpolation:
		return reconstructInterpolation(h, currentTick), true
	case config.PredictionExtrapolation:
		return reconstructExtrapolation(h, currentTick, dt), true
	case config.PredictionCatmull:
		return reconstructCatmull(h, currentTick), true
	}
	return reconstructNone(h), true
}

// reconstructNone 基线：原样输出最近到达快照的位置（观测之间会出现跳变）
func reconstructNone(h *HistoryBuffer) core.Vec2 {
	return h.At(0).Position
}

// interpFraction 最近两个快照之间的插值比例，截断到 [0,1]
// 两快照帧号相同或倒置（乱序到达）时返回 false
func interpFraction(older, newer uint32, currentTick uint32) (float64, bool) {
	if newer <= older {
		return 0, false
	}
	t := (float64(currentTick) - float64(older)) / (float64(newer) - float64(older))
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t, true
}

// reconstructInterpolation 在最近两个到达的快照之间线性混合
func reconstructInterpolation(h *HistoryBuffer, currentTick uint32) core.Vec2 {
	if h.Len() < 2 {
		return reconstructNone(h)
	}
	newer := h.At(0)
	older := h.At(1)

	t, ok := interpFraction(older.Tick, newer.Tick, currentTick)
	if !ok {
		return reconstructNone(h)
	}
	return core.Lerp(older.Position, newer.Position, t)
}

// reconstructExtrapolation 以最近快照的速度向前外推
func reconstructExtrapolation(h *HistoryBuffer, currentTick uint32, dt float64) core.Vec2 {
	s := h.At(0)
	if currentTick <= s.Tick {
		return s.Position
	}
	elapsed := float64(currentTick-s.Tick) * dt
	return s.Position.Add(s.Velocity.Scale(elapsed))
}

// reconstructCatmull 以到达顺序的快照为控制点拟合 Catmull-Rom 样条，
// 在最近两个快照之间采样。至少需要 3 个快照，不足时降级为线性插值
func reconstructCatmull(h *HistoryBuffer, currentTick uint32) core.Vec2 {
	n := h.Len()
	if n < 3 {
		return reconstructInterpolation(h, currentTick)
	}

	// 到达顺序从旧到新：p0 p1 p2，末端控制点用镜像补齐
	p2 := h.At(0).Position
	p1 := h.At(1).Position
	p0 := h.At(2).Position
	p3 := p2.Add(p2.Sub(p1))

	t, ok := interpFraction(h.At(1).Tick, h.At(0).Tick, currentTick)
	if !ok {
		return reconstructNone(h)
	}
	return core.CatmullRom(p0, p1, p2, p3, t)
}
