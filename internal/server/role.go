// Package server 服务端角色：摄取延迟到达的观测，
// 每帧用选定的重建算法恢复各远端实体的当前位置。
package server

import (
	"go.uber.org/zap"

	"predsim/internal/config"
	"predsim/pkg/core"
	"predsim/pkg/netsim"
)

// Role 服务端角色
// 独占持有所有被跟踪实体的历史缓冲和翻译表，
// 每帧先摄取到期快照，再对每个被跟踪实体做一次重建
type Role struct {
	queue      *netsim.DelayQueue
	table      *TranslationTable
	transforms *core.TransformManager
	velocities *core.VelocityManager

	buffers  map[core.Entity]*HistoryBuffer
	tracked  []core.Entity // 本地实体，按首次出现顺序，保证遍历确定性
	capacity int

	prediction config.PredictionType
	bandwidth  *netsim.BandwidthCounter
	log        *zap.Logger
}

// NewRole 创建服务端角色，所有依赖显式注入
func NewRole(
	queue *netsim.DelayQueue,
	entities *core.EntityManager,
	transforms *core.TransformManager,
	velocities *core.VelocityManager,
	prediction config.PredictionType,
	historyCapacity int,
	ticksPerSec int,
	log *zap.Logger,
) *Role {
	return &Role{
		queue:      queue,
		table:      NewTranslationTable(entities),
		transforms: transforms,
		velocities: velocities,
		buffers:    make(map[core.Entity]*HistoryBuffer),
		capacity:   historyCapacity,
		prediction: prediction,
		bandwidth:  netsim.NewBandwidthCounter(uint32(ticksPerSec)),
		log:        log,
	}
}

// Update 每帧推进：摄取 → 带宽结算 → 重建
func (r *Role) Update(currentTick uint32, dt float64) {
	due := r.queue.DrainDue(currentTick)
	for _, s := range due {
		r.ingest(s)
	}
	r.bandwidth.Record(len(due))

	if report, crossed := r.bandwidth.Tick(currentTick); crossed {
		r.log.Info("带宽统计",
			zap.Uint32("tick", currentTick),
			zap.Uint64("上一秒快照数", report),
			zap.Uint64("累计快照数", r.bandwidth.DataSent),
		)
	}

	for _, local := range r.tracked {
		h := r.buffers[local]
		pos, ok := Reconstruct(r.prediction, h, currentTick, dt)
		if !ok {
			continue // 没有任何观测，位置保持不变
		}
		r.transforms.SetPosition(local, pos)
		if latest, has := h.Latest(); has {
			r.velocities.SetVelocity(local, latest.Velocity)
		}
	}
}

// ingest 将一个快照写入对应本地实体的历史缓冲
// 首次见到的远端标识符触发惰性建档
func (r *Role) ingest(s netsim.ActorSnapshot) {
	local, created := r.table.Resolve(s.Entity)
	if created {
		r.buffers[local] = NewHistoryBuffer(r.capacity)
		r.tracked = append(r.tracked, local)
		r.log.Debug("登记远端实体",
			zap.Uint32("remote", uint32(s.Entity)),
			zap.Uint32("local", uint32(local)),
		)
	}
	r.buffers[local].Push(s)
}

// SetPrediction 切换重建算法（查看器交互用）
func (r *Role) SetPrediction(p config.PredictionType) {
	r.prediction = p
}

// Prediction 当前重建算法
func (r *Role) Prediction() config.PredictionType {
	return r.prediction
}

// Tracked 被跟踪的本地实体，按首次出现顺序
func (r *Role) Tracked() []core.Entity {
	return r.tracked
}

// Table 翻译表（测试与统计用）
func (r *Role) Table() *TranslationTable {
	return r.table
}

// Bandwidth 带宽统计器
func (r *Role) Bandwidth() *netsim.BandwidthCounter {
	return r.bandwidth
}

// Destroy 释放所有被跟踪实体
func (r *Role) Destroy() {
	for _, local := range r.tracked {
		delete(r.buffers, local)
	}
	for remote := range r.table.table {
		r.table.Remove(remote)
	}
	r.tracked = nil
}
