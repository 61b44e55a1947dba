// Package netsim 提供进程内模拟的网络通道：
// 快照数据单元、带抖动的延迟队列和带宽统计。
// 这里没有真实 I/O，延迟只影响数据可见性，不阻塞控制流。
package netsim

import "predsim/pkg/core"

// ActorSnapshot 实体观测快照（创建后不可变）
// TickIndex 按生成顺序单调不减，但到达顺序可能被延迟队列打乱
type ActorSnapshot struct {
	Tick     uint32      // 生成时的仿真帧号
	Entity   core.Entity // 发送方（客户端本地）实体标识符
	Position core.Vec2
	Velocity core.Vec2
}
