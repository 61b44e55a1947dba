package server

import "predsim/pkg/netsim"

// HistoryBuffer 单个实体的快照历史，固定容量环形缓冲
// 按到达顺序存放：写满后最新快照覆盖最旧槽位
// 到达顺序可能和帧号顺序不一致，缓冲不按帧号排序，重建算法自行容忍
type HistoryBuffer struct {
	buffer []netsim.ActorSnapshot
	head   int // 下一个写入位置
	size   int
}

// NewHistoryBuffer 创建容量为 capacity 的历史缓冲
func NewHistoryBuffer(capacity int) *HistoryBuffer {
	return &HistoryBuffer{
		buffer: make([]netsim.ActorSnapshot, capacity),
	}
}

// Push 写入一个快照，满时覆盖最旧的
func (h *HistoryBuffer) Push(s netsim.ActorSnapshot) {
	h.buffer[h.head] = s
	h.head = (h.head + 1) % len(h.buffer)
	if h.size < len(h.buffer) {
		h.size++
	}
}

// Len 当前持有的快照数
func (h *HistoryBuffer) Len() int {
	return h.size
}

// Cap 缓冲容量
func (h *HistoryBuffer) Cap() int {
	return len(h.buffer)
}

// At 按到达新旧取快照，i=0 为最近到达的，i=Len()-1 为最旧的
func (h *HistoryBuffer) At(i int) netsim.ActorSnapshot {
	idx := (h.head - 1 - i + 2*len(h.buffer)) % len(h.buffer)
	return h.buffer[idx]
}

// Latest 最近到达的快照，空缓冲返回 false
func (h *HistoryBuffer) Latest() (netsim.ActorSnapshot, bool) {
	if h.size == 0 {
		return netsim.ActorSnapshot{}, false
	}
	return h.At(0), true
}
