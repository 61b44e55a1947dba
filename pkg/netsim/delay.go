package netsim

import "math/rand"

// delayedEntry 延迟队列条目
type delayedEntry struct {
	snapshot  ActorSnapshot
	releaseAt uint32 // 条目在该帧起可被取出
}

// DelayQueue 模拟网络抖动的延迟队列。
// 入队时按配置区间随机抽取延迟帧数，出队按入队顺序（同帧释放的条目保持 FIFO）。
// 不允许同帧投递：快照最早在入队的下一帧可见。
type DelayQueue struct {
	entries  []delayedEntry
	minDelay uint32
	maxDelay uint32
	rng      *rand.Rand
}

// NewDelayQueue 创建延迟队列，延迟帧数均匀分布在 [minDelay, maxDelay]
// rng 由调用方注入，保证固定种子下可复现
func NewDelayQueue(minDelay, maxDelay uint32, rng *rand.Rand) *DelayQueue {
	return &DelayQueue{
		minDelay: minDelay,
		maxDelay: maxDelay,
		rng:      rng,
	}
}

// Enqueue 入队一个快照，释放帧 = 当前帧 + 随机延迟
// 延迟抽到 0 时提升为 1，快照不会在产生的同一帧被看到
func (q *DelayQueue) Enqueue(s ActorSnapshot, currentTick uint32) {
	d := q.minDelay
	if q.maxDelay > q.minDelay {
		d += uint32(q.rng.Intn(int(q.maxDelay-q.minDelay) + 1))
	}
	releaseAt := currentTick + d
	if releaseAt <= currentTick {
		releaseAt = currentTick + 1
	}
	q.entries = append(q.entries, delayedEntry{snapshot: s, releaseAt: releaseAt})
}

// DrainDue 取出所有已到期的快照并从队列移除，顺序与入队顺序一致
func (q *DelayQueue) DrainDue(currentTick uint32) []ActorSnapshot {
	if len(q.entries) == 0 {
		return nil
	}

	var due []ActorSnapshot
	remaining := q.entries[:0]
	for _, e := range q.entries {
		if e.releaseAt <= currentTick {
			due = append(due, e.snapshot)
		} else {
			remaining = append(remaining, e)
		}
	}
	q.entries = remaining
	return due
}

// Len 当前在途条目数
func (q *DelayQueue) Len() int {
	return len(q.entries)
}
