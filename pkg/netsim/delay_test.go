package netsim

import (
	"math/rand"
	"testing"

	"predsim/pkg/core"
)

func snap(tick uint32, e core.Entity) ActorSnapshot {
	return ActorSnapshot{Tick: tick, Entity: e}
}

// 固定延迟为 2：第 10 帧入队的快照必须恰好在第 12 帧取出
func TestConstantDelayRelease(t *testing.T) {
	q := NewDelayQueue(2, 2, rand.New(rand.NewSource(1)))
	q.Enqueue(snap(10, 0), 10)

	if got := q.DrainDue(10); got != nil {
		t.Fatalf("第 10 帧不应取出任何快照，得到 %v", got)
	}
	if got := q.DrainDue(11); got != nil {
		t.Fatalf("第 11 帧不应取出任何快照，得到 %v", got)
	}
	got := q.DrainDue(12)
	if len(got) != 1 {
		t.Fatalf("第 12 帧应取出 1 个快照，得到 %d 个", len(got))
	}
	if q.Len() != 0 {
		t.Errorf("取出后队列应为空，Len = %d", q.Len())
	}
}

// 延迟抽到 0 时禁止同帧投递：最早下一帧可见
func TestNoSameTickDelivery(t *testing.T) {
	q := NewDelayQueue(0, 0, rand.New(rand.NewSource(1)))
	q.Enqueue(snap(5, 0), 5)

	if got := q.DrainDue(5); got != nil {
		t.Fatalf("同帧不应可见，得到 %v", got)
	}
	if got := q.DrainDue(6); len(got) != 1 {
		t.Fatalf("下一帧应取出 1 个快照，得到 %d 个", len(got))
	}
}

// 同帧释放的条目保持入队顺序（FIFO）
func TestFIFOTieBreak(t *testing.T) {
	q := NewDelayQueue(1, 1, rand.New(rand.NewSource(1)))
	for i := core.Entity(0); i < 8; i++ {
		q.Enqueue(snap(3, i), 3)
	}

	got := q.DrainDue(4)
	if len(got) != 8 {
		t.Fatalf("应取出 8 个快照，得到 %d 个", len(got))
	}
	for i, s := range got {
		if s.Entity != core.Entity(i) {
			t.Errorf("第 %d 个快照实体 = %d, 期望 %d", i, s.Entity, i)
		}
	}
}

// 随机延迟下所有释放帧都严格大于入队帧
func TestDelayMonotonicity(t *testing.T) {
	q := NewDelayQueue(0, 3, rand.New(rand.NewSource(42)))
	const enqueueTick = 100
	for i := 0; i < 200; i++ {
		q.Enqueue(snap(enqueueTick, core.Entity(i)), enqueueTick)
	}

	if got := q.DrainDue(enqueueTick); got != nil {
		t.Fatalf("入队当帧不应有任何快照可见，得到 %d 个", len(got))
	}

	drained := 0
	for tick := uint32(enqueueTick + 1); tick <= enqueueTick+4; tick++ {
		drained += len(q.DrainDue(tick))
	}
	if drained != 200 {
		t.Errorf("延迟上限 3 帧内应全部投递完毕，投递了 %d 个", drained)
	}
}

// 未到期的条目留在队列里，后续可取出
func TestPartialDrain(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := NewDelayQueue(1, 1, rng)
	q.Enqueue(snap(0, 0), 0)
	q.Enqueue(snap(2, 1), 2)

	got := q.DrainDue(1)
	if len(got) != 1 || got[0].Entity != 0 {
		t.Fatalf("第 1 帧应只取出实体 0 的快照，得到 %v", got)
	}
	if q.Len() != 1 {
		t.Fatalf("队列应剩余 1 个条目，Len = %d", q.Len())
	}
	got = q.DrainDue(3)
	if len(got) != 1 || got[0].Entity != 1 {
		t.Fatalf("第 3 帧应取出实体 1 的快照，得到 %v", got)
	}
}

func TestBandwidthWindow(t *testing.T) {
	c := NewBandwidthCounter(10) // 每 10 帧一个仿真秒

	c.Record(3)
	if _, crossed := c.Tick(5); crossed {
		t.Errorf("第 5 帧不应跨秒边界")
	}
	c.Record(2)

	report, crossed := c.Tick(10)
	if !crossed {
		t.Fatalf("第 10 帧应跨秒边界")
	}
	if report != 5 {
		t.Errorf("上一秒投递数 = %d, 期望 5", report)
	}
	if c.CurrentSecond != 0 {
		t.Errorf("跨边界后窗口计数应清零，得到 %d", c.CurrentSecond)
	}
	if c.DataSent != 5 {
		t.Errorf("累计投递数 = %d, 期望 5", c.DataSent)
	}
}
