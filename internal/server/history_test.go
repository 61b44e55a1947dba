package server

import (
	"testing"

	"predsim/pkg/netsim"
)

func tickSnap(tick uint32) netsim.ActorSnapshot {
	return netsim.ActorSnapshot{Tick: tick}
}

// 容量 4 的缓冲依次写入帧号 1..5 后应只剩 {2,3,4,5}
func TestRingEviction(t *testing.T) {
	h := NewHistoryBuffer(4)
	for tick := uint32(1); tick <= 5; tick++ {
		h.Push(tickSnap(tick))
	}

	if h.Len() != 4 {
		t.Fatalf("Len = %d, 期望 4", h.Len())
	}
	// At(0) 最新，At(3) 最旧
	want := []uint32{5, 4, 3, 2}
	for i, w := range want {
		if got := h.At(i).Tick; got != w {
			t.Errorf("At(%d).Tick = %d, 期望 %d", i, got, w)
		}
	}
}

// 写满前缓冲保持到达顺序
func TestRingPartialFill(t *testing.T) {
	h := NewHistoryBuffer(4)
	h.Push(tickSnap(10))
	h.Push(tickSnap(11))

	if h.Len() != 2 {
		t.Fatalf("Len = %d, 期望 2", h.Len())
	}
	if h.At(0).Tick != 11 || h.At(1).Tick != 10 {
		t.Errorf("到达顺序错误: At(0)=%d At(1)=%d", h.At(0).Tick, h.At(1).Tick)
	}

	latest, ok := h.Latest()
	if !ok || latest.Tick != 11 {
		t.Errorf("Latest = (%v, %v), 期望帧 11", latest.Tick, ok)
	}
}

// 任意次写入后缓冲恰好持有最后 k 个快照（到达顺序）
func TestRingInvariant(t *testing.T) {
	const k = 4
	h := NewHistoryBuffer(k)
	const n = 37
	for tick := uint32(0); tick < n; tick++ {
		h.Push(tickSnap(tick))
	}

	if h.Len() != k {
		t.Fatalf("Len = %d, 期望 %d", h.Len(), k)
	}
	for i := 0; i < k; i++ {
		want := uint32(n - 1 - i)
		if got := h.At(i).Tick; got != want {
			t.Errorf("At(%d).Tick = %d, 期望 %d", i, got, want)
		}
	}
}

// 乱序到达时缓冲仍按到达顺序存放，不做帧号排序
func TestRingKeepsArrivalOrder(t *testing.T) {
	h := NewHistoryBuffer(4)
	h.Push(tickSnap(8))
	h.Push(tickSnap(5)) // 晚到的低帧号快照

	if h.At(0).Tick != 5 {
		t.Errorf("最近到达的应是帧 5，得到 %d", h.At(0).Tick)
	}
	if h.At(1).Tick != 8 {
		t.Errorf("次近到达的应是帧 8，得到 %d", h.At(1).Tick)
	}
}

func TestEmptyBuffer(t *testing.T) {
	h := NewHistoryBuffer(4)
	if h.Len() != 0 {
		t.Errorf("空缓冲 Len = %d", h.Len())
	}
	if _, ok := h.Latest(); ok {
		t.Errorf("空缓冲 Latest 应返回 false")
	}
}
