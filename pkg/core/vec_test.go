package core

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func TestLerp(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	b := Vec2{X: 10, Y: -4}

	if got := Lerp(a, b, 0); !almostEqual(got, a) {
		t.Errorf("Lerp(t=0) = %v, 期望 %v", got, a)
	}
	if got := Lerp(a, b, 1); !almostEqual(got, b) {
		t.Errorf("Lerp(t=1) = %v, 期望 %v", got, b)
	}
	if got := Lerp(a, b, 0.5); !almostEqual(got, Vec2{X: 5, Y: -2}) {
		t.Errorf("Lerp(t=0.5) = %v, 期望 {5 -2}", got)
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := (Vec2{}).Normalize(); !almostEqual(got, Vec2{}) {
		t.Errorf("零向量归一化应返回零向量，得到 %v", got)
	}
}

func TestClampLen(t *testing.T) {
	v := Vec2{X: 3, Y: 4} // 长度 5
	clamped := v.ClampLen(2.5)
	if math.Abs(clamped.Len()-2.5) > epsilon {
		t.Errorf("ClampLen 后长度 = %f, 期望 2.5", clamped.Len())
	}
	// 方向不变
	if !almostEqual(clamped.Normalize(), v.Normalize()) {
		t.Errorf("ClampLen 改变了方向")
	}
	// 未超限时原样返回
	if got := v.ClampLen(10); !almostEqual(got, v) {
		t.Errorf("未超限的向量不应被缩放，得到 %v", got)
	}
}

func TestCatmullRomEndpoints(t *testing.T) {
	p0 := Vec2{X: -1, Y: 0}
	p1 := Vec2{X: 0, Y: 0}
	p2 := Vec2{X: 1, Y: 1}
	p3 := Vec2{X: 2, Y: 1}

	// 样条必须穿过 p1 和 p2
	if got := CatmullRom(p0, p1, p2, p3, 0); !almostEqual(got, p1) {
		t.Errorf("CatmullRom(t=0) = %v, 期望 %v", got, p1)
	}
	if got := CatmullRom(p0, p1, p2, p3, 1); !almostEqual(got, p2) {
		t.Errorf("CatmullRom(t=1) = %v, 期望 %v", got, p2)
	}
}

func TestCatmullRomCollinear(t *testing.T) {
	// 共线等距控制点退化为直线插值
	p := func(x float64) Vec2 { return Vec2{X: x, Y: 2 * x} }
	got := CatmullRom(p(0), p(1), p(2), p(3), 0.5)
	if !almostEqual(got, p(1.5)) {
		t.Errorf("共线控制点 t=0.5 = %v, 期望 %v", got, p(1.5))
	}
}
