package netsim

// BandwidthCounter 快照吞吐统计
// DataSent 为累计投递数，CurrentSecond 为当前一秒窗口内的投递数，
// 每跨过一个仿真秒边界清零
type BandwidthCounter struct {
	DataSent      uint64
	CurrentSecond uint64
	ticksPerSec   uint32
}

// NewBandwidthCounter 创建带宽统计器，ticksPerSec 为每仿真秒的帧数
func NewBandwidthCounter(ticksPerSec uint32) *BandwidthCounter {
	if ticksPerSec == 0 {
		ticksPerSec = 1
	}
	return &BandwidthCounter{ticksPerSec: ticksPerSec}
}

// Record 记录 n 个快照投递
func (c *BandwidthCounter) Record(n int) {
	c.DataSent += uint64(n)
	c.CurrentSecond += uint64(n)
}

// Tick 推进到指定帧。跨过秒边界时返回上一秒的投递数和 true，并重置窗口
func (c *BandwidthCounter) Tick(currentTick uint32) (uint64, bool) {
	if currentTick == 0 || currentTick%c.ticksPerSec != 0 {
		return 0, false
	}
	report := c.CurrentSecond
	c.CurrentSecond = 0
	return report, true
}
