package core

// 屏幕配置（运动生成器的活动范围，也是查看器的窗口大小）
const (
	ScreenWidth  = 640
	ScreenHeight = 480
)

// 仿真帧率
const (
	DefaultTPS     = 60
	FixedDeltaTime = 1.0 / DefaultTPS
)
