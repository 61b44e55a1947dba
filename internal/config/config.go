// Package config 仿真配置（TOML 文件 + 代码内默认值）
// 非法配置在启动时直接失败，不会带着未定义的算法选择继续运行
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"predsim/pkg/core"
)

// PredictionType 服务端重建算法
type PredictionType int

const (
	PredictionNone PredictionType = iota
	PredictionInterpolation
	PredictionExtrapolation
	PredictionCatmull
)

func (p PredictionType) String() string {
	switch p {
	case PredictionNone:
		return "none"
	case PredictionInterpolation:
		return "interpolation"
	case PredictionExtrapolation:
		return "extrapolation"
	case PredictionCatmull:
		return "catmull"
	}
	return "unknown"
}

// ParsePrediction 解析重建算法名
func ParsePrediction(s string) (PredictionType, error) {
	switch s {
	case "none":
		return PredictionNone, nil
	case "interpolation":
		return PredictionInterpolation, nil
	case "extrapolation":
		return PredictionExtrapolation, nil
	case "catmull":
		return PredictionCatmull, nil
	}
	return 0, fmt.Errorf("未知的重建算法 %q（可选 none/interpolation/extrapolation/catmull）", s)
}

// MovementType 客户端运动生成器
type MovementType int

const (
	MovementLinear MovementType = iota
	MovementPlanet
	MovementBoids
)

func (m MovementType) String() string {
	switch m {
	case MovementLinear:
		return "linear"
	case MovementPlanet:
		return "planet"
	case MovementBoids:
		return "boids"
	}
	return "unknown"
}

// ParseMovement 解析运动生成器名
func ParseMovement(s string) (MovementType, error) {
	switch s {
	case "linear":
		return MovementLinear, nil
	case "planet":
		return MovementPlanet, nil
	case "boids":
		return MovementBoids, nil
	}
	return 0, fmt.Errorf("未知的运动生成器 %q（可选 linear/planet/boids）", s)
}

// Config 顶层配置
type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Network    NetworkConfig    `toml:"network"`
	Movement   MovementConfig   `toml:"movement"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	Seed           int64  `toml:"seed"`
	Entities       int    `toml:"entities"`
	TicksPerSecond int    `toml:"ticks_per_second"`
	Prediction     string `toml:"prediction"`
	Movement       string `toml:"movement"`
}

type NetworkConfig struct {
	DelayMinTicks    int `toml:"delay_min_ticks"`
	DelayMaxTicks    int `toml:"delay_max_ticks"`
	EmissionInterval int `toml:"emission_interval"`
	HistoryCapacity  int `toml:"history_capacity"`
}

type MovementConfig struct {
	Linear LinearConfig `toml:"linear"`
	Planet PlanetConfig `toml:"planet"`
	Boids  BoidsConfig  `toml:"boids"`
}

type LinearConfig struct {
	Speed     float64 `toml:"speed"`      // 像素/秒
	PeriodMin int     `toml:"period_min"` // 变向周期下限（帧）
	PeriodMax int     `toml:"period_max"` // 变向周期上限（帧）
}

type PlanetConfig struct {
	RadiusMin       float64 `toml:"radius_min"`
	RadiusMax       float64 `toml:"radius_max"`
	AngularVelocity float64 `toml:"angular_velocity"` // 弧度/秒
}

type BoidsConfig struct {
	MaxSpeed         float64 `toml:"max_speed"`
	NeighborRadius   float64 `toml:"neighbor_radius"`
	SeparationRadius float64 `toml:"separation_radius"`
	SeparationWeight float64 `toml:"separation_weight"`
	AlignmentWeight  float64 `toml:"alignment_weight"`
	CohesionWeight   float64 `toml:"cohesion_weight"`
	BoundsWeight     float64 `toml:"bounds_weight"` // 边界回推力度
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" 或 "console"
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Seed:           42,
			Entities:       12,
			TicksPerSecond: core.DefaultTPS,
			Prediction:     PredictionInterpolation.String(),
			Movement:       MovementBoids.String(),
		},
		Network: NetworkConfig{
			DelayMinTicks:    0,
			DelayMaxTicks:    3,
			EmissionInterval: 5,
			HistoryCapacity:  4,
		},
		Movement: MovementConfig{
			Linear: LinearConfig{
				Speed:     90,
				PeriodMin: 20,
				PeriodMax: 90,
			},
			Planet: PlanetConfig{
				RadiusMin:       60,
				RadiusMax:       180,
				AngularVelocity: 1.2,
			},
			Boids: BoidsConfig{
				MaxSpeed:         120,
				NeighborRadius:   80,
				SeparationRadius: 24,
				SeparationWeight: 1.5,
				AlignmentWeight:  1.0,
				CohesionWeight:   0.8,
				BoundsWeight:     2.0,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load 从 TOML 文件加载配置，缺省字段取默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置，非法值返回错误
func (c *Config) Validate() error {
	if _, err := ParsePrediction(c.Simulation.Prediction); err != nil {
		return err
	}
	if _, err := ParseMovement(c.Simulation.Movement); err != nil {
		return err
	}
	if c.Simulation.Entities < 1 {
		return fmt.Errorf("entities 必须为正数，得到 %d", c.Simulation.Entities)
	}
	if c.Simulation.TicksPerSecond < 1 {
		return fmt.Errorf("ticks_per_second 必须为正数，得到 %d", c.Simulation.TicksPerSecond)
	}
	if c.Network.HistoryCapacity < 1 {
		return fmt.Errorf("history_capacity 必须为正数，得到 %d", c.Network.HistoryCapacity)
	}
	if c.Network.DelayMinTicks < 0 || c.Network.DelayMaxTicks < 0 {
		return fmt.Errorf("延迟帧数不能为负，得到 [%d, %d]", c.Network.DelayMinTicks, c.Network.DelayMaxTicks)
	}
	if c.Network.DelayMinTicks > c.Network.DelayMaxTicks {
		return fmt.Errorf("delay_min_ticks(%d) 不能大于 delay_max_ticks(%d)",
			c.Network.DelayMinTicks, c.Network.DelayMaxTicks)
	}
	if c.Network.EmissionInterval < 1 {
		return fmt.Errorf("emission_interval 必须为正数，得到 %d", c.Network.EmissionInterval)
	}
	if c.Movement.Linear.PeriodMin < 1 || c.Movement.Linear.PeriodMax < c.Movement.Linear.PeriodMin {
		return fmt.Errorf("linear 变向周期区间非法 [%d, %d]",
			c.Movement.Linear.PeriodMin, c.Movement.Linear.PeriodMax)
	}
	return nil
}

// PredictionType 返回已校验的重建算法枚举
func (c *Config) PredictionType() PredictionType {
	p, _ := ParsePrediction(c.Simulation.Prediction)
	return p
}

// MovementType 返回已校验的运动生成器枚举
func (c *Config) MovementType() MovementType {
	m, _ := ParseMovement(c.Simulation.Movement)
	return m
}
