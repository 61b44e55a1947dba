package core

// vec2Store Vec2 组件的密集存储，按实体索引，按需扩容
type vec2Store struct {
	values []Vec2
}

func (s *vec2Store) ensure(e Entity) {
	for int(e) >= len(s.values) {
		s.values = append(s.values, Vec2{})
	}
}

func (s *vec2Store) get(e Entity) Vec2 {
	if int(e) >= len(s.values) {
		return Vec2{}
	}
	return s.values[e]
}

func (s *vec2Store) set(e Entity, v Vec2) {
	s.ensure(e)
	s.values[e] = v
}

// TransformManager 位置组件管理器
type TransformManager struct {
	store vec2Store
}

// NewTransformManager 创建位置组件管理器
func NewTransformManager() *TransformManager {
	return &TransformManager{}
}

// Position 读取实体位置（未写入过的实体返回零值）
func (m *TransformManager) Position(e Entity) Vec2 {
	return m.store.get(e)
}

// SetPosition 写入实体位置
func (m *TransformManager) SetPosition(e Entity, p Vec2) {
	m.store.set(e, p)
}

// VelocityManager 速度组件管理器
type VelocityManager struct {
	store vec2Store
}

// NewVelocityManager 创建速度组件管理器
func NewVelocityManager() *VelocityManager {
	return &VelocityManager{}
}

// Velocity 读取实体速度
func (m *VelocityManager) Velocity(e Entity) Vec2 {
	return m.store.get(e)
}

// SetVelocity 写入实体速度
func (m *VelocityManager) SetVelocity(e Entity, v Vec2) {
	m.store.set(e, v)
}
