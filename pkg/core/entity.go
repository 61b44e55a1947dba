package core

// Entity 实体标识符（单次运行内单调分配，不复用）
type Entity uint32

// InvalidEntity 无效实体标识符
const InvalidEntity Entity = ^Entity(0)

// EntityManager 实体管理器（纯逻辑，不包含组件数据）
type EntityManager struct {
	next  Entity
	alive map[Entity]bool
}

// NewEntityManager 创建实体管理器
func NewEntityManager() *EntityManager {
	return &EntityManager{
		next:  0,
		alive: make(map[Entity]bool),
	}
}

// Create 分配一个新实体
func (m *EntityManager) Create() Entity {
	e := m.next
	m.next++
	m.alive[e] = true
	return e
}

// Destroy 销毁实体（标识符不会被复用）
func (m *EntityManager) Destroy(e Entity) {
	delete(m.alive, e)
}

// Alive 实体是否存活
func (m *EntityManager) Alive(e Entity) bool {
	return m.alive[e]
}

// Count 当前存活实体数
func (m *EntityManager) Count() int {
	return len(m.alive)
}
