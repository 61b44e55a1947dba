package server

import "predsim/pkg/core"

// TranslationTable 远端实体标识符到服务端本地实体的映射
// 首次见到某个远端标识符时惰性创建本地实体并登记，映射在定义域上是双射：
// 两个不同的远端标识符永远不会映射到同一个本地实体
type TranslationTable struct {
	entities *core.EntityManager
	table    map[core.Entity]core.Entity
}

// NewTranslationTable 创建翻译表，新本地实体从 entities 分配
func NewTranslationTable(entities *core.EntityManager) *TranslationTable {
	return &TranslationTable{
		entities: entities,
		table:    make(map[core.Entity]core.Entity),
	}
}

// Resolve 解析远端标识符，未知时创建新本地实体
// 返回本地实体和是否为新建
func (t *TranslationTable) Resolve(remote core.Entity) (core.Entity, bool) {
	if local, ok := t.table[remote]; ok {
		return local, false
	}
	local := t.entities.Create()
	t.table[remote] = local
	return local, true
}

// Lookup 查询已有映射，不创建
func (t *TranslationTable) Lookup(remote core.Entity) (core.Entity, bool) {
	local, ok := t.table[remote]
	return local, ok
}

// Remove 移除映射并销毁本地实体（对应实体离开仿真时调用）
func (t *TranslationTable) Remove(remote core.Entity) {
	if local, ok := t.table[remote]; ok {
		t.entities.Destroy(local)
		delete(t.table, remote)
	}
}

// Len 当前映射条目数
func (t *TranslationTable) Len() int {
	return len(t.table)
}
