package catalog

import (
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/xiebiao/library/internal/domain/book"
)

// Manager 图书目录
// 设计说明:
// 1. 独占记录切片(插入顺序即目录顺序,允许值相同的重复记录)
// 2. 记录本身按指针共享,调用方可以直接修改字段
//    并发场景下读字段要用Snapshot/SnapshotAt,拿到的是锁内复制的副本
// 3. 每次变更(AddBooks、UpdateBook)后同步全量重算统计,不做增量更新
// 4. 读写锁只是为了HTTP层的并发请求,领域操作本身都是同步的
type Manager struct {
	mu    sync.RWMutex
	books []*book.Book
	stats Statistics
}

// NewManager 创建目录,复制初始记录切片
func NewManager(initial ...*book.Book) *Manager {
	m := &Manager{
		books: slices.Clone(initial),
	}
	if m.books == nil {
		m.books = []*book.Book{}
	}
	m.recompute()
	return m
}

// AddBooks 按参数顺序追加记录并重算统计,返回第一条新记录的位置
// 不传参数时目录和统计都不变
func (m *Manager) AddBooks(books ...*book.Book) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := len(m.books)
	if len(books) == 0 {
		return start
	}

	m.books = append(m.books, books...)
	m.recompute()
	return start
}

// SearchBooks 在当前目录快照上搜索
// 返回新切片,调用方无法通过结果改变目录成员
func (m *Manager) SearchBooks(c Criteria, caseSensitive bool) []*book.Book {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Search(m.books, c, caseSensitive)
}

// Statistics 返回最近一次变更后的统计(值拷贝)
func (m *Manager) Statistics() Statistics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.stats
}

// UpdateBook 更新目录中的记录
//
// 业务规则:
// 1. b必须是目录中的同一个指针,值相同但不是同一对象的记录静默忽略
// 2. 每个字段依次执行三步条件赋值(见applyUpdate)
// 3. 标准字段类型不匹配时整体失败,记录保持原样
// 4. 全部字段写入后重算统计
func (m *Manager) UpdateBook(b *book.Book, updates book.Updates) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b == nil || !slices.Contains(m.books, b) {
		return nil
	}

	// 在浅拷贝上执行,全部成功后再写回原指针,保证失败时不留下部分修改
	next := *b
	next.Attributes = maps.Clone(b.Attributes)
	for _, key := range sortedKeys(updates) {
		if err := applyUpdate(&next, key, updates[key]); err != nil {
			return err
		}
	}
	*b = next

	m.recompute()
	return nil
}

// Books 目录的只读视图(切片副本)
func (m *Manager) Books() []*book.Book {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.books)
}

// Snapshot 目录的值快照
// 每条记录都在读锁内复制,之后的UpdateBook不会影响快照,可以在锁外随意读取
// nil记录保持nil
func (m *Manager) Snapshot() []*book.Book {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make([]*book.Book, len(m.books))
	for i, b := range m.books {
		snapshot[i] = b.Clone()
	}
	return snapshot
}

// SnapshotAt 按插入位置取记录副本
func (m *Manager) SnapshotAt(index int) (*book.Book, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if index < 0 || index >= len(m.books) {
		return nil, false
	}
	return m.books[index].Clone(), true
}

// Len 当前记录数
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.books)
}

// At 按插入位置取记录
func (m *Manager) At(index int) (*book.Book, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if index < 0 || index >= len(m.books) {
		return nil, false
	}
	return m.books[index], true
}

// IndexOf 按指针身份查找位置,不存在返回-1
func (m *Manager) IndexOf(b *book.Book) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if b == nil {
		return -1
	}
	return slices.Index(m.books, b)
}

// recompute 全量重算统计,调用方必须持有写锁(构造时除外)
func (m *Manager) recompute() {
	m.stats = ComputeStatistics(m.books)
}

// applyUpdate 对单个字段依次执行:
//
//	(a) 当前值为空(nil/不存在)时赋值
//	(b) 当前值为假值时赋值
//	(c) 当前值为真值时赋值
//
// 每一步读取的都是上一步之后的状态。
// 三步合起来等价于无条件赋值,但保留逐步判断,
// 假值写入假值字段(如""写入"")的结果与逐步执行完全一致。
func applyUpdate(b *book.Book, key string, value any) error {
	if cur, ok := b.Field(key); !ok || book.IsNullish(cur) {
		if err := b.SetField(key, value); err != nil {
			return err
		}
	}

	if cur, _ := b.Field(key); !book.Truthy(cur) {
		if err := b.SetField(key, value); err != nil {
			return err
		}
	}

	if cur, _ := b.Field(key); book.Truthy(cur) {
		if err := b.SetField(key, value); err != nil {
			return err
		}
	}

	return nil
}

// sortedKeys map遍历顺序不固定,按字段名排序保证结果可复现
func sortedKeys(updates book.Updates) []string {
	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
