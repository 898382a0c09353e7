package book

import (
	"context"
)

// Source 初始目录的数据来源(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(静态数据、MySQL)
// 2. 目录本身不做持久化,数据源只在启动时读取一次
// 3. 每次调用返回新的记录,调用方可以放心地交给目录持有
type Source interface {
	// LoadBooks 按录入顺序返回全部记录
	LoadBooks(ctx context.Context) ([]*Book, error)
}
