package catalog

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
)

// GetBookUseCase 按位置查询单条记录
type GetBookUseCase struct {
	manager *catalog.Manager
}

// NewGetBookUseCase 创建查询用例
func NewGetBookUseCase(manager *catalog.Manager) *GetBookUseCase {
	return &GetBookUseCase{manager: manager}
}

// Execute 越界返回ErrBookNotFound
func (uc *GetBookUseCase) Execute(_ context.Context, index int) (*BookItem, error) {
	b, ok := uc.manager.SnapshotAt(index)
	if !ok {
		return nil, book.ErrBookNotFound
	}
	item := toItem(index, b)
	return &item, nil
}
