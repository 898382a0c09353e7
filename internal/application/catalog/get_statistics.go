package catalog

import (
	"context"

	"github.com/xiebiao/library/internal/domain/catalog"
)

// GetStatisticsUseCase 目录统计查询
// 返回最近一次变更后的统计,不重新计算
type GetStatisticsUseCase struct {
	manager *catalog.Manager
}

// NewGetStatisticsUseCase 创建统计查询用例
func NewGetStatisticsUseCase(manager *catalog.Manager) *GetStatisticsUseCase {
	return &GetStatisticsUseCase{manager: manager}
}

// Execute 执行统计查询
func (uc *GetStatisticsUseCase) Execute(_ context.Context) catalog.Statistics {
	return uc.manager.Statistics()
}
