package catalog

import (
	"context"
	"log/slog"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/pkg/metrics"
)

// UpdateBookUseCase 更新记录用例
// 设计说明:
// 1. HTTP层只能拿到位置,先按位置取出记录指针,再交给目录更新
// 2. 位置上是nil记录时目录会忽略本次更新(记为ignored)
// 3. 字段类型不匹配时整条更新失败,记录保持原样
type UpdateBookUseCase struct {
	manager *catalog.Manager
	logger  *slog.Logger
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(manager *catalog.Manager, logger *slog.Logger) *UpdateBookUseCase {
	metrics.InitMetrics()
	return &UpdateBookUseCase{
		manager: manager,
		logger:  logger,
	}
}

// UpdateBookRequest 更新请求DTO
type UpdateBookRequest struct {
	Index   int
	Updates book.Updates
}

// UpdateBookResponse 更新响应DTO
type UpdateBookResponse struct {
	Book       BookItem           `json:"book"`
	Statistics catalog.Statistics `json:"statistics"`
}

// Execute 执行更新用例
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*UpdateBookResponse, error) {
	b, ok := uc.manager.At(req.Index)
	if !ok {
		return nil, book.ErrBookNotFound
	}

	if err := uc.manager.UpdateBook(b, req.Updates); err != nil {
		metrics.IncCounterVec(metrics.CatalogUpdatesTotal, map[string]string{"result": "rejected"})
		uc.logger.WarnContext(ctx, "book update rejected", "index", req.Index, "error", err)
		return nil, err
	}

	result := "applied"
	if b == nil {
		result = "ignored"
	}
	// b仍是目录里的指针,响应要用锁内复制的副本
	updated, _ := uc.manager.SnapshotAt(req.Index)
	metrics.IncCounterVec(metrics.CatalogUpdatesTotal, map[string]string{"result": result})

	stats := uc.manager.Statistics()
	publishStatistics(stats)

	uc.logger.InfoContext(ctx, "book updated",
		"index", req.Index,
		"fields", len(req.Updates),
		"result", result,
	)

	return &UpdateBookResponse{
		Book:       toItem(req.Index, updated),
		Statistics: stats,
	}, nil
}
