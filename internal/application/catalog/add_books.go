package catalog

import (
	"context"
	"log/slog"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/pkg/metrics"
)

// AddBooksUseCase 添加图书用例
type AddBooksUseCase struct {
	manager *catalog.Manager
	logger  *slog.Logger
}

// NewAddBooksUseCase 创建添加用例
func NewAddBooksUseCase(manager *catalog.Manager, logger *slog.Logger) *AddBooksUseCase {
	metrics.InitMetrics()
	return &AddBooksUseCase{
		manager: manager,
		logger:  logger,
	}
}

// AddBooksRequest 添加请求DTO
type AddBooksRequest struct {
	Books []*book.Book
}

// AddBooksResponse 添加响应DTO
type AddBooksResponse struct {
	Added      []BookItem         `json:"added"`
	Statistics catalog.Statistics `json:"statistics"`
}

// Execute 执行添加用例
// 空列表是合法请求,目录和统计都不变
func (uc *AddBooksUseCase) Execute(ctx context.Context, req AddBooksRequest) (*AddBooksResponse, error) {
	// 记录交给目录之前转换,交出之后可能被并发更新
	added := make([]BookItem, len(req.Books))
	for i, b := range req.Books {
		added[i] = toItem(0, b.Clone())
	}

	start := uc.manager.AddBooks(req.Books...)
	for i := range added {
		added[i].Index = start + i
	}

	stats := uc.manager.Statistics()
	publishStatistics(stats)

	uc.logger.InfoContext(ctx, "books added",
		"count", len(req.Books),
		"total", stats.Total,
	)

	return &AddBooksResponse{
		Added:      added,
		Statistics: stats,
	}, nil
}

// publishStatistics 目录变更后刷新指标
func publishStatistics(stats catalog.Statistics) {
	metrics.SetCatalogGauges(stats.Total, stats.Available, stats.CheckedOut)
}
