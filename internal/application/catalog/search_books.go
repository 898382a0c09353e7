package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/pkg/metrics"
)

// SearchBooksUseCase 目录搜索用例
// 设计说明:
// 1. 子串匹配,多个条件同时满足才算命中
// 2. 结果保持目录顺序,不分页(目录在内存中,规模有限)
// 3. Status是附加过滤,在搜索结果上再按借阅状态筛选
type SearchBooksUseCase struct {
	manager *catalog.Manager
	logger  *slog.Logger
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(manager *catalog.Manager, logger *slog.Logger) *SearchBooksUseCase {
	metrics.InitMetrics()
	return &SearchBooksUseCase{
		manager: manager,
		logger:  logger,
	}
}

// SearchBooksRequest 搜索请求DTO
type SearchBooksRequest struct {
	Title         string // 书名包含
	Author        string // 作者包含
	Genre         string // 类别包含
	CaseSensitive bool   // 默认不区分大小写
	Status        string // available | checked_out | unknown,空表示不过滤
}

// SearchBooksResponse 搜索响应DTO
type SearchBooksResponse struct {
	List  []BookItem `json:"list"`
	Total int        `json:"total"`
}

// Execute 执行搜索用例
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) (*SearchBooksResponse, error) {
	criteria := catalog.Criteria{
		Title:  req.Title,
		Author: req.Author,
		Genre:  req.Genre,
	}

	// 在值快照上搜索,结果是快照的保序子序列
	all := uc.manager.Snapshot()
	result := catalog.Search(all, criteria, req.CaseSensitive)

	if req.Status != "" {
		result = catalog.FilterByStatus(result, book.Status(strings.ToLower(req.Status)))
	}

	metrics.IncCounter(metrics.CatalogSearchesTotal)
	uc.logger.DebugContext(ctx, "catalog searched",
		"criteria", criteria,
		"case_sensitive", req.CaseSensitive,
		"status", req.Status,
		"matched", len(result),
	)

	list := toItems(all, result)
	return &SearchBooksResponse{
		List:  list,
		Total: len(list),
	}, nil
}
