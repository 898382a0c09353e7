package catalog

import (
	"context"
	"log/slog"
	"slices"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/pkg/memo"
	"github.com/xiebiao/library/pkg/metrics"
)

// ReportUseCase 目录报表
// 设计说明:
// 1. 摘要列表由CreateFormatter(Summary)生成,外面包一层记忆化
// 2. 记忆化的key是整个目录的值,目录不变时重复请求直接命中缓存
// 3. 其余报表(分析、分组、书名)在当前快照上直接计算
// 4. 所有报表都读Manager.Snapshot,与并发的更新互不干扰
type ReportUseCase struct {
	manager   *catalog.Manager
	summaries *memo.Memoizer[[]string]
	logger    *slog.Logger
}

// NewReportUseCase 创建报表用例
// cache为nil时使用进程内缓存
func NewReportUseCase(manager *catalog.Manager, cache memo.Cache[[]string], logger *slog.Logger) *ReportUseCase {
	metrics.InitMetrics()

	format := memo.CreateFormatter(catalog.Summary)
	opts := []memo.Option[[]string]{
		memo.WithLogger[[]string](logger),
		memo.WithHooks[[]string](
			func() { metrics.IncCounterVec(metrics.MemoCacheRequests, map[string]string{"result": "hit"}) },
			func() { metrics.IncCounterVec(metrics.MemoCacheRequests, map[string]string{"result": "miss"}) },
		),
	}
	if cache != nil {
		opts = append(opts, memo.WithCache(cache))
	}

	summaries := memo.New[[]string](func(args ...any) []string {
		books, _ := args[0].([]*book.Book)
		return format(books)
	}, opts...)

	return &ReportUseCase{
		manager:   manager,
		summaries: summaries,
		logger:    logger,
	}
}

// Summaries 每条记录一行摘要,顺序与目录一致
func (uc *ReportUseCase) Summaries(ctx context.Context) ([]string, error) {
	lines, err := uc.summaries.Call(ctx, uc.manager.Snapshot())
	if err != nil {
		uc.logger.ErrorContext(ctx, "summaries failed", "error", err)
		return nil, err
	}
	return lines, nil
}

// Analysis 年代与类别分布
func (uc *ReportUseCase) Analysis(_ context.Context) catalog.Analysis {
	return catalog.Analyze(uc.manager.Snapshot())
}

// Genres 按类别分组,组内带目录位置
func (uc *ReportUseCase) Genres(_ context.Context) map[string][]BookItem {
	all := uc.manager.Snapshot()
	groups := catalog.GroupByGenre(all)

	result := make(map[string][]BookItem, len(groups))
	for genre, books := range groups {
		result[genre] = toItems(all, books)
	}
	return result
}

// Titles 按目录顺序的书名
func (uc *ReportUseCase) Titles(_ context.Context) []string {
	titles := slices.Collect(catalog.Titles(uc.manager.Snapshot()))
	if titles == nil {
		titles = []string{}
	}
	return titles
}
