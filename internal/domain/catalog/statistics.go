package catalog

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// Statistics 目录统计
// 不变式:Available + CheckedOut <= Total
// 状态既不是available也不是checked_out的记录只计入Total
type Statistics struct {
	Total      int `json:"total"`
	Available  int `json:"available"`
	CheckedOut int `json:"checkedOut"`
}

// ComputeStatistics 重新统计,O(n)
// 没有借阅信息的记录按"未匹配"处理,不报错
func ComputeStatistics(books []*book.Book) Statistics {
	stats := Statistics{Total: len(books)}
	for _, b := range books {
		switch {
		case b.HasStatus(book.StatusAvailable):
			stats.Available++
		case b.HasStatus(book.StatusCheckedOut):
			stats.CheckedOut++
		}
	}
	return stats
}
