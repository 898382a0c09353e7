package catalog

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/xiebiao/library/internal/domain/book"
)

// FilterByStatus 按借阅状态过滤
// 没有借阅信息的记录视为unknown;nil记录跳过
func FilterByStatus(books []*book.Book, status book.Status) []*book.Book {
	result := make([]*book.Book, 0, len(books))
	for _, b := range books {
		if b != nil && b.StatusOrUnknown() == status {
			result = append(result, b)
		}
	}
	return result
}

// GroupByGenre 按类别分组,组内保持目录顺序
func GroupByGenre(books []*book.Book) map[string][]*book.Book {
	groups := make(map[string][]*book.Book)
	for _, b := range books {
		if b == nil {
			continue
		}
		groups[b.Genre] = append(groups[b.Genre], b)
	}
	return groups
}

// Titles 按目录顺序产出书名
// 每次range都从头开始
func Titles(books []*book.Book) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, b := range books {
			if b == nil {
				continue
			}
			if !yield(b.Title) {
				return
			}
		}
	}
}

// FormatAvailability 借阅状态的展示文案(不区分大小写)
func FormatAvailability(status string) string {
	switch book.Status(strings.ToLower(status)) {
	case book.StatusAvailable:
		return "Available"
	case book.StatusCheckedOut:
		return "Checked Out"
	default:
		return "Unknown"
	}
}

// Summary 单条记录的摘要
// 格式: "Dune" by Frank Herbert (1965) [Science Fiction] - Available
func Summary(b *book.Book) string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("%q by %s (%d) [%s] - %s",
		b.Title, b.Author, b.Year, b.Genre, FormatAvailability(string(b.StatusOrUnknown())))
}

// DecadeCount 某个年代的记录数
type DecadeCount struct {
	Decade int `json:"decade"`
	Count  int `json:"count"`
}

// Analysis 出版年代与类别分布
type Analysis struct {
	Decades          map[int]int    `json:"decades"`
	Genres           map[string]int `json:"genres"`
	MostCommonDecade *DecadeCount   `json:"mostCommonDecade,omitempty"`
}

// Analyze 统计年代分布(year向下取整到10年)和类别分布
// 最常见年代并列时取最早的年代;空目录没有最常见年代
func Analyze(books []*book.Book) Analysis {
	a := Analysis{
		Decades: make(map[int]int),
		Genres:  make(map[string]int),
	}
	for _, b := range books {
		if b == nil {
			continue
		}
		a.Decades[Decade(b.Year)]++
		a.Genres[b.Genre]++
	}

	for _, decade := range slices.Sorted(maps.Keys(a.Decades)) {
		count := a.Decades[decade]
		if a.MostCommonDecade == nil || count > a.MostCommonDecade.Count {
			a.MostCommonDecade = &DecadeCount{Decade: decade, Count: count}
		}
	}
	return a
}

// Decade 向下取整到10年(公元前的年份同样向下取整)
func Decade(year int) int {
	d := year / 10 * 10
	if year < 0 && year%10 != 0 {
		d -= 10
	}
	return d
}
