package catalog

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// BookItem 带目录位置的记录DTO
// 目录不分配ID,对外用位置(插入顺序,追加后不会变化)定位记录
type BookItem struct {
	Index        int                `json:"index"`
	Title        string             `json:"title"`
	Author       string             `json:"author"`
	Genre        string             `json:"genre"`
	Year         int                `json:"year"`
	Availability *book.Availability `json:"availability,omitempty"`
	Attributes   map[string]any     `json:"attributes,omitempty"`
}

func toItem(index int, b *book.Book) BookItem {
	item := BookItem{Index: index}
	if b == nil {
		return item
	}
	item.Title = b.Title
	item.Author = b.Author
	item.Genre = b.Genre
	item.Year = b.Year
	if b.Availability != nil {
		availability := *b.Availability
		item.Availability = &availability
	}
	item.Attributes = b.Attributes
	return item
}

// toItems 给子序列中的记录标上在目录中的位置
// subset必须是all的保序子序列(搜索、过滤、分组的结果都满足),
// 同一指针重复出现时按出现顺序分别对应
func toItems(all, subset []*book.Book) []BookItem {
	items := make([]BookItem, 0, len(subset))
	i := 0
	for _, b := range subset {
		for i < len(all) && all[i] != b {
			i++
		}
		if i == len(all) {
			break
		}
		items = append(items, toItem(i, b))
		i++
	}
	return items
}
