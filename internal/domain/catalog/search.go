package catalog

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// Criteria 搜索条件
// 空字符串表示"不按该字段过滤",而不是"匹配空字符串"
type Criteria struct {
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Genre  string `json:"genre,omitempty"`
}

// IsEmpty 没有任何条件时整个目录都会匹配
func (c Criteria) IsEmpty() bool {
	return c.Title == "" && c.Author == "" && c.Genre == ""
}

// Match 判断单条记录是否满足所有非空条件
// nil记录没有任何字段,只有空条件能匹配
func (c Criteria) Match(b *book.Book, caseSensitive bool) bool {
	if b == nil {
		return c.IsEmpty()
	}
	return Contains(b.Title, c.Title, caseSensitive) &&
		Contains(b.Author, c.Author, caseSensitive) &&
		Contains(b.Genre, c.Genre, caseSensitive)
}

// Search 按条件过滤记录
// 只过滤不排序:结果顺序与输入顺序一致;总是返回新切片
func Search(books []*book.Book, c Criteria, caseSensitive bool) []*book.Book {
	result := make([]*book.Book, 0, len(books))
	for _, b := range books {
		if c.Match(b, caseSensitive) {
			result = append(result, b)
		}
	}
	return result
}
