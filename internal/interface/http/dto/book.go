package dto

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// AvailabilityInput 借阅信息
type AvailabilityInput struct {
	Status string `json:"status" example:"available"` // available | checked_out | unknown
}

// BookInput HTTP添加图书的单条记录
// 目录不校验字段内容,空书名、重复记录都是合法的
type BookInput struct {
	Title        string             `json:"title" binding:"max=500" example:"Dune"`
	Author       string             `json:"author" binding:"max=200" example:"Frank Herbert"`
	Genre        string             `json:"genre" binding:"max=100" example:"Science Fiction"`
	Year         int                `json:"year" example:"1965"`
	Availability *AvailabilityInput `json:"availability,omitempty"`
}

// ToBook 转换为领域对象
func (in BookInput) ToBook() *book.Book {
	b := &book.Book{
		Title:  in.Title,
		Author: in.Author,
		Genre:  in.Genre,
		Year:   in.Year,
	}
	if in.Availability != nil {
		b.Availability = &book.Availability{Status: book.Status(in.Availability.Status)}
	}
	return b
}

// AddBooksRequest HTTP添加请求
// books可以是空数组(不产生任何变更)
type AddBooksRequest struct {
	Books []BookInput `json:"books" binding:"required,dive"`
}

// ToBooks 按请求顺序转换
func (r AddBooksRequest) ToBooks() []*book.Book {
	books := make([]*book.Book, len(r.Books))
	for i, in := range r.Books {
		books[i] = in.ToBook()
	}
	return books
}

// UpdateBookRequest HTTP更新请求
// updates的key是字段名,不在标准字段里的key写入attributes
type UpdateBookRequest struct {
	Updates map[string]any `json:"updates" binding:"required"`
}

// SearchBooksQuery HTTP搜索参数
type SearchBooksQuery struct {
	Title         string `form:"title" binding:"max=200" example:"dune"`
	Author        string `form:"author" binding:"max=200" example:"john"`
	Genre         string `form:"genre" binding:"max=100" example:"fiction"`
	CaseSensitive bool   `form:"case_sensitive" example:"false"`
	Status        string `form:"status" example:"available"`
}

// IndexURI 路径中的目录位置
type IndexURI struct {
	Index int `uri:"index" binding:"min=0" example:"0"`
}
