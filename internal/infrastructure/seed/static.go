package seed

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// StaticSource 内置的演示目录
// 没有配置数据库时使用,也用于初始化数据库
type StaticSource struct{}

// NewStaticSource 创建内置数据源
func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

// LoadBooks 每次返回一份新的记录
func (StaticSource) LoadBooks(context.Context) ([]*book.Book, error) {
	return Books(), nil
}

// Books 内置记录
func Books() []*book.Book {
	return []*book.Book{
		book.NewBook("The Go Programming Language", "Alan Donovan", "Programming", 2015, book.StatusAvailable),
		book.NewBook("1984", "George Orwell", "Dystopian", 1949, book.StatusCheckedOut),
		book.NewBook("To Kill a Mockingbird", "Harper Lee", "Fiction", 1960, book.StatusAvailable),
		book.NewBook("The Great Gatsby", "F. Scott Fitzgerald", "Fiction", 1925, book.StatusAvailable),
		book.NewBook("Of Mice and Men", "John Steinbeck", "Fiction", 1937, book.StatusCheckedOut),
		book.NewBook("Dune", "Frank Herbert", "Science Fiction", 1965, book.StatusAvailable),
		book.NewBook("Brave New World", "Aldous Huxley", "Dystopian", 1932, book.StatusUnknown),
		book.NewBook("East of Eden", "John Steinbeck", "Fiction", 1952, book.StatusAvailable),
		book.NewBook("Neuromancer", "William Gibson", "Science Fiction", 1984, book.StatusCheckedOut),
		book.NewBook("The Left Hand of Darkness", "Ursula K. Le Guin", "Science Fiction", 1969, book.StatusAvailable),
	}
}
