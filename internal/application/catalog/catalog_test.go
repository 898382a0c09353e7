package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/memo"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func fixture() []*book.Book {
	return []*book.Book{
		book.NewBook("Of Mice and Men", "John Steinbeck", "Fiction", 1937, book.StatusCheckedOut),
		book.NewBook("Dune", "Frank Herbert", "Science Fiction", 1965, book.StatusAvailable),
		book.NewBook("East of Eden", "John Steinbeck", "Fiction", 1952, book.StatusAvailable),
		book.NewBook("Neuromancer", "William Gibson", "Science Fiction", 1984, book.StatusUnknown),
	}
}

func TestAddBooksUseCase(t *testing.T) {
	m := catalog.NewManager(fixture()...)
	uc := NewAddBooksUseCase(m, discard)

	resp, err := uc.Execute(context.Background(), AddBooksRequest{Books: []*book.Book{
		book.NewBook("1984", "George Orwell", "Dystopian", 1949, book.StatusCheckedOut),
		book.NewBook("Hyperion", "Dan Simmons", "Science Fiction", 1989, book.StatusAvailable),
	}})
	require.NoError(t, err)

	require.Len(t, resp.Added, 2)
	assert.Equal(t, 4, resp.Added[0].Index)
	assert.Equal(t, "Hyperion", resp.Added[1].Title)
	assert.Equal(t, 5, resp.Added[1].Index)
	assert.Equal(t, catalog.Statistics{Total: 6, Available: 3, CheckedOut: 2}, resp.Statistics)

	t.Run("空列表", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), AddBooksRequest{})
		require.NoError(t, err)
		assert.Empty(t, resp.Added)
		assert.Equal(t, 6, resp.Statistics.Total)
	})
}

func TestSearchBooksUseCase(t *testing.T) {
	m := catalog.NewManager(fixture()...)
	uc := NewSearchBooksUseCase(m, discard)
	ctx := context.Background()

	t.Run("按作者搜索并带上位置", func(t *testing.T) {
		resp, err := uc.Execute(ctx, SearchBooksRequest{Author: "john"})
		require.NoError(t, err)

		require.Equal(t, 2, resp.Total)
		assert.Equal(t, 0, resp.List[0].Index)
		assert.Equal(t, 2, resp.List[1].Index)
		assert.Equal(t, "East of Eden", resp.List[1].Title)
	})

	t.Run("区分大小写", func(t *testing.T) {
		resp, err := uc.Execute(ctx, SearchBooksRequest{Author: "john", CaseSensitive: true})
		require.NoError(t, err)
		assert.Zero(t, resp.Total)
		assert.NotNil(t, resp.List)
	})

	t.Run("按借阅状态过滤", func(t *testing.T) {
		resp, err := uc.Execute(ctx, SearchBooksRequest{Genre: "fiction", Status: "AVAILABLE"})
		require.NoError(t, err)

		require.Equal(t, 2, resp.Total)
		assert.Equal(t, []int{1, 2}, []int{resp.List[0].Index, resp.List[1].Index})
	})
}

func TestSearchBooksUseCase_DuplicateRecords(t *testing.T) {
	dup := book.NewBook("Dune", "Frank Herbert", "Science Fiction", 1965, book.StatusAvailable)
	m := catalog.NewManager(dup, fixture()[0], dup)
	uc := NewSearchBooksUseCase(m, discard)

	resp, err := uc.Execute(context.Background(), SearchBooksRequest{Title: "dune"})
	require.NoError(t, err)

	require.Equal(t, 2, resp.Total)
	assert.Equal(t, 0, resp.List[0].Index)
	assert.Equal(t, 2, resp.List[1].Index)
}

func TestGetBookUseCase(t *testing.T) {
	m := catalog.NewManager(fixture()...)
	uc := NewGetBookUseCase(m)

	item, err := uc.Execute(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Dune", item.Title)
	require.NotNil(t, item.Availability)
	assert.Equal(t, book.StatusAvailable, item.Availability.Status)

	_, err = uc.Execute(context.Background(), 4)
	assert.True(t, errors.Is(err, apperrors.ErrBookNotFound))
	_, err = uc.Execute(context.Background(), -1)
	assert.True(t, errors.Is(err, apperrors.ErrBookNotFound))
}

func TestUpdateBookUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("更新后统计随之变化", func(t *testing.T) {
		books := fixture()
		m := catalog.NewManager(books...)
		uc := NewUpdateBookUseCase(m, discard)

		resp, err := uc.Execute(ctx, UpdateBookRequest{
			Index:   0,
			Updates: book.Updates{"availability": map[string]any{"status": "available"}},
		})
		require.NoError(t, err)

		assert.Equal(t, catalog.Statistics{Total: 4, Available: 3, CheckedOut: 0}, resp.Statistics)
		assert.Equal(t, book.StatusAvailable, books[0].Availability.Status, "更新的是目录中的同一条记录")
		assert.Equal(t, 0, resp.Book.Index)
	})

	t.Run("位置不存在", func(t *testing.T) {
		uc := NewUpdateBookUseCase(catalog.NewManager(fixture()...), discard)
		_, err := uc.Execute(ctx, UpdateBookRequest{Index: 10, Updates: book.Updates{"title": "x"}})
		assert.True(t, errors.Is(err, apperrors.ErrBookNotFound))
	})

	t.Run("类型不匹配", func(t *testing.T) {
		books := fixture()
		uc := NewUpdateBookUseCase(catalog.NewManager(books...), discard)

		_, err := uc.Execute(ctx, UpdateBookRequest{Index: 1, Updates: book.Updates{"year": "soon"}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
		assert.Equal(t, 1965, books[1].Year)
	})

	t.Run("nil记录被忽略", func(t *testing.T) {
		m := catalog.NewManager(nil)
		uc := NewUpdateBookUseCase(m, discard)

		resp, err := uc.Execute(ctx, UpdateBookRequest{Index: 0, Updates: book.Updates{"title": "x"}})
		require.NoError(t, err)
		assert.Equal(t, "", resp.Book.Title)
	})
}

func TestGetStatisticsUseCase(t *testing.T) {
	uc := NewGetStatisticsUseCase(catalog.NewManager(fixture()...))
	assert.Equal(t, catalog.Statistics{Total: 4, Available: 2, CheckedOut: 1}, uc.Execute(context.Background()))
}

// countingCache 记录写入次数,用来判断是否重新计算
type countingCache struct {
	*memo.MapCache[[]string]
	sets int
}

func (c *countingCache) Set(ctx context.Context, key string, value []string) error {
	c.sets++
	return c.MapCache.Set(ctx, key, value)
}

func TestReportUseCase_Summaries(t *testing.T) {
	ctx := context.Background()
	m := catalog.NewManager(fixture()...)
	cache := &countingCache{MapCache: memo.NewMapCache[[]string]()}
	uc := NewReportUseCase(m, cache, discard)

	first, err := uc.Summaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`"Of Mice and Men" by John Steinbeck (1937) [Fiction] - Checked Out`,
		`"Dune" by Frank Herbert (1965) [Science Fiction] - Available`,
		`"East of Eden" by John Steinbeck (1952) [Fiction] - Available`,
		`"Neuromancer" by William Gibson (1984) [Science Fiction] - Unknown`,
	}, first)

	second, err := uc.Summaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets, "目录不变时命中缓存")

	m.AddBooks(book.NewBook("Hyperion", "Dan Simmons", "Science Fiction", 1989, book.StatusAvailable))
	third, err := uc.Summaries(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 5)
	assert.Equal(t, 2, cache.sets, "目录变化后重新计算")
}

func TestReportUseCase_DefaultCache(t *testing.T) {
	uc := NewReportUseCase(catalog.NewManager(), nil, discard)

	lines, err := uc.Summaries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestReportUseCase_Reports(t *testing.T) {
	ctx := context.Background()
	uc := NewReportUseCase(catalog.NewManager(fixture()...), nil, discard)

	analysis := uc.Analysis(ctx)
	assert.Equal(t, map[int]int{1930: 1, 1960: 1, 1950: 1, 1980: 1}, analysis.Decades)
	require.NotNil(t, analysis.MostCommonDecade)
	assert.Equal(t, 1930, analysis.MostCommonDecade.Decade)

	genres := uc.Genres(ctx)
	require.Len(t, genres["Fiction"], 2)
	assert.Equal(t, 0, genres["Fiction"][0].Index)
	assert.Equal(t, 2, genres["Fiction"][1].Index)
	assert.Equal(t, 3, genres["Science Fiction"][1].Index)

	assert.Equal(t, []string{"Of Mice and Men", "Dune", "East of Eden", "Neuromancer"}, uc.Titles(ctx))
	assert.Equal(t, []string{}, NewReportUseCase(catalog.NewManager(), nil, discard).Titles(ctx))
}

// 配合 go test -race 运行:更新与报表、查询并发执行
func TestUseCases_ConcurrentUpdateAndReports(t *testing.T) {
	ctx := context.Background()
	m := catalog.NewManager(fixture()...)
	update := NewUpdateBookUseCase(m, discard)
	report := NewReportUseCase(m, nil, discard)
	search := NewSearchBooksUseCase(m, discard)
	get := NewGetBookUseCase(m)
	add := NewAddBooksUseCase(m, discard)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_, err := update.Execute(ctx, UpdateBookRequest{Index: 1, Updates: book.Updates{"title": "t", "year": i}})
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = report.Analysis(ctx)
			_, err := report.Summaries(ctx)
			assert.NoError(t, err)
			_ = report.Genres(ctx)
			_ = report.Titles(ctx)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_, err := search.Execute(ctx, SearchBooksRequest{Genre: "fiction"})
			assert.NoError(t, err)
			_, err = get.Execute(ctx, 1)
			assert.NoError(t, err)
			_, err = add.Execute(ctx, AddBooksRequest{Books: []*book.Book{
				book.NewBook("Hyperion", "Dan Simmons", "Science Fiction", 1989, book.StatusAvailable),
			}})
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	item, err := get.Execute(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "t", item.Title)
	assert.Equal(t, 99, item.Year)
	assert.Equal(t, 104, m.Len())
}

func TestToItems(t *testing.T) {
	books := fixture()
	items := toItems(books, []*book.Book{books[1], books[3]})

	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Index)
	assert.Equal(t, 3, items[1].Index)

	// 不在目录中的记录不会出现在结果里
	assert.Empty(t, toItems(books, []*book.Book{book.NewBook("x", "", "", 0, "")}))
}
