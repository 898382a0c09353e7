package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestModelConversion(t *testing.T) {
	t.Run("有借阅状态", func(t *testing.T) {
		b, err := toBookEntity(&BookModel{ID: 3, Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Year: 1965, Status: "checked_out"})
		require.NoError(t, err)

		require.NotNil(t, b.Availability)
		assert.Equal(t, book.StatusCheckedOut, b.Availability.Status)
		assert.Equal(t, "Dune", b.Title)
		assert.Equal(t, 1965, b.Year)
		assert.Nil(t, b.Attributes)
	})

	t.Run("空状态没有借阅信息", func(t *testing.T) {
		b, err := toBookEntity(&BookModel{Title: "Untracked"})
		require.NoError(t, err)
		assert.Nil(t, b.Availability)

		model, err := toBookModel(b)
		require.NoError(t, err)
		assert.Equal(t, "", model.Status)
		assert.Equal(t, "", model.Attributes)
	})

	t.Run("往返转换", func(t *testing.T) {
		src := book.NewBook("1984", "George Orwell", "Dystopian", 1949, book.StatusAvailable)

		model, err := toBookModel(src)
		require.NoError(t, err)
		restored, err := toBookEntity(model)
		require.NoError(t, err)
		assert.Equal(t, src, restored)
	})

	t.Run("扩展字段", func(t *testing.T) {
		src := book.NewBook("Dune", "Frank Herbert", "Science Fiction", 1965, "")
		src.Attributes = map[string]any{"status": "checked_out", "shelf": "B2"}

		model, err := toBookModel(src)
		require.NoError(t, err)
		assert.JSONEq(t, `{"shelf":"B2","status":"checked_out"}`, model.Attributes)

		restored, err := toBookEntity(model)
		require.NoError(t, err)
		assert.Equal(t, src.Attributes, restored.Attributes)
	})

	t.Run("扩展字段无法序列化", func(t *testing.T) {
		b := book.NewBook("Dune", "Frank Herbert", "Science Fiction", 1965, "")
		b.Attributes = map[string]any{"bad": make(chan int)}

		_, err := toBookModel(b)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("扩展字段损坏", func(t *testing.T) {
		_, err := toBookEntity(&BookModel{ID: 7, Title: "Broken", Attributes: "{not json"})
		assert.ErrorContains(t, err, "图书7")
	})
}

func TestBookModel_TableName(t *testing.T) {
	assert.Equal(t, "books", BookModel{}.TableName())
}
