package mysql

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// saveBatchSize 批量插入每批行数
const saveBatchSize = 100

var attributesCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// BookSource 从MySQL读取初始目录
type BookSource struct {
	db *gorm.DB
}

// NewBookSource 创建数据源
func NewBookSource(db *gorm.DB) *BookSource {
	return &BookSource{db: db}
}

// LoadBooks 按ID升序读取全部图书(即录入顺序)
func (s *BookSource) LoadBooks(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		b, err := toBookEntity(&models[i])
		if err != nil {
			return nil, apperrors.ErrDatabaseError.WithCause(err)
		}
		books[i] = b
	}
	return books, nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) (*book.Book, error) {
	b := book.NewBook(model.Title, model.Author, model.Genre, model.Year, book.Status(model.Status))
	if model.Attributes != "" {
		if err := attributesCodec.UnmarshalFromString(model.Attributes, &b.Attributes); err != nil {
			return nil, fmt.Errorf("图书%d扩展字段解析失败: %w", model.ID, err)
		}
	}
	return b, nil
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) (*BookModel, error) {
	model := &BookModel{
		Title:  b.Title,
		Author: b.Author,
		Genre:  b.Genre,
		Year:   b.Year,
	}
	if b.Availability != nil {
		model.Status = string(b.Availability.Status)
	}
	if len(b.Attributes) > 0 {
		data, err := attributesCodec.MarshalToString(b.Attributes)
		if err != nil {
			return nil, apperrors.ErrInvalidArgument.WithCause(err)
		}
		model.Attributes = data
	}
	return model, nil
}

// SaveBooks 批量写入(初始化数据库时使用)
// 全部写入在一个事务里,任一批失败整体回滚;nil记录跳过
func (s *BookSource) SaveBooks(ctx context.Context, books []*book.Book) error {
	models := make([]*BookModel, 0, len(books))
	for _, b := range books {
		if b == nil {
			continue
		}
		model, err := toBookModel(b)
		if err != nil {
			return err
		}
		models = append(models, model)
	}
	if len(models) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(models, saveBatchSize).Error
	})
	if err != nil {
		return apperrors.ErrDatabaseError.WithCause(err)
	}
	return nil
}
