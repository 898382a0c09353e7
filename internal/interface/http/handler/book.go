package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/library/internal/application/catalog"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	searchBooksUseCase *appcatalog.SearchBooksUseCase
	getBookUseCase     *appcatalog.GetBookUseCase
	addBooksUseCase    *appcatalog.AddBooksUseCase
	updateBookUseCase  *appcatalog.UpdateBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	searchBooksUseCase *appcatalog.SearchBooksUseCase,
	getBookUseCase *appcatalog.GetBookUseCase,
	addBooksUseCase *appcatalog.AddBooksUseCase,
	updateBookUseCase *appcatalog.UpdateBookUseCase,
) *BookHandler {
	return &BookHandler{
		searchBooksUseCase: searchBooksUseCase,
		getBookUseCase:     getBookUseCase,
		addBooksUseCase:    addBooksUseCase,
		updateBookUseCase:  updateBookUseCase,
	}
}

// SearchBooks 搜索图书
// @Summary      搜索图书
// @Description  按书名、作者、类别做子串匹配(默认不区分大小写),可再按借阅状态过滤;不传条件返回整个目录
// @Tags         图书
// @Produce      json
// @Param        title           query string false "书名包含"
// @Param        author          query string false "作者包含"
// @Param        genre           query string false "类别包含"
// @Param        case_sensitive  query bool   false "区分大小写"
// @Param        status          query string false "借阅状态" Enums(available, checked_out, unknown)
// @Success      200 {object} response.Response{data=appcatalog.SearchBooksResponse}
// @Failure      200 {object} response.Response "参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var query dto.SearchBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.searchBooksUseCase.Execute(c.Request.Context(), appcatalog.SearchBooksRequest{
		Title:         query.Title,
		Author:        query.Author,
		Genre:         query.Genre,
		CaseSensitive: query.CaseSensitive,
		Status:        query.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBook 按位置查询图书
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        index path int true "目录位置(从0开始)"
// @Success      200 {object} response.Response{data=appcatalog.BookItem}
// @Failure      200 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{index} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	var uri dto.IndexURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	item, err := h.getBookUseCase.Execute(c.Request.Context(), uri.Index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, item)
}

// AddBooks 添加图书
// @Summary      添加图书
// @Description  按请求顺序追加到目录末尾,返回新记录的位置和最新统计
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddBooksRequest true "图书列表"
// @Success      200 {object} response.Response{data=appcatalog.AddBooksResponse}
// @Failure      200 {object} response.Response "参数错误/未登录"
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBooks(c *gin.Context) {
	var req dto.AddBooksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.addBooksUseCase.Execute(c.Request.Context(), appcatalog.AddBooksRequest{
		Books: req.ToBooks(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  按字段名逐个写入;不在标准字段里的key写入attributes;类型不匹配时整条更新失败
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        index   path int                   true "目录位置(从0开始)"
// @Param        request body dto.UpdateBookRequest true "更新内容"
// @Success      200 {object} response.Response{data=appcatalog.UpdateBookResponse}
// @Failure      200 {object} response.Response "图书不存在/参数错误/未登录"
// @Router       /api/v1/books/{index} [patch]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var uri dto.IndexURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), appcatalog.UpdateBookRequest{
		Index:   uri.Index,
		Updates: book.Updates(req.Updates),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
