package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/library/internal/application/catalog"
	"github.com/xiebiao/library/pkg/response"
)

// ReportHandler 统计与报表处理器(全部公开)
type ReportHandler struct {
	statisticsUseCase *appcatalog.GetStatisticsUseCase
	reportUseCase     *appcatalog.ReportUseCase
}

// NewReportHandler 创建报表处理器
func NewReportHandler(
	statisticsUseCase *appcatalog.GetStatisticsUseCase,
	reportUseCase *appcatalog.ReportUseCase,
) *ReportHandler {
	return &ReportHandler{
		statisticsUseCase: statisticsUseCase,
		reportUseCase:     reportUseCase,
	}
}

// Statistics 目录统计
// @Summary      目录统计
// @Tags         报表
// @Produce      json
// @Success      200 {object} response.Response{data=catalog.Statistics}
// @Router       /api/v1/statistics [get]
func (h *ReportHandler) Statistics(c *gin.Context) {
	response.Success(c, h.statisticsUseCase.Execute(c.Request.Context()))
}

// Summaries 每条记录一行摘要
// @Summary      图书摘要
// @Description  结果按目录内容缓存,目录不变时不重新计算
// @Tags         报表
// @Produce      json
// @Success      200 {object} response.Response{data=[]string}
// @Router       /api/v1/reports/summaries [get]
func (h *ReportHandler) Summaries(c *gin.Context) {
	lines, err := h.reportUseCase.Summaries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, lines)
}

// Analysis 年代与类别分布
// @Summary      目录分析
// @Tags         报表
// @Produce      json
// @Success      200 {object} response.Response{data=catalog.Analysis}
// @Router       /api/v1/reports/analysis [get]
func (h *ReportHandler) Analysis(c *gin.Context) {
	response.Success(c, h.reportUseCase.Analysis(c.Request.Context()))
}

// Genres 按类别分组
// @Summary      按类别分组
// @Tags         报表
// @Produce      json
// @Success      200 {object} response.Response{data=map[string][]appcatalog.BookItem}
// @Router       /api/v1/reports/genres [get]
func (h *ReportHandler) Genres(c *gin.Context) {
	response.Success(c, h.reportUseCase.Genres(c.Request.Context()))
}

// Titles 书名列表
// @Summary      书名列表
// @Tags         报表
// @Produce      json
// @Success      200 {object} response.Response{data=[]string}
// @Router       /api/v1/reports/titles [get]
func (h *ReportHandler) Titles(c *gin.Context) {
	response.Success(c, h.reportUseCase.Titles(c.Request.Context()))
}
