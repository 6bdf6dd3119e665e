package handler

import (
	"github.com/gin-gonic/gin"

	apppatron "github.com/xiebiao/library/internal/application/patron"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
	"github.com/xiebiao/library/pkg/validator"
)

// PatronHandler 读者HTTP处理器
type PatronHandler struct {
	createUseCase *apppatron.CreatePatronUseCase
	queryUseCase  *apppatron.QueryPatronsUseCase
	updateUseCase *apppatron.UpdatePatronUseCase
	deleteUseCase *apppatron.DeletePatronUseCase
}

// NewPatronHandler 创建读者处理器
func NewPatronHandler(
	createUseCase *apppatron.CreatePatronUseCase,
	queryUseCase *apppatron.QueryPatronsUseCase,
	updateUseCase *apppatron.UpdatePatronUseCase,
	deleteUseCase *apppatron.DeletePatronUseCase,
) *PatronHandler {
	return &PatronHandler{
		createUseCase: createUseCase,
		queryUseCase:  queryUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create 登记读者
// @Summary      登记读者
// @Tags         读者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreatePatronRequest true "读者信息"
// @Success      200 {object} response.Response{data=apppatron.PatronResponse}
// @Failure      400 {object} response.Response "参数校验失败"
// @Failure      409 {object} response.Response "邮箱已被注册"
// @Router       /api/patrons [post]
func (h *PatronHandler) Create(c *gin.Context) {
	var req dto.CreatePatronRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validator.FieldErrors(err))
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), apppatron.CreatePatronRequest{
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
		Email:       req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 获取读者详情
// @Summary      读者详情
// @Tags         读者
// @Produce      json
// @Param        id path int true "读者ID"
// @Success      200 {object} response.Response{data=apppatron.PatronResponse}
// @Failure      404 {object} response.Response "读者不存在"
// @Router       /api/patrons/{id} [get]
func (h *PatronHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.queryUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// List 查询全部读者
// @Summary      读者列表
// @Tags         读者
// @Produce      json
// @Success      200 {object} response.Response{data=[]apppatron.PatronResponse}
// @Router       /api/patrons [get]
func (h *PatronHandler) List(c *gin.Context) {
	result, err := h.queryUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Update 更新读者
// @Summary      更新读者
// @Tags         读者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "读者ID"
// @Param        request body dto.UpdatePatronRequest true "读者信息"
// @Success      200 {object} response.Response{data=apppatron.PatronResponse}
// @Failure      404 {object} response.Response "读者不存在"
// @Failure      409 {object} response.Response "邮箱已被注册"
// @Router       /api/patrons/{id} [put]
func (h *PatronHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePatronRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validator.FieldErrors(err))
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), id, apppatron.UpdatePatronRequest{
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
		Email:       req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Delete 注销读者
// @Summary      注销读者
// @Description  有在借图书的读者不能注销
// @Tags         读者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "读者ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "读者不存在"
// @Failure      409 {object} response.Response "读者有在借图书"
// @Router       /api/patrons/{id} [delete]
func (h *PatronHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// History 查询读者借阅历史
// @Summary      借阅历史
// @Description  借出日期降序,含在借和已归还的记录
// @Tags         读者
// @Produce      json
// @Param        id path int true "读者ID"
// @Success      200 {object} response.Response{data=[]borrowing.HistoryEntry}
// @Failure      404 {object} response.Response "读者不存在"
// @Router       /api/patrons/{id}/borrowings [get]
func (h *PatronHandler) History(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.queryUseCase.History(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
