package handler

import (
	"github.com/gin-gonic/gin"

	appborrowing "github.com/xiebiao/library/internal/application/borrowing"
	"github.com/xiebiao/library/pkg/response"
)

// BorrowingHandler 借阅HTTP处理器
// 借书和还书都只有路径参数,没有请求体
type BorrowingHandler struct {
	borrowUseCase *appborrowing.BorrowBookUseCase
	returnUseCase *appborrowing.ReturnBookUseCase
}

// NewBorrowingHandler 创建借阅处理器
func NewBorrowingHandler(
	borrowUseCase *appborrowing.BorrowBookUseCase,
	returnUseCase *appborrowing.ReturnBookUseCase,
) *BorrowingHandler {
	return &BorrowingHandler{
		borrowUseCase: borrowUseCase,
		returnUseCase: returnUseCase,
	}
}

// Borrow 借书
// @Summary      借书
// @Description  读者借出图书,应还日期为借出日期+14天
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path int true "图书ID"
// @Param        patronId path int true "读者ID"
// @Success      200 {object} response.Response{data=appborrowing.BorrowBookResponse}
// @Failure      404 {object} response.Response "图书或读者不存在"
// @Failure      409 {object} response.Response "图书已被借出"
// @Router       /api/borrow/{bookId}/patron/{patronId} [post]
func (h *BorrowingHandler) Borrow(c *gin.Context) {
	bookID, ok := parseID(c, "bookId")
	if !ok {
		return
	}
	patronID, ok := parseID(c, "patronId")
	if !ok {
		return
	}

	result, err := h.borrowUseCase.Execute(c.Request.Context(), bookID, patronID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Return 还书
// @Summary      还书
// @Description  归还(图书,读者)的在借记录,图书恢复可借
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path int true "图书ID"
// @Param        patronId path int true "读者ID"
// @Success      200 {object} response.Response{data=appborrowing.ReturnBookResponse}
// @Failure      404 {object} response.Response "没有可归还的借阅"
// @Router       /api/return/{bookId}/patron/{patronId} [put]
func (h *BorrowingHandler) Return(c *gin.Context) {
	bookID, ok := parseID(c, "bookId")
	if !ok {
		return
	}
	patronID, ok := parseID(c, "patronId")
	if !ok {
		return
	}

	result, err := h.returnUseCase.Execute(c.Request.Context(), bookID, patronID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
