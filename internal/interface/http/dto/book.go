package dto

// CreateBookRequest HTTP新增图书请求
// validator tag说明:
// - required: 必填字段
// - pubyear: 出版年份不晚于当前年份(pkg/validator中注册)
// - isbn: ISBN-10/ISBN-13格式(pkg/validator中注册)
type CreateBookRequest struct {
	Title           string `json:"title" binding:"required,max=200" example:"围城"`
	Author          string `json:"author" binding:"required,max=100" example:"钱钟书"`
	PublicationYear int    `json:"publication_year" binding:"required,pubyear" example:"1947"`
	ISBN            string `json:"isbn" binding:"required,isbn" example:"978-7-02-009000-2"`
}

// UpdateBookRequest HTTP更新图书请求
// 全量更新:不可借状态不在请求里,可借状态只属于借阅引擎
type UpdateBookRequest struct {
	Title           string `json:"title" binding:"required,max=200" example:"围城"`
	Author          string `json:"author" binding:"required,max=100" example:"钱钟书"`
	PublicationYear int    `json:"publication_year" binding:"required,pubyear" example:"1947"`
	ISBN            string `json:"isbn" binding:"required,isbn" example:"978-7-02-009000-2"`
}
