package patron

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 读者领域错误定义
var (
	// ErrPatronNotFound 读者不存在
	ErrPatronNotFound = apperrors.New(apperrors.ErrCodePatronNotFound, "读者不存在")

	// ErrEmailDuplicate 邮箱已被注册
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")

	// ErrInvalidName 姓名不能为空
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "姓名不能为空")

	// ErrInvalidContact 联系方式不能为空
	ErrInvalidContact = apperrors.New(apperrors.ErrCodeInvalidParams, "联系方式不能为空")

	// ErrInvalidEmail 邮箱格式不正确
	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")

	// ErrPatronHasLoan 读者有在借图书,不能删除
	ErrPatronHasLoan = apperrors.New(apperrors.ErrCodePatronHasLoan, "读者有在借图书,不能删除")
)
