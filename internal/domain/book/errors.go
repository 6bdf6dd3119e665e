package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确")

	// ErrInvalidTitle 书名不能为空
	ErrInvalidTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrInvalidAuthor 作者不能为空
	ErrInvalidAuthor = apperrors.New(apperrors.ErrCodeInvalidParams, "作者不能为空")

	// ErrInvalidYear 出版年份不能晚于当前年份
	ErrInvalidYear = apperrors.New(apperrors.ErrCodeInvalidParams, "出版年份不能晚于当前年份")

	// ErrAlreadyBorrowed 图书已被借出
	ErrAlreadyBorrowed = apperrors.New(apperrors.ErrCodeAlreadyBorrowed, "图书已被借出")

	// ErrBookOnLoan 图书在借,不能删除
	ErrBookOnLoan = apperrors.New(apperrors.ErrCodeBookOnLoan, "图书在借,不能删除")
)
