package borrowing

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrBorrowedByAnother 图书已被其他读者借出
	// 并发借阅竞争失败的一方也返回此错误
	ErrBorrowedByAnother = apperrors.New(apperrors.ErrCodeBorrowedByAnother, "图书已被其他读者借出")

	// ErrReturnConflict 归还事务与并发借阅持续冲突
	// 记录本身还在,调用方重试即可,不能当成服务端错误
	ErrReturnConflict = apperrors.New(apperrors.ErrCodeBusinessError, "归还操作冲突,请重试")

	// ErrLoanNotFound 无匹配的在借记录
	// "记录存在但属于别的读者"与"记录不存在"对调用方不可区分,
	// 因为查找键就是(图书,读者,在借)
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "未找到匹配的在借记录")
)
