package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	appErr := Wrap(inner, "数据库错误")

	if appErr.Code != ErrCodeInternal {
		t.Errorf("Wrap默认应为内部错误码, 实际 %d", appErr.Code)
	}
	if !errors.Is(appErr, inner) {
		t.Error("Wrap后应能通过errors.Is找到底层错误")
	}
}

func TestWrapCode(t *testing.T) {
	inner := fmt.Errorf("Deadlock found when trying to get lock")
	appErr := WrapCode(ErrCodeLockConflict, inner, "事务锁冲突")

	if appErr.Code != ErrCodeLockConflict {
		t.Errorf("错误码不正确: %d", appErr.Code)
	}
	if !errors.Is(appErr, inner) {
		t.Error("WrapCode后应能通过errors.Is找到底层错误")
	}
}

func TestIsCode(t *testing.T) {
	appErr := New(ErrCodeAlreadyBorrowed, "图书已被借出")

	if !IsCode(appErr, ErrCodeAlreadyBorrowed) {
		t.Error("应匹配自身错误码")
	}
	if IsCode(appErr, ErrCodeBookNotFound) {
		t.Error("不应匹配其他错误码")
	}
	if IsCode(fmt.Errorf("plain error"), ErrCodeAlreadyBorrowed) {
		t.Error("普通错误不应匹配任何错误码")
	}

	// 包装后仍可判断
	wrapped := fmt.Errorf("执行失败: %w", appErr)
	if !IsCode(wrapped, ErrCodeAlreadyBorrowed) {
		t.Error("包装后的AppError仍应可判断错误码")
	}
}

func TestGetAppError(t *testing.T) {
	appErr := New(ErrCodeBookNotFound, "图书不存在")
	if got := GetAppError(appErr); got != appErr {
		t.Error("AppError应原样提取")
	}

	plain := fmt.Errorf("plain error")
	got := GetAppError(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("普通错误应包装为内部错误, 实际 %d", got.Code)
	}
	if !errors.Is(got, plain) {
		t.Error("包装结果应保留底层错误")
	}
}
