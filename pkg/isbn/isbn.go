package isbn

import "strings"

// IsValid 校验ISBN格式
// 规则（与数据库唯一索引配合使用）：
// 1. 只允许数字和连字符
// 2. 去掉连字符后必须是10位或13位数字（ISBN-10 / ISBN-13）
// 简化实现：不校验校验位
func IsValid(s string) bool {
	if s == "" {
		return false
	}

	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '-':
			// 允许连字符分隔，如978-7-115-42802-8
		default:
			return false
		}
	}

	return digits == 10 || digits == 13
}

// Normalize 去掉连字符，返回纯数字形式
// 用于以规范形式比较或存储
func Normalize(s string) string {
	return strings.ReplaceAll(s, "-", "")
}
