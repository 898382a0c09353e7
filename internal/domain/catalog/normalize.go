package catalog

import "strings"

// Normalize 比较前的归一化
// caseSensitive为false时转小写,不做语言相关的大小写折叠
func Normalize(value string, caseSensitive bool) string {
	if caseSensitive {
		return value
	}
	return strings.ToLower(value)
}

// Contains 判断字段是否包含条件值(子串匹配)
// 条件为空表示不约束该字段,直接通过;
// 字段为空而条件非空时不匹配
func Contains(field, criterion string, caseSensitive bool) bool {
	if criterion == "" {
		return true
	}
	return strings.Contains(Normalize(field, caseSensitive), Normalize(criterion, caseSensitive))
}
