package memo

// CreateFormatter 把单条格式化函数提升为切片格式化函数
// 与记忆化无关,通常和New组合使用;nil输入返回空切片
func CreateFormatter[T, R any](fn func(T) R) func(items []T) []R {
	return func(items []T) []R {
		out := make([]R, len(items))
		for i, item := range items {
			out[i] = fn(item)
		}
		return out
	}
}
