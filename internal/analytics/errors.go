package analytics

import "errors"

// ErrComputation 输入退化到无法给出定义良好的结果（例如有任务但迭代没有任何计划日）
var ErrComputation = errors.New("analytics: degenerate input")
