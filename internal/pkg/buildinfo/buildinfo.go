package buildinfo

import "fmt"

// Version 在 Release 构建时通过 -ldflags 注入，例如：
// -X github.com/yuqie6/taskboard/internal/pkg/buildinfo.Version=v0.1.0
var Version = "v0.1.0-dev"

// Commit 在 Release 构建时可选注入 git commit，例如：
// -X github.com/yuqie6/taskboard/internal/pkg/buildinfo.Commit=abcdef1
var Commit = "unknown"

// String 版本展示串
func String() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
