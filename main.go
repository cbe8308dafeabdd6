// repoyear 从本地多个 Git 仓库收集提交时间，用于绘制贡献日历。
package main

import (
	"repoyear/cmd"
)

func main() {
	cmd.Execute()
}
