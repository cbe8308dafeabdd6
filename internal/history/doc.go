// Package history 从仓库中提取提交历史。
//
// 主要功能：
//   - DefaultBranch: 按固定顺序的启发式规则判定仓库的默认分支
//   - Scan / ScanPath: 沿默认分支遍历祖先提交，返回作者时间戳
//   - Collector: 驱动目录树遍历，隔离单个仓库的失败并汇总结果
package history
