// Package repo 提供 Git 仓库的发现功能。
//
// 主要功能：
//   - Open: 打开工作区、.git 目录或裸仓库，区分"不是仓库"与其他失败
//   - Name: 根据目录树配置计算仓库名
//   - TreeRepos / ConfigRepos: 惰性遍历目录树，逐个产出发现的仓库
package repo
