// Package server 提供前端使用的 HTTP API。
//
// 路由：
//
//	GET /api/health          固定返回 {"status":"ok"}
//	GET /api/version         {"version":"..."}
//	GET /api/contributions   {"repos":{"<name>":[<unix 秒>...]}}，每次请求都重新扫描
//	GET /api/oauth/callback  用授权码换取 GitHub 访问令牌
//	GET /api/oauth/refresh   用刷新令牌换取新的访问令牌
package server
