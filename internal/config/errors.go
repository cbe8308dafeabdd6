package config

import "fmt"

// ConfigError 表示配置加载或解析失败，属于整次运行的致命错误。
type ConfigError struct {
	Path    string // 配置文件路径，解析字符串时为空
	Message string
	Cause   error
}

// Error 返回带文件路径前缀的描述，解析字符串时只有 "config: " 前缀。
func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, msg)
	}
	return "config: " + msg
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError 创建不带底层错误的 ConfigError。
func NewConfigError(path, message string) *ConfigError {
	return &ConfigError{Path: path, Message: message}
}

// NewConfigErrorWithCause 创建包装 cause 的 ConfigError。
func NewConfigErrorWithCause(path, message string, cause error) *ConfigError {
	return &ConfigError{Path: path, Message: message, Cause: cause}
}
