package search

import (
	"errors"
	"fmt"
)

// 上游搜索接口的失败分类。四种失败对调用方必须可区分：
// 限流提示稍后重试，鉴权失败提示检查密钥，其余按通用上游错误
// 或网络错误处理。内部不做重试。
var (
	// ErrThrottled 表示上游返回了限流状态（HTTP 429）。
	ErrThrottled = errors.New("search provider throttled the request")

	// ErrAuth 表示上游拒绝了凭证或订阅（HTTP 401/403）。
	ErrAuth = errors.New("search provider rejected credentials")
)

// UpstreamError 表示上游返回了其他非成功状态。
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("search provider returned status %d", e.Status)
}

// ConnectivityError 表示传输层失败，完全没有拿到响应。
// 与 UpstreamError 的区别在于没有可用的状态码。
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("search provider unreachable: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// classifyStatus 把非成功的 HTTP 状态映射到错误分类。
func classifyStatus(status int) error {
	switch status {
	case 429:
		return fmt.Errorf("%w (status %d)", ErrThrottled, status)
	case 401, 403:
		return fmt.Errorf("%w (status %d)", ErrAuth, status)
	default:
		return &UpstreamError{Status: status}
	}
}
