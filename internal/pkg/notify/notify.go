package notify

import (
	"context"

	"arbitragescout/internal/model"
)

// Notifier 定义降价提醒接口。
type Notifier interface {
	// SendPriceDrop 发送降价提醒。
	//
	// 参数:
	//   ctx: 上下文
	//   entry: 收藏条目（Price 是最新价，TrackedPrice 是保存时的价）
	//   toEmail: 接收邮箱
	SendPriceDrop(ctx context.Context, entry model.WatchlistEntry, toEmail string) error
}
