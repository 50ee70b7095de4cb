package model

import "time"

// 订阅等级。
const (
	TierFree  = "free"
	TierBasic = "basic"
	TierPro   = "pro"
)

// User 表示系统用户。
//
// 用户通过落地页的邮箱采集流程创建，SearchCredits 限制免费用户的
// 搜索次数，升级套餐后增加额度。
// Lead 表示落地页采集到的邮箱线索，注册前就会存在。
type Lead struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"type:varchar(191);uniqueIndex"` // 线索邮箱（唯一）
	Source    string    `gorm:"type:varchar(64)"`              // 来源标记，如 "landing"
	CreatedAt time.Time
}

type User struct {
	ID            uint      `gorm:"primaryKey"`                    // 用户 ID
	Email         string    `gorm:"type:varchar(191);uniqueIndex"` // 邮箱（唯一）
	Username      string    `gorm:"type:varchar(64)"`              // 展示名（邮箱 @ 前缀）
	Password      string    `gorm:"not null"`                      // bcrypt 哈希
	Tier          string    `gorm:"type:varchar(16);default:free"` // 订阅等级: free / pro
	SearchCredits int       `gorm:"default:5"`                     // 剩余搜索额度
	LeadSource    string    `gorm:"type:varchar(64)"`              // 线索来源标记
	CreatedAt     time.Time // 创建时间
}
