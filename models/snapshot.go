// file: models/snapshot.go
package models

import (
	"time"
)

// StateSnapshot 对应 chaoslab_state_snapshot 表。
// 会话状态的整体 JSON 快照，固定只有一行（ID=1），进程重启后据此恢复进度。
type StateSnapshot struct {
	ID        uint   `gorm:"primarykey"`
	SessionID string `gorm:"size:64;not null"`
	State     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (StateSnapshot) TableName() string {
	return "chaoslab_state_snapshot"
}
