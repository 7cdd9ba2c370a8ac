// file: models/submission_log.go
package models

import (
	"time"
)

// SubmissionLog 对应 chaoslab_submission 表。
// 每次提交（无论对错）都留档，赛后复盘用；判分只看内存台账，不读这张表。
type SubmissionLog struct {
	ID               uint64       `gorm:"primarykey"`
	ChallengeID      string       `gorm:"size:64;not null"`
	TeamID           string       `gorm:"size:64;not null"`
	SubmittedPayload string       `gorm:"type:text"`
	Result           SubmitStatus `gorm:"size:20;not null"`
	SubmissionTime   time.Time    `gorm:"default:CURRENT_TIMESTAMP"`
	IPAddress        string       `gorm:"size:45"`
}

func (SubmissionLog) TableName() string {
	return "chaoslab_submission"
}
