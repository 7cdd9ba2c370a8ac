// file: models/solve_feed.go
package models

import (
	"time"
)

// SolveFeed 对应 chaoslab_solve_feed 表，记录实时解题动态
type SolveFeed struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	ChallengeID    string    `gorm:"size:64;not null" json:"challenge_id"`
	ChallengeTitle string    `gorm:"size:100;not null" json:"challenge_title"`
	TeamID         string    `gorm:"size:64;not null" json:"team_id"`
	TeamName       string    `gorm:"size:100;not null" json:"team_name"`
	Points         float64   `gorm:"not null" json:"points"`
	SolvingTime    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"solving_time"`
}

func (SolveFeed) TableName() string {
	return "chaoslab_solve_feed"
}
