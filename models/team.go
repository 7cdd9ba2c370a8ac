// file: models/team.go
package models

import (
	"time"
)

// Team 参赛队伍。工作坊场景没有账号体系，队伍凭 ID 提交，
// 邀请码用于现场加队时口头下发。
type Team struct {
	ID             string    `toml:"id" json:"id"`
	TeamName       string    `toml:"name" json:"team_name"`
	InvitationCode string    `toml:"invitation_code" json:"invitation_code,omitempty"`
	CreatedAt      time.Time `toml:"-" json:"created_at,omitempty"`
}
