// file: utils/code_generator.go
package utils

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateInvitationCode 生成指定长度的随机邀请码（现场发队用）
func GenerateInvitationCode(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(charset[seededRand.Intn(len(charset))])
	}
	return sb.String()
}

// GenerateSessionID 生成会话标识，用于区分状态快照属于哪一场比赛
func GenerateSessionID() string {
	return strings.Replace(uuid.New().String(), "-", "", -1)[:12]
}
