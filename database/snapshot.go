// file: database/snapshot.go
package database

import (
	"ChaosLab/models"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaveStateSnapshot 覆盖写入会话状态快照（固定 ID=1，存在则更新）
func SaveStateSnapshot(sessionID string, state []byte) error {
	snap := models.StateSnapshot{
		ID:        1,
		SessionID: sessionID,
		State:     string(state),
	}
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"session_id", "state", "updated_at"}),
	}).Create(&snap).Error
}

// LoadStateSnapshot 读取上一场的状态快照；没有快照返回 nil, nil
func LoadStateSnapshot() ([]byte, error) {
	var snap models.StateSnapshot
	err := DB.First(&snap, 1).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(snap.State), nil
}

// DeleteStateSnapshot 整场重置时连同快照一起清掉
func DeleteStateSnapshot() error {
	if DB == nil {
		return nil
	}
	return DB.Delete(&models.StateSnapshot{}, 1).Error
}
