// file: mappers/challenge_mapper.go
package mappers

import (
	"ChaosLab/dto"
	"ChaosLab/models"
	"sort"
)

// MapChallengeToView 题目定义 + 队伍台账 -> 队伍视角视图。
// 规则本体绝不进响应；提示跟随会话开关。
func MapChallengeToView(ch models.Challenge, progress *models.TeamProgress, hintsEnabled bool) dto.ChallengeViewResp {
	view := dto.ChallengeViewResp{
		ID:      ch.ID,
		Title:   ch.Title,
		Brief:   ch.Brief,
		Points:  ch.Points,
		Options: ch.Options,
	}
	if hintsEnabled {
		view.Hint = ch.Hint
	}
	if rec, ok := progress.Solves[ch.ID]; ok {
		view.Solved = true
		view.Attempts = rec.AttemptCount
	} else {
		view.Attempts = progress.Attempts[ch.ID]
	}
	return view
}

// MapSolves 台账 -> 按时间升序的解题记录列表
func MapSolves(progress *models.TeamProgress, pointsOf func(string) (models.Challenge, bool)) []dto.SolveInfoResp {
	result := make([]dto.SolveInfoResp, 0, len(progress.Solves))
	for id, rec := range progress.Solves {
		ch, ok := pointsOf(id)
		if !ok {
			continue
		}
		result = append(result, dto.SolveInfoResp{
			ChallengeID:    id,
			ChallengeTitle: ch.Title,
			Points:         ch.Points,
			SolvedAt:       rec.SolvedAt.Format("2006-01-02 15:04:05"),
			AttemptCount:   rec.AttemptCount,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SolvedAt < result[j].SolvedAt
	})
	return result
}
