// file: services/session_service.go
package services

import (
	"ChaosLab/models"
	"ChaosLab/utils"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

var (
	ErrBadTransition = errors.New("会话状态不允许此操作")
	ErrNotRoundMode  = errors.New("仅控题模式支持此操作")
	ErrRevealFirst   = errors.New("当前题目尚未揭晓，不能进入下一题")
	ErrUnknownTeam   = errors.New("队伍不存在")
	ErrDuplicateTeam = errors.New("队伍 id 已存在")
	ErrGameFinished  = errors.New("所有题目已经结束")
)

// Session 全进程唯一的比赛会话，main 启动时初始化。
// 所有读写都经它的互斥锁串行化：解题判重和加分必须是原子的。
var Session *GameSession

// PersistState 状态快照落盘钩子，main 里接 sqlite；测试中留空即可。
var PersistState func(sessionID string, state []byte)

// GameSession 比赛会话：题目目录 + 全部队伍台账 + 玩法开关。
type GameSession struct {
	mu sync.Mutex

	id          string
	mode        models.GameMode
	status      models.SessionStatus
	flags       models.SessionFlags
	shuffleSeed int64

	catalog []models.Challenge // 装载后只读
	index   map[string]int     // challenge_id -> 目录下标

	teams map[string]*models.TeamProgress

	// 控题模式专用；自由模式下恒为 -1/idle
	currentIndex    int
	phase           models.RoundPhase
	allowSkipReveal bool
}

// NewGameSession 按目录文件建会话，初始处于 lobby。
func NewGameSession(cat *CatalogFile, modeOverride string, allowSkipReveal bool) *GameSession {
	mode := cat.Mode
	if modeOverride != "" {
		mode = models.GameMode(modeOverride)
	}

	s := &GameSession{
		id:              utils.GenerateSessionID(),
		mode:            mode,
		status:          models.SessionLobby,
		flags:           cat.Flags,
		shuffleSeed:     time.Now().UnixNano(),
		catalog:         cat.Challenges,
		index:           make(map[string]int, len(cat.Challenges)),
		teams:           make(map[string]*models.TeamProgress, len(cat.Teams)),
		currentIndex:    -1,
		phase:           models.PhaseIdle,
		allowSkipReveal: allowSkipReveal,
	}
	for i, ch := range cat.Challenges {
		s.index[ch.ID] = i
	}
	for _, t := range cat.Teams {
		t.CreatedAt = time.Now()
		s.teams[t.ID] = models.NewTeamProgress(t)
	}
	return s
}

// InitSession 设置全局会话并尝试从快照恢复上一场进度
func InitSession(cat *CatalogFile, modeOverride string, allowSkipReveal bool, snapshot []byte) {
	Session = NewGameSession(cat, modeOverride, allowSkipReveal)
	if len(snapshot) > 0 {
		if err := Session.RestoreState(snapshot); err != nil {
			log.Println("状态快照恢复失败，按全新会话启动:", err)
		} else {
			log.Println("已从快照恢复会话状态")
		}
	}
}

// --- 生命周期（线性状态机 lobby -> active -> ended）---

func (s *GameSession) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != models.SessionLobby {
		return ErrBadTransition
	}
	s.status = models.SessionActive
	s.persistLocked()
	return nil
}

func (s *GameSession) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != models.SessionActive {
		return ErrBadTransition
	}
	s.status = models.SessionEnded
	s.persistLocked()
	return nil
}

// --- 提交判定 ---

// Submit 处理一次提交。整段在锁内：判重（已解出检查）和记分必须
// 对并发提交原子，两个同时到达的正确提交只能有一个拿到 solved。
func (s *GameSession) Submit(teamID, challengeID string, payload []byte) models.SubmitResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != models.SessionActive {
		return models.SubmitResult{Status: models.SubmitRejected, Reason: "比赛尚未开始或已结束"}
	}
	progress, ok := s.teams[teamID]
	if !ok {
		return models.SubmitResult{Status: models.SubmitRejected, Reason: "队伍不存在"}
	}
	idx, ok := s.index[challengeID]
	if !ok {
		return models.SubmitResult{Status: models.SubmitRejected, Reason: "题目不存在"}
	}
	if s.mode == models.ModeRound {
		if s.currentIndex < 0 || s.catalog[s.currentIndex].ID != challengeID || s.phase != models.PhaseOpen {
			return models.SubmitResult{Status: models.SubmitRejected, Reason: "当前题目未开放作答"}
		}
	}

	// 一次性闩锁：已解出的题重复提交是无副作用的空操作
	if _, solved := progress.Solves[challengeID]; solved {
		return models.SubmitResult{Status: models.SubmitAlreadySolved, Reason: "你的队伍已解出此题"}
	}

	ch := s.catalog[idx]
	matched, reason := MatchRules(payload, ch.Rules)
	if matched {
		progress.Solves[challengeID] = &models.SolveRecord{
			SolvedAt:     time.Now(),
			AttemptCount: progress.Attempts[challengeID] + 1,
		}
		delete(progress.Attempts, challengeID)
		s.persistLocked()
		return models.SubmitResult{Status: models.SubmitSolved, ScoreDelta: ch.Points}
	}

	progress.Attempts[challengeID]++
	delta := 0.0
	// 负分仅控题模式生效，且每次非空的错误提交都罚（非幂等，这是唯一会扣分的路径）
	if s.mode == models.ModeRound && s.flags.NegativeMarkingEnabled && nonEmptyPayload(payload) {
		progress.Penalty += 0.5
		delta = -0.5
	}
	s.persistLocked()
	return models.SubmitResult{Status: models.SubmitIncorrect, ScoreDelta: delta, Reason: reason}
}

func nonEmptyPayload(payload []byte) bool {
	trimmed := bytes.TrimSpace(payload)
	switch string(trimmed) {
	case "", "null", "{}", "[]":
		return false
	}
	// 字符串字面量内部也要裁剪："   " 与 "" 一样算空提交，不触发罚分
	if parsed := gjson.ParseBytes(trimmed); parsed.Type == gjson.String {
		return strings.TrimSpace(parsed.Str) != ""
	}
	return true
}

// --- 控题模式 ---

// NextQuestion 主持人推进到下一题。默认要求先揭晓再推进（可配置放开）。
func (s *GameSession) NextQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != models.ModeRound {
		return ErrNotRoundMode
	}
	if s.status != models.SessionActive {
		return ErrBadTransition
	}
	if s.phase == models.PhaseOpen && !s.allowSkipReveal {
		return ErrRevealFirst
	}

	next := s.currentIndex + 1
	if next >= len(s.catalog) {
		s.status = models.SessionEnded
		s.persistLocked()
		return ErrGameFinished
	}
	s.currentIndex = next
	s.phase = models.PhaseOpen
	s.persistLocked()
	return nil
}

// RevealQuestion 揭晓当前题。正确提交在 Submit 时即已记分，
// 揭晓只负责公开答案并解锁推进。
func (s *GameSession) RevealQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != models.ModeRound {
		return ErrNotRoundMode
	}
	if s.phase != models.PhaseOpen {
		return ErrBadTransition
	}
	s.phase = models.PhaseRevealed
	s.persistLocked()
	return nil
}

// --- 主持人管理操作 ---

// SetFlags 更新玩法开关，nil 表示保持原值
func (s *GameSession) SetFlags(hints, shuffle, negative *bool) models.SessionFlags {
	s.mu.Lock()
	defer s.mu.Unlock()

	if hints != nil {
		s.flags.HintsEnabled = *hints
	}
	if shuffle != nil {
		s.flags.ShuffleEnabled = *shuffle
	}
	if negative != nil {
		s.flags.NegativeMarkingEnabled = *negative
	}
	s.persistLocked()
	return s.flags
}

// ResetAll 整场重置：清空全部台账、回到 lobby 并重新乱序。
// 开关和题目顺序来源（目录）不动。
func (s *GameSession) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.teams {
		s.teams[id] = models.NewTeamProgress(p.Team)
	}
	s.status = models.SessionLobby
	s.currentIndex = -1
	s.phase = models.PhaseIdle
	s.shuffleSeed = time.Now().UnixNano()
	s.persistLocked()
}

// ResetTeam 单队重置，其余队伍与会话状态不受影响
func (s *GameSession) ResetTeam(teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.teams[teamID]
	if !ok {
		return ErrUnknownTeam
	}
	s.teams[teamID] = models.NewTeamProgress(p.Team)
	s.persistLocked()
	return nil
}

// AddTeam 现场加队，自动生成邀请码
func (s *GameSession) AddTeam(id, name string) (models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.teams[id]; exists {
		return models.Team{}, ErrDuplicateTeam
	}
	t := models.Team{
		ID:             id,
		TeamName:       name,
		InvitationCode: utils.GenerateInvitationCode(8),
		CreatedAt:      time.Now(),
	}
	s.teams[id] = models.NewTeamProgress(t)
	s.persistLocked()
	return t, nil
}

// --- 读侧投影（都在锁内拷贝出一致快照）---

// Scoreboard 实时计算排行榜：每次请求重算，从不缓存。
func (s *GameSession) Scoreboard() []models.ScoreRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]models.ScoreRow, 0, len(s.teams))
	for _, p := range s.teams {
		rows = append(rows, models.ScoreRow{
			TeamID:      p.Team.ID,
			TeamName:    p.Team.TeamName,
			Points:      p.Points(s.pointsOfLocked),
			SolvedCount: len(p.Solves),
			LastSolve:   p.LastSolveAt(),
		})
	}
	return RankTeams(rows)
}

func (s *GameSession) pointsOfLocked(challengeID string) float64 {
	if i, ok := s.index[challengeID]; ok {
		return s.catalog[i].Points
	}
	return 0 // 快照里残留的已删题目不计分
}

// OrderedChallenges 某队视角的题目顺序（乱序开关开启时按队伍确定性打乱）
func (s *GameSession) OrderedChallenges(teamID string) ([]models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.teams[teamID]; !ok {
		return nil, ErrUnknownTeam
	}
	ordered := make([]models.Challenge, len(s.catalog))
	copy(ordered, s.catalog)
	if s.flags.ShuffleEnabled {
		seed := s.shuffleSeed
		sort.SliceStable(ordered, func(i, j int) bool {
			return shuffleKey(seed, teamID, ordered[i].ID) < shuffleKey(seed, teamID, ordered[j].ID)
		})
	}
	return ordered, nil
}

// shuffleKey 确定性乱序键：同一会话里同一队看到的顺序固定，整场重置后重排
func shuffleKey(seed int64, teamID, challengeID string) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%s", seed, teamID, challengeID)
	return h.Sum64()
}

// TeamState 某队台账的深拷贝
func (s *GameSession) TeamState(teamID string) (*models.TeamProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.teams[teamID]
	if !ok {
		return nil, ErrUnknownTeam
	}
	return copyProgress(p), nil
}

func copyProgress(p *models.TeamProgress) *models.TeamProgress {
	cp := models.NewTeamProgress(p.Team)
	cp.Penalty = p.Penalty
	for id, rec := range p.Solves {
		r := *rec
		cp.Solves[id] = &r
	}
	for id, n := range p.Attempts {
		cp.Attempts[id] = n
	}
	return cp
}

// HintsEnabled 当前是否展示提示
func (s *GameSession) HintsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags.HintsEnabled
}

// GetChallenge 按 id 取题目定义
func (s *GameSession) GetChallenge(challengeID string) (models.Challenge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[challengeID]
	if !ok {
		return models.Challenge{}, false
	}
	return s.catalog[i], true
}

// SessionView 会话概览（/session 与主持人面板共用）
type SessionView struct {
	SessionID       string               `json:"session_id"`
	Status          models.SessionStatus `json:"status"`
	Mode            models.GameMode      `json:"mode"`
	Flags           models.SessionFlags  `json:"flags"`
	TeamCount       int                  `json:"team_count"`
	ChallengeCount  int                  `json:"challenge_count"`
	CurrentIndex    int                  `json:"current_index"`
	Phase           models.RoundPhase    `json:"phase"`
	CurrentQuestion *QuestionView        `json:"current_question,omitempty"`
}

// QuestionView 控题模式下广播的当前题目；答案只在揭晓后出现
type QuestionView struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Brief   string   `json:"brief"`
	Points  float64  `json:"points"`
	Options []string `json:"options,omitempty"`
	Answer  []string `json:"answer,omitempty"`
}

func (s *GameSession) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := SessionView{
		SessionID:      s.id,
		Status:         s.status,
		Mode:           s.mode,
		Flags:          s.flags,
		TeamCount:      len(s.teams),
		ChallengeCount: len(s.catalog),
		CurrentIndex:   s.currentIndex,
		Phase:          s.phase,
	}
	if s.mode == models.ModeRound && s.currentIndex >= 0 && s.currentIndex < len(s.catalog) {
		ch := s.catalog[s.currentIndex]
		q := &QuestionView{
			ID:      ch.ID,
			Title:   ch.Title,
			Brief:   ch.Brief,
			Points:  ch.Points,
			Options: ch.Options,
		}
		if s.phase == models.PhaseRevealed {
			q.Answer = answerOf(ch)
		}
		view.CurrentQuestion = q
	}
	return view
}

// answerOf 从选择类规则里提取揭晓时公开的答案
func answerOf(ch models.Challenge) []string {
	for _, r := range ch.Rules {
		switch r.Kind {
		case models.RuleSingleChoice:
			return r.Accepted
		case models.RuleMultiChoice:
			return r.Expected
		}
	}
	return nil
}

// --- 状态快照（重启续赛，对应原型里的 state.json）---

type sessionState struct {
	ID           string                          `json:"id"`
	Mode         models.GameMode                 `json:"mode"`
	Status       models.SessionStatus            `json:"status"`
	Flags        models.SessionFlags             `json:"flags"`
	ShuffleSeed  int64                           `json:"shuffle_seed"`
	CurrentIndex int                             `json:"current_index"`
	Phase        models.RoundPhase               `json:"phase"`
	Teams        map[string]*models.TeamProgress `json:"teams"`
}

// persistLocked 在持锁状态下序列化并落盘。锁保证快照永远是完整一致的。
func (s *GameSession) persistLocked() {
	if PersistState == nil {
		return
	}
	state, err := json.Marshal(sessionState{
		ID:           s.id,
		Mode:         s.mode,
		Status:       s.status,
		Flags:        s.flags,
		ShuffleSeed:  s.shuffleSeed,
		CurrentIndex: s.currentIndex,
		Phase:        s.phase,
		Teams:        s.teams,
	})
	if err != nil {
		log.Println("状态快照序列化失败:", err)
		return
	}
	PersistState(s.id, state)
}

// RestoreState 从快照恢复。目录以当前文件为准，快照只带回进度和开关。
func (s *GameSession) RestoreState(data []byte) error {
	var st sessionState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if st.ID != "" {
		s.id = st.ID
	}
	if st.Mode == s.mode { // 模式变了就不恢复控题进度
		s.currentIndex = st.CurrentIndex
		s.phase = st.Phase
	}
	s.status = st.Status
	s.flags = st.Flags
	if st.ShuffleSeed != 0 {
		s.shuffleSeed = st.ShuffleSeed
	}
	for id, p := range st.Teams {
		if p == nil {
			continue
		}
		if p.Solves == nil {
			p.Solves = make(map[string]*models.SolveRecord)
		}
		if p.Attempts == nil {
			p.Attempts = make(map[string]int)
		}
		s.teams[id] = p
	}
	return nil
}
