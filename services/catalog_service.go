// file: services/catalog_service.go
package services

import (
	"ChaosLab/models"
	"fmt"
	"os"
	"regexp"

	"github.com/pelletier/go-toml/v2"
)

// CatalogFile 对应 game.toml：一场比赛的队伍名单 + 题目目录。
type CatalogFile struct {
	Mode       models.GameMode     `toml:"mode"`
	Flags      models.SessionFlags `toml:"flags"`
	Teams      []models.Team       `toml:"teams"`
	Challenges []models.Challenge  `toml:"challenges"`
}

// LoadCatalog 装载并校验题目目录。任何问题都在这里报错、由 main 直接退出——
// 目录错误属于启动期致命错误，绝不留到请求路径里。
func LoadCatalog(path string) (*CatalogFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取题目目录失败: %w", err)
	}

	var cat CatalogFile
	if err := toml.Unmarshal(content, &cat); err != nil {
		return nil, fmt.Errorf("解析题目目录失败: %w", err)
	}

	if cat.Mode == "" {
		cat.Mode = models.ModeFree
	}
	if cat.Mode != models.ModeFree && cat.Mode != models.ModeRound {
		return nil, fmt.Errorf("mode 取值无效（free/round）: %q", cat.Mode)
	}
	if len(cat.Challenges) == 0 {
		return nil, fmt.Errorf("题目目录为空")
	}
	if len(cat.Teams) == 0 {
		return nil, fmt.Errorf("队伍名单为空")
	}

	seen := make(map[string]bool)
	for i := range cat.Challenges {
		ch := &cat.Challenges[i]
		if ch.ID == "" || ch.Title == "" {
			return nil, fmt.Errorf("题目 #%d 缺少 id 或 title", i)
		}
		if seen[ch.ID] {
			return nil, fmt.Errorf("题目 id 重复: %s", ch.ID)
		}
		seen[ch.ID] = true
		if ch.Points == 0 {
			ch.Points = 1
		}
		if len(ch.Rules) == 0 {
			return nil, fmt.Errorf("题目 %s 没有判题规则", ch.ID)
		}
		for j, r := range ch.Rules {
			if err := validateRule(r); err != nil {
				return nil, fmt.Errorf("题目 %s 规则 #%d: %w", ch.ID, j, err)
			}
		}
	}

	teamSeen := make(map[string]bool)
	for _, t := range cat.Teams {
		if t.ID == "" || t.TeamName == "" {
			return nil, fmt.Errorf("队伍缺少 id 或 name")
		}
		if teamSeen[t.ID] {
			return nil, fmt.Errorf("队伍 id 重复: %s", t.ID)
		}
		teamSeen[t.ID] = true
	}

	return &cat, nil
}

func validateRule(r models.Rule) error {
	switch r.Kind {
	case models.RulePathEquals:
		if r.Path == "" || r.Value == nil {
			return fmt.Errorf("path_equals 需要 path 和 value")
		}
	case models.RuleNonEmpty:
		if r.Path == "" {
			return fmt.Errorf("non_empty 需要 path")
		}
	case models.RuleNumericAtLeast:
		if r.Path == "" || r.Min == "" {
			return fmt.Errorf("numeric_at_least 需要 path 和 min")
		}
		if _, err := ParseQuantity(r.Min, r.Unit); err != nil {
			return fmt.Errorf("min 无法解析: %q", r.Min)
		}
	case models.RuleSetContainsAll:
		if r.Path == "" || len(r.Elements) == 0 {
			return fmt.Errorf("set_contains_all 需要 path 和 elements")
		}
	case models.RuleSingleChoice:
		if len(r.Accepted) == 0 {
			return fmt.Errorf("single_choice 需要 accepted")
		}
	case models.RuleMultiChoice:
		if len(r.Expected) == 0 {
			return fmt.Errorf("multi_choice 需要 expected")
		}
	case models.RuleRegexMatch:
		if r.Pattern == "" {
			return fmt.Errorf("regex 需要 pattern")
		}
		if _, err := regexp.Compile("(?i)" + r.Pattern); err != nil {
			return fmt.Errorf("regex 模式非法: %w", err)
		}
	default:
		return fmt.Errorf("未知规则种类: %q", r.Kind)
	}
	return nil
}
