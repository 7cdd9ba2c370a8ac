// file: services/rule_engine.go
package services

import (
	"ChaosLab/models"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// MatchRules 判定一次提交是否满足题目的全部规则（逻辑与）。
// 引擎是全函数：路径缺失、类型不符、解析失败一律算"不匹配"，
// 只返回 true/false 和给选手看的原因，绝不 panic、不返回 error。
func MatchRules(payload []byte, rules []models.Rule) (bool, string) {
	if !gjson.ValidBytes(payload) {
		return false, "提交内容不是合法的 JSON"
	}
	root := gjson.ParseBytes(payload)

	for _, r := range rules {
		if !matchRule(root, r) {
			return false, reasonFor(r)
		}
	}
	return true, ""
}

func reasonFor(r models.Rule) string {
	if r.Message != "" {
		return r.Message
	}
	return "提交内容未满足题目要求"
}

// matchRule 按规则种类做一次完整分发
func matchRule(root gjson.Result, r models.Rule) bool {
	switch r.Kind {
	case models.RulePathEquals:
		return anyCandidate(root, r.Path, func(v gjson.Result) bool {
			return leafEquals(v, r.Value)
		})

	case models.RuleNonEmpty:
		return anyCandidate(root, r.Path, func(v gjson.Result) bool {
			if v.Type == gjson.Null || v.IsObject() || v.IsArray() {
				return false
			}
			return strings.TrimSpace(v.String()) != ""
		})

	case models.RuleNumericAtLeast:
		min, err := ParseQuantity(r.Min, r.Unit)
		if err != nil {
			return false
		}
		return anyCandidate(root, r.Path, func(v gjson.Result) bool {
			got, err := ParseQuantity(v.String(), r.Unit)
			return err == nil && got >= min
		})

	case models.RuleSetContainsAll:
		return anyCandidate(root, r.Path, func(v gjson.Result) bool {
			return containsAll(v, r.Elements)
		})

	case models.RuleSingleChoice:
		return anyCandidate(root, r.Path, func(v gjson.Result) bool {
			if v.IsObject() || v.IsArray() {
				return false
			}
			for _, accepted := range r.Accepted {
				if v.String() == accepted {
					return true
				}
			}
			return false
		})

	case models.RuleMultiChoice:
		return anyCandidate(root, r.Path, func(v gjson.Result) bool {
			return setEquals(v, r.Expected)
		})

	case models.RuleRegexMatch:
		// 默认忽略大小写；非法模式在目录装载时已拦下，这里兜底算不匹配
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return false
		}
		return anyCandidate(root, r.Path, func(v gjson.Result) bool {
			if v.IsObject() || v.IsArray() {
				return false
			}
			return re.MatchString(v.String())
		})

	default:
		return false
	}
}

// anyCandidate 解析路径并对每个候选叶子做存在语义判定：
// 通配查询（#(...)# 形式）会命中多个元素，任意一个满足即算满足。
// 空路径表示整棵提交树本身。
func anyCandidate(root gjson.Result, path string, pred func(gjson.Result) bool) bool {
	if path == "" {
		return pred(root)
	}
	res := root.Get(path)
	if !res.Exists() {
		return false
	}
	if res.IsArray() && strings.Contains(path, ")#") {
		for _, v := range res.Array() {
			if pred(v) {
				return true
			}
		}
		return false
	}
	return pred(res)
}

// leafEquals 叶子值相等判定：字符串区分大小写，数值按数值比较
func leafEquals(v gjson.Result, expected any) bool {
	switch e := expected.(type) {
	case string:
		return v.Type == gjson.String && v.Str == e
	case int64:
		return v.Type == gjson.Number && v.Num == float64(e)
	case int:
		return v.Type == gjson.Number && v.Num == float64(e)
	case float64:
		return v.Type == gjson.Number && v.Num == e
	case bool:
		return (v.Type == gjson.True || v.Type == gjson.False) && v.Bool() == e
	default:
		return false
	}
}

// containsAll 序列必须包含全部要求元素，顺序无关。
// 成员归一化后比较：字符串忽略大小写；形如 {port, protocol} 的对象
// 归一化为 "PROTOCOL/PORT"，protocol 缺省按 TCP（端口/协议名的惯例写法）。
func containsAll(v gjson.Result, elements []string) bool {
	if !v.IsArray() {
		return false
	}
	present := make(map[string]bool)
	for _, member := range v.Array() {
		present[normalizeSetMember(member)] = true
	}
	for _, want := range elements {
		if !present[strings.ToUpper(strings.TrimSpace(want))] {
			return false
		}
	}
	return true
}

func normalizeSetMember(v gjson.Result) string {
	if v.IsObject() {
		if port := v.Get("port"); port.Exists() {
			proto := v.Get("protocol").String()
			if proto == "" {
				proto = "TCP"
			}
			return strings.ToUpper(proto) + "/" + port.String()
		}
		return strings.ToUpper(v.Raw)
	}
	return strings.ToUpper(strings.TrimSpace(v.String()))
}

// setEquals 提交的选择集合必须与期望集合完全一致（无部分得分）
func setEquals(v gjson.Result, expected []string) bool {
	if !v.IsArray() {
		return false
	}
	got := make(map[string]bool)
	for _, member := range v.Array() {
		if member.IsObject() || member.IsArray() {
			return false
		}
		got[strings.ToUpper(strings.TrimSpace(member.String()))] = true
	}
	want := make(map[string]bool)
	for _, e := range expected {
		want[strings.ToUpper(strings.TrimSpace(e))] = true
	}
	if len(got) != len(want) {
		return false
	}
	for e := range want {
		if !got[e] {
			return false
		}
	}
	return true
}
