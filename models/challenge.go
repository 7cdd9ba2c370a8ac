// file: models/challenge.go
package models

// 自定义规则种类与单位族类型
type RuleKind string
type UnitFamily string

const (
	RulePathEquals     RuleKind = "path_equals"
	RuleNonEmpty       RuleKind = "non_empty"
	RuleNumericAtLeast RuleKind = "numeric_at_least"
	RuleSetContainsAll RuleKind = "set_contains_all"
	RuleSingleChoice   RuleKind = "single_choice"
	RuleMultiChoice    RuleKind = "multi_choice"
	RuleRegexMatch     RuleKind = "regex"

	UnitMemory UnitFamily = "memory" // 归一化为字节
	UnitCPU    UnitFamily = "cpu"    // 归一化为毫核
	UnitPlain  UnitFamily = "plain"  // 无量纲
)

// Rule 描述"什么算答对"的语义判题规则。
// 闭合的标签变体：引擎按 Kind 做一次完整分发，各变体只使用自己需要的字段。
// Path 使用 gjson 路径语法，#(field=="x")# 形式的查询表示"任意匹配元素"（存在语义）。
type Rule struct {
	Kind     RuleKind   `toml:"kind" json:"kind"`
	Path     string     `toml:"path" json:"path,omitempty"`
	Value    any        `toml:"value" json:"value,omitempty"`       // path_equals 期望值
	Min      string     `toml:"min" json:"min,omitempty"`           // numeric_at_least 下限（可带单位）
	Unit     UnitFamily `toml:"unit" json:"unit,omitempty"`         // 数量单位族，缺省 plain
	Elements []string   `toml:"elements" json:"elements,omitempty"` // set_contains_all 必含元素
	Accepted []string   `toml:"accepted" json:"accepted,omitempty"` // single_choice 可接受值列表
	Expected []string   `toml:"expected" json:"expected,omitempty"` // multi_choice 期望的完整集合
	Pattern  string     `toml:"pattern" json:"pattern,omitempty"`   // regex 模式，默认忽略大小写
	Message  string     `toml:"message" json:"message,omitempty"`   // 不匹配时反馈给选手的提示
}

// Challenge 一道题目：描述 + 判题规则。目录装载后不可变，
// 会话内的乱序只作用于引用顺序，不改动题目本身。
type Challenge struct {
	ID      string   `toml:"id" json:"id"`
	Title   string   `toml:"title" json:"title"`
	Brief   string   `toml:"brief" json:"brief"`
	Hint    string   `toml:"hint" json:"hint,omitempty"`
	Points  float64  `toml:"points" json:"points"`
	Options []string `toml:"options" json:"options,omitempty"` // 选择题展示用选项
	Rules   []Rule   `toml:"rules" json:"rules"`               // 多条规则为逻辑与
}
