// file: services/quantity.go
package services

import (
	"ChaosLab/models"
	"errors"
	"strconv"
	"strings"
)

// ErrBadQuantity 数量字符串无法解析。判题引擎把它吸收为"不匹配"，不会外抛。
var ErrBadQuantity = errors.New("unparseable quantity")

// 内存后缀倍率：Ki/Mi/Gi/Ti 二进制（1024^n），K/M/G/T 十进制（1000^n）。
// 大小写容忍：选手手敲 "128mi" 也按 128Mi 处理。
var memoryMultipliers = map[string]float64{
	"KI": 1 << 10, "MI": 1 << 20, "GI": 1 << 30, "TI": 1 << 40,
	"K": 1e3, "M": 1e6, "G": 1e9, "T": 1e12,
}

// ParseQuantity 将带单位后缀的数量字符串归一化为可比较的数值。
// memory -> 字节；cpu -> 毫核（裸数字为整核，"500m" 为 500 毫核）；plain -> 原值。
// 未知后缀或非数字前缀返回 ErrBadQuantity。
func ParseQuantity(s string, unit models.UnitFamily) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrBadQuantity
	}

	switch unit {
	case models.UnitMemory:
		return parseMemory(s)
	case models.UnitCPU:
		return parseCPU(s)
	case models.UnitPlain, "":
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, ErrBadQuantity
		}
		return v, nil
	default:
		return 0, ErrBadQuantity
	}
}

func parseMemory(s string) (float64, error) {
	num, suffix := splitSuffix(s)
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, ErrBadQuantity
	}
	if suffix == "" {
		return v, nil // 无后缀按裸字节
	}
	mult, ok := memoryMultipliers[strings.ToUpper(suffix)]
	if !ok {
		return 0, ErrBadQuantity
	}
	return v * mult, nil
}

func parseCPU(s string) (float64, error) {
	num, suffix := splitSuffix(s)
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, ErrBadQuantity
	}
	switch suffix {
	case "":
		return v * 1000, nil // 整核 -> 毫核
	case "m", "M":
		return v, nil
	default:
		return 0, ErrBadQuantity
	}
}

// splitSuffix 把字符串拆为数字前缀和字母后缀
func splitSuffix(s string) (num, suffix string) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		i--
	}
	return s[:i], s[i:]
}
