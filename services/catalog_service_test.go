// file: services/catalog_service_test.go
package services

import (
	"ChaosLab/models"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validCatalog = `
mode = "free"

[flags]
hints = true

[[teams]]
id = "alpha"
name = "Team Alpha"

[[challenges]]
id = "c1"
title = "第一题"
brief = "修好它"

  [[challenges.rules]]
  kind = "path_equals"
  path = "spec.selector.app"
  value = "web"

[[challenges]]
id = "c2"
title = "第二题"
points = 20

  [[challenges.rules]]
  kind = "numeric_at_least"
  path = "resources.limits.memory"
  min = "128Mi"
  unit = "memory"
`

func TestLoadCatalogValid(t *testing.T) {
	cat, err := LoadCatalog(writeCatalog(t, validCatalog))
	require.NoError(t, err)

	assert.Equal(t, models.ModeFree, cat.Mode)
	assert.True(t, cat.Flags.HintsEnabled)
	require.Len(t, cat.Challenges, 2)
	assert.Equal(t, 1.0, cat.Challenges[0].Points, "未写分值默认 1 分")
	assert.Equal(t, 20.0, cat.Challenges[1].Points)
	assert.Equal(t, models.RulePathEquals, cat.Challenges[0].Rules[0].Kind)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadCatalogRejectsBadRegex(t *testing.T) {
	bad := `
[[teams]]
id = "alpha"
name = "Alpha"

[[challenges]]
id = "c1"
title = "坏正则"

  [[challenges.rules]]
  kind = "regex"
  pattern = "([unclosed"
`
	_, err := LoadCatalog(writeCatalog(t, bad))
	assert.Error(t, err, "非法正则必须在装载期失败")
}

func TestLoadCatalogRejectsUnknownKind(t *testing.T) {
	bad := `
[[teams]]
id = "alpha"
name = "Alpha"

[[challenges]]
id = "c1"
title = "未知规则"

  [[challenges.rules]]
  kind = "telepathy"
`
	_, err := LoadCatalog(writeCatalog(t, bad))
	assert.Error(t, err)
}

func TestLoadCatalogRejectsDuplicateIDs(t *testing.T) {
	bad := `
[[teams]]
id = "alpha"
name = "Alpha"

[[challenges]]
id = "c1"
title = "一"

  [[challenges.rules]]
  kind = "non_empty"
  path = "a"

[[challenges]]
id = "c1"
title = "二"

  [[challenges.rules]]
  kind = "non_empty"
  path = "a"
`
	_, err := LoadCatalog(writeCatalog(t, bad))
	assert.Error(t, err)
}

func TestLoadCatalogRejectsBadMin(t *testing.T) {
	bad := `
[[teams]]
id = "alpha"
name = "Alpha"

[[challenges]]
id = "c1"
title = "下限写错"

  [[challenges.rules]]
  kind = "numeric_at_least"
  path = "a"
  min = "lots"
  unit = "memory"
`
	_, err := LoadCatalog(writeCatalog(t, bad))
	assert.Error(t, err)
}

func TestLoadCatalogShippedFile(t *testing.T) {
	// 仓库自带的示例目录必须永远可装载
	cat, err := LoadCatalog("../game.toml")
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Challenges)
	assert.NotEmpty(t, cat.Teams)
}
