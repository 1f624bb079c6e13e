package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteDoc = `
menus:
  - id: 2
    name: Main
    items:
      - {id: 1, object_id: 11, object_type: content, url: "https://example.com/a", title: A}
      - {id: 2, parent: 1, object_id: 12, object_type: content, url: "https://example.com/a/b", title: B}
content:
  - {id: 11, url: "https://example.com/a"}
  - {id: 12, parent: 11, url: "https://example.com/a/b"}
`

func writeSite(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(siteDoc), 0o600))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, err := run(t, "render", "--file", writeSite(t), "--menu", "2", "https://example.com/a/b")
	require.NoError(t, err)
	assert.Contains(t, out, `class="wp-block-current-menu"`)
	assert.Contains(t, out, ">B</a>")

	out, err = run(t, "render", "--file", writeSite(t), "--edit", "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "No menu selected.\n", out)

	_, err = run(t, "render", "--file", writeSite(t), "--menu", "x", "https://example.com/a")
	assert.Error(t, err)
}

func TestRenderCommandRequiresStore(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "render", "https://example.com/a")
	assert.Error(t, err)
}

func TestImportThenRender(t *testing.T) {
	mr := miniredis.RunT(t)
	url := "redis://" + mr.Addr()

	_, err := run(t, "import", "--redis-url", url, writeSite(t))
	require.NoError(t, err)
	assert.True(t, mr.Exists("currentmenu:menus"))

	out, err := run(t, "render", "--redis-url", url, "--menu", "2", "--edit", "https://example.com/nowhere")
	require.NoError(t, err)
	assert.Equal(t, "No \"Main\" menu entry for this path.\n", out)
}

func TestImportRequiresRedis(t *testing.T) {
	_, err := run(t, "import", "--file", writeSite(t), writeSite(t))
	assert.Error(t, err)
}
