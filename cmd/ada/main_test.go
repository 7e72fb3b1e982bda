package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaredlewiswechs/AdanAgent/internal/orchestrator"
	"github.com/jaredlewiswechs/AdanAgent/internal/reasoner"
	"github.com/jaredlewiswechs/AdanAgent/internal/resolver"
	"github.com/jaredlewiswechs/AdanAgent/internal/store"
)

type cannedReasoner struct{ reply string }

func (c cannedReasoner) Call(context.Context, []reasoner.Message, bool) (string, error) {
	return c.reply, nil
}

func testApp(t *testing.T) *app {
	t.Helper()
	st, err := store.NewStore(filepath.Join(t.TempDir(), "ada.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	rs := cannedReasoner{reply: `{"correctness": 0.8, "misconception": 0.1, "entity": "Austin", "response": "Austin.", "action": "RESPOND"}`}
	return &app{
		log:      zerolog.Nop(),
		store:    st,
		engine:   orchestrator.NewEngine(rs, orchestrator.WithHistory(st), orchestrator.WithSink(st)),
		resolver: resolver.New(rs),
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, version+"\n", out.String())
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "config", "init"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), path)

	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "config", "init"})
	assert.Error(t, root.Execute(), "second init without --force must refuse")
}

func TestComplexityFlag(t *testing.T) {
	cx, err := complexityFlag("")
	require.NoError(t, err)
	assert.Empty(t, cx)

	cx, err = complexityFlag("technical")
	require.NoError(t, err)
	assert.Equal(t, orchestrator.ComplexityTechnical, cx)

	_, err = complexityFlag("verbose")
	assert.Error(t, err)
}

func TestResolvePersists(t *testing.T) {
	a := testApp(t)
	res := a.resolve(context.Background(), "s1", "capital of Texas")

	assert.Equal(t, "Texas", res.Entity)
	got, err := a.store.GetResult(res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Query, got.Query)
}

func TestRepl(t *testing.T) {
	a := testApp(t)
	in := strings.NewReader("What is the capital of Texas?\n\n/resolve capital of Texas\nquit\nignored\n")
	var out bytes.Buffer

	require.NoError(t, a.repl(context.Background(), in, &out, &rootFlags{session: "s1"}, ""))

	text := out.String()
	assert.Contains(t, text, "Ada ready.")
	assert.Contains(t, text, orchestrator.MethodGovernance)
	assert.Contains(t, text, resolver.MethodPattern)

	sess, err := a.store.GetSession("s1")
	require.NoError(t, err)
	assert.Equal(t, 2, sess.Turns)
}

func TestPrintResultJSON(t *testing.T) {
	a := testApp(t)
	res := a.resolver.Resolve(context.Background(), "capital of Texas")
	var out bytes.Buffer

	require.NoError(t, printResult(&out, res, true))
	assert.Contains(t, out.String(), `"proofLabel": "VERIFIED"`)
	assert.Contains(t, out.String(), `"entity": "Texas"`)
}
