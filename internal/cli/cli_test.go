package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/ttrpg/internal/cli"
	"github.com/cory-johannsen/ttrpg/internal/game/dice"
	"github.com/cory-johannsen/ttrpg/internal/open5e"
	"github.com/cory-johannsen/ttrpg/internal/testutil"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, args []string, opts ...cli.Option) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := cli.Run(context.Background(), args, &stdout, &stderr, opts...)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRoll_Plain(t *testing.T) {
	src := testutil.NewSequenceSource(t, 1, 12, 20)
	res := run(t, []string{"roll", "--roll", "3d20"}, cli.WithSource(src))
	require.Equal(t, cli.ExitOK, res.code, res.stderr)
	assert.Equal(t, "Roll Result: 1, 12, 20\n", res.stdout)
}

func TestRoll_PositionalExpression(t *testing.T) {
	src := testutil.NewSequenceSource(t, 4)
	res := run(t, []string{"roll", "d6"}, cli.WithSource(src))
	require.Equal(t, cli.ExitOK, res.code, res.stderr)
	assert.Equal(t, "Roll Result: 4\n", res.stdout)
}

func TestRoll_BareSides(t *testing.T) {
	src := testutil.NewSequenceSource(t, 9)
	res := run(t, []string{"roll", "-r", "20"}, cli.WithSource(src))
	require.Equal(t, cli.ExitOK, res.code, res.stderr)
	assert.Equal(t, "Roll Result: 9\n", res.stdout)
}

func TestRoll_Advantage(t *testing.T) {
	src := testutil.NewSequenceSource(t, 4, 15)
	res := run(t, []string{"roll", "-r", "d20", "-a"}, cli.WithSource(src))
	require.Equal(t, cli.ExitOK, res.code, res.stderr)
	assert.Equal(t, "Roll Result: (~~4~~ 15)\n", res.stdout)
}

func TestRoll_Disadvantage(t *testing.T) {
	src := testutil.NewSequenceSource(t, 4, 15, 8, 8)
	res := run(t, []string{"roll", "-r", "2d20", "--disadvantage"}, cli.WithSource(src))
	require.Equal(t, cli.ExitOK, res.code, res.stderr)
	assert.Equal(t, "Roll Result: (4 ~~15~~), (8 ~~8~~)\n", res.stdout)
}

func TestRoll_ColorAlways(t *testing.T) {
	src := testutil.NewSequenceSource(t, 1, 6)
	res := run(t, []string{"roll", "-r", "2d6", "--color", "always"}, cli.WithSource(src))
	require.Equal(t, cli.ExitOK, res.code, res.stderr)
	assert.Equal(t, "Roll Result: \033[31m1\033[0m, \033[32m6\033[0m\n", res.stdout)
}

func TestRoll_ColorFromEnv(t *testing.T) {
	t.Setenv("TTRPG_OUTPUT_COLOR", "always")
	src := testutil.NewSequenceSource(t, 3, 2)
	res := run(t, []string{"roll", "-r", "d6", "-a"}, cli.WithSource(src))
	require.Equal(t, cli.ExitOK, res.code, res.stderr)
	assert.Equal(t, "Roll Result: (3 \033[9m2\033[0m)\n", res.stdout)
}

func TestRoll_SeedIsReproducible(t *testing.T) {
	first := run(t, []string{"roll", "-r", "10d20", "--seed", "7"})
	second := run(t, []string{"roll", "-r", "10d20", "--seed", "7"})
	require.Equal(t, cli.ExitOK, first.code, first.stderr)
	assert.Equal(t, first.stdout, second.stdout)
}

func TestRoll_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"invalid sides", []string{"roll", "-r", "1"}, cli.ExitFailure, "invalid sides"},
		{"invalid sides with advantage", []string{"roll", "-r", "d1", "-a", "-d"}, cli.ExitFailure, "invalid sides"},
		{"invalid count", []string{"roll", "-r", "0d6"}, cli.ExitFailure, "invalid count"},
		{"invalid format", []string{"roll", "-r", "2d"}, cli.ExitFailure, "invalid dice format"},
		{"missing expression", []string{"roll"}, cli.ExitUsage, "roll expression is required"},
		{"both forms", []string{"roll", "-r", "d6", "d8"}, cli.ExitUsage, "not both"},
		{"too many args", []string{"roll", "d6", "d8"}, cli.ExitUsage, "usage"},
		{"unknown flag", []string{"roll", "--bogus"}, cli.ExitUsage, "unknown flag"},
		{"bad color", []string{"roll", "d6", "--color", "sometimes"}, cli.ExitFailure, "output.color"},
		{"unknown command", []string{"bogus"}, cli.ExitUsage, `unknown command "bogus"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := testutil.NewSequenceSource(t)
			res := run(t, tc.args, cli.WithSource(src))
			assert.Equal(t, tc.code, res.code)
			assert.Empty(t, res.stdout)
			assert.Contains(t, res.stderr, "Error: ")
			assert.Contains(t, res.stderr, tc.msg)
			assert.Zero(t, src.Calls())
		})
	}
}

func TestRoll_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ttrpg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  color: always\n"), 0644))

	src := testutil.NewSequenceSource(t, 6)
	res := run(t, []string{"--config", path, "roll", "d6"}, cli.WithSource(src))
	require.Equal(t, cli.ExitOK, res.code, res.stderr)
	assert.Equal(t, "Roll Result: \033[32m6\033[0m\n", res.stdout)
}

func TestRoll_FlagOverridesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ttrpg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  color: always\n"), 0644))

	src := testutil.NewSequenceSource(t, 6)
	res := run(t, []string{"--config", path, "--color", "never", "roll", "d6"}, cli.WithSource(src))
	require.Equal(t, cli.ExitOK, res.code, res.stderr)
	assert.Equal(t, "Roll Result: 6\n", res.stdout)
}

func lookupServer(t *testing.T) *testutil.Open5eServer {
	t.Helper()
	srv := testutil.NewOpen5eServer(t)
	srv.Add("classes", "wizard", open5e.Class{Slug: "wizard", Name: "Wizard"})
	srv.Add("spells", "magic-missile", open5e.Spell{
		Slug:     "magic-missile",
		Name:     "Magic Missile",
		Desc:     "You create three glowing darts of magical force.",
		Level:    "1st-level",
		School:   "Evocation",
		DndClass: "Sorcerer, Wizard",
	})
	t.Setenv("TTRPG_OPEN5E_BASE_URL", srv.URL)
	return srv
}

func TestClass_Text(t *testing.T) {
	srv := lookupServer(t)
	res := run(t, []string{"class", "Wizard"})
	require.Equal(t, cli.ExitOK, res.code, res.stderr)
	assert.Equal(t, "Class: Wizard (wizard)\n", res.stdout)
	assert.Len(t, srv.Requests(), 1)
}

func TestSpell_Text(t *testing.T) {
	lookupServer(t)
	res := run(t, []string{"spell", "magic", "missile"})
	require.Equal(t, cli.ExitOK, res.code, res.stderr)
	assert.Equal(t, "Spell: Magic Missile (magic-missile)\n"+
		"Level: 1st-level\n"+
		"School: Evocation\n"+
		"Classes: Sorcerer, Wizard\n"+
		"\nYou create three glowing darts of magical force.\n", res.stdout)
}

func TestSpell_JSON(t *testing.T) {
	lookupServer(t)
	res := run(t, []string{"spell", "Magic Missile", "--format", "json"})
	require.Equal(t, cli.ExitOK, res.code, res.stderr)

	var got open5e.Spell
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, "Evocation", got.School)
	assert.Equal(t, "Sorcerer, Wizard", got.DndClass)
}

func TestClass_YAML(t *testing.T) {
	lookupServer(t)
	res := run(t, []string{"class", "wizard", "--format", "yaml"})
	require.Equal(t, cli.ExitOK, res.code, res.stderr)

	var got map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &got))
	assert.Equal(t, map[string]string{"slug": "wizard", "name": "Wizard"}, got)
}

func TestLookup_NotFound(t *testing.T) {
	lookupServer(t)
	res := run(t, []string{"spell", "wish"})
	assert.Equal(t, cli.ExitFailure, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, `Error: spell "wish": not found`)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestLookup_TransportFailure(t *testing.T) {
	hc := &http.Client{Transport: failingTransport{}}
	res := run(t, []string{"class", "wizard"}, cli.WithHTTPClient(hc))
	assert.Equal(t, cli.ExitFailure, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Error: open5e request failed")
	assert.Contains(t, res.stderr, "connection refused")
}

func TestLookup_RequiresName(t *testing.T) {
	res := run(t, []string{"class"})
	assert.Equal(t, cli.ExitUsage, res.code)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, cli.ExitOK, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(dice.ErrInvalidSides))
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(open5e.ErrNotFound))
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(errors.Join(cli.ErrUsage, errors.New("x"))))
}
