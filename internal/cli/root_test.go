package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blacklistservice "simpleq/contexts/moderation-safety/blacklist-service"
	blacklisterrors "simpleq/contexts/moderation-safety/blacklist-service/domain/errors"
)

type fakeSchema struct {
	version  int64
	migrated bool
	closed   bool
}

func newTestOpener(schema *fakeSchema, seed ...string) Opener {
	module := blacklistservice.NewInMemoryModule(slog.Default(), seed...)
	return func(context.Context) (*Env, error) {
		return &Env{
			Blacklist: module.Service,
			Migrate: func() error {
				schema.migrated = true
				schema.version = 3
				return nil
			},
			MigrationVersion: func() (int64, error) { return schema.version, nil },
			Close: func() error {
				schema.closed = true
				return nil
			},
		}, nil
	}
}

func run(t *testing.T, open Opener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(open)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateUp(t *testing.T) {
	schema := &fakeSchema{}
	out, err := run(t, newTestOpener(schema), "migrate", "up")
	require.NoError(t, err)
	assert.True(t, schema.migrated)
	assert.True(t, schema.closed)
	assert.Contains(t, out, "schema at version 3")
}

func TestMigrateStatus(t *testing.T) {
	out, err := run(t, newTestOpener(&fakeSchema{version: 2}), "migrate", "status")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "schema at version 2"))
}

func TestBlacklistAddAndList(t *testing.T) {
	open := newTestOpener(&fakeSchema{}, "spam")

	out, err := run(t, open, "blacklist", "add", "Scam", "phishing")
	require.NoError(t, err)
	assert.Contains(t, out, "added scam")

	out, err = run(t, open, "blacklist", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "phishing\t"))
	assert.True(t, strings.HasPrefix(lines[2], "spam\t"))

	_, err = run(t, open, "blacklist", "add", "spam")
	assert.True(t, errors.Is(err, blacklisterrors.ErrAlreadyExists))
}

func TestBlacklistAddRequiresName(t *testing.T) {
	_, err := run(t, newTestOpener(&fakeSchema{}), "blacklist", "add")
	assert.Error(t, err)
}
