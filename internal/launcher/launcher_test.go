package launcher

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"go-desk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "rustdesk")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))
	second := filepath.Join(dir, "rustdesk2")
	require.NoError(t, os.WriteFile(second, []byte("#!/bin/sh\n"), 0o755))

	got, ok := Resolve([]string{filepath.Join(dir, "missing"), "", dir, exe, second})
	assert.True(t, ok)
	assert.Equal(t, exe, got)
}

func TestResolveNone(t *testing.T) {
	dir := t.TempDir()

	got, ok := Resolve([]string{dir, filepath.Join(dir, "missing")})
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestLocateExplicitPath(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "rustdesk")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))

	got, ok := Locate(exe, nil)
	assert.True(t, ok)
	assert.Equal(t, exe, got)

	// A bad explicit path is not rescued by the extra candidates.
	got, ok = Locate(filepath.Join(dir, "missing"), []string{exe})
	assert.False(t, ok)
	assert.Empty(t, got)

	got, ok = Locate(dir, nil)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestLocateTriesExtraCandidatesFirst(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "rustdesk")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755))

	got, ok := Locate("", []string{filepath.Join(dir, "missing"), exe})
	assert.True(t, ok)
	assert.Equal(t, exe, got)
}

func TestDefaultCandidatesOrder(t *testing.T) {
	t.Setenv("LOCALAPPDATA", `C:\Users\ana\AppData\Local`)

	c := DefaultCandidates()
	require.GreaterOrEqual(t, len(c), 4)
	assert.Equal(t, `C:\Program Files\RustDesk\rustdesk.exe`, c[0])
	assert.Equal(t, `C:\Program Files (x86)\RustDesk\rustdesk.exe`, c[1])
	assert.Contains(t, c[2], "RustDesk")
	assert.Contains(t, c, "/usr/bin/rustdesk")
}

func TestArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"--connect", "123456789"},
		Args(models.Client{ConnectionID: " 123456789 "}))
	assert.Equal(t,
		[]string{"--connect", "123456789"},
		Args(models.Client{ConnectionID: "123456789", Password: strPtr("")}))
	assert.Equal(t,
		[]string{"--connect", "123456789", "--password", "pw"},
		Args(models.Client{ConnectionID: "123456789", Password: strPtr(" pw ")}))
}

func TestLaunchStartsExecutable(t *testing.T) {
	logger, buf := bufferLogger()
	var gotName string
	var gotArgs []string
	l := New("/opt/rustdesk", logger, WithStarter(func(name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}))

	l.Launch(models.Client{ID: 3, ConnectionID: "987", Password: strPtr("pw")})

	assert.Equal(t, "/opt/rustdesk", gotName)
	assert.Equal(t, []string{"--connect", "987", "--password", "pw"}, gotArgs)
	assert.Contains(t, buf.String(), "rustdesk opened")
}

func TestLaunchWithoutExecutableOnlyLogs(t *testing.T) {
	logger, buf := bufferLogger()
	called := false
	l := New("", logger, WithStarter(func(string, ...string) error {
		called = true
		return nil
	}))

	assert.NotPanics(t, func() { l.Launch(models.Client{ID: 1, ConnectionID: "1"}) })
	assert.False(t, called)
	assert.Contains(t, buf.String(), ErrExecutableNotFound.Error())
}

func TestLaunchStartFailureOnlyLogs(t *testing.T) {
	logger, buf := bufferLogger()
	l := New("/opt/rustdesk", logger, WithStarter(func(string, ...string) error {
		return errors.New("permission denied")
	}))

	l.Launch(models.Client{ID: 1, ConnectionID: "1"})
	assert.Contains(t, buf.String(), "permission denied")
}
