package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadPlan(t *testing.T) {
	items, err := readPlan(writeFile(t, `[{"dayOffset":0,"type":"distance","targetDist":5,"targetPace":"6:00","note":"easy"}]`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "easy", items[0].Note)

	items, err = readPlan(writeFile(t, `{"items":[{"dayOffset":2,"type":"interval","targetDist":0,"targetPace":"4:30","intervalDetails":{"sets":5,"workDist":400,"restTime":90}}]}`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].IntervalDetails)
	assert.Equal(t, 5, items[0].IntervalDetails.Sets)

	_, err = readPlan(writeFile(t, `not json`))
	assert.Error(t, err)

	_, err = readPlan(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRootCommandsRegistered(t *testing.T) {
	for _, c := range []interface{ Name() string }{MigrateCmd(), PlanCmd(), BackupCmd(), ExportCmd(), DevCmd()} {
		assert.NotEmpty(t, c.Name())
	}

	sub, _, err := MigrateCmd().Find([]string{"status"})
	require.NoError(t, err)
	assert.Equal(t, "status", sub.Name())
}
