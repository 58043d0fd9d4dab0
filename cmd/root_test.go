package cmd

import (
	"bytes"
	"testing"

	"github.com/evsiren/evset/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "evset", cmd.Use,
		"Command name should be evset")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		cmd := getRootCmd()
		cmd.Version = "version: v1.2.3\nbuild:   abc123"

		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{flag})

		err := cmd.Execute()
		require.NoError(t, err)

		output := buf.String()
		assert.Contains(t, output, "v1.2.3", flag)
		assert.Contains(t, output, "abc123", flag)
	}
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "evset")
	assert.Contains(t, helpText, "AudioSet")
	assert.Contains(t, helpText, "EVSET_")
}

// TestGetRootCmd_Subcommands verifies every subcommand is attached
// and documented.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()
	names := []string{
		"curate", "select", "exclude", "range", "merge", "rebalance",
		"stats", "lookup", "download", "esc50", "fsd50k",
	}

	for _, name := range names {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
		assert.NotEmpty(t, sub.Short, name)
		assert.NotEmpty(t, sub.Long, name)
		assert.Contains(t, sub.Long, "evset "+name, name)
		assert.NotNil(t, sub.RunE, name)
	}
}

// TestGetRootCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each call should return new instance")

	cmd1.Short = "test1"
	cmd2.Short = "test2"
	assert.Equal(t, "test1", cmd1.Short)
	assert.Equal(t, "test2", cmd2.Short)
}

func TestRootFlags(t *testing.T) {
	root := getRootCmd()
	sub, _, err := root.Find([]string{"stats"})
	require.NoError(t, err)
	require.NoError(t, sub.ParseFlags([]string{
		"-l", "labels.csv", "-o", "/tmp/ev", "-j", "3", "--log-level", "debug",
	}))

	c := config.New()
	c.Update(rootFlags(sub))
	assert.Equal(t, "labels.csv", c.LabelsFile)
	assert.Equal(t, "/tmp/ev", c.OutputDir)
	assert.Equal(t, 3, c.JobsNumber)
	assert.Equal(t, "debug", c.Log.Level)

	// flags that are not set keep configured values
	sub, _, err = getRootCmd().Find([]string{"stats"})
	require.NoError(t, err)
	require.NoError(t, sub.ParseFlags(nil))
	assert.Empty(t, rootFlags(sub))
}

func TestRebalanceFlags(t *testing.T) {
	cmd := getRebalanceCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--seed", "-3", "--strict"}))

	c := config.New()
	c.Update(rebalanceFlags(cmd))
	assert.Equal(t, int64(-3), c.Rebalance.Seed)
	assert.True(t, c.Rebalance.Strict)
}

func TestDownloadFlags(t *testing.T) {
	cmd := getDownloadCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--rate", "16000", "--channels", "mono_red", "--normalize",
		"--cookies", "cookies.txt", "--journal",
	}))

	c := config.New()
	c.Update(downloadFlags(cmd))
	assert.Equal(t, 16_000, c.Download.SampleRate)
	assert.Equal(t, "mono_reduce", c.Download.Channels)
	assert.True(t, c.Download.Normalize)
	assert.Equal(t, "cookies.txt", c.Download.CookiesFile)
	assert.Equal(t, "journal", c.Download.PersistMode)
}
