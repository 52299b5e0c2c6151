package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "verbose"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "verbose")
	})
}

func TestAIFlags(t *testing.T) {
	flags := aiFlags()

	find := func(name string) *cli.StringFlag {
		for _, flag := range flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
				return f
			}
		}
		return nil
	}

	t.Run("db is required", func(t *testing.T) {
		dbFlag := find("db")
		require.NotNil(t, dbFlag)
		assert.True(t, dbFlag.Required)
	})

	t.Run("hosts have local defaults", func(t *testing.T) {
		for _, name := range []string{"embedding-host", "chat-host"} {
			hostFlag := find(name)
			require.NotNil(t, hostFlag)
			assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
		}
	})

	t.Run("token reads from the environment", func(t *testing.T) {
		tokenFlag := find("token")
		require.NotNil(t, tokenFlag)
		assert.Contains(t, tokenFlag.EnvVars, "SCOUT_API_TOKEN")
	})
}

func TestQueryCommandRequiresQueryText(t *testing.T) {
	app := &cli.App{
		Name: "scout",
		Commands: []*cli.Command{
			{
				Name:   "query",
				Action: queryCommand,
				Flags:  aiFlags(),
			},
		},
	}

	err := app.Run([]string{"scout", "query", "--db", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query text is required")
}
