package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func testApp(action cli.ActionFunc) *cli.App {
	return &cli.App{
		Name: "converto",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "lessons",
				Action: action,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "course",
						Required: true,
					},
				},
			},
		},
	}
}

func TestSetupLoggerAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		app := testApp(func(c *cli.Context) error { return nil })
		err := app.Run([]string{"converto", "-l", level, "lessons", "--course", "CRO"})
		assert.NoError(t, err, "level %q", level)
	}
}

func TestSetupLoggerRejectsUnknownLevel(t *testing.T) {
	app := testApp(func(c *cli.Context) error { return nil })
	err := app.Run([]string{"converto", "-l", "verbose", "lessons", "--course", "CRO"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestLessonsRequiresCourseFlag(t *testing.T) {
	ran := false
	app := testApp(func(c *cli.Context) error {
		ran = true
		return nil
	})

	err := app.Run([]string{"converto", "lessons"})
	require.Error(t, err)
	assert.False(t, ran, "action must not run without the required flag")
}
