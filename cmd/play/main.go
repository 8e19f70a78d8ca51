// Command play is a line-oriented terminal client for a running maze server.
//
// Each input line is a list of keys. Single characters and bound names such
// as "up" or "ArrowLeft" are sent as they are; longer words are split into
// characters, so "ddds" presses d three times and then s. The commands
// ":reset", ":new" and ":quit" control the session.
//
// The session ID is remembered in .session so the next run resumes it.
package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/prims-maze/game/engine"
	"github.com/wricardo/prims-maze/game/input"
)

func main() {
	cmd := &cli.Command{
		Name:  "play",
		Usage: "Play a maze session from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Maze server URL"},
			&cli.StringFlag{Name: "config", Usage: "Preset for new sessions"},
			&cli.StringFlag{Name: "continue", Usage: "Resume an existing session by ID"},
			&cli.StringFlag{Name: "session-file", Value: ".session", Usage: "Where the session ID is remembered"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client := NewClient(cmd.String("url"))
			g := &game{
				client:      client,
				keys:        input.DefaultKeymap(),
				configID:    cmd.String("config"),
				sessionFile: cmd.String("session-file"),
				out:         cmd.Root().Writer,
			}
			if err := g.start(ctx, cmd.String("continue")); err != nil {
				return err
			}
			return g.loop(ctx, os.Stdin)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "play: %v\n", err)
		os.Exit(1)
	}
}

type game struct {
	client      *Client
	keys        *input.Keymap
	configID    string
	sessionFile string
	out         io.Writer
}

// start resumes the requested or remembered session, or creates a new one.
func (g *game) start(ctx context.Context, sessionID string) error {
	if sessionID == "" && g.sessionFile != "" {
		if data, err := os.ReadFile(g.sessionFile); err == nil {
			sessionID = string(bytes.TrimSpace(data))
		}
	}

	if sessionID != "" {
		if session, err := g.client.Resume(ctx, sessionID); err == nil {
			fmt.Fprintf(g.out, "Resumed session %s (%s)\n", session.ID, session.ConfigName)
			return g.show(ctx)
		}
		fmt.Fprintf(g.out, "Session %s is gone, starting a new one\n", sessionID)
	}
	return g.newSession(ctx)
}

func (g *game) newSession(ctx context.Context) error {
	session, err := g.client.CreateSession(ctx, g.configID)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out, "Session %s (%s, seed %d)\n", session.ID, session.ConfigName, session.Seed)
	if session.Message != "" {
		fmt.Fprintln(g.out, session.Message)
	}
	if g.sessionFile != "" {
		if err := os.WriteFile(g.sessionFile, []byte(session.ID), 0644); err != nil {
			fmt.Fprintf(g.out, "Warning: failed to save session ID: %v\n", err)
		}
	}
	return g.show(ctx)
}

func (g *game) show(ctx context.Context) error {
	board, err := g.client.Board(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(g.out, board)
	return nil
}

// loop reads commands until EOF or :quit.
func (g *game) loop(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q":
			return nil
		case ":reset":
			if _, err := g.client.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(g.out, "Back to the start.")
			if err := g.show(ctx); err != nil {
				return err
			}
			continue
		case ":new":
			if err := g.newSession(ctx); err != nil {
				return err
			}
			continue
		}

		if err := g.press(ctx, g.tokens(line)); err != nil {
			return err
		}
		if err := g.show(ctx); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// tokens splits a line into keys the server understands.
func (g *game) tokens(line string) []string {
	var keys []string
	for _, word := range strings.Fields(line) {
		if _, ok := g.keys.Resolve(word); ok || len(word) == 1 {
			keys = append(keys, word)
			continue
		}
		for _, r := range word {
			keys = append(keys, string(r))
		}
	}
	return keys
}

// press sends keys in order and stops once the exit is reached.
func (g *game) press(ctx context.Context, keys []string) error {
	for _, key := range keys {
		result, err := g.client.Press(ctx, key)
		if err != nil {
			// Unknown keys are reported and skipped.
			fmt.Fprintf(g.out, "%s: %v\n", key, err)
			continue
		}
		if !result.Success {
			fmt.Fprintf(g.out, "%s: %s\n", key, result.Message)
		}
		if result.Outcome.State == engine.Finished {
			if result.Success {
				fmt.Fprintln(g.out, result.Message)
			}
			return nil
		}
	}
	return nil
}
