package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

var errAborted = errors.New("entry aborted")

// readlinePrompter answers entry.Fill from an interactive terminal.
type readlinePrompter struct {
	rl *readline.Instance
}

func newReadlinePrompter() (*readlinePrompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt: %v", err)
	}
	return &readlinePrompter{rl: rl}, nil
}

func (p *readlinePrompter) Ask(label string) (string, error) {
	p.rl.SetPrompt(label)
	line, err := p.rl.Readline()
	if err != nil {
		return "", promptErr(err)
	}
	return strings.TrimSpace(line), nil
}

func (p *readlinePrompter) AskSecret(label string) (string, error) {
	b, err := p.rl.ReadPassword(label)
	if err != nil {
		return "", promptErr(err)
	}
	return string(b), nil
}

func (p *readlinePrompter) Confirm(question string) (bool, error) {
	for {
		ans, err := p.Ask(question + " [y/N]: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(ans) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
	}
}

func (p *readlinePrompter) Close() error {
	return p.rl.Close()
}

func promptErr(err error) error {
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return errAborted
	}
	return err
}
