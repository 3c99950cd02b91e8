// Package agent implements the interactive AI assistant behind 'fsim assist'.
//
// The assistant is a small team of Gemini chats: a facilitator owns the
// conversation with the user and delegates to experts through function
// calls. Each expert is a chat of its own, optionally equipped with a
// library of functions over the simulation's saved files.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

const prompt = "assist> "

// Agent runs the chat session between the user and the expert team.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert

	// Render displays an assistant response, typically as formatted
	// markdown. Plain text output when nil.
	Render func(markdown string)
}

// New creates an Agent over the given experts. Output goes to 'w' and user
// input is read from 'r'.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start opens the Gemini chats, experts first so the facilitator can reach
// them from its very first turn.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

// Run starts the interactive REPL session. Entries in 'prompts' are played
// before reading from the user, so a question can be passed straight from
// the command line.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to the fsim assistant. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)

		input, rest, err := a.next(prompts)
		prompts = rest
		if err == io.EOF {
			return nil // Clean exit on Ctrl+D
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case "bye":
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		a.show(content.Parts[0].Text)
	}
}

// next yields the next user input, draining the queued prompts before
// reading interactively. Queued prompts are echoed so the transcript reads
// like a typed session.
func (a *Agent) next(prompts []string) (input string, rest []string, err error) {
	if len(prompts) > 0 {
		input, rest = prompts[0], prompts[1:]
		fmt.Fprintln(a.w, input)
		return input, rest, nil
	}
	input, err = a.r.ReadString('\n')
	return input, nil, err
}

func (a *Agent) show(markdown string) {
	if a.Render != nil {
		a.Render(markdown)
		return
	}
	fmt.Fprintln(a.w, markdown)
}
