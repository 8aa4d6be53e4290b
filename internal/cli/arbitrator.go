package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// ConsoleArbitrator asks the operator about unknown deposit addresses over
// the terminal. It implements match.Arbitrator.
type ConsoleArbitrator struct {
	reader *NonBlockingReader
	output io.Writer
}

// NewConsoleArbitrator creates an arbitrator reading answers from input and
// writing prompts to output.
func NewConsoleArbitrator(input io.Reader, output io.Writer) *ConsoleArbitrator {
	return &ConsoleArbitrator{
		reader: NewNonBlockingReader(input),
		output: output,
	}
}

// ConfirmAddress asks whether the address belongs to a member. Anything but
// y/yes (case-insensitive) declines.
func (a *ConsoleArbitrator) ConfirmAddress(ctx context.Context, address string) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprintln(a.output, FormatWarning("Unknown deposit address:"))
	fmt.Fprintln(a.output, BoldStyle.Render("  "+address))
	fmt.Fprint(a.output, FormatPrompt("Create a registry entry for this address? [y/N]"))

	answer, err := a.reader.ReadLine(ctx)
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "j", "ja":
		return true, nil
	default:
		return false, nil
	}
}

// NationalID prompts for the national id belonging to the address. An empty
// answer is accepted and means the operator gave up on the entry.
func (a *ConsoleArbitrator) NationalID(ctx context.Context, address, message string) (string, error) {
	fmt.Fprintln(a.output)
	fmt.Fprintln(a.output, SubtleStyle.Render("Address: "+address))
	if message != "" {
		fmt.Fprintln(a.output, SubtleStyle.Render("Message: "+message))
	}
	fmt.Fprint(a.output, FormatPrompt("National id (blank to skip)"))

	answer, err := a.reader.ReadLine(ctx)
	if err != nil {
		return "", fmt.Errorf("reading national id: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
