package action

import (
	"fmt"
	"io"
	"os"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// RangeOutputName is the output key downstream steps consume.
const RangeOutputName = "commit-range"

// Publish writes a named output for downstream steps. When GITHUB_OUTPUT
// is set the output is appended there; otherwise it is printed to stdout.
// An empty value is valid and published as-is; it signals that no range
// could be determined.
func Publish(name, value string) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		fmt.Printf("%s=%s\n", name, value)
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer f.Close()

	if err := SetOutput(f, name, value); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// SetOutput writes one output in the GITHUB_OUTPUT file format. Values
// containing newlines use a heredoc with a random delimiter so the value
// cannot terminate itself.
func SetOutput(w io.Writer, name, value string) error {
	if name == "" {
		return fmt.Errorf("output name is required")
	}

	if !strings.ContainsAny(value, "\r\n") {
		_, err := fmt.Fprintf(w, "%s=%s\n", name, value)
		return err
	}

	delimiter, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("generate delimiter: %w", err)
	}
	delimiter = "ghadelimiter_" + delimiter

	_, err = fmt.Fprintf(w, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	return err
}
