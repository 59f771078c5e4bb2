package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/minios-linux/resxkit/i18n"
	"github.com/minios-linux/resxkit/settings"
)

// output is one GitHub Actions step output.
type output struct {
	name, value string
}

// appendOutputs appends outputs to the step output file at path. Every value
// uses the multi-line "name<<delimiter" form with a random delimiter.
func appendOutputs(path string, outs []output) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening step output file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, o := range outs {
		if err := writeOutput(w, o); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing step outputs: %w", err)
	}
	return f.Close()
}

func writeOutput(w io.Writer, o output) error {
	delim := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(o.name, delim) || strings.Contains(o.value, delim) {
		return fmt.Errorf("step output %s contains its delimiter", o.name)
	}
	_, err := fmt.Fprintf(w, "%s<<%s\n%s\n%s\n", o.name, delim, o.value, delim)
	return err
}

// promptKey asks for a subscription key on in. Input from a terminal is
// not echoed. An empty answer keeps the existing key and returns "".
func promptKey(in *os.File, out io.Writer, existing *settings.Info) (string, error) {
	if existing != nil && existing.Key != "" {
		fmt.Fprintf(out, i18n.T("Current key: %s")+"\n", settings.MaskKey(existing.Key))
		fmt.Fprint(out, i18n.T("Enter new key to replace, or press Enter to keep: "))
	} else {
		fmt.Fprint(out, i18n.T("Enter subscription key: "))
	}

	var key string
	if term.IsTerminal(int(in.Fd())) {
		b, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("reading key: %w", err)
		}
		key = string(b)
	} else {
		line, err := readLine(in)
		if err != nil {
			return "", err
		}
		key = line
	}

	key = strings.TrimSpace(key)
	if key == "" && (existing == nil || existing.Key == "") {
		return "", errors.New(i18n.T("no subscription key provided"))
	}
	return key, nil
}

func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading key: %w", err)
		}
		return "", nil
	}
	return scanner.Text(), nil
}
