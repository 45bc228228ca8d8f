package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"
	"golang.org/x/term"
)

// mnemonicFromArgs joins the positional words. No words or a single "-"
// reads the mnemonic from r instead.
func mnemonicFromArgs(args []string, r io.Reader) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return "", fmt.Errorf("read mnemonic: %w", err)
	}
	m := strings.TrimSpace(string(data))
	if m == "" {
		return "", fmt.Errorf("no mnemonic given")
	}
	return m, nil
}

// numberedWords lays out words four per line with their positions.
func numberedWords(words []string) string {
	var b strings.Builder
	for i, w := range words {
		fmt.Fprintf(&b, "%3d. %-12s", i+1, w)
		if (i+1)%4 == 0 || i == len(words)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// describeCodecError names the failure kind of a codec error.
func describeCodecError(err error) string {
	if kind := bip39.Kind(err); kind != "" {
		return fmt.Sprintf("%v (%s)", err, kind)
	}
	return err.Error()
}

// ── Password helper ─────────────────────────────────────────────────────

var stdinLines = bufio.NewReader(os.Stdin)

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	if !term.IsTerminal(int(syscall.Stdin)) {
		// Piped input: one secret per line.
		line, err := stdinLines.ReadString('\n')
		if err != nil && line == "" {
			return nil, err
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

// readNewPassword prompts twice and requires both entries to match.
func readNewPassword() []byte {
	password, err := readPassword("Enter password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	if len(password) == 0 {
		fatal("password must not be empty")
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	if string(password) != string(confirm) {
		fatal("passwords do not match")
	}
	return password
}

// readPassphrase prompts for the optional BIP-39 passphrase when asked to.
func readPassphrase(prompt bool) string {
	if !prompt {
		return ""
	}
	p, err := readPassword("BIP-39 passphrase: ")
	if err != nil {
		fatal("read passphrase: %v", err)
	}
	return string(p)
}
