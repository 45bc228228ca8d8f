// mnemonic-cli converts BIP-39 mnemonics offline and manages wallets held
// by a running mnemonicd.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Klingon-tech/klingnet-mnemonic/config"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/rpcclient"
)

const defaultRPC = "http://127.0.0.1:8555"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	rpcURL := defaultRPC
	timeout := 2 * time.Minute

	// Scan for --rpc and --timeout before the subcommand.
	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--rpc" && len(args) > 1:
			rpcURL = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--rpc="):
			rpcURL = args[0][len("--rpc="):]
			args = args[1:]
		case args[0] == "--timeout" && len(args) > 1:
			timeout = parseTimeout(args[1])
			args = args[2:]
		case strings.HasPrefix(args[0], "--timeout="):
			timeout = parseTimeout(args[0][len("--timeout="):])
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	// Offline.
	case "generate":
		cmdGenerate(cmdArgs)
	case "entropy":
		cmdEntropy(cmdArgs)
	case "from-entropy":
		cmdFromEntropy(cmdArgs)
	case "seed":
		cmdSeed(cmdArgs)
	case "validate":
		cmdValidate(cmdArgs)
	case "languages":
		cmdLanguages()
	case "masterseed":
		cmdMasterSeed(cmdArgs)
	case "derive":
		cmdDerive(cmdArgs)

	// Online.
	case "info":
		cmdInfo(rpcclient.NewWithTimeout(rpcURL, timeout))
	case "wallet":
		cmdWallet(rpcclient.NewWithTimeout(rpcURL, timeout), cmdArgs)

	case "version", "--version", "-v":
		fmt.Printf("mnemonic-cli %s\n", config.Version)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: mnemonic-cli [global flags] <command> [flags] [args]

Global flags:
  --rpc <url>         mnemonicd RPC endpoint (default: %s)
  --timeout <dur>     RPC timeout (default: 2m)

Offline commands (no daemon needed):
  generate [--bits 128] [--lang english]
                                  Generate a new mnemonic
  entropy [--lang l] <words...|->  Decode a mnemonic to hex entropy
  from-entropy [--lang l] <hex>   Encode hex entropy as a mnemonic
  seed [--lang l] [--passphrase-prompt] <words...|->
                                  Derive the 64-byte BIP-39 seed
  validate [--lang l] <words...|->
                                  Check a mnemonic and report why it fails
  languages                       List supported word lists
  masterseed encode [--full] [--passphrase-prompt] <words...|->
  masterseed decode [--full] <hex>
                                  Convert to and from the binary master seed
  derive [--path p] [--passphrase-prompt] <words...|->
                                  Show the key at a BIP-32 path

Daemon commands:
  info                            Show daemon status
  wallet create --name <n> [--bits b] [--lang l] [--passphrase-prompt]
  wallet import --name <n> [--lang l] [--passphrase-prompt]
  wallet list
  wallet delete --name <n>
  wallet derive --name <n> [--path p] [--save] [--label l]
  wallet sign --name <n> [--path p] --message <m>
  wallet verify --pubkey <hex> --message <m> --signature <hex> [--address a]
  wallet export --name <n> [--full]

A "-" in place of the words reads the mnemonic from stdin.
`, defaultRPC)
}

func parseTimeout(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		fatal("invalid --timeout %q", s)
	}
	return d
}

func cmdInfo(client *rpcclient.Client) {
	info, err := client.Info(context.Background())
	if err != nil {
		fatalErr(err)
	}
	fmt.Println("Daemon:")
	fmt.Printf("  Version:   %s\n", info.Version)
	fmt.Printf("  Language:  %s\n", info.DefaultLanguage)
	fmt.Printf("  Bits:      %d\n", info.DefaultBits)
	fmt.Printf("  Wallet:    %v\n", info.WalletEnabled)
	fmt.Printf("  Workers:   %d (in flight %d, completed %d, failed %d)\n",
		info.Pool.Workers, info.Pool.InFlight, info.Pool.Completed, info.Pool.Failed)
}

// ── Output helpers ──────────────────────────────────────────────────────

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal("encode output: %v", err)
	}
	fmt.Println(string(data))
}

// ── Error helpers ───────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// fatalErr reports err, naming the codec error kind when the daemon sent one.
func fatalErr(err error) {
	var rerr *rpcclient.RPCError
	if errors.As(err, &rerr) && rerr.Kind != "" {
		fatal("%s (%s)", rerr.Message, rerr.Kind)
	}
	fatal("%v", err)
}
