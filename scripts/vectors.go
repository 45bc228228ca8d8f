// vectors.go prints a BIP-39/BIP-32 vector line for hex entropy, in the
// layout of the reference vectors file: entropy, mnemonic, seed, xprv.
// Usage: go run scripts/vectors.go <entropy-hex> [passphrase]
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/Klingon-tech/klingnet-mnemonic/internal/wallet"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: vectors <entropy-hex> [passphrase]")
		os.Exit(1)
	}
	entropy, err := hex.DecodeString(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	passphrase := ""
	if len(os.Args) > 2 {
		passphrase = os.Args[2]
	}

	ms, err := bip39.MasterSeedFromEntropy(bip39.Default(), entropy, passphrase)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	master, err := wallet.NewMasterKey(ms.Seed())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("[\n  %q,\n  %q,\n  %q,\n  %q\n]\n",
		hex.EncodeToString(entropy), ms.Mnemonic(), hex.EncodeToString(ms.Seed()), master.String())
}
