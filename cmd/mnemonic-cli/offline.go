package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Klingon-tech/klingnet-mnemonic/internal/wallet"
	"github.com/Klingon-tech/klingnet-mnemonic/pkg/bip39"
)

// ── generate ────────────────────────────────────────────────────────────

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	bits := fs.Int("bits", bip39.DefaultEntropyBits, "Entropy bits (128, 160, 192, 224, 256)")
	lang := fs.String("lang", "english", "Word list")
	plain := fs.Bool("plain", false, "Print the mnemonic on one line")
	fs.Parse(args)

	mnemonic, err := wallet.GenerateMnemonic(bip39.Language(*lang), *bits)
	if err != nil {
		fatal("%s", describeCodecError(err))
	}
	if *plain {
		fmt.Println(mnemonic)
		return
	}
	fmt.Println("Mnemonic (write this down!):")
	fmt.Print(numberedWords(strings.Fields(mnemonic)))
}

// ── entropy / from-entropy ──────────────────────────────────────────────

func cmdEntropy(args []string) {
	fs := flag.NewFlagSet("entropy", flag.ExitOnError)
	lang := fs.String("lang", "", "Word list (default: detect)")
	fs.Parse(args)

	mnemonic, codec := readMnemonic(fs.Args(), *lang)
	entropy, err := codec.EntropyFromMnemonic(mnemonic)
	if err != nil {
		fatal("%s", describeCodecError(err))
	}
	fmt.Println(hex.EncodeToString(entropy))
}

func cmdFromEntropy(args []string) {
	fs := flag.NewFlagSet("from-entropy", flag.ExitOnError)
	lang := fs.String("lang", "english", "Word list")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatal("Usage: mnemonic-cli from-entropy [--lang l] <hex>")
	}
	entropy, err := hex.DecodeString(fs.Arg(0))
	if err != nil {
		fatal("entropy must be hex: %v", err)
	}
	codec, err := bip39.NewCodec(bip39.Language(*lang))
	if err != nil {
		fatal("%s", describeCodecError(err))
	}
	mnemonic, err := codec.MnemonicFromEntropy(entropy)
	if err != nil {
		fatal("%s", describeCodecError(err))
	}
	fmt.Println(mnemonic)
}

// ── seed ────────────────────────────────────────────────────────────────

func cmdSeed(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	lang := fs.String("lang", "", "Word list (default: detect)")
	prompt := fs.Bool("passphrase-prompt", false, "Prompt for a BIP-39 passphrase")
	fs.Parse(args)

	mnemonic, codec := readMnemonic(fs.Args(), *lang)
	seed, err := codec.MnemonicToSeed(mnemonic, readPassphrase(*prompt))
	if err != nil {
		fatal("%s", describeCodecError(err))
	}
	fmt.Println(hex.EncodeToString(seed))
}

// ── validate ────────────────────────────────────────────────────────────

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	lang := fs.String("lang", "", "Word list (default: detect)")
	fs.Parse(args)

	mnemonic, err := mnemonicFromArgs(fs.Args(), os.Stdin)
	if err != nil {
		fatal("%v", err)
	}
	codec, err := wallet.ResolveCodec(bip39.Language(*lang), mnemonic)
	if err == nil {
		err = codec.CheckMnemonic(mnemonic)
	}
	if err != nil {
		fmt.Printf("invalid: %s\n", describeCodecError(err))
		os.Exit(2)
	}
	fmt.Printf("valid (%s)\n", codec.Language())
}

// ── languages ───────────────────────────────────────────────────────────

func cmdLanguages() {
	for _, l := range bip39.Languages() {
		fmt.Println(l)
	}
}

// ── masterseed ──────────────────────────────────────────────────────────

func cmdMasterSeed(args []string) {
	if len(args) < 1 {
		fatal("Usage: mnemonic-cli masterseed <encode|decode> [flags]")
	}
	switch args[0] {
	case "encode":
		cmdMasterSeedEncode(args[1:])
	case "decode":
		cmdMasterSeedDecode(args[1:])
	default:
		fatal("Unknown masterseed command: %s", args[0])
	}
}

func cmdMasterSeedEncode(args []string) {
	fs := flag.NewFlagSet("masterseed encode", flag.ExitOnError)
	lang := fs.String("lang", "", "Word list (default: detect)")
	full := fs.Bool("full", false, "Include the derived seed")
	prompt := fs.Bool("passphrase-prompt", false, "Prompt for a BIP-39 passphrase")
	fs.Parse(args)

	mnemonic, codec := readMnemonic(fs.Args(), *lang)
	ms, err := bip39.NewMasterSeed(codec, mnemonic, readPassphrase(*prompt))
	if err != nil {
		fatal("%s", describeCodecError(err))
	}
	defer ms.Zero()

	data, err := ms.MarshalBinary(!*full)
	if err != nil {
		fatal("encode: %v", err)
	}
	fmt.Println(hex.EncodeToString(data))
}

func cmdMasterSeedDecode(args []string) {
	fs := flag.NewFlagSet("masterseed decode", flag.ExitOnError)
	full := fs.Bool("full", false, "Input includes the derived seed")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatal("Usage: mnemonic-cli masterseed decode [--full] <hex>")
	}
	data, err := hex.DecodeString(fs.Arg(0))
	if err != nil {
		fatal("master seed must be hex: %v", err)
	}
	ms, err := bip39.UnmarshalMasterSeed(data, !*full)
	if err != nil {
		fatal("%s", describeCodecError(err))
	}
	defer ms.Zero()

	fmt.Printf("Language:   %s\n", ms.Language())
	fmt.Printf("Mnemonic:   %s\n", ms.Mnemonic())
	fmt.Printf("Passphrase: %q\n", ms.Passphrase())
	fmt.Printf("Seed:       %x\n", ms.Seed())
}

// ── derive ──────────────────────────────────────────────────────────────

func cmdDerive(args []string) {
	fs := flag.NewFlagSet("derive", flag.ExitOnError)
	lang := fs.String("lang", "", "Word list (default: detect)")
	path := fs.String("path", "m/44'/8888'/0'/0/0", "BIP-32 derivation path")
	prompt := fs.Bool("passphrase-prompt", false, "Prompt for a BIP-39 passphrase")
	fs.Parse(args)

	indices, err := wallet.ParsePath(*path)
	if err != nil {
		fatal("%v", err)
	}
	mnemonic, codec := readMnemonic(fs.Args(), *lang)
	seed, err := codec.MnemonicToSeed(mnemonic, readPassphrase(*prompt))
	if err != nil {
		fatal("%s", describeCodecError(err))
	}
	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		fatal("%v", err)
	}
	defer master.Zero()

	key, err := master.DerivePath(indices...)
	if err != nil {
		fatal("derive: %v", err)
	}
	fmt.Printf("Path:        %s\n", wallet.FormatPath(indices))
	fmt.Printf("Fingerprint: %s\n", master.Fingerprint())
	fmt.Printf("Public key:  %x\n", key.PublicKeyBytes())
	fmt.Printf("XPub:        %s\n", key.Neuter().String())
	fmt.Printf("Address:     %s\n", key.Address())
}

// readMnemonic reads the mnemonic from args or stdin and resolves its codec.
func readMnemonic(args []string, lang string) (string, *bip39.Codec) {
	mnemonic, err := mnemonicFromArgs(args, os.Stdin)
	if err != nil {
		fatal("%v", err)
	}
	codec, err := wallet.ResolveCodec(bip39.Language(lang), mnemonic)
	if err != nil {
		fatal("%s", describeCodecError(err))
	}
	return mnemonic, codec
}
