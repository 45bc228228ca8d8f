package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Klingon-tech/klingnet-mnemonic/internal/rpc"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/rpcclient"
)

func cmdWallet(client *rpcclient.Client, args []string) {
	if len(args) < 1 {
		fatal("Usage: mnemonic-cli wallet <create|import|list|delete|derive|sign|verify|export> [flags]")
	}

	sub := args[0]
	subArgs := args[1:]

	switch sub {
	case "create":
		walletCreate(client, subArgs)
	case "import":
		walletImport(client, subArgs)
	case "list":
		walletList(client)
	case "delete":
		walletDelete(client, subArgs)
	case "derive":
		walletDerive(client, subArgs)
	case "sign":
		walletSign(client, subArgs)
	case "verify":
		walletVerify(client, subArgs)
	case "export":
		walletExport(client, subArgs)
	default:
		fatal("Unknown wallet command: %s", sub)
	}
}

func walletCreate(client *rpcclient.Client, args []string) {
	fs := flag.NewFlagSet("wallet create", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	bits := fs.Int("bits", 0, "Entropy bits (default: daemon setting)")
	lang := fs.String("lang", "", "Word list (default: daemon setting)")
	prompt := fs.Bool("passphrase-prompt", false, "Prompt for a BIP-39 passphrase")
	fs.Parse(args)

	if *name == "" {
		fatal("--name is required")
	}
	password := readNewPassword()
	passphrase := readPassphrase(*prompt)

	result, err := client.CreateWallet(context.Background(), rpc.WalletCreateParam{
		Name:       *name,
		Password:   string(password),
		Bits:       *bits,
		Language:   *lang,
		Passphrase: passphrase,
	})
	if err != nil {
		fatalErr(err)
	}

	fmt.Printf("Wallet %q created.\n\n", result.Name)
	fmt.Println("Mnemonic (write this down!):")
	fmt.Print(numberedWords(strings.Fields(result.Mnemonic)))
	fmt.Println()
	fmt.Printf("Language:    %s\n", result.Language)
	fmt.Printf("Fingerprint: %s\n", result.Fingerprint)
	fmt.Printf("Address:     %s\n", result.Address)
}

func walletImport(client *rpcclient.Client, args []string) {
	fs := flag.NewFlagSet("wallet import", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	lang := fs.String("lang", "", "Word list (default: detect)")
	prompt := fs.Bool("passphrase-prompt", false, "Prompt for a BIP-39 passphrase")
	fs.Parse(args)

	if *name == "" {
		fatal("--name is required")
	}
	// The mnemonic is never taken from argv, where it would land in shell history.
	mnemonic, err := readPassword("Mnemonic: ")
	if err != nil {
		fatal("read mnemonic: %v", err)
	}
	password := readNewPassword()
	passphrase := readPassphrase(*prompt)

	result, err := client.ImportWallet(context.Background(), rpc.WalletImportParam{
		Name:       *name,
		Password:   string(password),
		Mnemonic:   strings.TrimSpace(string(mnemonic)),
		Passphrase: passphrase,
		Language:   *lang,
	})
	if err != nil {
		fatalErr(err)
	}

	fmt.Printf("Wallet %q imported.\n", result.Name)
	fmt.Printf("Language:    %s\n", result.Language)
	fmt.Printf("Fingerprint: %s\n", result.Fingerprint)
	fmt.Printf("Address:     %s\n", result.Address)
}

func walletList(client *rpcclient.Client) {
	result, err := client.ListWallets(context.Background())
	if err != nil {
		fatalErr(err)
	}
	if len(result.Wallets) == 0 {
		fmt.Println("No wallets.")
		return
	}
	for _, w := range result.Wallets {
		fmt.Printf("%-20s %-10s %s  %s\n", w.Name, w.Language, w.Fingerprint, w.Address)
	}
}

func walletDelete(client *rpcclient.Client, args []string) {
	fs := flag.NewFlagSet("wallet delete", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	fs.Parse(args)

	if *name == "" {
		fatal("--name is required")
	}
	password, err := readPassword("Wallet password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	if err := client.DeleteWallet(context.Background(), *name, string(password)); err != nil {
		fatalErr(err)
	}
	fmt.Printf("Wallet %q deleted.\n", *name)
}

func walletDerive(client *rpcclient.Client, args []string) {
	fs := flag.NewFlagSet("wallet derive", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	path := fs.String("path", "", "BIP-32 path (default: first receiving address)")
	save := fs.Bool("save", false, "Record the address in the wallet")
	label := fs.String("label", "", "Label for a saved address")
	asJSON := fs.Bool("json", false, "Print JSON")
	fs.Parse(args)

	if *name == "" {
		fatal("--name is required")
	}
	password, err := readPassword("Wallet password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	result, err := client.DeriveKey(context.Background(), rpc.WalletDeriveParam{
		Name:     *name,
		Password: string(password),
		Path:     *path,
		Save:     *save,
		Label:    *label,
	})
	if err != nil {
		fatalErr(err)
	}
	if *asJSON {
		printJSON(result)
		return
	}
	fmt.Printf("Path:       %s\n", result.Path)
	fmt.Printf("Public key: %s\n", result.PublicKey)
	fmt.Printf("XPub:       %s\n", result.XPub)
	fmt.Printf("Address:    %s\n", result.Address)
}

func walletSign(client *rpcclient.Client, args []string) {
	fs := flag.NewFlagSet("wallet sign", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	path := fs.String("path", "", "BIP-32 path (default: first receiving address)")
	message := fs.String("message", "", "Message to sign")
	fs.Parse(args)

	if *name == "" || *message == "" {
		fatal("--name and --message are required")
	}
	password, err := readPassword("Wallet password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	result, err := client.SignMessage(context.Background(), rpc.WalletSignParam{
		Name:     *name,
		Password: string(password),
		Path:     *path,
		Message:  *message,
	})
	if err != nil {
		fatalErr(err)
	}
	printJSON(result)
}

func walletVerify(client *rpcclient.Client, args []string) {
	fs := flag.NewFlagSet("wallet verify", flag.ExitOnError)
	pubkey := fs.String("pubkey", "", "Public key (hex)")
	message := fs.String("message", "", "Signed message")
	signature := fs.String("signature", "", "Signature (hex)")
	address := fs.String("address", "", "Expected address")
	fs.Parse(args)

	if *pubkey == "" || *signature == "" {
		fatal("--pubkey and --signature are required")
	}
	valid, err := client.VerifyMessage(context.Background(), rpc.VerifyMessageParam{
		PublicKey: *pubkey,
		Message:   *message,
		Signature: *signature,
		Address:   *address,
	})
	if err != nil {
		fatalErr(err)
	}
	if !valid {
		fmt.Println("invalid")
		os.Exit(2)
	}
	fmt.Println("valid")
}

func walletExport(client *rpcclient.Client, args []string) {
	fs := flag.NewFlagSet("wallet export", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	full := fs.Bool("full", false, "Include the derived seed")
	fs.Parse(args)

	if *name == "" {
		fatal("--name is required")
	}
	password, err := readPassword("Wallet password: ")
	if err != nil {
		fatal("read password: %v", err)
	}
	data, err := client.ExportMasterSeed(context.Background(), *name, string(password), !*full)
	if err != nil {
		fatalErr(err)
	}
	fmt.Fprintln(os.Stderr, "WARNING: anyone holding this value controls the wallet.")
	fmt.Println(data)
}
