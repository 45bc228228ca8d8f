package rpcclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	klog "github.com/Klingon-tech/klingnet-mnemonic/internal/log"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/rpc"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/seedpool"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/storage"
	"github.com/Klingon-tech/klingnet-mnemonic/internal/wallet"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func setupClient(t *testing.T) *Client {
	t.Helper()
	klog.Init("error", false, "")

	srv := rpc.New("127.0.0.1:0", seedpool.New(2))
	srv.SetKeystore(wallet.NewKeystore(storage.NewMemory(), wallet.EncryptionParams{
		Memory:      64,
		Iterations:  1,
		Parallelism: 1,
	}))
	if err := srv.Start(); err != nil {
		t.Fatalf("start rpc: %v", err)
	}
	t.Cleanup(func() { srv.Stop() })

	return New("http://" + srv.Addr() + "/")
}

func TestClient_Mnemonic(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	gen, err := c.Generate(ctx, 256, "")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if gen.Words != 24 {
		t.Errorf("words = %d, want 24", gen.Words)
	}

	ent, err := c.ToEntropy(ctx, gen.Mnemonic, "")
	if err != nil {
		t.Fatalf("ToEntropy() error: %v", err)
	}
	back, err := c.FromEntropy(ctx, ent.Entropy, ent.Language)
	if err != nil {
		t.Fatalf("FromEntropy() error: %v", err)
	}
	if back.Mnemonic != gen.Mnemonic {
		t.Error("entropy round trip changed the mnemonic")
	}

	seed, err := c.ToSeed(ctx, testMnemonic, "", "")
	if err != nil {
		t.Fatalf("ToSeed() error: %v", err)
	}
	if !strings.HasPrefix(seed, "5eb00bbd") {
		t.Errorf("seed = %s", seed)
	}

	v, err := c.Validate(ctx, "abandon abandon", "")
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if v.Valid || v.Kind != "InvalidMnemonicLength" {
		t.Errorf("validate = %+v", v)
	}

	langs, err := c.Languages(ctx)
	if err != nil || len(langs) == 0 {
		t.Errorf("Languages() = %v, %v", langs, err)
	}

	info, err := c.Info(ctx)
	if err != nil {
		t.Fatalf("Info() error: %v", err)
	}
	if info.Pool.Completed == 0 {
		t.Error("pool should report the seed derivation")
	}
}

func TestClient_RPCErrorKind(t *testing.T) {
	c := setupClient(t)

	bad := strings.Replace(testMnemonic, "about", "abandon", 1)
	_, err := c.ToSeed(context.Background(), bad, "", "")
	var rerr *RPCError
	if !errors.As(err, &rerr) {
		t.Fatalf("error = %v, want *RPCError", err)
	}
	if rerr.Code != rpc.CodeCodecError || rerr.Kind != "ChecksumMismatch" {
		t.Errorf("RPCError = %+v", rerr)
	}
	if !strings.Contains(rerr.Error(), "ChecksumMismatch") {
		t.Errorf("Error() = %q", rerr.Error())
	}

	err = c.Call("no_such_method", nil, nil)
	if !errors.As(err, &rerr) || rerr.Code != rpc.CodeMethodNotFound || rerr.Kind != "" {
		t.Errorf("unknown method error = %v", err)
	}
}

func TestClient_Wallet(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	created, err := c.ImportWallet(ctx, rpc.WalletImportParam{Name: "w", Password: "pw", Mnemonic: testMnemonic})
	if err != nil {
		t.Fatalf("ImportWallet() error: %v", err)
	}

	list, err := c.ListWallets(ctx)
	if err != nil || len(list.Wallets) != 1 {
		t.Fatalf("ListWallets() = %+v, %v", list, err)
	}

	key, err := c.DeriveKey(ctx, rpc.WalletDeriveParam{Name: "w", Password: "pw"})
	if err != nil {
		t.Fatalf("DeriveKey() error: %v", err)
	}
	if key.Address != created.Address {
		t.Errorf("default derived address = %s, want %s", key.Address, created.Address)
	}

	sig, err := c.SignMessage(ctx, rpc.WalletSignParam{Name: "w", Password: "pw", Message: "m"})
	if err != nil {
		t.Fatalf("SignMessage() error: %v", err)
	}
	ok, err := c.VerifyMessage(ctx, rpc.VerifyMessageParam{PublicKey: sig.PublicKey, Message: "m", Signature: sig.Signature})
	if err != nil || !ok {
		t.Errorf("VerifyMessage() = %v, %v", ok, err)
	}

	exported, err := c.ExportMasterSeed(ctx, "w", "pw", true)
	if err != nil || exported == "" {
		t.Errorf("ExportMasterSeed() = %q, %v", exported, err)
	}

	if err := c.DeleteWallet(ctx, "w", "wrong"); err == nil {
		t.Error("DeleteWallet() with wrong password should fail")
	}
	if err := c.DeleteWallet(ctx, "w", "pw"); err != nil {
		t.Errorf("DeleteWallet() error: %v", err)
	}

	if _, err := c.CreateWallet(ctx, rpc.WalletCreateParam{Name: "new", Password: "pw"}); err != nil {
		t.Errorf("CreateWallet() error: %v", err)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer slow.Close()

	c := New(slow.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := c.CallContext(ctx, "daemon_getInfo", nil, nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("CallContext() error = %v, want deadline exceeded", err)
	}
}

func TestClient_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	err := New(srv.URL).Call("daemon_getInfo", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "rpc.allowed") {
		t.Errorf("error = %v", err)
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	c := NewWithTimeout("http://127.0.0.1:1/", time.Second)
	if err := c.Call("daemon_getInfo", nil, nil); err == nil {
		t.Error("Call() to a closed port should fail")
	}
}
