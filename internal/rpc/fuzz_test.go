package rpc

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Klingon-tech/klingnet-mnemonic/internal/seedpool"
)

// FuzzRPCRequestUnmarshal tests that arbitrary JSON does not panic
// when parsed as a JSON-RPC 2.0 request.
func FuzzRPCRequestUnmarshal(f *testing.F) {
	f.Add([]byte(`{"jsonrpc":"2.0","method":"daemon_getInfo","params":null,"id":1}`))
	f.Add([]byte(`{"jsonrpc":"2.0","method":"mnemonic_validate","params":{"mnemonic":"abc"},"id":"test"}`))
	f.Add([]byte(`{}`))
	f.Add([]byte(`null`))
	f.Add([]byte(`{"method":"","params":[]}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			return
		}
		_ = req.Method
		_ = req.ID
	})
}

// FuzzMnemonicMethods feeds arbitrary params to the codec methods. They must
// answer with a result or an RPC error, never panic.
func FuzzMnemonicMethods(f *testing.F) {
	f.Add("mnemonic_validate", `{"mnemonic":"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"}`)
	f.Add("mnemonic_toEntropy", `{"mnemonic":"zoo zoo zoo","language":"english"}`)
	f.Add("mnemonic_fromEntropy", `{"entropy":"00ff","language":"korean"}`)
	f.Add("mnemonic_generate", `{"bits":-1}`)
	f.Add("mnemonic_decodeMasterSeed", `{"master_seed":"0010","compressed":true}`)
	f.Add("mnemonic_validate", `[1,2]`)

	s := New("127.0.0.1:0", seedpool.New(1))
	f.Fuzz(func(t *testing.T, method, params string) {
		if !strings.HasPrefix(method, "mnemonic_") || method == "mnemonic_toSeed" {
			return
		}
		var p interface{}
		if err := json.Unmarshal([]byte(params), &p); err != nil {
			return
		}
		result, rpcErr := s.dispatch(context.Background(), &Request{JSONRPC: "2.0", Method: method, Params: p, ID: 1})
		if result == nil && rpcErr == nil {
			t.Fatalf("%s returned neither result nor error", method)
		}
	})
}
