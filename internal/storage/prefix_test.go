package storage

import (
	"errors"
	"fmt"
	"testing"
)

func TestPrefixDB_GetPutDelete(t *testing.T) {
	db := NewPrefixDB(NewMemory(), []byte("wallet/alice/"))

	if err := db.Put([]byte("seed"), []byte("ciphertext")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	got, err := db.Get([]byte("seed"))
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(got) != "ciphertext" {
		t.Fatalf("Get() = %q, want %q", got, "ciphertext")
	}
	if ok, _ := db.Has([]byte("seed")); !ok {
		t.Fatal("Has() = false, want true")
	}

	if err := db.Delete([]byte("seed")); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := db.Get([]byte("seed")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestPrefixDB_Isolation(t *testing.T) {
	inner := NewMemory()
	alice := NewPrefixDB(inner, []byte("a/"))
	bob := NewPrefixDB(inner, []byte("b/"))

	alice.Put([]byte("key"), []byte("fromA"))
	bob.Put([]byte("key"), []byte("fromB"))

	if got, _ := alice.Get([]byte("key")); string(got) != "fromA" {
		t.Fatalf("alice.Get() = %q, want fromA", got)
	}
	if got, _ := bob.Get([]byte("key")); string(got) != "fromB" {
		t.Fatalf("bob.Get() = %q, want fromB", got)
	}
	if ok, _ := alice.Has([]byte("b/key")); ok {
		t.Fatal("alice should not see bob's raw key")
	}
}

func TestPrefixDB_ForEachStripsPrefix(t *testing.T) {
	db := NewPrefixDB(NewMemory(), []byte("w/x/"))
	db.Put([]byte("acct/0"), []byte("v0"))
	db.Put([]byte("acct/1"), []byte("v1"))
	db.Put([]byte("meta"), []byte("m"))

	var keys []string
	err := db.ForEach([]byte("acct/"), func(key, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach() error: %v", err)
	}
	if fmt.Sprint(keys) != "[acct/0 acct/1]" {
		t.Fatalf("ForEach keys = %v, want [acct/0 acct/1]", keys)
	}
}

func TestPrefixDB_ForEachStopEarly(t *testing.T) {
	db := NewPrefixDB(NewMemory(), []byte("p/"))
	for i := 0; i < 10; i++ {
		db.Put([]byte(fmt.Sprintf("k%d", i)), []byte("v"))
	}

	count := 0
	stopErr := errors.New("stop")
	err := db.ForEach(nil, func(key, value []byte) error {
		count++
		if count >= 3 {
			return stopErr
		}
		return nil
	})
	if err != stopErr {
		t.Fatalf("ForEach() error = %v, want stopErr", err)
	}
	if count != 3 {
		t.Fatalf("ForEach called %d times, want 3", count)
	}
}

func TestPrefixDB_DeleteAll(t *testing.T) {
	inner := NewMemory()
	alice := NewPrefixDB(inner, []byte("a/"))
	bob := NewPrefixDB(inner, []byte("b/"))

	alice.Put([]byte("k1"), []byte("v1"))
	alice.Put([]byte("k2"), []byte("v2"))
	bob.Put([]byte("k1"), []byte("other"))

	if err := alice.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll() error: %v", err)
	}
	for _, k := range []string{"k1", "k2"} {
		if ok, _ := alice.Has([]byte(k)); ok {
			t.Fatalf("alice still has %q after DeleteAll", k)
		}
	}
	if got, _ := bob.Get([]byte("k1")); string(got) != "other" {
		t.Fatalf("bob.Get() = %q, want other", got)
	}

	if err := NewPrefixDB(inner, []byte("empty/")).DeleteAll(); err != nil {
		t.Fatalf("DeleteAll() on empty namespace: %v", err)
	}
}

func TestPrefixDB_Batch(t *testing.T) {
	inner := NewMemory()
	db := NewPrefixDB(inner, []byte("ns/"))

	b := db.NewBatch()
	b.Put([]byte("a"), []byte("1"))
	b.Put([]byte("b"), []byte("2"))
	if err := b.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	if got, err := inner.Get([]byte("ns/a")); err != nil || string(got) != "1" {
		t.Fatalf("inner ns/a = %q, %v", got, err)
	}
	if ok, _ := db.Has([]byte("b")); !ok {
		t.Fatal("batched key b missing")
	}
}

func TestPrefixDB_CloseIsNoop(t *testing.T) {
	inner := NewMemory()
	db := NewPrefixDB(inner, []byte("x/"))
	db.Put([]byte("key"), []byte("val"))

	if err := db.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if got, err := inner.Get([]byte("x/key")); err != nil || string(got) != "val" {
		t.Fatalf("inner.Get() after Close = %q, %v", got, err)
	}
}
