package wallet

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

// Well-known test vector used by hardhat and anvil.
const testMnemonic = "test test test test test test test test test test test junk"

func TestDeriveKey(t *testing.T) {
	key, err := DeriveKey(testMnemonic, 0)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	addr := crypto.PubkeyToAddress(key.PublicKey).Hex()
	if addr != "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266" {
		t.Fatalf("address mismatch: %s", addr)
	}

	second, err := DeriveKey(testMnemonic, 1)
	if err != nil {
		t.Fatalf("derive index 1: %v", err)
	}
	if crypto.PubkeyToAddress(second.PublicKey).Hex() != "0x70997970C51812dc3A010C7d01b50e0d17dc79C8" {
		t.Fatalf("index 1 address mismatch")
	}
}

func TestDeriveKeyInvalidMnemonic(t *testing.T) {
	if _, err := DeriveKey("not a real mnemonic", 0); err == nil {
		t.Fatalf("expected error for invalid mnemonic")
	}
}

func TestParseKey(t *testing.T) {
	key, err := ParseKey("0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if crypto.PubkeyToAddress(key.PublicKey).Hex() != "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266" {
		t.Fatalf("parsed key address mismatch")
	}
	if _, err := ParseKey("zz"); err == nil {
		t.Fatalf("expected error for bad key")
	}
}
