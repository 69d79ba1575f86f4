package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"bookit/internal/util/memzero"
)

const sealedFormatVersion = 1

// ErrWrongPassphrase is returned when a sealed session cannot be opened.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted session file")

// sealed is the on-disk JSON structure holding the ciphertext and KDF parameters.
type sealed struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

type kdfParams struct{ N, R, P int }

// defaultKDF is tuned for an interactive CLI start-up.
var defaultKDF = kdfParams{N: 1 << 15, R: 8, P: 1}

func seal(passphrase string, raw []byte, kp kdfParams) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	aead, err := deriveAEAD(passphrase, salt[:], kp)
	if err != nil {
		return nil, err
	}
	// The key is unique per salt, so a fixed nonce is never reused.
	var nonce [chacha20poly1305.NonceSize]byte
	return json.Marshal(sealed{
		V:      sealedFormatVersion,
		Salt:   salt[:],
		N:      kp.N,
		R:      kp.R,
		P:      kp.P,
		Cipher: aead.Seal(nil, nonce[:], raw, salt[:]),
	})
}

func open(passphrase string, b []byte) ([]byte, error) {
	var s sealed
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode sealed session: %w", err)
	}
	if s.V > sealedFormatVersion {
		return nil, fmt.Errorf("unsupported session format version %d", s.V)
	}
	aead, err := deriveAEAD(passphrase, s.Salt, kdfParams{N: s.N, R: s.R, P: s.P})
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], s.Cipher, s.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

type aead interface {
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
}

func deriveAEAD(passphrase string, salt []byte, kp kdfParams) (aead, error) {
	pass := []byte(passphrase)
	defer memzero.Zero(pass)
	key, err := scrypt.Key(pass, salt, kp.N, kp.R, kp.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	// New copies the key.
	defer memzero.Zero(key)
	return chacha20poly1305.New(key)
}
