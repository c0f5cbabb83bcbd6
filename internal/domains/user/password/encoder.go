// Package password stores and checks credentials in the "{id}encoded" format:
// the prefix names the scheme that produced the rest of the value.
package password

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeBcrypt = "bcrypt"
	SchemeNoop   = "noop"
)

var ErrUnknownScheme = errors.New("unknown password encoding scheme")

// Encoder hashes raw passwords and checks them against stored values.
type Encoder interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}

// DelegatingEncoder picks the scheme from the stored prefix. New passwords are
// encoded with the default scheme.
type DelegatingEncoder struct {
	defaultScheme string
	encoders      map[string]Encoder
}

// NewDelegatingEncoder registers bcrypt (default) and noop.
func NewDelegatingEncoder() *DelegatingEncoder {
	return &DelegatingEncoder{
		defaultScheme: SchemeBcrypt,
		encoders: map[string]Encoder{
			SchemeBcrypt: BcryptEncoder{Cost: bcrypt.DefaultCost},
			SchemeNoop:   NoopEncoder{},
		},
	}
}

func (d *DelegatingEncoder) Encode(raw string) (string, error) {
	encoded, err := d.encoders[d.defaultScheme].Encode(raw)
	if err != nil {
		return "", err
	}
	return "{" + d.defaultScheme + "}" + encoded, nil
}

// Matches reports whether raw matches the stored value. Values without a
// known prefix never match.
func (d *DelegatingEncoder) Matches(raw, stored string) bool {
	scheme, encoded, err := split(stored)
	if err != nil {
		return false
	}
	enc, ok := d.encoders[scheme]
	if !ok {
		return false
	}
	return enc.Matches(raw, encoded)
}

// Scheme returns the scheme id of a stored value.
func Scheme(stored string) (string, error) {
	scheme, _, err := split(stored)
	return scheme, err
}

func split(stored string) (string, string, error) {
	if !strings.HasPrefix(stored, "{") {
		return "", "", fmt.Errorf("%w: missing {id} prefix", ErrUnknownScheme)
	}
	end := strings.Index(stored, "}")
	if end < 0 {
		return "", "", fmt.Errorf("%w: unterminated {id} prefix", ErrUnknownScheme)
	}
	return stored[1:end], stored[end+1:], nil
}

type BcryptEncoder struct {
	Cost int
}

func (e BcryptEncoder) Encode(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), e.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (e BcryptEncoder) Matches(raw, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(raw)) == nil
}

// NoopEncoder stores passwords as-is. Only meant for fixtures.
type NoopEncoder struct{}

func (NoopEncoder) Encode(raw string) (string, error) { return raw, nil }

func (NoopEncoder) Matches(raw, encoded string) bool { return raw == encoded }
