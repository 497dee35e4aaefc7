// Package ident provides deterministic, domain-separated content hashes for
// types and terms.
package ident

import (
	"crypto/sha256"
	"encoding/hex"
)

// Size is the byte length of a Uid.
const Size = sha256.Size

// Uid is a 32-byte content hash identifying a type, term, or node.
type Uid [Size]byte

// Zero is the zero-value Uid, never produced by a hash function below.
var Zero Uid

// Hex returns the lowercase hex encoding of u.
func (u Uid) Hex() string {
	return hex.EncodeToString(u[:])
}

// String satisfies fmt.Stringer.
func (u Uid) String() string {
	return u.Hex()
}

// FromHex decodes a hex string produced by Hex back into a Uid.
func FromHex(s string) (Uid, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Uid{}, hexConversionError("invalid hex string: " + err.Error())
	}
	if len(b) != Size {
		return Uid{}, hexConversionError("expected 32 bytes, got a different length")
	}
	var u Uid
	copy(u[:], b)
	return u, nil
}

// domain-separation tags. Each category MUST hash a distinct prefix so that,
// e.g., a variable named "arr:x" can never collide with an arrow's encoding.
const (
	tagVariable    = "var:"
	tagArrow       = "arr:"
	tagBasicTerm   = "bas:"
	tagApplication = "app:"
)

// HashVariable computes the Uid of a type variable named name.
func HashVariable(name string) Uid {
	h := sha256.New()
	h.Write([]byte(tagVariable))
	h.Write([]byte(name))
	return sum(h)
}

// HashArrow computes the Uid of an arrow type left -> right.
func HashArrow(left, right Uid) Uid {
	h := sha256.New()
	h.Write([]byte(tagArrow))
	h.Write(left[:])
	h.Write([]byte(":"))
	h.Write(right[:])
	return sum(h)
}

// HashBasicTerm computes the Uid of a basic term named name inhabiting the
// type identified by typeUid.
func HashBasicTerm(name string, typeUid Uid) Uid {
	h := sha256.New()
	h.Write([]byte(tagBasicTerm))
	h.Write([]byte(name))
	h.Write([]byte(":"))
	h.Write(typeUid[:])
	return sum(h)
}

// HashApplication computes the Uid of an application term, keyed by the
// function term's Uid, the argument term's Uid, and the synthesized type's
// Uid.
func HashApplication(functionUid, argumentUid, typeUid Uid) Uid {
	h := sha256.New()
	h.Write([]byte(tagApplication))
	h.Write(functionUid[:])
	h.Write([]byte(":"))
	h.Write(argumentUid[:])
	h.Write([]byte(":"))
	h.Write(typeUid[:])
	return sum(h)
}

type hasher interface {
	Sum(b []byte) []byte
}

func sum(h hasher) Uid {
	var u Uid
	copy(u[:], h.Sum(nil))
	return u
}
