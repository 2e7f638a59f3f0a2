package forms

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet       = "0123456789abcdefghijklmnopqrstuvwxyz"
	protocolAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewID returns a random lowercase-alphanumeric identifier for drafts and
// submissions.
func NewID() string {
	return gonanoid.MustGenerate(idAlphabet, 13)
}

// NewProtocolNumber returns the opaque uppercase-alphanumeric token handed to
// users for tracking a submission.
func NewProtocolNumber() string {
	return gonanoid.MustGenerate(protocolAlphabet, 12)
}
