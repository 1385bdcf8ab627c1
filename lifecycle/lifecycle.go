// Package lifecycle contains the write-path attribute hooks: small mutation
// steps each write operation applies explicitly just before persisting an
// entity. The original implemented these as framework-wide event subscribers;
// here they are plain functions so the order and applicability of each hook
// stays visible and testable. The hooks touch disjoint fields, so they may be
// applied in any order.
package lifecycle

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Authored is implemented by entities that carry an author reference.
type Authored interface {
	SetAuthorID(id string)
}

// Published is implemented by entities that carry a published timestamp.
type Published interface {
	PublishedAt() *time.Time
	SetPublishedAt(t time.Time)
}

// StampAuthor sets the entity's author to the requester identity on create,
// overriding any client-supplied value.
func StampAuthor(e Authored, requesterID string) {
	e.SetAuthorID(requesterID)
}

// StampPublished sets the published timestamp to now if it is unset.
// It is only called on create; updates never pass through it.
func StampPublished(e Published, now time.Time) {
	if e.PublishedAt() == nil {
		e.SetPublishedAt(now)
	}
}

// HashPassword replaces a plaintext password with its bcrypt hash. Plaintext
// must never reach the store or a response body.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
func VerifyPassword(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
