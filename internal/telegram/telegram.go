package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Mephistophillis/UnityCourseTracker/internal/profile"
)

// ErrBadSignature widget payload failed the HMAC check
var ErrBadSignature = errors.New("telegram payload signature mismatch")

// Callback raw login widget payload. The widget delivers id as a number,
// json.Number keeps it lossless before normalization
type Callback struct {
	ID        json.Number `json:"id"`
	Username  string      `json:"username"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	PhotoURL  string      `json:"photo_url"`
	AuthDate  int64       `json:"auth_date"`
	Hash      string      `json:"hash"`
}

// Normalize map the widget payload to the profile identity shape, a missing
// username falls back to the display name
func (cb *Callback) Normalize() *profile.Identity {
	username := cb.Username
	if username == "" {
		username = strings.TrimSpace(cb.FirstName + " " + cb.LastName)
	}
	return &profile.Identity{
		ID:       cb.ID.String(),
		Username: username,
		Avatar:   cb.PhotoURL,
	}
}

// Verifier checks widget payload signatures against the bot token.
// A zero-token verifier accepts everything, development runs without a bot
type Verifier struct {
	secret []byte
}

// NewVerifier create a verifier, botToken may be empty to disable checks
func NewVerifier(botToken string) *Verifier {
	v := &Verifier{}
	if botToken != "" {
		sum := sha256.Sum256([]byte(botToken))
		v.secret = sum[:]
	}
	return v
}

// Enabled report whether signature checking is active
func (v *Verifier) Enabled() bool {
	return v.secret != nil
}

// Verify check the payload hash per the login widget contract: HMAC-SHA256
// over the sorted key=value lines, keyed with SHA256(botToken)
func (v *Verifier) Verify(cb *Callback) error {
	if !v.Enabled() {
		return nil
	}

	lines := []string{
		fmt.Sprintf("auth_date=%d", cb.AuthDate),
		fmt.Sprintf("id=%s", cb.ID.String()),
	}
	if cb.FirstName != "" {
		lines = append(lines, "first_name="+cb.FirstName)
	}
	if cb.LastName != "" {
		lines = append(lines, "last_name="+cb.LastName)
	}
	if cb.PhotoURL != "" {
		lines = append(lines, "photo_url="+cb.PhotoURL)
	}
	if cb.Username != "" {
		lines = append(lines, "username="+cb.Username)
	}
	sort.Strings(lines)

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(strings.Join(lines, "\n")))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(cb.Hash)) {
		return ErrBadSignature
	}
	return nil
}
