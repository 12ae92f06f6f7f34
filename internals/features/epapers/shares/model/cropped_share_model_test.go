package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsExpired(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	share := CroppedShareModel{CroppedShareExpiresAt: created.Add(ShareTTL)}

	assert.False(t, share.IsExpired(created))
	assert.False(t, share.IsExpired(created.Add(29*24*time.Hour)))
	assert.False(t, share.IsExpired(created.Add(ShareTTL-time.Second)))

	// now == expires_at counts as expired: retrievable iff now < expires_at.
	assert.True(t, share.IsExpired(created.Add(ShareTTL)))
	assert.True(t, share.IsExpired(created.Add(31*24*time.Hour)))
}
