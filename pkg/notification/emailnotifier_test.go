package notification

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNotice(t *testing.T) {
	t.Run("account created mentions the username", func(t *testing.T) {
		body, err := renderNotice(accountCreatedTemplate, "jdoe")
		require.NoError(t, err)
		assert.Contains(t, body, "Hello jdoe")
		assert.Contains(t, body, "created")
	})

	t.Run("password changed warns about unexpected changes", func(t *testing.T) {
		body, err := renderNotice(passwordChangedTemplate, "jdoe")
		require.NoError(t, err)
		assert.Contains(t, body, "Hello jdoe")
		assert.Contains(t, body, "password")
		assert.Contains(t, strings.ToLower(body), "if this was not you")
	})
}

func TestNewEmailNotifier(t *testing.T) {
	notifier, err := NewEmailNotifier(SMTPConfig{
		Host: "localhost",
		Port: 1025,
		From: "noreply@campus.edu",
	})
	require.NoError(t, err)
	assert.NotNil(t, notifier)
	assert.Equal(t, 1025, notifier.SMTPConfig.Port)
}
