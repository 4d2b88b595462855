package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateContent(t *testing.T) {
	assert.Equal(t, "short", TruncateContent("short", NotificationPreviewLen))

	exact := strings.Repeat("a", NotificationPreviewLen)
	assert.Equal(t, exact, TruncateContent(exact, NotificationPreviewLen))

	long := strings.Repeat("a", NotificationPreviewLen+1)
	got := TruncateContent(long, NotificationPreviewLen)
	assert.Equal(t, exact+"...", got)
}

func TestTruncateContentMultibyte(t *testing.T) {
	long := strings.Repeat("å", NotificationPreviewLen+5)
	got := TruncateContent(long, NotificationPreviewLen)
	assert.Equal(t, strings.Repeat("å", NotificationPreviewLen)+"...", got)
}
