package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSummary(t *testing.T) {
	t.Run("whitespace only yields empty string", func(t *testing.T) {
		assert.Equal(t, "", FormatSummary("   "))
		assert.Equal(t, "", FormatSummary(""))
		assert.Equal(t, "", FormatSummary("\n\t \n"))
	})

	t.Run("short multi-byte lines pass through", func(t *testing.T) {
		assert.Equal(t, "第一行\n第二行", FormatSummary("第一行\n第二行"))
	})

	t.Run("long line wraps at 20 runes and truncates to two lines", func(t *testing.T) {
		input := "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789abcdefghijklmnopqrstuv"
		assert.Equal(t, "ABCDEFGHIJKLMNOPQRST\nUVWXYZ0123456789abcd…", FormatSummary(input))
	})

	t.Run("wrap counts runes not bytes", func(t *testing.T) {
		// 25 CJK runes wrap to 20 + 5, not at a byte boundary.
		input := "あいうえおかきくけこさしすせそたちつてとなにぬねの"
		assert.Equal(t, "あいうえおかきくけこさしすせそたちつてと\nなにぬねの", FormatSummary(input))
	})

	t.Run("interior empty lines are preserved", func(t *testing.T) {
		// The empty middle line counts as a display line.
		assert.Equal(t, "a\n…", FormatSummary("a\n\nb"))
		// Trailing newlines are trimmed before splitting.
		assert.Equal(t, "ab", FormatSummary("ab\n\n"))
	})

	t.Run("exactly two wrapped lines get no ellipsis", func(t *testing.T) {
		input := "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789abcd"
		assert.Equal(t, "ABCDEFGHIJKLMNOPQRST\nUVWXYZ0123456789abcd", FormatSummary(input))
	})

	t.Run("stored summary is not mutated", func(t *testing.T) {
		input := "  padded  "
		_ = FormatSummary(input)
		assert.Equal(t, "  padded  ", input)
	})
}
