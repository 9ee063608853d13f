package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

// TestWrapText тестирует жадный перенос по измеренной ширине
func TestWrapText(t *testing.T) {
	h := builtinHandle() // битовый шрифт: ровно 7px на символ

	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     []string
	}{
		{
			name:     "greedy fill with backtrack",
			text:     "aaa bbb ccc ddd",
			maxWidth: 70,
			want:     []string{"aaa bbb", "ccc ddd"},
		},
		{
			name:     "single short word",
			text:     "hi",
			maxWidth: 70,
			want:     []string{"hi"},
		},
		{
			name:     "explicit break always starts a new line",
			text:     "hello\nworld",
			maxWidth: 700,
			want:     []string{"hello", "world"},
		},
		{
			name:     "empty segment between breaks is preserved",
			text:     "a\n\nb",
			maxWidth: 70,
			want:     []string{"a", "", "b"},
		},
		{
			name:     "overlong word stays alone unbroken",
			text:     "aa bbbbbbbbbbbbbbbb cc",
			maxWidth: 70,
			want:     []string{"aa", "bbbbbbbbbbbbbbbb", "cc"},
		},
		{
			name:     "whitespace runs collapse",
			text:     "a   b",
			maxWidth: 700,
			want:     []string{"a b"},
		},
		{
			name:     "empty text is a single empty line",
			text:     "",
			maxWidth: 70,
			want:     []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, h, tt.maxWidth)

			require.Len(t, got, len(tt.want))
			for i, line := range got {
				assert.Equal(t, tt.want[i], line.Text)
				assert.Equal(t, font.MeasureString(h.Face, line.Text).Ceil(), line.Width)
				assert.Equal(t, h.LineHeight(), line.Height)
			}
		})
	}
}

// TestWrapWidthInvariant: каждая строка не шире maxWidth, исключение только
// для одиночного слова длиннее maxWidth
func TestWrapWidthInvariant(t *testing.T) {
	h := builtinHandle()

	texts := []string{
		"the quick brown fox jumps over the lazy dog",
		"a bb ccc dddd eeeee ffffff ggggggg",
		"supercalifragilisticexpialidocious and more words here",
		"one\ntwo three four five six seven eight nine ten",
	}

	for _, text := range texts {
		for _, maxWidth := range []int{40, 70, 120, 300} {
			for _, line := range WrapText(text, h, maxWidth) {
				if line.Width > maxWidth {
					assert.NotContains(t, line.Text, " ",
						"line %q exceeds %dpx and is not a single word", line.Text, maxWidth)
				}
			}
		}
	}
}

// TestWrapDeterminism: одинаковый вход даёт одинаковый результат
func TestWrapDeterminism(t *testing.T) {
	h := builtinHandle()
	text := "identical input must produce identical output\nevery single time"

	first := WrapText(text, h, 150)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, WrapText(text, h, 150))
	}
}
