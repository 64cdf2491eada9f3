package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDescriptionStripsMarkup(t *testing.T) {
	raw := `<p>A <b>thrilling</b> tale of the <a href="https://example.com">high seas</a>.</p>`
	assert.Equal(t, "A thrilling tale of the high seas.", CleanDescription(raw))
}

func TestCleanDescriptionDecodesEntities(t *testing.T) {
	raw := "Crime &amp; Punishment &mdash; unabridged"
	assert.Equal(t, "Crime & Punishment — unabridged", CleanDescription(raw))
}

func TestCleanDescriptionCollapsesWhitespace(t *testing.T) {
	raw := "<div>Chapter   one\n\n<br/>  begins\there</div>"
	assert.Equal(t, "Chapter one begins here", CleanDescription(raw))
}

func TestCleanDescriptionEmpty(t *testing.T) {
	assert.Equal(t, "", CleanDescription(""))
	assert.Equal(t, "", CleanDescription("<p>   </p>"))
}

func TestCleanDescriptionPlainTextUntouched(t *testing.T) {
	assert.Equal(t, "Just a plain sentence.", CleanDescription("Just a plain sentence."))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "long…", Truncate("longer text", 5))
	assert.Equal(t, "…", Truncate("anything", 1))
	assert.Equal(t, "", Truncate("anything", 0))
}

func TestTruncateMultibyte(t *testing.T) {
	assert.Equal(t, "日本語", Truncate("日本語", 3))
	assert.Equal(t, "日本…", Truncate("日本語テキスト", 3))
}
