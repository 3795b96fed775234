package xl

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "A&amp;B", Escape("A&B"))
	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;it&apos;s&lt;/a&gt;", Escape(`<a href="x">it's</a>`))
	assert.Equal(t, "plain &amp;", Escape("plain &"))
}

func TestEscape_SafeInputUnchanged(t *testing.T) {
	for _, s := range []string{"", "hello", "Sheet 1", "1.5e+10", "ünïcödé"} {
		assert.Equal(t, s, Escape(s))
	}
	allocs := testing.AllocsPerRun(100, func() {
		_ = Escape("no metacharacters in here")
	})
	assert.Zero(t, allocs)
}

func TestEscape_IllegalCharacters(t *testing.T) {
	assert.Equal(t, "a_x0001_b", Escape("a\x01b"))
	assert.Equal(t, "_x0000__x001F_", Escape("\x00\x1f"))
	assert.Equal(t, "tab\tlf\ncr\r", Escape("tab\tlf\ncr\r"))
	assert.Equal(t, "x_xFFFF_", Escape("x\uffff"))
	assert.Equal(t, "&lt;_x0007_&gt;", Escape("<\a>"))
}

func TestEscape_InvalidUTF8(t *testing.T) {
	assert.Equal(t, "bad\ufffdutf8", Escape("bad\xffutf8"))
	assert.Equal(t, "\ufffd\ufffdok", Escape("\xc3\xffok"))
	assert.Equal(t, "ünï", Escape("ünï"))
}

func TestEscape_LiteralHexEscape(t *testing.T) {
	assert.Equal(t, "_x005F_x0041_", Escape("_x0041_"))
	assert.Equal(t, "snake_case_x", Escape("snake_case_x"))
	assert.Equal(t, "_x12G4_", Escape("_x12G4_"))
}

func TestEscape_OutputIsWellFormedXML(t *testing.T) {
	for _, s := range []string{"a\x01b", "bad\xffutf8", "\x00", "mixed & \x1b[0m", "\xed\xa0\x80"} {
		doc := "<t>" + Escape(s) + "</t>"
		var v string
		assert.NoError(t, xml.Unmarshal([]byte(doc), &v), "%q", s)
	}
}
