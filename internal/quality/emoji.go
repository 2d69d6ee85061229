package quality

import "strings"

// DefaultEmojiMap substitutes common review emoji with the sentiment
// word they carry. Overridable from configuration.
var DefaultEmojiMap = map[string]string{
	"😀": "happy", "😃": "happy", "😄": "happy", "😁": "happy", "🙂": "happy",
	"😊": "happy", "😜": "playful", "😂": "funny", "🤣": "funny",
	"😍": "love", "❤️": "love", "❤": "love", "💕": "love",
	"👍": "good", "👌": "good", "💯": "excellent", "🔥": "excellent",
	"⭐": "star", "🌟": "star", "🙏": "thanks",
	"😢": "sad", "😭": "sad", "😞": "disappointed", "😔": "disappointed",
	"😡": "angry", "😠": "angry", "🤬": "angry", "👎": "bad",
}

// ReplaceEmojisWithText substitutes known emoji in the column with
// their mapped words, strips any remaining emoji glyphs, and collapses
// whitespace. Missing cells pass through unchanged. A nil mapping
// falls back to DefaultEmojiMap.
func (c *Cleaner) ReplaceEmojisWithText(column string, mapping map[string]string) *Table {
	idx := c.table.ColumnIndex(column)
	if idx < 0 {
		c.logger.Warn("column not found, emoji pass skipped", "column", column)
		return c.table
	}
	if mapping == nil {
		mapping = DefaultEmojiMap
	}

	for i, row := range c.table.Rows {
		if !row[idx].Valid {
			continue
		}
		c.table.Rows[i][idx] = NewCell(substituteEmojis(row[idx].Value, mapping))
	}
	return c.table
}

func substituteEmojis(text string, mapping map[string]string) string {
	for glyph, word := range mapping {
		if strings.Contains(text, glyph) {
			text = strings.ReplaceAll(text, glyph, " "+word+" ")
		}
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isEmojiRune(r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// isEmojiRune covers the pictographic blocks seen in store reviews:
// emoticons, symbols and pictographs, transport, supplemental symbols,
// dingbats, and the variation selector / ZWJ machinery around them.
func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF:
		return true
	case r == 0xFE0F || r == 0x200D || r == 0x20E3:
		return true
	case r >= 0x2B00 && r <= 0x2BFF:
		return true
	}
	return false
}
