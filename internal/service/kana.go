package service

import "strings"

// Japanese product names are inconsistently transliterated between kana
// scripts, so search terms are matched in both. The two blocks are offset by
// 0x60 code points, which makes the fold a plain shift.
const (
	hiraganaLo = 0x3041 // ぁ
	hiraganaHi = 0x3096 // ゖ
	katakanaLo = 0x30A1 // ァ
	katakanaHi = 0x30F6 // ヶ
	kanaOffset = 0x60
)

// FoldKatakanaToHiragana maps every katakana rune to its hiragana
// equivalent; all other runes pass through unchanged.
func FoldKatakanaToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= katakanaLo && r <= katakanaHi {
			return r - kanaOffset
		}
		return r
	}, s)
}

// FoldHiraganaToKatakana maps every hiragana rune to its katakana
// equivalent; all other runes pass through unchanged.
func FoldHiraganaToKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= hiraganaLo && r <= hiraganaHi {
			return r + kanaOffset
		}
		return r
	}, s)
}
