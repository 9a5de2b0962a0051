package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldKatakanaToHiragana(t *testing.T) {
	assert.Equal(t, "たまご", FoldKatakanaToHiragana("タマゴ"))
	assert.Equal(t, "ぁゖ", FoldKatakanaToHiragana("ァヶ"))

	// Mixed input folds only the katakana runes.
	assert.Equal(t, "きっこーまん醤油 1L", FoldKatakanaToHiragana("キッコーマン醤油 1L"))
}

func TestFoldHiraganaToKatakana(t *testing.T) {
	assert.Equal(t, "タマゴ", FoldHiraganaToKatakana("たまご"))
	assert.Equal(t, "ァヶ", FoldHiraganaToKatakana("ぁゖ"))
	assert.Equal(t, "タマゴ焼キ", FoldHiraganaToKatakana("たまご焼き"))
}

func TestFoldPassThrough(t *testing.T) {
	// Kanji, ASCII and symbols are outside both kana blocks.
	for _, s := range []string{"", "milk", "牛乳", "ー・、。", "123"} {
		assert.Equal(t, s, FoldKatakanaToHiragana(s))
		assert.Equal(t, s, FoldHiraganaToKatakana(s))
	}

	// The prolonged sound mark U+30FC is above the folded katakana range.
	assert.Equal(t, "ー", FoldKatakanaToHiragana("ー"))
}

func TestFoldSymmetry(t *testing.T) {
	hiragana := "ぁあいうゔゕゖたまごやきじゃぱん"
	assert.Equal(t, hiragana, FoldKatakanaToHiragana(FoldHiraganaToKatakana(hiragana)))

	katakana := "ァアイウタマゴヤキヶ"
	assert.Equal(t, katakana, FoldHiraganaToKatakana(FoldKatakanaToHiragana(katakana)))
}
