package lookup

import (
	"strings"
	"unicode"

	"go_vocab_quiz/internal/model"
)

// pronunciationRule は綴りを発音記号に置き換える規則です。長いパターンから順に適用します
type pronunciationRule struct {
	pattern, ipa string
}

var pronunciationRules = []pronunciationRule{
	{"tion", "ʃən"}, {"sion", "ʒən"}, {"ture", "tʃər"}, {"sure", "ʃər"},
	{"igh", "aɪ"}, {"ous", "əs"}, {"ful", "fəl"}, {"ing", "ɪŋ"},
	{"th", "θ"}, {"sh", "ʃ"}, {"ch", "tʃ"}, {"ph", "f"}, {"gh", ""}, {"ck", "k"}, {"ng", "ŋ"},
	{"ee", "iː"}, {"ea", "iː"}, {"oo", "uː"}, {"ou", "aʊ"}, {"ow", "aʊ"}, {"oy", "ɔɪ"}, {"oi", "ɔɪ"},
	{"ay", "eɪ"}, {"ai", "eɪ"}, {"ie", "aɪ"}, {"ed", "d"}, {"er", "ər"}, {"ly", "li"},
	{"a", "æ"}, {"e", "e"}, {"i", "ɪ"}, {"o", "ɑ"}, {"u", "ʌ"}, {"y", "ɪ"},
}

// ipaRunes は生成結果に残してよいIPA記号です (ASCII英字は別途許可)
var ipaRunes = buildRuneSet("ɪɛæɑɔʊuiɯəɚɝɞɜɘɤʌøɵɐɶĩẽ̃õũœθðʃʒŋɳɲɴʈɖɢʔɦβɹɻɥɰɭʎɾɽʀχɣħʕʜʢʘɨː")

func buildRuneSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

// GeneratePronunciation は辞書APIが使えないときの規則ベースの簡易発音記号を返します。
// 規則は前の規則の結果にも順に適用されます。
func GeneratePronunciation(word string) string {
	p := strings.ToLower(word)
	for _, rule := range pronunciationRules {
		p = strings.ReplaceAll(p, rule.pattern, rule.ipa)
	}

	var b strings.Builder
	for _, r := range p {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(r)
			continue
		}
		if _, ok := ipaRunes[r]; ok {
			b.WriteRune(r)
		}
	}
	return ClampPronunciation("/" + b.String() + "/")
}

// CleanPronunciation は前後を / で囲み、[ ] を / に揃えます
func CleanPronunciation(p string) string {
	cleaned := strings.TrimSpace(p)
	if !strings.HasPrefix(cleaned, "/") && !strings.HasPrefix(cleaned, "[") {
		cleaned = "/" + cleaned
	}
	if !strings.HasSuffix(cleaned, "/") && !strings.HasSuffix(cleaned, "]") {
		cleaned += "/"
	}
	return ClampPronunciation(strings.NewReplacer("[", "/", "]", "/").Replace(cleaned))
}

// ClampPronunciation は発音記号を model.MaxPronunciationLength 文字に収めます。末尾の / は残します
func ClampPronunciation(p string) string {
	runes := []rune(p)
	if len(runes) <= model.MaxPronunciationLength {
		return p
	}
	if strings.HasSuffix(p, "/") {
		return string(runes[:model.MaxPronunciationLength-1]) + "/"
	}
	return string(runes[:model.MaxPronunciationLength])
}

// MapPartOfSpeech は辞書の品詞名を WordType の値に変換します
func MapPartOfSpeech(partOfSpeech string) string {
	switch p := strings.ToLower(strings.TrimSpace(partOfSpeech)); p {
	case "noun", "verb", "adjective", "adverb", "preposition", "conjunction", "interjection", "pronoun":
		return p
	default:
		return "other"
	}
}
