package quiz

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"go_vocab_quiz/internal/model"
)

const (
	// PlaceholderAnswer は誤答が足りないときの埋め草です
	PlaceholderAnswer = "Đáp án tạm thời"
	AnswerCount       = 4
	DistractorCount   = AnswerCount - 1

	DefaultTopWindow      = 15
	DefaultSinglePoolSize = 50
	DefaultListPoolSize   = 100
)

// Config は出題の調整値です
type Config struct {
	TopWindow      int // 正解候補を選ぶ上位件数
	SinglePoolSize int // 単問の誤答プール
	ListPoolSize   int // 一括出題で共有する誤答プール
}

func DefaultConfig() Config {
	return Config{
		TopWindow:      DefaultTopWindow,
		SinglePoolSize: DefaultSinglePoolSize,
		ListPoolSize:   DefaultListPoolSize,
	}
}

// Generator は優先度順リストから問題を組み立てます
type Generator struct {
	cfg      Config
	shuffler *Shuffler
}

func NewGenerator(cfg Config, shuffler *Shuffler) *Generator {
	def := DefaultConfig()
	if cfg.TopWindow <= 0 {
		cfg.TopWindow = def.TopWindow
	}
	if cfg.SinglePoolSize <= 0 {
		cfg.SinglePoolSize = def.SinglePoolSize
	}
	if cfg.ListPoolSize <= 0 {
		cfg.ListPoolSize = def.ListPoolSize
	}
	if shuffler == nil {
		shuffler = NewRandomShuffler()
	}
	return &Generator{cfg: cfg, shuffler: shuffler}
}

func (g *Generator) Config() Config {
	return g.cfg
}

// GroupedShuffle は未学習・学習済みの各グループ内だけをシャッフルし、未学習を先にして連結します
func (g *Generator) GroupedShuffle(prioritized []*model.Vocabulary) []*model.Vocabulary {
	notStudied, studied := SplitGroups(prioritized)
	Shuffle(g.shuffler, notStudied)
	Shuffle(g.shuffler, studied)
	return append(notStudied, studied...)
}

// PickTarget は優先度の最も高い空でないグループの上位 TopWindow 件から1件を一様に選びます。
// 候補が無い場合は model.ErrNoContent を返します。
func (g *Generator) PickTarget(prioritized []*model.Vocabulary) (*model.Vocabulary, error) {
	if len(prioritized) == 0 {
		return nil, model.ErrNoContent
	}
	group, studied := SplitGroups(prioritized)
	if len(group) == 0 {
		group = studied
	}
	window := group[:min(len(group), g.cfg.TopWindow)]
	return window[g.shuffler.Intn(len(window))], nil
}

// SinglePool は単問用の誤答プール (優先度順の先頭 SinglePoolSize 件) です
func (g *Generator) SinglePool(prioritized []*model.Vocabulary) []*model.Vocabulary {
	return prioritized[:min(len(prioritized), g.cfg.SinglePoolSize)]
}

// ListPool は一括出題用の共有誤答プール (先頭 ListPoolSize 件) です
func (g *Generator) ListPool(prioritized []*model.Vocabulary) []*model.Vocabulary {
	return prioritized[:min(len(prioritized), g.cfg.ListPoolSize)]
}

// SampleDistractors は chosen に candidates から誤答を追加して最大 n 件にします。
// 正解と同じID、正解や既出と同じ訳語は除外し、候補は一様に非復元抽出します。
func (g *Generator) SampleDistractors(candidates []*model.Vocabulary, target *model.Vocabulary, chosen []*model.Vocabulary, n int) []*model.Vocabulary {
	out := append([]*model.Vocabulary(nil), chosen...)
	if len(out) >= n {
		return out[:n]
	}

	usedIDs := map[uuid.UUID]struct{}{target.ID: {}}
	usedAnswers := map[string]struct{}{answerKey(target.Vietnamese): {}}
	for _, v := range out {
		usedIDs[v.ID] = struct{}{}
		usedAnswers[answerKey(v.Vietnamese)] = struct{}{}
	}

	eligible := lo.Filter(candidates, func(v *model.Vocabulary, _ int) bool {
		if v == nil {
			return false
		}
		_, dup := usedIDs[v.ID]
		return !dup
	})
	for _, v := range Shuffled(g.shuffler, eligible) {
		if len(out) == n {
			break
		}
		key := answerKey(v.Vietnamese)
		if _, dup := usedAnswers[key]; dup {
			continue
		}
		usedAnswers[key] = struct{}{}
		usedIDs[v.ID] = struct{}{}
		out = append(out, v)
	}
	return out
}

// FallbackSource は memorized を問わず、exclude 以外の単語を最大 limit 件返します
type FallbackSource func(exclude []uuid.UUID, limit int) ([]*model.Vocabulary, error)

// Distractors は pool から誤答を選び、足りなければ fallback から補充します。
// fallback が失敗しても集めた分は返すので、呼び出し側はエラーを記録して続行できます。
func (g *Generator) Distractors(pool []*model.Vocabulary, target *model.Vocabulary, fallback FallbackSource) ([]*model.Vocabulary, error) {
	chosen := g.SampleDistractors(pool, target, nil, DistractorCount)
	if len(chosen) >= DistractorCount || fallback == nil {
		return chosen, nil
	}

	exclude := append(IDs(chosen), target.ID)
	extra, err := fallback(exclude, g.cfg.SinglePoolSize)
	if err != nil {
		return chosen, err
	}
	return g.SampleDistractors(extra, target, chosen, DistractorCount), nil
}

// BuildMultipleChoice は4択問題を組み立てます。誤答が DistractorCount 件に満たない分は PlaceholderAnswer で埋めます。
func (g *Generator) BuildMultipleChoice(target *model.Vocabulary, distractors []*model.Vocabulary) model.MultipleChoiceQuestion {
	answers := make([]string, 0, AnswerCount)
	answers = append(answers, target.Vietnamese)
	for _, d := range distractors[:min(len(distractors), DistractorCount)] {
		answers = append(answers, d.Vietnamese)
	}
	for len(answers) < AnswerCount {
		answers = append(answers, PlaceholderAnswer)
	}

	// 正解の位置は文字列検索ではなく並べ替え後の添字で追う
	order := Shuffled(g.shuffler, []int{0, 1, 2, 3})
	shuffled := make([]string, AnswerCount)
	correct := 0
	for pos, idx := range order {
		shuffled[pos] = answers[idx]
		if idx == 0 {
			correct = pos
		}
	}

	return model.MultipleChoiceQuestion{
		VocabularyID:       target.ID,
		English:            target.English,
		Pronunciation:      target.Pronunciation,
		WordType:           target.WordType,
		Answers:            shuffled,
		CorrectAnswerIndex: correct,
	}
}

// BuildFillBlank は穴埋め問題を組み立てます
func BuildFillBlank(target *model.Vocabulary) model.FillBlankQuestion {
	return model.FillBlankQuestion{
		VocabularyID:  target.ID,
		Vietnamese:    target.Vietnamese,
		English:       target.English,
		Pronunciation: target.Pronunciation,
		WordType:      target.WordType,
		Hint:          Hint(target.English),
	}
}

// Hint は英単語の先頭2文字を返します (1文字目は大文字)
func Hint(english string) string {
	r, size := utf8.DecodeRuneInString(english)
	if r == utf8.RuneError && size <= 1 {
		return ""
	}
	rest := english[size:]
	if r2, size2 := utf8.DecodeRuneInString(rest); size2 > 0 && r2 != utf8.RuneError {
		return string(unicode.ToUpper(r)) + rest[:size2]
	}
	return string(unicode.ToUpper(r))
}

// CheckAnswer は前後の空白を除き、大文字小文字を区別せずに完全一致を判定します
func CheckAnswer(expected, submitted string) bool {
	return strings.EqualFold(strings.TrimSpace(expected), strings.TrimSpace(submitted))
}

func answerKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Paginate は1始まりの page で items を切り出します。範囲外なら空スライスです。
func Paginate[T any](items []T, page, limit int) []T {
	if page < 1 || limit < 1 {
		return []T{}
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := min(start+limit, len(items))
	return items[start:end]
}
