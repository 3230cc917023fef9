// Package quiz は出題ロジック (優先度の並べ替え、問題生成) をまとめたものです。
// ストレージに依存せず、メモリ上の単語スライスだけを扱います。
package quiz

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"go_vocab_quiz/internal/model"
)

// Prioritize は未暗記の単語を学習優先度順に並べた新しいスライスを返します。
//
//  1. studied=false が先
//  2. lastStudied 昇順 (nil が先)
//  3. lastReviewed 昇順 (nil が先)
//  4. createdAt 降順
//
// memorized=true の単語は結果に含まれません。入力スライスは変更しません。
func Prioritize(entries []*model.Vocabulary) []*model.Vocabulary {
	active := lo.Filter(entries, func(v *model.Vocabulary, _ int) bool {
		return v != nil && !v.Memorized
	})
	slices.SortStableFunc(active, comparePriority)
	return active
}

func comparePriority(a, b *model.Vocabulary) int {
	if a.Studied != b.Studied {
		if !a.Studied {
			return -1
		}
		return 1
	}
	if c := compareNilFirst(a.LastStudied, b.LastStudied); c != 0 {
		return c
	}
	if c := compareNilFirst(a.LastReviewed, b.LastReviewed); c != 0 {
		return c
	}
	// 新しい単語が先
	return b.CreatedAt.Compare(a.CreatedAt)
}

func compareNilFirst(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

// SplitGroups は優先度順のリストを未学習グループと学習済みグループに分けます
func SplitGroups(prioritized []*model.Vocabulary) (notStudied, studied []*model.Vocabulary) {
	notStudied = lo.Filter(prioritized, func(v *model.Vocabulary, _ int) bool { return !v.Studied })
	studied = lo.Filter(prioritized, func(v *model.Vocabulary, _ int) bool { return v.Studied })
	return notStudied, studied
}

// IDs は単語のIDを取り出します
func IDs(entries []*model.Vocabulary) []uuid.UUID {
	return lo.Map(entries, func(v *model.Vocabulary, _ int) uuid.UUID { return v.ID })
}
