// internal/model/vocabulary.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// WordType は品詞です
type WordType string

const (
	WordTypeNoun         WordType = "noun"
	WordTypeVerb         WordType = "verb"
	WordTypeAdjective    WordType = "adjective"
	WordTypeAdverb       WordType = "adverb"
	WordTypePreposition  WordType = "preposition"
	WordTypeConjunction  WordType = "conjunction"
	WordTypeInterjection WordType = "interjection"
	WordTypePronoun      WordType = "pronoun"
	WordTypeOther        WordType = "other"
)

// WordTypes は有効な品詞の一覧です (validatorのoneofと同じ順)
var WordTypes = []WordType{
	WordTypeNoun, WordTypeVerb, WordTypeAdjective, WordTypeAdverb, WordTypePreposition,
	WordTypeConjunction, WordTypeInterjection, WordTypePronoun, WordTypeOther,
}

// ParseWordType は文字列を品詞に変換します。不明な値・空文字は other になります
func ParseWordType(s string) WordType {
	for _, t := range WordTypes {
		if string(t) == s {
			return t
		}
	}
	return WordTypeOther
}

// IsValidWordType は s が有効な品詞かどうかを返します
func IsValidWordType(s string) bool {
	for _, t := range WordTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// MaxPronunciationLength は保存できる発音記号の最大文字数です (pronunciation 列の長さ)
const MaxPronunciationLength = 200

// Vocabulary はユーザーごとの英越単語ペアです
type Vocabulary struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID       *uuid.UUID `gorm:"type:uuid;index" json:"ownerId,omitempty"` // 移行前のデータはNULL
	English       string     `gorm:"not null" json:"english"`
	Vietnamese    string     `gorm:"not null" json:"vietnamese"`
	WordType      WordType   `gorm:"type:varchar(20);not null;default:'other'" json:"wordType"`
	Pronunciation string     `gorm:"not null;default:''" json:"pronunciation"`
	Studied       bool       `gorm:"not null;default:false" json:"studied"`
	LastStudied   *time.Time `json:"lastStudied"`
	LastReviewed  *time.Time `json:"lastReviewed"`
	ReviewCount   int        `gorm:"not null;default:0" json:"reviewCount"`
	Memorized     bool       `gorm:"not null;default:false;index" json:"memorized"`
	CreatedAt     time.Time  `gorm:"not null;index" json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (Vocabulary) TableName() string {
	return "vocabularies"
}

// VocabularyFilter は一覧取得の検索条件です
type VocabularyFilter struct {
	Search    string
	WordType  string
	Memorized *bool
	Offset    int
	Limit     int
}

// 単語作成リクエストDTO
type AddVocabularyRequest struct {
	English       string `json:"english" validate:"required,notblank,max=200"`
	Vietnamese    string `json:"vietnamese" validate:"required,notblank,max=500"`
	WordType      string `json:"wordType" validate:"omitempty,wordtype"`
	Pronunciation string `json:"pronunciation" validate:"max=200"`
}

// 単語更新（全体）リクエストDTO
type UpdateVocabularyRequest struct {
	English       string `json:"english" validate:"required,notblank,max=200"`
	Vietnamese    string `json:"vietnamese" validate:"required,notblank,max=500"`
	WordType      string `json:"wordType" validate:"omitempty,wordtype"`
	Pronunciation string `json:"pronunciation" validate:"max=200"`
	Memorized     *bool  `json:"memorized,omitempty"`
}

type SetStudiedRequest struct {
	Studied *bool `json:"studied" validate:"required"`
}

type SetMemorizedRequest struct {
	Memorized *bool `json:"memorized" validate:"required"`
}

type CheckFillBlankRequest struct {
	VocabularyID string `json:"vocabularyId" validate:"required,uuid"`
	Answer       string `json:"answer"`
}

type CheckFillBlankResponse struct {
	Correct bool   `json:"correct"`
	English string `json:"english"`
}

// ImportResult はxlsxインポートの結果です
type ImportResult struct {
	Imported int         `json:"imported"`
	Skipped  []ImportRow `json:"skipped"`
}

type ImportRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
