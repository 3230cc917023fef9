// internal/model/quiz.go
package model

import "github.com/google/uuid"

// Pagination はページング情報です (current, total は1始まり)
type Pagination struct {
	Current    int  `json:"current"`
	Total      int  `json:"total"`
	Count      int  `json:"count"`
	TotalItems int  `json:"totalItems"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

func NewPagination(page, limit, count, totalItems int) Pagination {
	total := 0
	if limit > 0 {
		total = (totalItems + limit - 1) / limit
	}
	return Pagination{
		Current:    page,
		Total:      total,
		Count:      count,
		TotalItems: totalItems,
		HasNext:    page < total,
		HasPrev:    page > 1,
	}
}

// MultipleChoiceQuestion は4択問題です
type MultipleChoiceQuestion struct {
	VocabularyID       uuid.UUID `json:"vocabularyId"`
	English            string    `json:"english"`
	Pronunciation      string    `json:"pronunciation"`
	WordType           WordType  `json:"wordType"`
	Answers            []string  `json:"answers"`
	CorrectAnswerIndex int       `json:"correctAnswerIndex"`
}

// FillBlankQuestion は穴埋め問題です
type FillBlankQuestion struct {
	VocabularyID  uuid.UUID `json:"vocabularyId"`
	Vietnamese    string    `json:"vietnamese"`
	English       string    `json:"english"`
	Pronunciation string    `json:"pronunciation"`
	WordType      WordType  `json:"wordType"`
	Hint          string    `json:"hint"`
}
