// internal/model/lookup.go
package model

// Definition は辞書の定義1件です
type Definition struct {
	PartOfSpeech string `json:"partOfSpeech"`
	Definition   string `json:"definition"`
	Example      string `json:"example,omitempty"`
}

// WordInfo は発音と定義 (最大2件) です
type WordInfo struct {
	Pronunciation string       `json:"pronunciation"`
	Definitions   []Definition `json:"definitions"`
}

// Translation は英越翻訳の結果です
type Translation struct {
	Vietnamese  string       `json:"vietnamese"`
	Definitions []Definition `json:"definitions"`
	Success     bool         `json:"success"`
}
