// Package lookup は外部の辞書・翻訳APIへの問い合わせをまとめます。
// 外部APIが失敗しても規則ベースの発音生成や簡易辞書に切り替えるので、呼び出し側にエラーは返しません。
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
)

// Config は外部APIの設定です
type Config struct {
	DictionaryURL string
	TranslateURL  string
	Timeout       time.Duration
	CacheTTL      time.Duration
}

// Service は発音・語義・翻訳の問い合わせ口です
type Service interface {
	Pronunciation(ctx context.Context, word string) string
	WordInfo(ctx context.Context, word string) model.WordInfo
	Translate(ctx context.Context, word string) model.Translation
}

type service struct {
	cfg    Config
	client *http.Client
	cache  Cache
	group  singleflight.Group
}

func NewService(cfg Config, client *http.Client, cache Cache) Service {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if cache == nil {
		cache = NewNoopCache()
	}
	return &service{cfg: cfg, client: client, cache: cache}
}

// dictionaryEntry は dictionaryapi.dev のレスポンス1件です
type dictionaryEntry struct {
	Word      string `json:"word"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

type translateResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

func (s *service) Pronunciation(ctx context.Context, word string) string {
	logger := middleware.GetLogger(ctx)
	w := normalizeWord(word)

	entry, err := s.dictionary(ctx, w)
	if err != nil {
		logger.Warn("Dictionary lookup failed, generating pronunciation", "word", w, "error", err)
		return GeneratePronunciation(w)
	}
	if p := selectPronunciation(entry); p != "" {
		return CleanPronunciation(p)
	}
	return GeneratePronunciation(w)
}

// selectPronunciation は米国式らしい発音記号を優先し、なければ最初の発音記号を返します
func selectPronunciation(entry *dictionaryEntry) string {
	for _, p := range entry.Phonetics {
		if p.Text == "" || !strings.ContainsAny(p.Text, "/[") {
			continue
		}
		if p.Audio == "" || strings.Contains(p.Audio, "-us") || strings.Contains(p.Audio, "_us") {
			return p.Text
		}
	}
	for _, p := range entry.Phonetics {
		if p.Text != "" {
			return p.Text
		}
	}
	return ""
}

func (s *service) WordInfo(ctx context.Context, word string) model.WordInfo {
	logger := middleware.GetLogger(ctx)
	w := normalizeWord(word)

	entry, err := s.dictionary(ctx, w)
	if err != nil {
		logger.Warn("Dictionary lookup failed, returning generated word info", "word", w, "error", err)
		return model.WordInfo{Pronunciation: GeneratePronunciation(w), Definitions: []model.Definition{}}
	}

	info := model.WordInfo{Definitions: []model.Definition{}}
	for _, p := range entry.Phonetics {
		if p.Text != "" {
			info.Pronunciation = p.Text
			break
		}
	}
	if info.Pronunciation == "" {
		info.Pronunciation = GeneratePronunciation(w)
	}

	// 最初の品詞の定義を最大2件
	if len(entry.Meanings) > 0 {
		m := entry.Meanings[0]
		for _, d := range m.Definitions[:min(len(m.Definitions), 2)] {
			info.Definitions = append(info.Definitions, model.Definition{
				PartOfSpeech: MapPartOfSpeech(m.PartOfSpeech),
				Definition:   d.Definition,
				Example:      d.Example,
			})
		}
	}
	return info
}

func (s *service) Translate(ctx context.Context, word string) model.Translation {
	logger := middleware.GetLogger(ctx)
	w := normalizeWord(word)

	translated, err := s.translate(ctx, w)
	if err != nil {
		logger.Warn("Translation lookup failed, using basic dictionary", "word", w, "error", err)
		return BasicTranslation(w)
	}
	// 訳せずに英語がそのまま返ってきた場合は簡易辞書を優先する
	if strings.EqualFold(strings.TrimSpace(translated), w) {
		return BasicTranslation(w)
	}
	return model.Translation{Vietnamese: translated, Definitions: []model.Definition{}, Success: true}
}

// dictionary はキャッシュ・同時リクエストの集約付きで辞書APIを呼びます
func (s *service) dictionary(ctx context.Context, word string) (*dictionaryEntry, error) {
	if word == "" {
		return nil, fmt.Errorf("%w: empty word", model.ErrInvalidInput)
	}
	raw, err := s.cached(ctx, "dict:"+word, func() (string, error) {
		return s.fetch(ctx, s.cfg.DictionaryURL+"/"+url.PathEscape(word))
	})
	if err != nil {
		return nil, err
	}

	var entries []dictionaryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: decode dictionary response: %v", model.ErrUpstream, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no dictionary entry for %q", model.ErrUpstream, word)
	}
	return &entries[0], nil
}

func (s *service) translate(ctx context.Context, word string) (string, error) {
	if word == "" {
		return "", fmt.Errorf("%w: empty word", model.ErrInvalidInput)
	}
	raw, err := s.cached(ctx, "tr:"+word, func() (string, error) {
		q := url.Values{}
		q.Set("q", word)
		q.Set("langpair", "en|vi")
		return s.fetch(ctx, s.cfg.TranslateURL+"?"+q.Encode())
	})
	if err != nil {
		return "", err
	}

	var resp translateResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return "", fmt.Errorf("%w: decode translation response: %v", model.ErrUpstream, err)
	}
	text := strings.TrimSpace(resp.ResponseData.TranslatedText)
	if text == "" {
		return "", fmt.Errorf("%w: empty translation for %q", model.ErrUpstream, word)
	}
	return text, nil
}

// cached はキャッシュを見て、なければ fetch します。成功した結果だけを保存します
func (s *service) cached(ctx context.Context, key string, fetch func() (string, error)) (string, error) {
	logger := middleware.GetLogger(ctx)

	if val, ok, err := s.cache.Get(ctx, key); err != nil {
		logger.Warn("Lookup cache get failed", "key", key, "error", err)
	} else if ok {
		return val, nil
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		body, err := fetch()
		if err != nil {
			return "", err
		}
		if err := s.cache.Set(ctx, key, body, s.cfg.CacheTTL); err != nil {
			logger.Warn("Lookup cache set failed", "key", key, "error", err)
		}
		return body, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		logger.Debug("Lookup result shared with concurrent request", "key", key)
	}
	return v.(string), nil
}

func (s *service) fetch(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", model.ErrUpstream, resp.StatusCode)
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: timeout", model.ErrUpstream)
		}
		return "", fmt.Errorf("%w: read body: %v", model.ErrUpstream, err)
	}
	return string(body), nil
}

func (s *service) timeout() time.Duration {
	if s.cfg.Timeout > 0 {
		return s.cfg.Timeout
	}
	return 5 * time.Second
}
