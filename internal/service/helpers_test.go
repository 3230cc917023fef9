package service

import (
	"context"
	"sync"
	"time"

	"go_vocab_quiz/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB はトランザクション用のインメモリDBを返します。リポジトリはモックなのでテーブルは不要
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

// stubLookup は常に固定の発音記号を返します。delay があれば ctx を守りながら待ちます
type stubLookup struct {
	mu    sync.Mutex
	calls []string
	delay time.Duration
}

func (l *stubLookup) Pronunciation(ctx context.Context, word string) string {
	l.mu.Lock()
	l.calls = append(l.calls, word)
	l.mu.Unlock()

	if l.delay > 0 {
		select {
		case <-time.After(l.delay):
		case <-ctx.Done():
			return ""
		}
	}
	return "/" + word + "/"
}

func boolPtr(b bool) *bool { return &b }

func vocab(english, vietnamese string) *model.Vocabulary {
	return &model.Vocabulary{English: english, Vietnamese: vietnamese, WordType: model.WordTypeNoun}
}
