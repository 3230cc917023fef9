package quiz

import (
	"math/rand"
	"sync"
	"time"
)

// Shuffler は並行利用できる乱数源です
type Shuffler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewShuffler はシードを固定した Shuffler を返します (テスト用)
func NewShuffler(seed int64) *Shuffler {
	return &Shuffler{rnd: rand.New(rand.NewSource(seed))}
}

// NewRandomShuffler は現在時刻をシードにした Shuffler を返します
func NewRandomShuffler() *Shuffler {
	return NewShuffler(time.Now().UnixNano())
}

// Intn は [0, n) の一様乱数を返します
func (s *Shuffler) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// Shuffle は Fisher–Yates で items をその場で一様にシャッフルします
func Shuffle[T any](s *Shuffler, items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(items) - 1; i > 0; i-- {
		j := s.rnd.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Shuffled はシャッフル済みのコピーを返します
func Shuffled[T any](s *Shuffler, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	Shuffle(s, out)
	return out
}
