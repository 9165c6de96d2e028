package round

import (
	"sync"

	"github.com/palemoky/super-rummy/internal/apperrors"
)

// Registry 进行中的对局，按大厅代码索引
type Registry struct {
	mu     sync.RWMutex
	rounds map[string]*Round
}

// NewRegistry 创建注册表
func NewRegistry() *Registry {
	return &Registry{rounds: make(map[string]*Round)}
}

// Get 获取进行中的对局
func (g *Registry) Get(code string) *Round {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rounds[code]
}

// Count 进行中的对局数
func (g *Registry) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rounds)
}

func (g *Registry) add(r *Round) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.rounds[r.Code()]; ok {
		return apperrors.ErrGameStarted
	}
	g.rounds[r.Code()] = r
	return nil
}

func (g *Registry) remove(code string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.rounds, code)
}
