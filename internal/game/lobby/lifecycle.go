package lobby

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Run 定期续期大厅代码并保存大厅快照，ctx 结束时释放所有代码
func (m *Manager) Run(ctx context.Context, snapshotInterval time.Duration) error {
	refresh := time.NewTicker(m.codeTTL / 3)
	defer refresh.Stop()
	snapshot := time.NewTicker(snapshotInterval)
	defer snapshot.Stop()

	for {
		select {
		case <-ctx.Done():
			m.releaseAll()
			m.Wait()
			return nil
		case <-refresh.C:
			m.refreshCodes(ctx)
		case <-snapshot.C:
			m.saveSnapshots()
		}
	}
}

// refreshCodes 续期本进程持有的所有大厅代码
func (m *Manager) refreshCodes(ctx context.Context) {
	for _, l := range m.all() {
		ctx, cancel := context.WithTimeout(ctx, storeTimeout)
		if err := m.store.RefreshCode(ctx, l.code, m.codeTTL); err != nil {
			log.WithField("lobby", l.code).WithError(err).Warn("⚠️ 大厅代码续期失败")
		}
		cancel()
	}
}

// saveSnapshots 保存所有大厅的快照
func (m *Manager) saveSnapshots() {
	for _, l := range m.all() {
		l.mu.Lock()
		if !l.closed {
			m.saveLobby(l.snapshot())
		}
		l.mu.Unlock()
	}
}

// releaseAll 停服时释放所有大厅代码
func (m *Manager) releaseAll() {
	for _, l := range m.all() {
		code := l.code
		m.async(func(ctx context.Context) error { return m.store.ReleaseCode(ctx, code) })
	}
	log.Infof("🧹 已释放 %d 个大厅代码", m.Count())
}
