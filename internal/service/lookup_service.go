package service

import (
	"fmt"
	"sync"

	"github.com/mautops/headcount-gin/internal/repository"
)

// LookupItem 字典项
type LookupItem struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// LookupService 字典服务接口
// 字典值按类别组织,启动时整体加载到内存,可随时重载
type LookupService interface {
	Get(category string) []LookupItem
	Categories() []string
	Reload() error
}

// lookupService 字典服务实现
type lookupService struct {
	lookupRepo repository.LookupRepository
	mu         sync.RWMutex
	catalog    map[string][]LookupItem
	order      []string
}

// NewLookupService 创建字典服务并加载目录
func NewLookupService(lookupRepo repository.LookupRepository) (LookupService, error) {
	s := &lookupService{
		lookupRepo: lookupRepo,
		catalog:    make(map[string][]LookupItem),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get 获取指定类别的字典项,保持配置的排序
func (s *lookupService) Get(category string) []LookupItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.catalog[category]
	result := make([]LookupItem, len(items))
	copy(result, items)
	return result
}

// Categories 列出所有类别
func (s *lookupService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]string, len(s.order))
	copy(result, s.order)
	return result
}

// Reload 重新加载字典目录
func (s *lookupService) Reload() error {
	values, err := s.lookupRepo.FindAllActive()
	if err != nil {
		return fmt.Errorf("failed to load lookup values: %w", err)
	}

	catalog := make(map[string][]LookupItem)
	order := make([]string, 0)
	for _, v := range values {
		if _, exists := catalog[v.Category]; !exists {
			order = append(order, v.Category)
		}
		catalog[v.Category] = append(catalog[v.Category], LookupItem{
			ID:    v.ID,
			Value: v.Value,
			Label: v.Label,
		})
	}

	s.mu.Lock()
	s.catalog = catalog
	s.order = order
	s.mu.Unlock()

	return nil
}
