package signature

import (
	"context"
	"sync"
)

// StaticInspector answers lookups from a fixed set of packages. It stands
// in for the host package manager on platforms without one.
type StaticInspector struct {
	mu       sync.RWMutex
	packages map[string]PackageInfo
}

func NewStaticInspector(packages ...PackageInfo) *StaticInspector {
	s := &StaticInspector{packages: make(map[string]PackageInfo, len(packages))}
	for _, p := range packages {
		s.packages[p.PackageName] = p
	}
	return s
}

// Install adds or replaces a package.
func (s *StaticInspector) Install(info PackageInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages[info.PackageName] = info
}

func (s *StaticInspector) Lookup(ctx context.Context, packageName string) (*PackageInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.packages[packageName]
	if !ok {
		return nil, ErrPackageNotFound
	}
	return &info, nil
}
