package healthcheck

import (
	"context"
	"sort"
	"time"
)

// Pinger 可探活的依赖（Postgres、Redis）
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc 把普通函数适配为 Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// HealthChecker 健康检查器
type HealthChecker struct {
	deps    map[string]Pinger
	timeout time.Duration
	version string
}

// NewHealthChecker 创建健康检查器
func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{
		deps:    make(map[string]Pinger),
		timeout: 2 * time.Second,
		version: version,
	}
}

// Register 注册一个需要在就绪检查中探活的依赖；p 为 nil 时忽略
func (h *HealthChecker) Register(name string, p Pinger) *HealthChecker {
	if p != nil {
		h.deps[name] = p
	}
	return h
}

// CheckResult 健康检查结果
type CheckResult struct {
	Status  string            `json:"status"` // "ok" or "error"
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version,omitempty"`
}

// LivenessCheck 存活检查（快速返回，不检查依赖）
func (h *HealthChecker) LivenessCheck() CheckResult {
	return CheckResult{
		Status:  "ok",
		Checks:  map[string]string{"service": "running"},
		Version: h.version,
	}
}

// ReadinessCheck 就绪检查（检查所有依赖）
func (h *HealthChecker) ReadinessCheck(ctx context.Context) CheckResult {
	if ctx == nil {
		ctx = context.Background()
	}
	result := CheckResult{
		Status:  "ok",
		Checks:  make(map[string]string, len(h.deps)),
		Version: h.version,
	}

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.ping(ctx, h.deps[name]); err != nil {
			result.Checks[name] = "error: " + err.Error()
			result.Status = "error"
			continue
		}
		result.Checks[name] = "ok"
	}
	return result
}

func (h *HealthChecker) ping(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return p.PingContext(ctx)
}
