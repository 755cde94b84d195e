// Package remotejob 封装远端生成服务（图片/视频）的任务提交与状态查询。
//
// 一个远端任务的生命周期：Submit 得到 Handle，随后由调用方按固定间隔 Poll，
// 直到拿到 Succeeded / Failed，或者超出轮询预算（TimeoutError）。
package remotejob

import (
	"context"
	"fmt"

	"github.com/azhengyongqin/brandpilot/internal/model"
)

// Handle 远端任务句柄
type Handle struct {
	RemoteID string
	Kind     model.TaskKind
}

// Payload 提交参数
type Payload struct {
	Prompt    string
	ImageURLs []string
	// Model 为空时使用客户端默认模型
	Model string
	// Format 图片为输出格式，视频为画幅比例
	Format string
}

// State 单次查询的三态结果
type State int

const (
	StatePending State = iota
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Outcome 单次 Poll 的结果
type Outcome struct {
	State     State
	ResultURL string
	Reason    string
}

func (o Outcome) Terminal() bool {
	return o.State != StatePending
}

func Pending() Outcome { return Outcome{State: StatePending} }
func Succeeded(url string) Outcome { return Outcome{State: StateSucceeded, ResultURL: url} }
func Failed(reason string) Outcome { return Outcome{State: StateFailed, Reason: reason} }

// Client 远端生成服务
type Client interface {
	Submit(ctx context.Context, kind model.TaskKind, payload Payload) (Handle, error)
	Poll(ctx context.Context, h Handle) (Outcome, error)
}

// SubmissionError 提交失败，Err 为底层的 Transport / RemoteAPI 错误
type SubmissionError struct {
	Kind model.TaskKind
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit %s task: %v", e.Kind, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
