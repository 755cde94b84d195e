package model

// TaskStatus 生成任务（RemoteTask）状态。
// 约定：
// - pending: 已提交到远端，尚未观察到进度
// - generating: 远端已受理，生成中
// - completed: 生成成功，result_url 可用
// - failed: 远端报告失败
// 状态只能单向前进：pending -> generating -> {completed | failed}，终态不可再变。
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusGenerating TaskStatus = "generating"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusGenerating, TaskStatusCompleted, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// Terminal 是否为终态
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

func (s TaskStatus) rank() int {
	switch s {
	case TaskStatusPending:
		return 0
	case TaskStatusGenerating:
		return 1
	case TaskStatusCompleted, TaskStatusFailed:
		return 2
	default:
		return -1
	}
}

// CanTransition 判断 from -> to 是否是合法的前进迁移。
// 终态之后的任何更新、回退以及同级重复更新都返回 false。
func CanTransition(from, to TaskStatus) bool {
	if !from.Valid() || !to.Valid() || from.Terminal() {
		return false
	}
	return to.rank() > from.rank()
}

// Predecessors 返回可以迁移到 to 的所有状态（用于条件 UPDATE 的 where status in (...)）
func Predecessors(to TaskStatus) []TaskStatus {
	var out []TaskStatus
	for _, s := range []TaskStatus{TaskStatusPending, TaskStatusGenerating} {
		if CanTransition(s, to) {
			out = append(out, s)
		}
	}
	return out
}

// TaskKind 生成任务类型
type TaskKind string

const (
	TaskKindImage TaskKind = "image"
	TaskKindVideo TaskKind = "video"
)

func (k TaskKind) Valid() bool {
	return k == TaskKindImage || k == TaskKindVideo
}
