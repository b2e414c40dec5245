package Workflow

import "CareBridge/Models"

// TransitionPolicy decides whether a task may move from one status to another.
type TransitionPolicy func(from, to Models.TaskStatus) bool

// Permissive allows every transition, including back out of completed.
func Permissive(from, to Models.TaskStatus) bool { return true }

// ForwardOnly allows a status to move only towards completed in the order of
// Models.TaskStatuses, plus the pending pause from and back to any active status.
func ForwardOnly(from, to Models.TaskStatus) bool {
	if from == to {
		return true
	}
	if from == Models.TaskCompleted {
		return false
	}
	if to == Models.TaskPending || from == Models.TaskPending {
		return to != Models.TaskYetToStart
	}
	return rank(to) > rank(from)
}

func rank(s Models.TaskStatus) int {
	for i, st := range Models.TaskStatuses {
		if st == s {
			return i
		}
	}
	return -1
}
