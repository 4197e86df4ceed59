package domain

// ReorderResult describes the outcome of a drag-reorder over a displayed
// task list.
type ReorderResult struct {
	// Tasks is the full list in its new display order with Order fields
	// recomputed (index + 1).
	Tasks []Task
	// Changed holds only the tasks whose numeric position moved; these are
	// the ones that need their order persisted. Tasks outside the span
	// between the old and new index never appear here.
	Changed []Task
	// Moved is false when the drag was a no-op (either id missing, or a
	// task dropped onto itself).
	Moved bool
}

// Reorder moves the dragged task to the target task's position using
// splice semantics: the dragged task is removed from its old index and
// reinserted at the target's index, shifting the neighbors between the two
// indices by one. Order is recomputed as index + 1 for the whole list, and
// Changed collects exactly the tasks whose position differs from the
// input.
//
// If either id is absent from the list, or draggedID == targetID, the
// input is returned unchanged with Moved = false.
func Reorder(tasks []Task, draggedID, targetID string) ReorderResult {
	if draggedID == targetID {
		return ReorderResult{Tasks: tasks}
	}

	oldIdx, newIdx := -1, -1
	for i, t := range tasks {
		switch t.ID {
		case draggedID:
			oldIdx = i
		case targetID:
			newIdx = i
		}
	}
	if oldIdx < 0 || newIdx < 0 {
		return ReorderResult{Tasks: tasks}
	}

	next := make([]Task, 0, len(tasks))
	next = append(next, tasks[:oldIdx]...)
	next = append(next, tasks[oldIdx+1:]...)
	dragged := tasks[oldIdx]
	next = append(next[:newIdx], append([]Task{dragged}, next[newIdx:]...)...)

	var changed []Task
	for i := range next {
		next[i].Order = i + 1
		if positionChanged(tasks, next[i].ID, i) {
			changed = append(changed, next[i])
		}
	}

	return ReorderResult{Tasks: next, Changed: changed, Moved: true}
}

// positionChanged reports whether the task with the given id sat at a
// different index in the original list.
func positionChanged(orig []Task, id string, idx int) bool {
	for i, t := range orig {
		if t.ID == id {
			return i != idx
		}
	}
	return true
}
