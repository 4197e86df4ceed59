package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func groupFixture() ([]Task, PhaseList) {
	phases := PhaseList{
		{ID: "ph-design", Name: "Design", ProjectID: "p1"},
		{ID: "ph-build", Name: "Build", ProjectID: "p1"},
	}
	alice := &User{ID: "u1", Name: "Alice Johnson"}
	bob := &User{ID: "u2", Name: "Bob Reyes"}
	tasks := []Task{
		{ID: "t1", Name: "Wireframes", Status: StatusDone, Assignee: alice, PhaseID: strptr("ph-design"), Order: 1},
		{ID: "t2", Name: "API schema", Status: StatusInProgress, Assignee: bob, PhaseID: strptr("ph-build"), Order: 2},
		{ID: "t3", Name: "Login screen", Status: StatusTodo, PhaseID: strptr("ph-design"), Order: 3},
		{ID: "t4", Name: "Orphaned cleanup", Status: StatusTodo, PhaseID: strptr("ph-deleted"), Order: 4},
		{ID: "t5", Name: "Deploy pipeline", Status: StatusInProgress, Assignee: alice, Order: 5},
	}
	return tasks, phases
}

func TestGroupTasks_ByPhase(t *testing.T) {
	tasks, phases := groupFixture()

	groups := GroupTasks(tasks, GroupByPhase, "", phases)

	require.Len(t, groups, 3)
	assert.Equal(t, "Design", groups[0].Label)
	assert.Equal(t, []string{"t1", "t3"}, idSequence(groups[0].Tasks))
	assert.Equal(t, "Build", groups[1].Label)
	assert.Equal(t, []string{"t2"}, idSequence(groups[1].Tasks))
	// dangling phase reference and nil phase both land under No Phase
	assert.Equal(t, NoPhaseLabel, groups[2].Label)
	assert.Equal(t, []string{"t4", "t5"}, idSequence(groups[2].Tasks))
}

func TestGroupTasks_PartitionIsExact(t *testing.T) {
	tasks, phases := groupFixture()

	for _, key := range GroupKeys() {
		groups := GroupTasks(tasks, key, "", phases)

		seen := map[string]int{}
		for _, g := range groups {
			for _, task := range g.Tasks {
				seen[task.ID]++
			}
		}
		require.Len(t, seen, len(tasks), "key %s", key)
		for _, task := range tasks {
			assert.Equal(t, 1, seen[task.ID], "key %s task %s", key, task.ID)
		}
	}
}

func TestGroupTasks_ByAssignee(t *testing.T) {
	tasks, phases := groupFixture()

	groups := GroupTasks(tasks, GroupByAssignee, "", phases)

	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Label
	}
	assert.Equal(t, []string{"Alice Johnson", "Bob Reyes", UnassignedLabel}, labels)
	// nil assignees group under Unassigned
	assert.Equal(t, []string{"t3", "t4"}, idSequence(groups[2].Tasks))
}

func TestGroupTasks_ByStatusFollowsWorkflowOrder(t *testing.T) {
	tasks, phases := groupFixture()

	groups := GroupTasks(tasks, GroupByStatus, "", phases)

	require.Len(t, groups, 3)
	assert.Equal(t, "To Do", groups[0].Label)
	assert.Equal(t, "In Progress", groups[1].Label)
	assert.Equal(t, "Done", groups[2].Label)
	// no empty groups for the statuses nothing maps to
}

func TestGroupTasks_None(t *testing.T) {
	tasks, phases := groupFixture()

	groups := GroupTasks(tasks, GroupByNone, "", phases)

	require.Len(t, groups, 1)
	assert.Equal(t, AllTasksLabel, groups[0].Label)
	assert.Len(t, groups[0].Tasks, len(tasks))
}

func TestGroupTasks_SearchBeforeGrouping(t *testing.T) {
	tasks, phases := groupFixture()

	groups := GroupTasks(tasks, GroupByPhase, "screen", phases)

	require.Len(t, groups, 1)
	assert.Equal(t, "Design", groups[0].Label)
	assert.Equal(t, []string{"t3"}, idSequence(groups[0].Tasks))

	// search still applies with no grouping
	groups = GroupTasks(tasks, GroupByNone, "SCREEN", phases)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"t3"}, idSequence(groups[0].Tasks))

	// nothing matches: no groups at all
	assert.Empty(t, GroupTasks(tasks, GroupByStatus, "zzz", phases))
}

func TestGroupTasks_SearchMatchesDescription(t *testing.T) {
	tasks := []Task{
		{ID: "t1", Name: "Alpha", Description: "tune the cache layer"},
		{ID: "t2", Name: "Beta"},
	}

	groups := GroupTasks(tasks, GroupByNone, "Cache", nil)

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"t1"}, idSequence(groups[0].Tasks))
}

func TestPhaseList_LabelFor(t *testing.T) {
	phases := PhaseList{{ID: "ph-1", Name: "Kickoff"}}

	assert.Equal(t, "Kickoff", phases.LabelFor(strptr("ph-1")))
	assert.Equal(t, NoPhaseLabel, phases.LabelFor(strptr("ph-gone")))
	assert.Equal(t, NoPhaseLabel, phases.LabelFor(nil))
}
