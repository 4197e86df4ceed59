package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskflow/taskflow/internal/types"
	"github.com/taskflow/taskflow/internal/ui/styles"
)

func TestRender_Empty(t *testing.T) {
	r := New(styles.New())

	assert.Empty(t, r.Render(nil, 120))
}

func TestRender_StacksMessages(t *testing.T) {
	r := New(styles.New())
	toasts := []types.Toast{
		types.NewToast(types.ToastError, "Couldn't save task", 4*time.Second),
		types.NewToast(types.ToastSuccess, "Task deleted", 4*time.Second),
	}

	out := r.Render(toasts, 120)

	assert.Contains(t, out, "Couldn't save task")
	assert.Contains(t, out, "Task deleted")
}

func TestToast_Expiry(t *testing.T) {
	toast := types.NewToast(types.ToastInfo, "hi", 10*time.Millisecond)

	assert.False(t, toast.Expired(time.Now()))
	assert.True(t, toast.Expired(time.Now().Add(time.Second)))
}
