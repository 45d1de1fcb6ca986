package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentrelay/core"
)

func TestInMemoryStore_RecordAndMessages(t *testing.T) {
	store := NewInMemoryStore()

	store.Record("run-1", core.NewUserMessage("task"))
	store.Record("run-1", core.NewAgentMessage(core.NodeOrchestrator, "working"))

	msgs, ok := store.Messages("run-1")
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "task", msgs[0].Text)
	assert.Equal(t, "working", msgs[1].Text)
}

func TestInMemoryStore_UnknownRun(t *testing.T) {
	store := NewInMemoryStore()

	msgs, ok := store.Messages("nope")
	assert.False(t, ok)
	assert.Nil(t, msgs)
}

func TestInMemoryStore_CopiesOut(t *testing.T) {
	store := NewInMemoryStore()
	store.Record("run-1", core.NewUserMessage("original"))

	msgs, _ := store.Messages("run-1")
	msgs[0].Text = "mutated"

	again, _ := store.Messages("run-1")
	assert.Equal(t, "original", again[0].Text)
}

func TestInMemoryStore_RunIDsSorted(t *testing.T) {
	store := NewInMemoryStore()
	store.Record("b", core.NewUserMessage("x"))
	store.Record("a", core.NewUserMessage("y"))
	store.Record("c", core.NewUserMessage("z"))

	assert.Equal(t, []string{"a", "b", "c"}, store.RunIDs())
}

func TestInMemoryStore_Delete(t *testing.T) {
	store := NewInMemoryStore()
	store.Record("run-1", core.NewUserMessage("x"))

	store.Delete("run-1")
	_, ok := store.Messages("run-1")
	assert.False(t, ok)
	assert.Zero(t, store.Len())

	store.Delete("run-1") // no-op
}

func TestInMemoryStore_ConcurrentRecord(t *testing.T) {
	store := NewInMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			runID := fmt.Sprintf("run-%d", n%2)
			for j := 0; j < 50; j++ {
				store.Record(runID, core.NewUserMessage("m"))
			}
		}(i)
	}
	wg.Wait()

	a, _ := store.Messages("run-0")
	b, _ := store.Messages("run-1")
	assert.Equal(t, 500, len(a)+len(b))
}
