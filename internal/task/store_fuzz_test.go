package task_test

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/tasks/internal/task"
)

// byteStream hands out fuzz input one byte at a time; exhausted reads are zero.
type byteStream struct {
	bytes []byte
	pos   int
}

func (s *byteStream) hasMore() bool {
	return s.pos < len(s.bytes)
}

func (s *byteStream) next() byte {
	if s.pos >= len(s.bytes) {
		return 0
	}

	b := s.bytes[s.pos]
	s.pos++

	return b
}

// storeModel is the expected state of a store. Intentionally simple so
// correctness is obvious.
type storeModel struct {
	statuses map[int]task.Status
	order    []int
}

func (m *storeModel) add() int {
	id := 0
	for _, existing := range m.order {
		id = max(id, existing)
	}

	id++
	m.statuses[id] = task.StatusTodo
	m.order = append(m.order, id)

	return id
}

func (m *storeModel) adjust(id int, status task.Status) (task.Status, bool) {
	current, ok := m.statuses[id]
	if !ok {
		return 0, false
	}

	if current == status && (status == task.StatusHold || status == task.StatusDone) {
		status = task.StatusTodo
	}

	m.statuses[id] = status

	return status, true
}

func (m *storeModel) remove(id int) bool {
	if _, ok := m.statuses[id]; !ok {
		return false
	}

	delete(m.statuses, id)
	m.order = slices.DeleteFunc(m.order, func(existing int) bool { return existing == id })

	return true
}

func FuzzStore_Matches_Model_When_Random_Ops_Applied(f *testing.F) {
	f.Add([]byte{0, 0, 1, 1, 2, 1, 1, 1, 3, 2})
	f.Add([]byte{0, 0, 0, 3, 2, 0, 1, 3, 2, 2, 3, 3})
	f.Add([]byte{1, 5, 3, 9, 0, 2, 1, 2, 1, 2})

	f.Fuzz(func(t *testing.T, data []byte) {
		stream := &byteStream{bytes: data}
		store := task.NewStore()
		model := &storeModel{statuses: map[int]task.Status{}}
		statuses := []task.Status{task.StatusTodo, task.StatusHold, task.StatusDone, task.StatusBlocked}

		for step := 0; stream.hasMore() && step < 200; step++ {
			op := stream.next() % 3
			id := int(stream.next()%8) + 1

			switch op {
			case 0:
				added, err := store.Add("fuzz", &scriptedPrompter{answers: []string{"t", "1", "1"}}, task.NewResolver(task.DefaultSometime), storeNow)
				if err != nil {
					t.Fatalf("step %d: add: %v", step, err)
				}

				if want := model.add(); added.ID != want {
					t.Fatalf("step %d: add got id %d, want %d", step, added.ID, want)
				}
			case 1:
				status := statuses[int(stream.next())%len(statuses)]
				got, err := store.AdjustStatus(id, status)
				want, ok := model.adjust(id, status)

				if !ok {
					if !errors.Is(err, task.ErrTaskNotFound) {
						t.Fatalf("step %d: adjust missing %d: got err %v", step, id, err)
					}

					continue
				}

				if err != nil || got.Status != want {
					t.Fatalf("step %d: adjust %d to %s: got %s (%v), want %s", step, id, status, got.Status, err, want)
				}
			case 2:
				if got, want := store.Remove(id), model.remove(id); got != want {
					t.Fatalf("step %d: remove %d: got %v, want %v", step, id, got, want)
				}
			}
		}

		path := filepath.Join(t.TempDir(), "tasks.csv")
		if err := task.Save(path, store); err != nil {
			t.Fatalf("save: %v", err)
		}

		loaded, err := task.Load(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}

		gotOrder := make([]int, 0, loaded.Len())
		for _, loadedTask := range loaded.Tasks() {
			gotOrder = append(gotOrder, loadedTask.ID)

			if loadedTask.Status != model.statuses[loadedTask.ID] {
				t.Fatalf("task %d: status %s after reload, want %s", loadedTask.ID, loadedTask.Status, model.statuses[loadedTask.ID])
			}
		}

		if diff := cmp.Diff(model.order, gotOrder, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("order after reload (-want +got):\n%s", diff)
		}
	})
}
