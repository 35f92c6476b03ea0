package task_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/tasks/internal/task"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func Test_Load_Missing_File_Returns_Empty_Store(t *testing.T) {
	t.Parallel()

	store, err := task.Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func Test_Save_Then_Load_Round_Trips(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "tasks.csv")
	original := task.NewStore(
		task.Task{ID: 3, Description: "Plain", Tags: []string{"work"}, Due: task.Date(2024, time.January, 2), Priority: task.PriorityHigh, Status: task.StatusHold},
		task.Task{ID: 1, Description: `Quote "this", and commas`, Tags: []string{"home", "errands"}, Due: task.Date(2023, time.December, 31), Priority: task.PriorityLow, Status: task.StatusDone},
		task.Task{ID: 9, Description: "Untagged", Tags: nil, Due: task.Date(2025, time.July, 4), Priority: task.PriorityMedium, Status: task.StatusBlocked},
	)

	require.NoError(t, task.Save(path, original))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := task.Load(path)
	require.NoError(t, err)

	byID := cmpopts.SortSlices(func(a, b task.Task) bool { return a.ID < b.ID })
	if diff := cmp.Diff(original.Tasks(), loaded.Tasks(), byID, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func Test_Save_Then_Load_Keeps_Tags_Containing_Separator(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.csv")

	added, err := task.NewStore().Add("Odd tags", &scriptedPrompter{answers: []string{`a;b, c, say "hi"`, "2024-01-01", "1"}}, task.NewResolver(time.Time{}), storeNow)
	require.NoError(t, err)
	require.Equal(t, []string{"a;b", "c", `say "hi"`}, added.Tags)

	require.NoError(t, task.Save(path, task.NewStore(added)))

	loaded, err := task.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, added.Tags, loaded.Tasks()[0].Tags)
}

func Test_Load_Reads_Plain_Separated_Tags(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.csv")
	writeFile(t, path, "1,Buy milk,Todo,2024-01-02,Low,home;errands\n")

	store, err := task.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "errands"}, store.Tasks()[0].Tags)
}

func Test_Save_Writes_Header_And_Columns(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.csv")
	store := task.NewStore(task.Task{ID: 1, Description: "Buy milk", Tags: []string{"home", "errands"}, Due: task.Date(2024, time.January, 2), Priority: task.PriorityLow, Status: task.StatusTodo})

	require.NoError(t, task.Save(path, store))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,description,status,due,priority,tags\n1,Buy milk,Todo,2024-01-02,Low,home;errands\n", string(content))
}

func Test_Load_Skips_Header_And_Blank_Records(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tasks.csv")
	writeFile(t, path, "id,description,status,due,priority,tags\n\n2,Walk dog,Done,2024-01-05,Medium,home\n,,,,,\n5,Read,hold,2024-02-01,high,\n")

	store, err := task.Load(path)
	require.NoError(t, err)

	tasks := store.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, []int{2, 5}, ids(tasks))
	assert.Equal(t, task.StatusHold, tasks[1].Status)
	assert.Equal(t, task.PriorityHigh, tasks[1].Priority)
	assert.Empty(t, tasks[1].Tags)
}

func Test_Load_Rejects_Malformed_Records(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
	}{
		{name: "BadID", content: "x,Walk,Todo,2024-01-05,Low,home\n"},
		{name: "NegativeID", content: "-1,Walk,Todo,2024-01-05,Low,home\n"},
		{name: "BadStatus", content: "1,Walk,Open,2024-01-05,Low,home\n"},
		{name: "BadDate", content: "1,Walk,Todo,05/01/2024,Low,home\n"},
		{name: "BadPriority", content: "1,Walk,Todo,2024-01-05,Urgent,home\n"},
		{name: "MissingColumn", content: "1,Walk,Todo,2024-01-05,Low\n"},
		{name: "BrokenQuote", content: "1,\"Walk,Todo,2024-01-05,Low,home\n"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "tasks.csv")
			writeFile(t, path, testCase.content)

			_, err := task.Load(path)
			require.ErrorIs(t, err, task.ErrMalformedRecord)
		})
	}
}
