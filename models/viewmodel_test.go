package models

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(user string, steps ...int) UserSeries {
	s := newUserSeries(user, DefaultWindow)
	for i, v := range steps {
		s.Steps[i] = v
		s.Rank[i] = i + 1
		s.Status[i] = "active"
	}
	return *s
}

// testViewModel has averages Alice=300, Bob=100, Carol=200 and
// maxes Alice=9000, Bob=3000, Carol=6000.
func testViewModel(t *testing.T) *ViewModel {
	t.Helper()
	return NewViewModel(&LoadResult{Series: []UserSeries{
		series("Alice", 9000),
		series("Bob", 3000),
		series("Carol", 6000),
	}}, filepath.Join(t.TempDir(), "SavedData"))
}

func names(vm *ViewModel) []string {
	var out []string
	for _, e := range vm.Entries() {
		out = append(out, e.Name)
	}
	return out
}

func TestViewModelSortByNameToggles(t *testing.T) {
	vm := testViewModel(t)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, names(vm))

	require.NoError(t, vm.Sort(SortByName))
	assert.Equal(t, []string{"Carol", "Bob", "Alice"}, names(vm))

	require.NoError(t, vm.Sort(SortByName))
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, names(vm))

	require.NoError(t, vm.Sort(SortByName))
	assert.Equal(t, []string{"Carol", "Bob", "Alice"}, names(vm))
}

func TestViewModelSortFieldsToggleIndependently(t *testing.T) {
	vm := testViewModel(t)

	require.NoError(t, vm.Sort(SortByAverage))
	assert.Equal(t, []string{"Alice", "Carol", "Bob"}, names(vm))
	assert.Equal(t, Ascending, vm.NextDirection(SortByAverage))
	assert.Equal(t, Descending, vm.NextDirection(SortByMax))

	// max has its own state: first call is still descending
	require.NoError(t, vm.Sort(SortByMax))
	assert.Equal(t, []string{"Alice", "Carol", "Bob"}, names(vm))

	require.NoError(t, vm.Sort(SortByAverage))
	assert.Equal(t, []string{"Bob", "Carol", "Alice"}, names(vm))

	require.NoError(t, vm.Sort(SortByMax))
	assert.Equal(t, []string{"Bob", "Carol", "Alice"}, names(vm))
}

func TestViewModelSortIsStable(t *testing.T) {
	// every min is 0, so min sorting keeps the current order
	vm := testViewModel(t)
	require.NoError(t, vm.Sort(SortByName))
	require.NoError(t, vm.Sort(SortByMin))
	assert.Equal(t, []string{"Carol", "Bob", "Alice"}, names(vm))
	require.NoError(t, vm.Sort(SortByMin))
	assert.Equal(t, []string{"Carol", "Bob", "Alice"}, names(vm))
}

func TestViewModelSortUnknownField(t *testing.T) {
	vm := testViewModel(t)
	err := vm.Sort("rank")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, names(vm))
}

func TestViewModelNotifiesListeners(t *testing.T) {
	vm := testViewModel(t)
	var changes []Change
	vm.OnChange(func(c Change) { changes = append(changes, c) })

	require.NoError(t, vm.Sort(SortByMin))
	require.NoError(t, vm.SetSelected("Bob", true))
	vm.Draw()

	assert.Equal(t, []Change{ChangeEntries, ChangeSelection, ChangeCanvas}, changes)
}

func TestViewModelEntriesIsCopy(t *testing.T) {
	vm := testViewModel(t)
	entries := vm.Entries()
	entries[0].Name = "Mallory"
	assert.Equal(t, "Alice", vm.Entries()[0].Name)
}

func TestViewModelSaveRoundTrip(t *testing.T) {
	vm := testViewModel(t)
	require.NoError(t, vm.Select("Alice"))
	require.NoError(t, vm.SaveSelected())
	assert.Equal(t, Alert{}, vm.Alert())

	path := vm.SavedPath("Alice")
	assert.Equal(t, "Alice.json", filepath.Base(path))

	saved, err := LoadSaved(path)
	require.NoError(t, err)
	want, ok := vm.Series("Alice")
	require.True(t, ok)
	assert.Equal(t, want, *saved)
	assert.Len(t, saved.Steps, DefaultWindow)
	assert.Len(t, saved.Rank, DefaultWindow)
	assert.Len(t, saved.Status, DefaultWindow)
}

func TestViewModelSaveClearsLoadWarning(t *testing.T) {
	vm := NewViewModel(&LoadResult{
		Series:     []UserSeries{series("Alice", 1)},
		Incomplete: true,
	}, t.TempDir())
	assert.True(t, vm.Alert().Visible)

	require.NoError(t, vm.Select("Alice"))
	require.NoError(t, vm.SaveSelected())
	assert.False(t, vm.Alert().Visible)
}

func TestViewModelSaveWithoutSelection(t *testing.T) {
	vm := testViewModel(t)
	err := vm.SaveSelected()
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, Alert{Message: NotSavedMessage, Visible: true}, vm.Alert())
}

func TestViewModelSaveIOFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "SavedData")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0644))

	vm := NewViewModel(&LoadResult{Series: []UserSeries{series("Alice", 5)}}, blocker)
	require.NoError(t, vm.Select("Alice"))

	err := vm.SaveSelected()
	assert.Error(t, err)
	assert.Equal(t, Alert{Message: NotSavedMessage, Visible: true}, vm.Alert())

	s, ok := vm.Series("Alice")
	require.True(t, ok)
	assert.Equal(t, 5, s.Steps[0])
}

func TestViewModelSaveUnsafeName(t *testing.T) {
	vm := NewViewModel(&LoadResult{Series: []UserSeries{series("../evil", 5)}}, t.TempDir())
	require.NoError(t, vm.Select("../evil"))
	assert.ErrorIs(t, vm.SaveSelected(), ErrUnsafeName)
	assert.True(t, vm.Alert().Visible)
}

func TestViewModelSelectUnknown(t *testing.T) {
	vm := testViewModel(t)
	assert.ErrorIs(t, vm.Select("Nobody"), ErrUnknownUser)
	assert.ErrorIs(t, vm.SetSelected("Nobody", true), ErrUnknownUser)
	assert.ErrorIs(t, vm.ToggleSelected("Nobody"), ErrUnknownUser)
	assert.Equal(t, "", vm.Current())
}

func TestViewModelDrawReplacesCanvas(t *testing.T) {
	vm := testViewModel(t)
	require.NoError(t, vm.SetSelected("Alice", true))
	require.NoError(t, vm.SetSelected("Carol", true))
	vm.Draw()

	canvas := vm.Canvas()
	require.Len(t, canvas.Lines, 2)
	assert.Equal(t, "Alice", canvas.Lines[0].Name)
	assert.Equal(t, "Carol", canvas.Lines[1].Name)
	assert.Len(t, canvas.Lines[0].Points, DefaultWindow)
	assert.Equal(t, Point{X: 15, Y: 330 - 9000/320}, canvas.Lines[0].Points[0])

	require.NoError(t, vm.ToggleSelected("Alice"))
	vm.Draw()
	require.Len(t, vm.Canvas().Lines, 1)
	assert.Equal(t, "Carol", vm.Canvas().Lines[0].Name)

	vm.ClearSelected()
	vm.Draw()
	assert.Empty(t, vm.Canvas().Lines)
}

func TestViewModelSelectionSurvivesSort(t *testing.T) {
	vm := testViewModel(t)
	require.NoError(t, vm.SetSelected("Bob", true))
	require.NoError(t, vm.Sort(SortByName))

	for _, e := range vm.Entries() {
		assert.Equal(t, e.Name == "Bob", e.Selected, e.Name)
	}
}

func TestViewModelCommands(t *testing.T) {
	vm := testViewModel(t)
	commands := vm.Commands()
	for _, action := range []string{"sort_name", "sort_average", "sort_max", "sort_min", "save", "draw"} {
		assert.Contains(t, commands, action)
	}

	require.NoError(t, vm.Execute("sort_name"))
	assert.Equal(t, []string{"Carol", "Bob", "Alice"}, names(vm))

	assert.ErrorIs(t, vm.Execute("save"), ErrNoSelection)
	assert.ErrorIs(t, vm.Execute("explode"), ErrUnknownAction)
}

func TestViewModelSortByNameMixedCase(t *testing.T) {
	vm := NewViewModel(&LoadResult{Series: []UserSeries{
		series("Carol", 1),
		series("alice", 2),
		series("bob", 3),
	}}, t.TempDir())

	require.NoError(t, vm.Sort(SortByName))
	assert.Equal(t, []string{"Carol", "bob", "alice"}, names(vm))

	require.NoError(t, vm.Sort(SortByName))
	assert.Equal(t, []string{"alice", "bob", "Carol"}, names(vm))
}

func TestSortKeyExtremeValues(t *testing.T) {
	high := DisplayEntry{AverageSteps: math.MaxInt, MaxSteps: math.MaxInt, MinSteps: math.MaxInt}
	low := DisplayEntry{AverageSteps: math.MinInt, MaxSteps: math.MinInt, MinSteps: math.MinInt}

	for _, field := range []SortField{SortByAverage, SortByMax, SortByMin} {
		key, err := sortKey(field)
		require.NoError(t, err)
		assert.Positive(t, key(high, low), field)
		assert.Negative(t, key(low, high), field)
		assert.Zero(t, key(high, high), field)
	}
}
