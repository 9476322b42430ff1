package models

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const NotSavedMessage = "Data not saved"

var (
	ErrNoSelection   = errors.New("no user selected")
	ErrUnknownUser   = errors.New("unknown user")
	ErrUnknownAction = errors.New("unknown action")
	ErrUnsafeName    = errors.New("user name is not a valid file name")
	ErrUnknownField  = errors.New("unknown sort field")
)

type SortField string

const (
	SortByName    SortField = "name"
	SortByAverage SortField = "average"
	SortByMax     SortField = "max"
	SortByMin     SortField = "min"
)

var SortFields = []SortField{SortByName, SortByAverage, SortByMax, SortByMin}

type SortDirection int

const (
	Descending SortDirection = iota
	Ascending
)

func (d SortDirection) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// Change names the view model property a listener is told about.
type Change string

const (
	ChangeEntries   Change = "entries"
	ChangeAlert     Change = "alert"
	ChangeSelection Change = "selection"
	ChangeCanvas    Change = "canvas"
)

type ViewModel struct {
	series   map[string]UserSeries
	entries  []DisplayEntry
	current  string
	alert    Alert
	canvas   Canvas
	savedDir string

	// next direction per field; a missing key means Descending
	sortState map[SortField]SortDirection
	listeners []func(Change)
}

// NewViewModel builds the display list from loaded series. The list keeps
// the order of series, which LoadSeries returns sorted by user.
func NewViewModel(result *LoadResult, savedDir string) *ViewModel {
	vm := &ViewModel{
		series:    make(map[string]UserSeries, len(result.Series)),
		entries:   BuildEntries(result.Series),
		alert:     result.Alert(),
		savedDir:  savedDir,
		sortState: make(map[SortField]SortDirection, len(SortFields)),
	}
	for _, s := range result.Series {
		vm.series[s.User] = s
	}
	return vm
}

func (vm *ViewModel) OnChange(fn func(Change)) {
	vm.listeners = append(vm.listeners, fn)
}

func (vm *ViewModel) notify(c Change) {
	for _, fn := range vm.listeners {
		fn(c)
	}
}

// Entries returns a copy of the display list in its current order.
func (vm *ViewModel) Entries() []DisplayEntry {
	return slices.Clone(vm.entries)
}

func (vm *ViewModel) Alert() Alert {
	return vm.alert
}

func (vm *ViewModel) Canvas() Canvas {
	return vm.canvas
}

func (vm *ViewModel) Current() string {
	return vm.current
}

func (vm *ViewModel) Series(name string) (UserSeries, bool) {
	s, ok := vm.series[name]
	return s, ok
}

// NextDirection reports how the next Sort(field) call will order the list.
func (vm *ViewModel) NextDirection(field SortField) SortDirection {
	return vm.sortState[field]
}

func (vm *ViewModel) setAlert(a Alert) {
	vm.alert = a
	vm.notify(ChangeAlert)
}

// Sort reorders the whole list by field, alternating between descending and
// ascending on each call for the same field. The sort is stable, so equal keys
// keep the order they had before the call.
func (vm *ViewModel) Sort(field SortField) error {
	key, err := sortKey(field)
	if err != nil {
		return err
	}

	dir := vm.sortState[field]
	sorted := slices.Clone(vm.entries)
	slices.SortStableFunc(sorted, func(a, b DisplayEntry) int {
		if dir == Ascending {
			return key(a, b)
		}
		return key(b, a)
	})
	vm.entries = sorted

	if dir == Ascending {
		vm.sortState[field] = Descending
	} else {
		vm.sortState[field] = Ascending
	}

	vm.notify(ChangeEntries)
	return nil
}

func sortKey(field SortField) (func(a, b DisplayEntry) int, error) {
	switch field {
	case SortByName:
		names := newNameCollator()
		return func(a, b DisplayEntry) int { return names.CompareString(a.Name, b.Name) }, nil
	case SortByAverage:
		return func(a, b DisplayEntry) int { return cmp.Compare(a.AverageSteps, b.AverageSteps) }, nil
	case SortByMax:
		return func(a, b DisplayEntry) int { return cmp.Compare(a.MaxSteps, b.MaxSteps) }, nil
	case SortByMin:
		return func(a, b DisplayEntry) int { return cmp.Compare(a.MinSteps, b.MinSteps) }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
}

func (vm *ViewModel) indexOf(name string) int {
	return slices.IndexFunc(vm.entries, func(e DisplayEntry) bool { return e.Name == name })
}

// Select makes name the entry acted on by SaveSelected.
func (vm *ViewModel) Select(name string) error {
	if vm.indexOf(name) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownUser, name)
	}
	vm.current = name
	vm.notify(ChangeSelection)
	return nil
}

// SetSelected sets the multi-select flag used by Draw.
func (vm *ViewModel) SetSelected(name string, selected bool) error {
	i := vm.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownUser, name)
	}
	vm.entries[i].Selected = selected
	vm.notify(ChangeSelection)
	return nil
}

func (vm *ViewModel) ToggleSelected(name string) error {
	i := vm.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownUser, name)
	}
	return vm.SetSelected(name, !vm.entries[i].Selected)
}

// ClearSelected drops every multi-select flag.
func (vm *ViewModel) ClearSelected() {
	for i := range vm.entries {
		vm.entries[i].Selected = false
	}
	vm.notify(ChangeSelection)
}

// SavedPath is where SaveSelected writes the record for name.
func (vm *ViewModel) SavedPath(name string) string {
	return filepath.Join(vm.savedDir, name+".json")
}

// SaveSelected writes the current user's series to the saved data directory.
// Failures show the "not saved" alert and are returned for logging only.
func (vm *ViewModel) SaveSelected() error {
	err := vm.saveCurrent()
	if err != nil {
		vm.setAlert(Alert{Message: NotSavedMessage, Visible: true})
		return err
	}
	vm.setAlert(Alert{})
	return nil
}

func (vm *ViewModel) saveCurrent() error {
	if vm.current == "" {
		return ErrNoSelection
	}
	series, ok := vm.series[vm.current]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUser, vm.current)
	}
	if !safeFileName(series.User) {
		return fmt.Errorf("%w: %q", ErrUnsafeName, series.User)
	}

	data, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("failed to marshal user data: %w", err)
	}
	if err := os.MkdirAll(vm.savedDir, 0755); err != nil {
		return fmt.Errorf("failed to create saved data directory: %w", err)
	}
	if err := os.WriteFile(vm.SavedPath(series.User), data, 0644); err != nil {
		return fmt.Errorf("failed to write saved data: %w", err)
	}
	return nil
}

func safeFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

// Draw replaces the canvas with one line per selected entry, in list order.
func (vm *ViewModel) Draw() {
	lines := make([]Polyline, 0)
	for _, e := range vm.entries {
		if !e.Selected {
			continue
		}
		lines = append(lines, Polyline{Name: e.Name, Points: slices.Clone(e.Points)})
	}
	vm.canvas = Canvas{Lines: lines}
	vm.notify(ChangeCanvas)
}

// Commands maps UI action names to their handlers.
func (vm *ViewModel) Commands() map[string]func() error {
	commands := map[string]func() error{
		"save": vm.SaveSelected,
		"draw": func() error {
			vm.Draw()
			return nil
		},
	}
	for _, field := range SortFields {
		commands["sort_"+string(field)] = func() error { return vm.Sort(field) }
	}
	return commands
}

func (vm *ViewModel) Execute(action string) error {
	cmd, ok := vm.Commands()[action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	return cmd()
}
