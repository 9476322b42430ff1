package models

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultWindow is the number of days in an observation window.
const DefaultWindow = 30

// Chart geometry for a polyline point.
const (
	PointSpacing = 15
	ChartHeight  = 330
	StepScale    = 320
)

// DailyRecord is one user's entry in a dayN.json file
type DailyRecord struct {
	User   string `json:"User"`
	Steps  int    `json:"Steps"`
	Rank   int    `json:"Rank"`
	Status string `json:"Status"`
}

// UserSeries holds a user's values for every day of the window.
// Steps, Rank and Status always share the same length and day index.
type UserSeries struct {
	User   string   `json:"User"`
	Steps  []int    `json:"Steps"`
	Rank   []int    `json:"Rank"`
	Status []string `json:"Status"`
}

func newUserSeries(user string, window int) *UserSeries {
	return &UserSeries{
		User:   user,
		Steps:  make([]int, window),
		Rank:   make([]int, window),
		Status: make([]string, window),
	}
}

func (s *UserSeries) set(day int, rec DailyRecord) {
	s.Steps[day] = rec.Steps
	s.Rank[day] = rec.Rank
	s.Status[day] = rec.Status
}

// newNameCollator orders user names case-insensitively first, so "alice"
// sorts before "Carol". A Collator is not safe for concurrent use.
func newNameCollator() *collate.Collator {
	return collate.New(language.English)
}

type Class string

const (
	Consistent Class = "consistent"
	Variable   Class = "variable"
)

// Color is the row background used for the class.
func (c Class) Color() string {
	if c == Consistent {
		return "#F0F8FF" // AliceBlue
	}
	return "#FFEBCD" // BlanchedAlmond
}

func (c Class) Title() string {
	return cases.Title(language.English).String(string(c))
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DisplayEntry is the list row projected from a UserSeries.
type DisplayEntry struct {
	Name         string  `json:"name"`
	AverageSteps int     `json:"averageSteps"`
	MaxSteps     int     `json:"maxSteps"`
	MinSteps     int     `json:"minSteps"`
	Class        Class   `json:"class"`
	Points       []Point `json:"points"`
	Selected     bool    `json:"selected"`
}

// Alert is the non-fatal warning shown above the list.
type Alert struct {
	Message string `json:"message"`
	Visible bool   `json:"visible"`
}

// Polyline is one drawn line on the canvas.
type Polyline struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

type Canvas struct {
	Lines []Polyline `json:"lines"`
}
