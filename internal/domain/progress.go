package domain

import (
	"errors"
	"fmt"
)

// DailyWordCount is the size of every daily selection
const DailyWordCount = 10

// ProgressRecord holds a user's learned and review sets. Both keep
// insertion order and never contain duplicates; a word may sit in both.
type ProgressRecord struct {
	Learned []int `json:"learned"`
	Review  []int `json:"review"`
}

// IsLearned reports whether wordID is in the learned set
func (p ProgressRecord) IsLearned(wordID int) bool {
	return contains(p.Learned, wordID)
}

// NeedsReview reports whether wordID is in the review set
func (p ProgressRecord) NeedsReview(wordID int) bool {
	return contains(p.Review, wordID)
}

// AddLearned inserts wordID and reports whether the set changed
func (p *ProgressRecord) AddLearned(wordID int) bool {
	if p.IsLearned(wordID) {
		return false
	}
	p.Learned = append(p.Learned, wordID)
	return true
}

// AddReview inserts wordID and reports whether the set changed
func (p *ProgressRecord) AddReview(wordID int) bool {
	if p.NeedsReview(wordID) {
		return false
	}
	p.Review = append(p.Review, wordID)
	return true
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// DailySelection is the word set shown to a user for one calendar day.
// Words are snapshots so the set survives catalog edits.
type DailySelection struct {
	Date  Day    `json:"date"`
	Words []Word `json:"words"`
}

// Validate checks that the selection names a day and holds a full word set
func (s DailySelection) Validate() error {
	if s.Date.IsZero() {
		return errors.New("selection date is empty")
	}
	if len(s.Words) != DailyWordCount {
		return fmt.Errorf("selection holds %d words, want %d", len(s.Words), DailyWordCount)
	}
	return nil
}

// LastVisit records the last day a user checked in
type LastVisit struct {
	Date Day `json:"date"`
}

// Validate checks that the visit names a day
func (v LastVisit) Validate() error {
	if v.Date.IsZero() {
		return errors.New("visit date is empty")
	}
	return nil
}

// VisitState is the streak monitor's view of a user
type VisitState string

const (
	NeverVisited VisitState = "never_visited"
	VisitedToday VisitState = "visited_today"
	MissedDays   VisitState = "missed_days"
)

// CheckInResult is the outcome of a daily check-in
type CheckInResult struct {
	State      VisitState
	MissedDays int
	// Previous is the last visit before this check-in, nil on a first visit.
	Previous *Day
}

// SpeakingStats counts pronunciation attempts
type SpeakingStats struct {
	Attempts  int `json:"attempts"`
	Successes int `json:"successes"`
}

// Validate checks that the counters are consistent
func (s SpeakingStats) Validate() error {
	if s.Attempts < 0 || s.Successes < 0 || s.Successes > s.Attempts {
		return fmt.Errorf("speaking counters out of range: %d/%d", s.Successes, s.Attempts)
	}
	return nil
}

// Achievement is a learned-words milestone
type Achievement struct {
	Name     string
	Goal     int
	Unlocked bool
}

// Stats summarises a user's learning progress
type Stats struct {
	TotalWords      int
	LearnedWords    int
	ReviewWords     int
	DailyWords      int
	ProgressPercent int
	Achievements    []Achievement
}
