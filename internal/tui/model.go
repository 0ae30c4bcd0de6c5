package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/hansollee/matzip/internal/journal"
	"github.com/hansollee/matzip/internal/models"
	"github.com/hansollee/matzip/internal/query"
	"github.com/hansollee/matzip/internal/stats"
	"github.com/hansollee/matzip/internal/tui/components/recordlist"
)

type SessionState int

const (
	StateList SessionState = iota
	StateForm
	StateConfirmDelete
)

// recordsMsg carries a fresh snapshot from the live query.
type recordsMsg []models.FoodRecord

type Model struct {
	journal *journal.Journal

	state      SessionState
	keys       KeyMap
	help       help.Model
	recordList recordlist.Model

	form       *huh.Form
	recordForm *RecordFormModel
	editingID  int64

	sortMode query.SortMode
	records  []models.FoodRecord
	summary  stats.Summary

	watch       <-chan []models.FoodRecord
	cancelWatch context.CancelFunc

	deleteID int64
	errMsg   string

	width    int
	height   int
	quitting bool
}

// NewModel subscribes to the live record feed and builds the initial view.
// The first snapshot arrives through the feed, so the list starts empty for
// at most one frame.
func NewModel(j *journal.Journal) (Model, error) {
	ctx, cancel := context.WithCancel(context.Background())
	watch, err := j.Watch(ctx)
	if err != nil {
		cancel()
		return Model{}, err
	}

	return Model{
		journal:     j,
		state:       StateList,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		recordList:  recordlist.New(nil, 0, 0),
		sortMode:    query.SortLatest,
		watch:       watch,
		cancelWatch: cancel,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return waitForRecords(m.watch)
}

// waitForRecords blocks on the live feed and forwards each snapshot into
// the update loop. A closed channel (cancelled watch) ends the stream.
func waitForRecords(watch <-chan []models.FoodRecord) tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-watch
		if !ok {
			return nil
		}
		return recordsMsg(snapshot)
	}
}

// applySnapshot refreshes the derived view and statistics from a snapshot.
func (m *Model) applySnapshot(records []models.FoodRecord) {
	m.records = records
	m.summary = stats.Summarize(records, time.Now())
	m.recordList.SetRecords(query.Apply(records, query.Filter{SortBy: m.sortMode}))
}

func emptyRecord() models.FoodRecord {
	return models.FoodRecord{}
}

func (m *Model) toggleSort() {
	if m.sortMode == query.SortLatest {
		m.sortMode = query.SortRatingHigh
	} else {
		m.sortMode = query.SortLatest
	}
	m.recordList.SetRecords(query.Apply(m.records, query.Filter{SortBy: m.sortMode}))
}
