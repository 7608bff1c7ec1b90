package tui

import (
	"context"
	"sync"
	"time"

	"github.com/projectcompass/spyglass/internal/fetch"
	"github.com/projectcompass/spyglass/internal/model"
)

// DataSync binds the dashboard's four data sources to the fetch layer:
// one typed unit per endpoint, grouped so a refresh fans out to all of
// them, and a scheduler that re-runs the group on the configured
// interval. State changes are coalesced onto Notify so the Bubble Tea
// loop re-reads a snapshot at most once per wakeup.
//
// A DataSync is single-use. Deactivate tears the units down for good;
// mounting the dashboard again means building a new one.
type DataSync struct {
	status      *fetch.Unit[model.SystemStatus]
	inquiries   *fetch.Unit[model.RecentInquiries]
	departments *fetch.Unit[model.DepartmentStats]
	categories  *fetch.Unit[model.CategoryDistribution]

	group     *fetch.Group
	scheduler *fetch.Scheduler

	every time.Duration

	notify chan struct{}
	done   chan struct{}
	once   sync.Once
	off    func()
}

// SyncConfig holds optional DataSync settings.
type SyncConfig struct {
	RefreshEvery time.Duration // <= 0 uses model.DefaultRefreshEvery
	RecentLimit  int           // <= 0 uses model.DefaultRecentLimit
	Clock        fetch.Clock   // nil = system clock
}

// Source names used across the dashboard to address per-panel state.
const (
	sourceStatus      = "status"
	sourceInquiries   = "inquiries"
	sourceDepartments = "departments"
	sourceCategories  = "categories"
)

// NewDataSync wires the dashboard sources against the given API.
func NewDataSync(api model.InquiryReader, conf ...SyncConfig) *DataSync {
	var c SyncConfig
	if len(conf) > 0 {
		c = conf[0]
	}
	if c.RefreshEvery <= 0 {
		c.RefreshEvery = model.DefaultRefreshEvery
	}
	if c.RecentLimit <= 0 {
		c.RecentLimit = model.DefaultRecentLimit
	}

	s := &DataSync{
		every:  c.RefreshEvery,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	s.status = fetch.NewUnit(sourceStatus, api.SystemStatus,
		fetch.UnitConfig[model.SystemStatus]{Clock: c.Clock})
	s.inquiries = fetch.NewUnit(sourceInquiries, func(ctx context.Context) (model.RecentInquiries, error) {
		return api.RecentInquiries(ctx, c.RecentLimit)
	}, fetch.UnitConfig[model.RecentInquiries]{Clock: c.Clock})
	s.departments = fetch.NewUnit(sourceDepartments, api.DepartmentStats,
		fetch.UnitConfig[model.DepartmentStats]{Clock: c.Clock})
	s.categories = fetch.NewUnit(sourceCategories, api.CategoryDistribution,
		fetch.UnitConfig[model.CategoryDistribution]{Clock: c.Clock})

	s.group = fetch.NewGroup("dashboard", []fetch.Source{
		s.status, s.inquiries, s.departments, s.categories,
	}, fetch.GroupConfig{Clock: c.Clock})

	s.scheduler = fetch.NewScheduler(s.group, fetch.SchedulerConfig{
		Interval:  c.RefreshEvery,
		AutoStart: true,
		Clock:     c.Clock,
	})

	return s
}

// Activate arms the refresh schedule and starts the first fetch cycle.
// Idempotent.
func (s *DataSync) Activate(ctx context.Context) {
	if s.off == nil {
		s.off = s.group.AddListener(s.wake)
	}
	s.scheduler.Activate(ctx)
}

// wake coalesces state-change notifications; a full channel means a
// wakeup is already pending.
func (s *DataSync) wake() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Deactivate stops the schedule and tears the sources down. In-flight
// requests run out on their own and are discarded. Idempotent.
func (s *DataSync) Deactivate() {
	s.scheduler.Deactivate()
	if s.off != nil {
		s.off()
		s.off = nil
	}
	s.once.Do(func() { close(s.done) })
}

// TriggerNow requests an extra refresh of all sources without touching
// the schedule.
func (s *DataSync) TriggerNow(ctx context.Context) error {
	return s.scheduler.TriggerNow(ctx)
}

// RefreshEvery returns the configured refresh interval.
func (s *DataSync) RefreshEvery() time.Duration { return s.every }

// Notify signals that at least one source changed state since the last
// receive. Done is closed on Deactivate so waiters can exit.
func (s *DataSync) Notify() <-chan struct{} { return s.notify }

// Done is closed when the sync has been deactivated.
func (s *DataSync) Done() <-chan struct{} { return s.done }

// WaitSettled blocks until every source has settled its newest request.
func (s *DataSync) WaitSettled(ctx context.Context) error {
	return s.group.WaitSettled(ctx)
}

// ViewSnapshot is one consistent read of everything the dashboard
// renders.
type ViewSnapshot struct {
	Group fetch.GroupSnapshot

	Status      model.SystemStatus
	Inquiries   model.RecentInquiries
	Departments model.DepartmentStats
	Categories  model.CategoryDistribution
}

// Snapshot reads the current value and fetch state of every source.
func (s *DataSync) Snapshot() ViewSnapshot {
	return ViewSnapshot{
		Group:       s.group.Snapshot(),
		Status:      s.status.State().Value,
		Inquiries:   s.inquiries.State().Value,
		Departments: s.departments.State().Value,
		Categories:  s.categories.State().Value,
	}
}

// SourceState returns the fetch state for the named source, or a zero
// state if the name is unknown.
func (v ViewSnapshot) SourceState(name string) fetch.SourceState {
	for _, st := range v.Group.Sources {
		if st.Name == name {
			return st
		}
	}
	return fetch.SourceState{}
}
