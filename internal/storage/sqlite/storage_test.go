// ABOUTME: Tests for the strategic memory Storage facade
// ABOUTME: Covers upsert identity, JSON round-trip, windows, and the error taxonomy
package sqlite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/claudedirector/claudedirector/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store := NewStorageWithPath(filepath.Join(t.TempDir(), "memory", "strategic_memory.db"))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStorageIsLazy(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "memory", "strategic_memory.db")
	store := NewStorageWithPath(dbPath)
	defer func() { _ = store.Close() }()

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatal("constructing Storage should not create the database file")
	}

	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file missing after Init(): %v", err)
	}
}

func TestStorageInMemory(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	initiatives, err := store.RecallStrategicInitiatives("", "")
	if err != nil {
		t.Fatalf("RecallStrategicInitiatives() error = %v", err)
	}
	if len(initiatives) != 0 {
		t.Errorf("expected no initiatives, got %d", len(initiatives))
	}
}

func TestStorageInMemoryReopensAfterClose(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if _, err := store.StoreInitiative(&models.StrategicInitiative{InitiativeKey: "PROJ-1"}); err != nil {
		t.Fatalf("StoreInitiative() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := store.StoreInitiative(&models.StrategicInitiative{InitiativeKey: fmt.Sprintf("NEW-%d", i)}); err != nil {
			t.Fatalf("StoreInitiative() after Close error = %v", err)
		}
	}
	if got := store.db.Conn().Stats().MaxOpenConnections; got != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", got)
	}

	stats, err := store.GetMemoryStats()
	if err != nil {
		t.Fatalf("GetMemoryStats() error = %v", err)
	}
	if stats.StrategicInitiatives != 5 {
		t.Errorf("StrategicInitiatives = %d, want 5 (reopened store starts empty)", stats.StrategicInitiatives)
	}
}

func TestStoreInitiativeIdempotent(t *testing.T) {
	store := newTestStorage(t)

	initiative := func() *models.StrategicInitiative {
		return &models.StrategicInitiative{
			InitiativeKey:  "PROJ-1",
			InitiativeName: "Design System Rollout",
			Assignee:       "dkim",
			Status:         "in_progress",
			Priority:       "high",
		}
	}

	id1, err := store.StoreInitiative(initiative())
	if err != nil {
		t.Fatalf("first StoreInitiative() error = %v", err)
	}
	id2, err := store.StoreInitiative(initiative())
	if err != nil {
		t.Fatalf("second StoreInitiative() error = %v", err)
	}

	if id1 != id2 {
		t.Errorf("ids differ: %d != %d", id1, id2)
	}

	all, err := store.RecallStrategicInitiatives("", "")
	if err != nil {
		t.Fatalf("RecallStrategicInitiatives() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("row count = %d, want 1", len(all))
	}
}

func TestStoreInitiativeUpdatesInPlace(t *testing.T) {
	store := newTestStorage(t)

	budget := 250000.0
	id, err := store.StoreInitiative(&models.StrategicInitiative{
		InitiativeKey:    "PROJ-2",
		InitiativeName:   "Platform Migration",
		Status:           "new",
		ParentInitiative: "PROJ-1",
		BudgetImpact:     &budget,
	})
	if err != nil {
		t.Fatalf("StoreInitiative() error = %v", err)
	}

	before, err := store.GetInitiativeContext("PROJ-2")
	if err != nil {
		t.Fatalf("GetInitiativeContext() error = %v", err)
	}

	time.Sleep(2 * time.Millisecond)
	_, err = store.StoreInitiative(&models.StrategicInitiative{
		InitiativeKey:         "PROJ-2",
		InitiativeName:        "Platform Migration",
		Status:                "at_risk",
		RiskLevel:             "red",
		CompletionProbability: 0.4,
	})
	if err != nil {
		t.Fatalf("update StoreInitiative() error = %v", err)
	}

	after, err := store.GetInitiativeContext("PROJ-2")
	if err != nil {
		t.Fatalf("GetInitiativeContext() error = %v", err)
	}
	if after.ID != id {
		t.Errorf("ID = %d, want %d", after.ID, id)
	}
	if after.InitiativeKey != "PROJ-2" {
		t.Errorf("InitiativeKey = %q, want PROJ-2", after.InitiativeKey)
	}
	if after.Status != "at_risk" || after.RiskLevel != "red" {
		t.Errorf("Status/RiskLevel = %q/%q, want at_risk/red", after.Status, after.RiskLevel)
	}
	if after.CompletionProbability != 0.4 {
		t.Errorf("CompletionProbability = %v, want 0.4", after.CompletionProbability)
	}
	if after.BudgetImpact != nil {
		t.Errorf("BudgetImpact = %v, want nil after update without budget", *after.BudgetImpact)
	}
	if after.ParentInitiative != "PROJ-1" {
		t.Errorf("ParentInitiative = %q, want PROJ-1 preserved from insert", after.ParentInitiative)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("CreatedAt changed on update: %v -> %v", before.CreatedAt, after.CreatedAt)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("UpdatedAt not bumped: %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestInitiativeEndToEnd(t *testing.T) {
	store := newTestStorage(t)

	id, err := store.StoreInitiative(&models.StrategicInitiative{
		InitiativeKey:  "PROJ-1",
		InitiativeName: "Design System Rollout",
		Assignee:       "dkim",
		Status:         "in_progress",
		Priority:       "high",
	})
	if err != nil {
		t.Fatalf("StoreInitiative() error = %v", err)
	}

	inProgress, err := store.RecallStrategicInitiatives("in_progress", "")
	if err != nil {
		t.Fatalf("RecallStrategicInitiatives() error = %v", err)
	}
	if len(inProgress) != 1 || inProgress[0].InitiativeKey != "PROJ-1" {
		t.Fatalf("in_progress recall = %+v, want PROJ-1 only", inProgress)
	}

	if _, err := store.StoreInitiative(&models.StrategicInitiative{
		InitiativeKey:  "PROJ-1",
		InitiativeName: "Design System Rollout",
		Assignee:       "dkim",
		Status:         "done",
		Priority:       "high",
	}); err != nil {
		t.Fatalf("update StoreInitiative() error = %v", err)
	}

	inProgress, err = store.RecallStrategicInitiatives("in_progress", "")
	if err != nil {
		t.Fatalf("RecallStrategicInitiatives() error = %v", err)
	}
	if len(inProgress) != 0 {
		t.Errorf("in_progress recall after update = %d rows, want 0", len(inProgress))
	}

	done, err := store.RecallStrategicInitiatives("done", "")
	if err != nil {
		t.Fatalf("RecallStrategicInitiatives() error = %v", err)
	}
	if len(done) != 1 || done[0].ID != id {
		t.Errorf("done recall = %+v, want one row with id %d", done, id)
	}
}

func TestRecallStrategicInitiativesFilters(t *testing.T) {
	store := newTestStorage(t)

	for _, i := range []models.StrategicInitiative{
		{InitiativeKey: "A-1", Status: "in_progress", Assignee: "dkim"},
		{InitiativeKey: "A-2", Status: "in_progress", Assignee: "mlee"},
		{InitiativeKey: "A-3", Status: "done", Assignee: "dkim"},
	} {
		i := i
		if _, err := store.StoreInitiative(&i); err != nil {
			t.Fatalf("StoreInitiative(%s) error = %v", i.InitiativeKey, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	tests := []struct {
		name     string
		status   string
		assignee string
		want     []string
	}{
		{"no filters newest first", "", "", []string{"A-3", "A-2", "A-1"}},
		{"status only", "in_progress", "", []string{"A-2", "A-1"}},
		{"assignee only", "", "dkim", []string{"A-3", "A-1"}},
		{"both filters", "in_progress", "dkim", []string{"A-1"}},
		{"no match", "at_risk", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.RecallStrategicInitiatives(tt.status, tt.assignee)
			if err != nil {
				t.Fatalf("RecallStrategicInitiatives() error = %v", err)
			}
			keys := []string{}
			for _, i := range got {
				keys = append(keys, i.InitiativeKey)
			}
			if !reflect.DeepEqual(keys, tt.want) {
				t.Errorf("keys = %v, want %v", keys, tt.want)
			}
		})
	}
}

func TestExecutiveSessionJSONRoundTrip(t *testing.T) {
	store := newTestStorage(t)

	session := &models.ExecutiveSession{
		SessionType:    "1on1",
		StakeholderKey: "cto",
		AgendaTopics:   []string{"Q4 roadmap", "Headcount"},
		DecisionsMade: []map[string]any{
			{"decision": "Freeze hiring", "owner": "cto"},
		},
		ActionItems: []map[string]any{
			{"item": "Draft plan", "owner": "director", "due": "2026-11-01"},
			{"item": "Share budget", "owner": "finance"},
		},
		BusinessImpact:   "Saves a quarter",
		FollowUpRequired: true,
	}

	id, err := store.StoreExecutiveSession(session)
	if err != nil {
		t.Fatalf("StoreExecutiveSession() error = %v", err)
	}
	if id <= 0 {
		t.Fatalf("StoreExecutiveSession() id = %d, want > 0", id)
	}

	sessions, err := store.RecallExecutiveSessions("cto", 90)
	if err != nil {
		t.Fatalf("RecallExecutiveSessions() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(sessions))
	}

	got := sessions[0]
	if !reflect.DeepEqual(got.AgendaTopics, []string{"Q4 roadmap", "Headcount"}) {
		t.Errorf("AgendaTopics = %v", got.AgendaTopics)
	}
	if !reflect.DeepEqual(got.DecisionsMade, session.DecisionsMade) {
		t.Errorf("DecisionsMade = %v, want %v", got.DecisionsMade, session.DecisionsMade)
	}
	if !reflect.DeepEqual(got.ActionItems, session.ActionItems) {
		t.Errorf("ActionItems = %v, want %v", got.ActionItems, session.ActionItems)
	}
	if got.OutcomeRating != models.DefaultOutcomeRating {
		t.Errorf("OutcomeRating = %d, want default %d", got.OutcomeRating, models.DefaultOutcomeRating)
	}
	if !got.FollowUpRequired {
		t.Error("FollowUpRequired = false, want true")
	}
	if got.BusinessImpact != "Saves a quarter" {
		t.Errorf("BusinessImpact = %q", got.BusinessImpact)
	}
}

func TestEmptyListsReadBackEmpty(t *testing.T) {
	store := newTestStorage(t)

	if _, err := store.StoreExecutiveSession(&models.ExecutiveSession{StakeholderKey: "vp"}); err != nil {
		t.Fatalf("StoreExecutiveSession() error = %v", err)
	}

	sessions, err := store.RecallExecutiveSessions("vp", 0)
	if err != nil {
		t.Fatalf("RecallExecutiveSessions() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(sessions))
	}
	if sessions[0].AgendaTopics == nil || len(sessions[0].AgendaTopics) != 0 {
		t.Errorf("AgendaTopics = %#v, want empty non-nil slice", sessions[0].AgendaTopics)
	}
	if sessions[0].ActionItems == nil {
		t.Error("ActionItems should be an empty slice, not nil")
	}
}

func TestRecallExecutiveSessionsWindow(t *testing.T) {
	store := newTestStorage(t)
	now := time.Now()

	for _, offset := range []int{0, 10, 100} {
		_, err := store.StoreExecutiveSession(&models.ExecutiveSession{
			StakeholderKey: "cpo",
			MeetingDate:    now.AddDate(0, 0, -offset),
			AgendaTopics:   []string{"offset"},
		})
		if err != nil {
			t.Fatalf("StoreExecutiveSession() error = %v", err)
		}
	}

	sessions, err := store.RecallExecutiveSessions("", 90)
	if err != nil {
		t.Fatalf("RecallExecutiveSessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len(sessions) = %d, want 2", len(sessions))
	}
	if !sessions[0].MeetingDate.After(sessions[1].MeetingDate) {
		t.Error("sessions should be ordered by meeting date descending")
	}
	cutoff := now.AddDate(0, 0, -90)
	for _, s := range sessions {
		if s.MeetingDate.Before(cutoff) {
			t.Errorf("session dated %v is outside the 90 day window", s.MeetingDate)
		}
	}
}

func TestRecallExecutiveSessionsStakeholderFilter(t *testing.T) {
	store := newTestStorage(t)

	for _, key := range []string{"cto", "cfo", "cto"} {
		if _, err := store.StoreExecutiveSession(&models.ExecutiveSession{StakeholderKey: key}); err != nil {
			t.Fatalf("StoreExecutiveSession() error = %v", err)
		}
	}

	sessions, err := store.RecallExecutiveSessions("cto", 30)
	if err != nil {
		t.Fatalf("RecallExecutiveSessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("len(sessions) = %d, want 2", len(sessions))
	}
	for _, s := range sessions {
		if s.StakeholderKey != "cto" {
			t.Errorf("StakeholderKey = %q, want cto", s.StakeholderKey)
		}
	}
}

func TestStakeholderUpsertAcrossInstances(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "strategic_memory.db")

	first := NewStorageWithPath(dbPath)
	defer func() { _ = first.Close() }()
	second := NewStorageWithPath(dbPath)
	defer func() { _ = second.Close() }()

	id1, err := first.StoreStakeholderProfile(&models.StakeholderProfile{
		StakeholderKey: "cfo",
		DisplayName:    "Dana Park",
	})
	if err != nil {
		t.Fatalf("first StoreStakeholderProfile() error = %v", err)
	}
	id2, err := second.StoreStakeholderProfile(&models.StakeholderProfile{
		StakeholderKey: "cfo",
		DisplayName:    "Dana Park",
		RoleTitle:      "Chief Financial Officer",
	})
	if err != nil {
		t.Fatalf("second StoreStakeholderProfile() error = %v", err)
	}

	if id1 != id2 {
		t.Errorf("ids differ across instances: %d != %d", id1, id2)
	}

	profiles, err := first.ListStakeholderProfiles()
	if err != nil {
		t.Fatalf("ListStakeholderProfiles() error = %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("len(profiles) = %d, want 1", len(profiles))
	}
	if profiles[0].RoleTitle != "Chief Financial Officer" {
		t.Errorf("RoleTitle = %q, want the second write", profiles[0].RoleTitle)
	}
}

func TestConcurrentInitiativeUpserts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "strategic_memory.db")

	stores := []*Storage{NewStorageWithPath(dbPath), NewStorageWithPath(dbPath)}
	for _, s := range stores {
		s := s
		defer func() { _ = s.Close() }()
		if err := s.Init(); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := stores[i%2].StoreInitiative(&models.StrategicInitiative{
				InitiativeKey: "RACE-1",
				Status:        "in_progress",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		var qe *QueryError
		if err != nil && !errors.As(err, &qe) {
			t.Errorf("unexpected error type %T: %v", err, err)
		}
	}

	all, err := stores[0].RecallStrategicInitiatives("", "")
	if err != nil {
		t.Fatalf("RecallStrategicInitiatives() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("row count for RACE-1 = %d, want 1", len(all))
	}
}

func TestGetInitiativeContextNotFound(t *testing.T) {
	store := newTestStorage(t)

	initiative, err := store.GetInitiativeContext("NONEXISTENT-1")
	if err != nil {
		t.Fatalf("GetInitiativeContext() error = %v", err)
	}
	if initiative != nil {
		t.Errorf("GetInitiativeContext() = %+v, want nil", initiative)
	}
}

func TestGetExecutiveSession(t *testing.T) {
	store := newTestStorage(t)

	id, err := store.StoreExecutiveSession(&models.ExecutiveSession{
		StakeholderKey: "cto",
		AgendaTopics:   []string{"budget"},
		OutcomeRating:  4,
	})
	if err != nil {
		t.Fatalf("StoreExecutiveSession() error = %v", err)
	}

	session, err := store.GetExecutiveSession(id)
	if err != nil {
		t.Fatalf("GetExecutiveSession() error = %v", err)
	}
	if session == nil || session.StakeholderKey != "cto" || session.OutcomeRating != 4 {
		t.Fatalf("GetExecutiveSession() = %+v", session)
	}

	missing, err := store.GetExecutiveSession(id + 100)
	if err != nil {
		t.Fatalf("GetExecutiveSession() error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetExecutiveSession(unknown) = %+v, want nil", missing)
	}
}

func TestGetStakeholderContext(t *testing.T) {
	store := newTestStorage(t)

	if _, err := store.StoreExecutiveSession(&models.ExecutiveSession{StakeholderKey: "vp-eng"}); err != nil {
		t.Fatalf("StoreExecutiveSession() error = %v", err)
	}

	ctx, err := store.GetStakeholderContext("vp-eng", 90)
	if err != nil {
		t.Fatalf("GetStakeholderContext() error = %v", err)
	}
	if ctx.Profile != nil {
		t.Errorf("Profile = %+v, want nil without a stored profile", ctx.Profile)
	}
	if ctx.SessionCount != 1 || len(ctx.RecentSessions) != 1 {
		t.Errorf("SessionCount = %d, RecentSessions = %d, want 1/1", ctx.SessionCount, len(ctx.RecentSessions))
	}

	if _, err := store.StoreStakeholderProfile(&models.StakeholderProfile{
		StakeholderKey:    "vp-eng",
		DisplayName:       "Sam Ortiz",
		DecisionCriteria:  []string{"data", "team health"},
		PreferredPersonas: []string{"diego"},
	}); err != nil {
		t.Fatalf("StoreStakeholderProfile() error = %v", err)
	}

	ctx, err = store.GetStakeholderContext("vp-eng", 90)
	if err != nil {
		t.Fatalf("GetStakeholderContext() error = %v", err)
	}
	if ctx.Profile == nil {
		t.Fatal("Profile = nil, want stored profile")
	}
	if !reflect.DeepEqual(ctx.Profile.DecisionCriteria, []string{"data", "team health"}) {
		t.Errorf("DecisionCriteria = %v", ctx.Profile.DecisionCriteria)
	}
	if ctx.Profile.RelationshipStrength != models.DefaultRelationshipStrength {
		t.Errorf("RelationshipStrength = %d, want default", ctx.Profile.RelationshipStrength)
	}
}

func TestQueryErrorCarriesDriverText(t *testing.T) {
	store := newTestStorage(t)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if _, err := store.db.Exec(`DROP TABLE strategic_initiatives`); err != nil {
		t.Fatalf("drop table error = %v", err)
	}

	_, err := store.StoreInitiative(&models.StrategicInitiative{InitiativeKey: "PROJ-9"})
	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("StoreInitiative() error = %v, want *QueryError", err)
	}
	if !strings.Contains(err.Error(), "no such table") {
		t.Errorf("error %q should carry the driver text", err.Error())
	}

	// Other operations are unaffected.
	if _, err := store.StoreStakeholderProfile(&models.StakeholderProfile{StakeholderKey: "cto"}); err != nil {
		t.Errorf("StoreStakeholderProfile() error = %v", err)
	}
}

func TestInitErrorSurfacesFromOperations(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	store := NewStorageWithPath(filepath.Join(blocker, "db", "strategic_memory.db"))
	_, err := store.RecallStrategicInitiatives("", "")

	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("RecallStrategicInitiatives() error = %v, want *InitError", err)
	}
}
