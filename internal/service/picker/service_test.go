package picker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"arbor/internal/domain"
	"arbor/internal/domain/models"
	"arbor/internal/domain/repositories"
	"arbor/internal/domain/services"
	"arbor/internal/forest"
)

func intPtr(v int) *int { return &v }

type fakeSnapshotRepo struct {
	byID   map[string]*models.SnapshotWithNodes
	latest map[string]*models.SnapshotWithNodes
}

func (r *fakeSnapshotRepo) Create(_ context.Context, s *models.SnapshotWithNodes) error {
	r.byID[s.ID] = s
	r.latest[s.ConnectorID] = s
	return nil
}

func (r *fakeSnapshotRepo) GetByID(_ context.Context, id string) (*models.SnapshotWithNodes, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (r *fakeSnapshotRepo) LatestByConnector(_ context.Context, connectorID string) (*models.SnapshotWithNodes, error) {
	s, ok := r.latest[connectorID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

type fakeConfirmationRepo struct {
	byConnector map[string]*models.Confirmation
	creates     int
	deletes     int
}

func (r *fakeConfirmationRepo) Create(_ context.Context, c *models.Confirmation) error {
	r.byConnector[c.ConnectorID] = c
	r.creates++
	return nil
}

func (r *fakeConfirmationRepo) DeleteByConnector(_ context.Context, connectorID string) error {
	delete(r.byConnector, connectorID)
	r.deletes++
	return nil
}

func (r *fakeConfirmationRepo) LatestByConnector(_ context.Context, connectorID string) (*models.Confirmation, error) {
	c, ok := r.byConnector[connectorID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// fakeTxManager runs the function directly; the fakes have no real
// transactions to join.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func testFixture(t *testing.T) (*Service, *fakeSnapshotRepo, *fakeConfirmationRepo) {
	t.Helper()

	snapshots := &fakeSnapshotRepo{
		byID:   make(map[string]*models.SnapshotWithNodes),
		latest: make(map[string]*models.SnapshotWithNodes),
	}
	confirmations := &fakeConfirmationRepo{byConnector: make(map[string]*models.Confirmation)}

	snapshots.Create(context.Background(), &models.SnapshotWithNodes{
		Snapshot: models.Snapshot{
			ID:          "snap-1",
			ConnectorID: "conn-1",
			Fingerprint: "abc123",
			NodeCount:   4,
			CreatedAt:   time.Now().UTC(),
		},
		Roots: []forest.NodeRecord{
			{ID: "c1", Name: "Invoices", Kind: forest.KindCabinet, DocumentCount: intPtr(100),
				Children: []forest.NodeRecord{
					{ID: "f1", Name: "2023", Kind: forest.KindFolder, DocumentCount: intPtr(40)},
					{ID: "f2", Name: "2024", Kind: forest.KindFolder, DocumentCount: intPtr(60),
						Children: []forest.NodeRecord{
							{ID: "f3", Name: "Q1", Kind: forest.KindFolder, DocumentCount: intPtr(20)},
						}},
				}},
		},
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(snapshots, confirmations, fakeTxManager{}, time.Hour, time.Hour, logger)
	t.Cleanup(svc.Close)

	return svc, snapshots, confirmations
}

func createSession(t *testing.T, svc *Service) *models.PickerSession {
	t.Helper()
	sess, err := svc.CreateSession(context.Background(), &services.CreateSessionRequest{
		ConnectorID: "conn-1",
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	return sess
}

func TestCreateSessionUsesLatestSnapshot(t *testing.T) {
	svc, _, _ := testFixture(t)

	sess := createSession(t, svc)

	if sess.SnapshotID != "snap-1" {
		t.Errorf("SnapshotID = %q, want snap-1", sess.SnapshotID)
	}
	if sess.NodeCount != 4 {
		t.Errorf("NodeCount = %d, want 4", sess.NodeCount)
	}
}

func TestCreateSessionValidation(t *testing.T) {
	svc, _, _ := testFixture(t)

	_, err := svc.CreateSession(context.Background(), &services.CreateSessionRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestCreateSessionRejectsForeignSnapshot(t *testing.T) {
	svc, snapshots, _ := testFixture(t)
	snapshots.Create(context.Background(), &models.SnapshotWithNodes{
		Snapshot: models.Snapshot{ID: "snap-2", ConnectorID: "conn-other"},
		Roots:    []forest.NodeRecord{{ID: "x", Name: "X"}},
	})

	_, err := svc.CreateSession(context.Background(), &services.CreateSessionRequest{
		ConnectorID: "conn-1",
		SnapshotID:  "snap-2",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation for cross-connector snapshot", err)
	}
}

func TestToggleAndSummary(t *testing.T) {
	svc, _, _ := testFixture(t)
	sess := createSession(t, svc)
	ctx := context.Background()

	sum, err := svc.Toggle(ctx, sess.ID, "f2")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if sum.SelectedCount != 1 || sum.DocumentTotal != 60 {
		t.Errorf("after f2: count=%d total=%d, want 1/60", sum.SelectedCount, sum.DocumentTotal)
	}

	sum, err = svc.Toggle(ctx, sess.ID, "f3")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if sum.SelectedCount != 2 || sum.DocumentTotal != 80 {
		t.Errorf("after f3: count=%d total=%d, want 2/80", sum.SelectedCount, sum.DocumentTotal)
	}

	// Deselecting f2 cascades over its subtree, clearing f3 too.
	sum, err = svc.Toggle(ctx, sess.ID, "f2")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if sum.SelectedCount != 0 || sum.DocumentTotal != 0 {
		t.Errorf("after deselect: count=%d total=%d, want 0/0", sum.SelectedCount, sum.DocumentTotal)
	}
}

func TestToggleUnknownNodeIsNoOp(t *testing.T) {
	svc, _, _ := testFixture(t)
	sess := createSession(t, svc)
	ctx := context.Background()

	if _, err := svc.Toggle(ctx, sess.ID, "f1"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	sum, err := svc.Toggle(ctx, sess.ID, "stale-id")
	if err != nil {
		t.Fatalf("Toggle with unknown id should not error, got %v", err)
	}
	if sum.SelectedCount != 1 {
		t.Errorf("unknown id changed selection: count=%d, want 1", sum.SelectedCount)
	}
}

func TestViewFlagsAndFilter(t *testing.T) {
	svc, _, _ := testFixture(t)
	sess := createSession(t, svc)
	ctx := context.Background()

	if _, err := svc.Toggle(ctx, sess.ID, "f3"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	// Unfiltered view: c1 and f2 indeterminate, f3 selected.
	view, err := svc.View(ctx, sess.ID, "")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(view.Roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(view.Roots))
	}
	c1 := view.Roots[0]
	if !c1.Indeterminate || c1.Selected {
		t.Errorf("c1 selected=%v indeterminate=%v, want false/true", c1.Selected, c1.Indeterminate)
	}

	// Filter hides f3 but the totals and the parent flags still see it.
	view, err = svc.View(ctx, sess.ID, "2023")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if view.DocumentTotal != 20 {
		t.Errorf("DocumentTotal under filter = %d, want 20", view.DocumentTotal)
	}
	c1 = view.Roots[0]
	if !c1.Indeterminate {
		t.Error("c1 should stay indeterminate while its selected child is filtered out")
	}
	if len(c1.Children) != 1 || c1.Children[0].ID != "f1" {
		t.Errorf("filtered children = %v, want only f1", c1.Children)
	}
}

func TestConfirmPersistsAndClosesSession(t *testing.T) {
	svc, _, confirmations := testFixture(t)
	sess := createSession(t, svc)
	ctx := context.Background()

	svc.Toggle(ctx, sess.ID, "f1")
	svc.Toggle(ctx, sess.ID, "f3")

	conf, err := svc.Confirm(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	if conf.ConnectorID != "conn-1" || conf.SnapshotFingerprint != "abc123" {
		t.Errorf("confirmation metadata wrong: %+v", conf)
	}
	if len(conf.SelectedIDs) != 2 || conf.DocumentTotal != 60 {
		t.Errorf("selected=%v total=%d, want 2 ids / 60", conf.SelectedIDs, conf.DocumentTotal)
	}
	if confirmations.creates != 1 || confirmations.deletes != 1 {
		t.Errorf("creates=%d deletes=%d, want 1/1 (replace inside tx)", confirmations.creates, confirmations.deletes)
	}

	// The session is gone afterwards.
	if _, err := svc.View(ctx, sess.ID, ""); !errors.Is(err, domain.ErrSessionClosed) {
		t.Errorf("View after confirm = %v, want ErrSessionClosed", err)
	}
}

func TestCreateSessionSeedsFromConfirmation(t *testing.T) {
	svc, _, confirmations := testFixture(t)
	confirmations.Create(context.Background(), &models.Confirmation{
		ID:          "conf-1",
		ConnectorID: "conn-1",
		SelectedIDs: []string{"f1", "removed-node"},
	})

	sess, err := svc.CreateSession(context.Background(), &services.CreateSessionRequest{
		ConnectorID:          "conn-1",
		SeedFromConfirmation: true,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	view, err := svc.View(context.Background(), sess.ID, "")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if view.SelectedCount != 1 {
		t.Errorf("seeded count = %d, want 1 (stale id dropped)", view.SelectedCount)
	}
	if view.DocumentTotal != 40 {
		t.Errorf("seeded total = %d, want 40", view.DocumentTotal)
	}
}

func TestCreateSessionWithoutSeedStartsEmpty(t *testing.T) {
	svc, _, confirmations := testFixture(t)
	confirmations.Create(context.Background(), &models.Confirmation{
		ID:          "conf-1",
		ConnectorID: "conn-1",
		SelectedIDs: []string{"f1"},
	})

	sess := createSession(t, svc)

	view, err := svc.View(context.Background(), sess.ID, "")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if view.SelectedCount != 0 {
		t.Errorf("unseeded session should start empty, got %d selected", view.SelectedCount)
	}
}

func TestClear(t *testing.T) {
	svc, _, _ := testFixture(t)
	sess := createSession(t, svc)
	ctx := context.Background()

	svc.Toggle(ctx, sess.ID, "f1")
	sum, err := svc.Clear(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if sum.SelectedCount != 0 {
		t.Errorf("after Clear count = %d, want 0", sum.SelectedCount)
	}
}

func TestCloseSession(t *testing.T) {
	svc, _, _ := testFixture(t)
	sess := createSession(t, svc)

	if err := svc.CloseSession(context.Background(), sess.ID); err != nil {
		t.Fatalf("CloseSession: %v", err)
	}
	if err := svc.CloseSession(context.Background(), sess.ID); err == nil {
		t.Error("second CloseSession should report not found")
	}
}

func TestSessionExpiry(t *testing.T) {
	svc, _, _ := testFixture(t)
	sess := createSession(t, svc)

	// Force an expiry pass with a cutoff far in the future.
	svc.sessions.expire(time.Now().UTC().Add(48 * time.Hour))

	if _, err := svc.View(context.Background(), sess.ID, ""); !errors.Is(err, domain.ErrSessionClosed) {
		t.Errorf("View after expiry = %v, want ErrSessionClosed", err)
	}
}
