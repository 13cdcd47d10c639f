package satisfaction

import (
	"context"
	"testing"

	"github.com/bluefood/survey/internal/domain/progress"
	"github.com/bluefood/survey/internal/platform/auth"
)

type mockRepo struct {
	rows   map[string]*Record
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{rows: make(map[string]*Record), nextID: 1}
}

func (m *mockRepo) GetByElderlyID(ctx context.Context, elderlyID string) (*Record, error) {
	rec, ok := m.rows[elderlyID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *mockRepo) Upsert(ctx context.Context, rec *Record) error {
	if existing, ok := m.rows[rec.ElderlyID]; ok {
		rec.ID = existing.ID
	} else {
		rec.ID = m.nextID
		m.nextID++
	}
	cp := *rec
	m.rows[rec.ElderlyID] = &cp
	return nil
}

type mockProgressRepo struct {
	rows map[string]*progress.Progress
}

func (m *mockProgressRepo) Get(ctx context.Context, elderlyID string) (*progress.Progress, error) {
	p, ok := m.rows[elderlyID]
	if !ok {
		return nil, progress.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProgressRepo) Create(ctx context.Context, p *progress.Progress) error {
	cp := *p
	m.rows[p.ElderlyID] = &cp
	return nil
}

func (m *mockProgressRepo) Save(ctx context.Context, p *progress.Progress) error {
	cp := *p
	m.rows[p.ElderlyID] = &cp
	return nil
}

func (m *mockProgressRepo) List(ctx context.Context, nursingHomeID string) ([]*progress.Progress, error) {
	return nil, nil
}

func newTestService() (*Service, *mockRepo, *mockProgressRepo) {
	repo := newMockRepo()
	progRepo := &mockProgressRepo{rows: make(map[string]*progress.Progress)}
	return NewService(repo, progress.NewService(progRepo)), repo, progRepo
}

func testID() auth.Identity {
	return auth.Identity{NursingHomeID: "NH-001", SurveyorID: "SV-010", ElderlyID: "EL-123"}
}

func TestService_Derive_ProductScore(t *testing.T) {
	svc, _, _ := newTestService()

	draft := map[string]any{
		"product_1_taste":        5,
		"product_1_chewing":      1, // no difficulty: counts as 5
		"product_1_swallowing":   2, // counts as 4
		"product_1_satisfaction": 4,
		"product_1_repurchase":   4,
	}
	out := svc.Derive(draft)
	// (5 + 5 + 4 + 4 + 4) / 5 = 4.4
	if out["product_1_score"] != 4.4 {
		t.Errorf("product_1_score = %v, want 4.4", out["product_1_score"])
	}
	if _, ok := out["product_2_score"]; ok {
		t.Error("unevaluated product must not get a score")
	}
}

func TestService_Persist_ReverseScoresEaseItems(t *testing.T) {
	svc, repo, progRepo := newTestService()

	draft := map[string]any{
		"overall_satisfaction":   4,
		"portion_adequacy":       3,
		"food_quality":           4,
		"product_2_taste":        3,
		"product_2_chewing":      5, // hardest to chew: ease 1
		"product_2_swallowing":   4,
		"product_2_satisfaction": 2,
		"product_2_repurchase":   2,
		"preferred_food_groups":  []any{"fish", "vegetables"},
	}

	if err := svc.Persist(context.Background(), testID(), draft); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	rec := repo.rows["EL-123"]
	if rec == nil {
		t.Fatal("no record written")
	}
	if rec.ProductChewing[1] != 1 {
		t.Errorf("product_2_chewing = %d, want reverse-scored 1", rec.ProductChewing[1])
	}
	if rec.ProductSwallowing[1] != 2 {
		t.Errorf("product_2_swallowing = %d, want reverse-scored 2", rec.ProductSwallowing[1])
	}
	// (3 + 1 + 2 + 2 + 2) / 5 = 2.0
	if rec.ProductScore[1] != 2.0 {
		t.Errorf("product_2_score = %v, want 2.0", rec.ProductScore[1])
	}
	if rec.PreferredFoodGroups != `["fish","vegetables"]` {
		t.Errorf("preferred_food_groups = %q", rec.PreferredFoodGroups)
	}

	p := progRepo.rows["EL-123"]
	if p == nil || !p.SatisfactionDone {
		t.Errorf("progress flag not set: %+v", p)
	}
}

func TestService_Persist_UpsertIdempotence(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	if err := svc.Persist(ctx, testID(), map[string]any{"overall_satisfaction": 3}); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	firstID := repo.rows["EL-123"].ID

	if err := svc.Persist(ctx, testID(), map[string]any{"overall_satisfaction": 5}); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	if len(repo.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(repo.rows))
	}
	rec := repo.rows["EL-123"]
	if rec.ID != firstID || rec.OverallSatisfaction != 5 {
		t.Errorf("second write not reflected in place: %+v", rec)
	}
}

func TestService_Hydrate_RoundTripsDifficultyScale(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	id := testID()

	draft := map[string]any{
		"overall_satisfaction": 4,
		"product_1_chewing":    2,
	}
	if err := svc.Persist(ctx, id, draft); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	hydrated, err := svc.Hydrate(ctx, id)
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	// Stored as ease 4, shown again as difficulty 2.
	if hydrated["product_1_chewing"] != 2 {
		t.Errorf("product_1_chewing = %v, want 2", hydrated["product_1_chewing"])
	}
	if hydrated["overall_satisfaction"] != 4 {
		t.Errorf("overall_satisfaction = %v", hydrated["overall_satisfaction"])
	}
}

func TestService_Hydrate_Empty(t *testing.T) {
	svc, _, _ := newTestService()

	draft, err := svc.Hydrate(context.Background(), testID())
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if len(draft) != 0 {
		t.Errorf("draft = %v, want empty", draft)
	}
}
