package intake

import (
	"context"
	"errors"
	"testing"

	"github.com/bluefood/survey/internal/domain/progress"
	"github.com/bluefood/survey/internal/platform/auth"
)

type mockRepo struct {
	rows      map[string]*Record
	nextID    int64
	upsertErr error
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
	if m.upsertErr != nil {
		return m.upsertErr
	}
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

func fullKMBIDraft(level int) map[string]any {
	draft := map[string]any{}
	for _, f := range kmbiFields {
		draft[f] = level
	}
	return draft
}

func TestService_Derive_BMI(t *testing.T) {
	svc, _, _ := newTestService()

	out := svc.Derive(map[string]any{"height": 170.0, "weight": 70.0})
	bmi, ok := out["bmi"].(float64)
	if !ok || bmi != 24.22 {
		t.Errorf("bmi = %v, want 24.22", out["bmi"])
	}

	out = svc.Derive(map[string]any{"height": 0.0, "weight": 70.0})
	if _, ok := out["bmi"]; ok {
		t.Error("bmi must stay unset for zero height")
	}
}

func TestService_Derive_KMBI(t *testing.T) {
	svc, _, _ := newTestService()

	out := svc.Derive(fullKMBIDraft(4))
	if out["k_mbi_score"] != 100.0 || out["k_mbi_band"] != "independent" {
		t.Errorf("derive = %v", out)
	}

	out = svc.Derive(fullKMBIDraft(2))
	if out["k_mbi_score"] != 50.0 || out["k_mbi_band"] != "severe_dependence" {
		t.Errorf("derive = %v", out)
	}

	// Untouched instrument stays out of the draft.
	out = svc.Derive(map[string]any{"gender": "female"})
	if _, ok := out["k_mbi_score"]; ok {
		t.Error("k_mbi_score derived without any item answered")
	}
}

func TestService_Derive_MMSE(t *testing.T) {
	svc, _, _ := newTestService()

	draft := map[string]any{
		"education":              "elementary",
		"mmse_orientation_time":  5,
		"mmse_orientation_place": 5,
		"mmse_registration":      3,
		"mmse_attention":         3,
		"mmse_recall":            2,
		"mmse_naming":            1,
		"mmse_command":           1,
	}
	out := svc.Derive(draft)
	if out["mmse_score"] != 20 {
		t.Errorf("mmse_score = %v, want 20", out["mmse_score"])
	}
	if out["mmse_band"] != "mild_impairment_suspected" {
		t.Errorf("mmse_band = %v", out["mmse_band"])
	}
}

func TestService_Persist_FreezesScores(t *testing.T) {
	svc, repo, progRepo := newTestService()
	ctx := context.Background()

	draft := fullKMBIDraft(2)
	draft["gender"] = "female"
	draft["age"] = 84
	draft["care_grade"] = "3"
	draft["education"] = "no_schooling"
	draft["height"] = 162.0
	draft["weight"] = 55.0
	draft["diseases"] = []any{"hypertension", "diabetes"}
	draft["mmse_orientation_time"] = 5
	draft["mmse_orientation_place"] = 5
	draft["mmse_attention"] = 5
	draft["mmse_registration"] = 3

	if err := svc.Persist(ctx, testID(), draft); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	rec := repo.rows["EL-123"]
	if rec == nil {
		t.Fatal("no record written")
	}
	if rec.KMBIScore != 50 {
		t.Errorf("k_mbi_score = %d, want 50", rec.KMBIScore)
	}
	if rec.KMBIBand != "severe_dependence" {
		t.Errorf("k_mbi_band = %q", rec.KMBIBand)
	}
	if rec.MMSEScore != 18 {
		t.Errorf("mmse_score = %d, want 18", rec.MMSEScore)
	}
	if rec.MMSEBand != "mild_impairment_suspected" {
		t.Errorf("mmse_band = %q", rec.MMSEBand)
	}
	if rec.BMI < 20.9 || rec.BMI > 21.0 {
		t.Errorf("bmi = %v", rec.BMI)
	}
	if rec.Diseases != `["hypertension","diabetes"]` {
		t.Errorf("diseases = %q", rec.Diseases)
	}
	if rec.NursingHomeID != "NH-001" || rec.SurveyorID != "SV-010" {
		t.Errorf("identity triple not recorded: %+v", rec)
	}

	p := progRepo.rows["EL-123"]
	if p == nil || !p.BasicDone {
		t.Errorf("progress flag not set: %+v", p)
	}
}

func TestService_Persist_DropsUnknownFields(t *testing.T) {
	svc, repo, _ := newTestService()

	draft := map[string]any{
		"gender":           "male",
		"age":              78,
		"care_grade":       "2",
		"legacy_field_xyz": "should vanish",
	}
	if err := svc.Persist(context.Background(), testID(), draft); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if repo.rows["EL-123"] == nil {
		t.Fatal("write should proceed despite unknown fields")
	}
}

func TestService_Persist_UpsertIdempotence(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	first := map[string]any{"gender": "male", "age": 78, "care_grade": "2"}
	if err := svc.Persist(ctx, testID(), first); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	firstID := repo.rows["EL-123"].ID

	second := map[string]any{"gender": "male", "age": 79, "care_grade": "1"}
	if err := svc.Persist(ctx, testID(), second); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	if len(repo.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(repo.rows))
	}
	rec := repo.rows["EL-123"]
	if rec.ID != firstID {
		t.Errorf("row id changed: %d -> %d", firstID, rec.ID)
	}
	if rec.Age != 79 || rec.CareGrade != "1" {
		t.Errorf("second write not reflected: %+v", rec)
	}
}

func TestService_Persist_UpsertFailure(t *testing.T) {
	svc, repo, progRepo := newTestService()
	repo.upsertErr = errors.New("connection refused")

	err := svc.Persist(context.Background(), testID(), map[string]any{"gender": "male"})
	if err == nil {
		t.Fatal("expected error")
	}
	if p := progRepo.rows["EL-123"]; p != nil && p.BasicDone {
		t.Error("progress must not advance when the write fails")
	}
}

func TestService_Hydrate_RoundTrip(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	id := testID()

	draft := fullKMBIDraft(3)
	draft["gender"] = "female"
	draft["age"] = 84
	draft["care_grade"] = "3"
	if err := svc.Persist(ctx, id, draft); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if repo.rows["EL-123"] == nil {
		t.Fatal("expected a persisted row for EL-123")
	}

	hydrated, err := svc.Hydrate(ctx, id)
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if hydrated["gender"] != "female" || hydrated["age"] != 84 {
		t.Errorf("hydrated = %v", hydrated)
	}
	if hydrated["kmbi_5"] != 3 {
		t.Errorf("kmbi_5 = %v, want 3", hydrated["kmbi_5"])
	}
	if hydrated["k_mbi_score"] != 75 {
		t.Errorf("k_mbi_score = %v, want 75", hydrated["k_mbi_score"])
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
