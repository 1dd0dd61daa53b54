package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/casaflow/backend/domain"
)

var errRemoteDown = errors.New("connection refused")

// downRemote rejects every call, simulating a remote outage.
type downRemote struct{}

func (downRemote) List(context.Context) ([]domain.Property, error) { return nil, errRemoteDown }
func (downRemote) GetByID(context.Context, string) (*domain.Property, error) {
	return nil, errRemoteDown
}
func (downRemote) Create(context.Context, *domain.Property) (*domain.Property, error) {
	return nil, errRemoteDown
}
func (downRemote) Update(context.Context, *domain.Property) error { return errRemoteDown }
func (downRemote) Delete(context.Context, string) error           { return errRemoteDown }

// upRemote is a working in-memory remote.
type upRemote struct {
	rows map[string]*domain.Property
}

func newUpRemote(rows ...*domain.Property) *upRemote {
	r := &upRemote{rows: make(map[string]*domain.Property)}
	for _, row := range rows {
		copied := *row
		r.rows[row.ID] = &copied
	}
	return r
}

func (r *upRemote) List(context.Context) ([]domain.Property, error) {
	out := make([]domain.Property, 0, len(r.rows))
	for _, row := range r.rows {
		copied := *row
		copied.Images = append([]string(nil), row.Images...)
		out = append(out, copied)
	}
	return out, nil
}

func (r *upRemote) GetByID(_ context.Context, id string) (*domain.Property, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	copied := *row
	copied.Images = append([]string(nil), row.Images...)
	return &copied, nil
}

func (r *upRemote) Create(_ context.Context, property *domain.Property) (*domain.Property, error) {
	if property.ID == "" {
		property.ID = "remote-1"
	}
	copied := *property
	r.rows[property.ID] = &copied
	return property, nil
}

func (r *upRemote) Update(_ context.Context, property *domain.Property) error {
	if _, ok := r.rows[property.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	copied := *property
	r.rows[property.ID] = &copied
	return nil
}

func (r *upRemote) Delete(_ context.Context, id string) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(r.rows, id)
	return nil
}

// memMirror is an in-memory PropertyMirror.
type memMirror struct {
	rows map[string]domain.Property
}

func newMemMirror() *memMirror {
	return &memMirror{rows: make(map[string]domain.Property)}
}

func (m *memMirror) List() ([]domain.Property, error) {
	out := make([]domain.Property, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, row)
	}
	return out, nil
}

func (m *memMirror) Get(id string) (*domain.Property, error) {
	row, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	return &row, nil
}

func (m *memMirror) Put(property *domain.Property) error {
	m.rows[property.ID] = *property
	return nil
}

func (m *memMirror) Delete(id string) error {
	delete(m.rows, id)
	return nil
}

func (m *memMirror) ReplaceAll(properties []domain.Property) error {
	m.rows = make(map[string]domain.Property, len(properties))
	for _, p := range properties {
		m.rows[p.ID] = p
	}
	return nil
}

// memQueue records repair enqueues.
type memQueue struct {
	enqueued []string
}

func (q *memQueue) Enqueue(property *domain.Property) error {
	q.enqueued = append(q.enqueued, property.ID)
	return nil
}

func TestCreateDuringOutageSynthesizesLocalID(t *testing.T) {
	mirror := newMemMirror()
	repo := NewPropertyRepository(downRemote{}, mirror, nil, nil)

	created, err := repo.Create(context.Background(), &domain.Property{Title: "Casa Centro"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !IsLocalID(created.ID) {
		t.Fatalf("id = %q, want a local- prefixed id", created.ID)
	}

	// The locally created row must be retrievable through the same repo.
	got, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Casa Centro" {
		t.Errorf("title = %q", got.Title)
	}

	listed, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Errorf("List = %v, want the local row", listed)
	}
}

func TestListRefreshesMirrorWhileRemoteUp(t *testing.T) {
	remote := newUpRemote(
		&domain.Property{ID: "p1", Title: "Depto Roma"},
		&domain.Property{ID: "p2", Title: "Casa Condesa"},
	)
	mirror := newMemMirror()
	repo := NewPropertyRepository(remote, mirror, nil, nil)

	if _, err := repo.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(mirror.rows) != 2 {
		t.Fatalf("mirror has %d rows after refresh, want 2", len(mirror.rows))
	}

	// Swap the remote for a dead one: the mirror keeps serving reads.
	offline := NewPropertyRepository(downRemote{}, mirror, nil, nil)
	listed, err := offline.List(context.Background())
	if err != nil {
		t.Fatalf("List offline: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("offline list = %d rows, want 2 from the mirror", len(listed))
	}
}

func TestReadSanitizesImagesAndQueuesRepair(t *testing.T) {
	remote := newUpRemote(&domain.Property{
		ID:             "p1",
		Images:         []string{"blob:deadbeef", "https://cdn.example.com/a.jpg", "file:///tmp/x.png"},
		MainPhotoIndex: 7,
	})
	queue := &memQueue{}
	repo := NewPropertyRepository(remote, newMemMirror(), queue, nil)

	got, err := repo.GetByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Images[0] != domain.PlaceholderImage || got.Images[2] != domain.PlaceholderImage {
		t.Errorf("unresolvable refs were not replaced: %v", got.Images)
	}
	if got.Images[1] != "https://cdn.example.com/a.jpg" {
		t.Errorf("valid URL was rewritten: %q", got.Images[1])
	}
	if got.MainPhotoIndex != 0 {
		t.Errorf("mainPhotoIndex = %d, want reset to 0", got.MainPhotoIndex)
	}
	if len(queue.enqueued) != 1 || queue.enqueued[0] != "p1" {
		t.Errorf("repair queue = %v, want [p1]", queue.enqueued)
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	property := &domain.Property{
		Images:         []string{"blob:x", "data:image/png;base64,AAAA"},
		MainPhotoIndex: 5,
	}
	if !property.SanitizeImages() {
		t.Fatal("first pass should report changes")
	}
	if property.SanitizeImages() {
		t.Error("second pass changed an already-clean row")
	}
}

func TestCleanRowDoesNotEnqueueRepair(t *testing.T) {
	remote := newUpRemote(&domain.Property{
		ID:     "p1",
		Images: []string{"https://cdn.example.com/a.jpg"},
	})
	queue := &memQueue{}
	repo := NewPropertyRepository(remote, newMemMirror(), queue, nil)

	if _, err := repo.GetByID(context.Background(), "p1"); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(queue.enqueued) != 0 {
		t.Errorf("clean row queued a repair: %v", queue.enqueued)
	}
}

func TestLocalRowsNeverQueueRepairs(t *testing.T) {
	mirror := newMemMirror()
	queue := &memQueue{}
	repo := NewPropertyRepository(downRemote{}, mirror, queue, nil)

	created, err := repo.Create(context.Background(), &domain.Property{
		Title:  "Casa Local",
		Images: []string{"blob:session-only"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), created.ID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(queue.enqueued) != 0 {
		t.Errorf("local-only row queued a repair: %v", queue.enqueued)
	}
}

func TestUpdateDuringOutageWritesMirror(t *testing.T) {
	remote := newUpRemote(&domain.Property{ID: "p1", Title: "Old"})
	mirror := newMemMirror()
	repo := NewPropertyRepository(remote, mirror, nil, nil)
	if _, err := repo.List(context.Background()); err != nil {
		t.Fatalf("warm mirror: %v", err)
	}

	offline := NewPropertyRepository(downRemote{}, mirror, nil, nil)
	if err := offline.Update(context.Background(), &domain.Property{ID: "p1", Title: "New"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := offline.GetByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "New" {
		t.Errorf("title = %q, the outage update was lost", got.Title)
	}
}

func TestUpdateUnknownRemoteRowPassesThroughNotFound(t *testing.T) {
	repo := NewPropertyRepository(newUpRemote(), newMemMirror(), nil, nil)

	err := repo.Update(context.Background(), &domain.Property{ID: "ghost"})
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Errorf("err = %v, want ErrPropertyNotFound", err)
	}
}

func TestDeleteRemovesFromBothTiers(t *testing.T) {
	remote := newUpRemote(&domain.Property{ID: "p1"})
	mirror := newMemMirror()
	repo := NewPropertyRepository(remote, mirror, nil, nil)
	if _, err := repo.List(context.Background()); err != nil {
		t.Fatalf("warm mirror: %v", err)
	}

	if err := repo.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := remote.rows["p1"]; ok {
		t.Error("row survived in the remote")
	}
	if _, ok := mirror.rows["p1"]; ok {
		t.Error("row survived in the mirror")
	}
}

func TestDeleteLocalRowDuringOutageSucceeds(t *testing.T) {
	mirror := newMemMirror()
	repo := NewPropertyRepository(downRemote{}, mirror, nil, nil)

	created, err := repo.Create(context.Background(), &domain.Property{Title: "Temp"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), created.ID); err == nil {
		t.Error("deleted local row is still readable")
	}
}
