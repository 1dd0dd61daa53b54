package local

import (
	"encoding/json"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/internal/infrastructure/localstore"
)

// Mirror is a typed view over one localstore bucket. It holds full JSON
// records keyed by entity id and is rewritten wholesale after every
// successful remote read.
type Mirror[T any] struct {
	store  *localstore.Store
	bucket string
	id     func(*T) string
}

// NewMirror builds a mirror over the named bucket; id extracts the record key.
func NewMirror[T any](store *localstore.Store, bucket string, id func(*T) string) *Mirror[T] {
	return &Mirror[T]{store: store, bucket: bucket, id: id}
}

// List decodes every record in the bucket. Records that no longer decode
// are skipped rather than failing the whole read.
func (m *Mirror[T]) List() ([]T, error) {
	raw, err := m.store.List(m.bucket)
	if err != nil {
		return nil, err
	}
	var records []T
	for _, payload := range raw {
		var record T
		if err := json.Unmarshal(payload, &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// Get decodes one record by id, or returns nil when absent.
func (m *Mirror[T]) Get(id string) (*T, error) {
	payload, err := m.store.Get(m.bucket, id)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}
	var record T
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Put stores or replaces one record.
func (m *Mirror[T]) Put(record *T) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return m.store.Put(m.bucket, m.id(record), payload)
}

// Delete removes one record by id.
func (m *Mirror[T]) Delete(id string) error {
	return m.store.Delete(m.bucket, id)
}

// ReplaceAll swaps the mirror's contents for the given records.
func (m *Mirror[T]) ReplaceAll(records []T) error {
	payloads := make(map[string][]byte, len(records))
	for i := range records {
		payload, err := json.Marshal(&records[i])
		if err != nil {
			return err
		}
		payloads[m.id(&records[i])] = payload
	}
	return m.store.ReplaceAll(m.bucket, payloads)
}

// NewPropertyMirror mirrors the properties collection.
func NewPropertyMirror(store *localstore.Store) *Mirror[domain.Property] {
	return NewMirror(store, localstore.BucketProperties, func(p *domain.Property) string { return p.ID })
}

// NewClientMirror mirrors the clients collection.
func NewClientMirror(store *localstore.Store) *Mirror[domain.Client] {
	return NewMirror(store, localstore.BucketClients, func(c *domain.Client) string { return c.ID })
}

// NewCampaignMirror mirrors the campaigns collection.
func NewCampaignMirror(store *localstore.Store) *Mirror[domain.Campaign] {
	return NewMirror(store, localstore.BucketCampaigns, func(c *domain.Campaign) string { return c.ID })
}

// NewUserMirror mirrors the users collection.
func NewUserMirror(store *localstore.Store) *Mirror[domain.User] {
	return NewMirror(store, localstore.BucketUsers, func(u *domain.User) string { return u.ID })
}
