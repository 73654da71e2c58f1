package repositories

import (
	"slices"
	"sync"
	"time"

	"warehouse_backend/internal/models"
)

type memoryState struct {
	items      []models.InventoryItem
	categories []models.Category
	locations  []models.Location
	sales      []models.Sale
	tasks      []models.Task
	members    []models.TeamMember
	qrHistory  []models.QRHistoryEntry
}

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		items:      slices.Clone(s.items),
		categories: slices.Clone(s.categories),
		locations:  slices.Clone(s.locations),
		sales:      slices.Clone(s.sales),
		members:    slices.Clone(s.members),
		qrHistory:  slices.Clone(s.qrHistory),
	}
	if s.tasks != nil {
		c.tasks = make([]models.Task, len(s.tasks))
		for i, t := range s.tasks {
			c.tasks[i] = t.Clone()
		}
	}
	return c
}

// Store holds every collection of the warehouse in memory.
// All mutations go through Update, which serialises writers and rolls the
// state back when the callback returns an error.
type Store struct {
	mu    sync.RWMutex
	state *memoryState
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: &memoryState{}}
}

// Tx is the view of the store handed to Update and View callbacks.
type Tx struct {
	state    *memoryState
	writable bool
}

// Update runs fn under the write lock. If fn fails, every change it made is discarded.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.state.clone()
	if err := fn(&Tx{state: s.state, writable: true}); err != nil {
		s.state = backup
		return err
	}
	return nil
}

// View runs fn under the read lock.
func (s *Store) View(fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&Tx{state: s.state})
}

// Executor is satisfied by *Store and *Tx so repository methods can run on
// their own or as part of a larger Store.Update.
type Executor interface {
	read(fn func(st *memoryState) error) error
	write(fn func(st *memoryState) error) error
}

func (s *Store) read(fn func(st *memoryState) error) error {
	return s.View(func(tx *Tx) error { return fn(tx.state) })
}

func (s *Store) write(fn func(st *memoryState) error) error {
	return s.Update(func(tx *Tx) error { return fn(tx.state) })
}

func (tx *Tx) read(fn func(st *memoryState) error) error {
	return fn(tx.state)
}

func (tx *Tx) write(fn func(st *memoryState) error) error {
	if !tx.writable {
		return ErrReadOnlyTx
	}
	return fn(tx.state)
}

// Snapshot copies the whole state into its serialisable form.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state.clone()
	snap := &models.Snapshot{
		Items:       st.items,
		Categories:  st.categories,
		Locations:   st.locations,
		Sales:       st.sales,
		Tasks:       st.tasks,
		QRHistory:   st.qrHistory,
		TeamMembers: make([]models.SnapshotMember, 0, len(st.members)),
		CreatedAt:   time.Now().UTC(),
	}
	for _, m := range st.members {
		snap.TeamMembers = append(snap.TeamMembers, models.SnapshotMember{TeamMember: m, PasswordHash: m.PasswordHash})
	}
	return snap
}

// Restore replaces the whole state with the contents of snap.
func (s *Store) Restore(snap *models.Snapshot) {
	st := &memoryState{
		items:      slices.Clone(snap.Items),
		categories: slices.Clone(snap.Categories),
		locations:  slices.Clone(snap.Locations),
		sales:      slices.Clone(snap.Sales),
		qrHistory:  slices.Clone(snap.QRHistory),
	}
	for _, t := range snap.Tasks {
		st.tasks = append(st.tasks, t.Clone())
	}
	for _, m := range snap.TeamMembers {
		member := m.TeamMember
		member.PasswordHash = m.PasswordHash
		st.members = append(st.members, member)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}
