package repositories

import "warehouse_backend/internal/models"

// QRHistoryRepository stores recent QR scans and generations, newest first.
type QRHistoryRepository interface {
	AddEntry(executor Executor, entry *models.QRHistoryEntry) error
	GetEntries(executor Executor) ([]models.QRHistoryEntry, error)
	DeleteEntry(executor Executor, id string) error
	ClearEntries(executor Executor) error
}

type qrHistoryRepository struct{}

// NewQRHistoryRepository creates a new instance of QRHistoryRepository.
func NewQRHistoryRepository() QRHistoryRepository {
	return &qrHistoryRepository{}
}

// AddEntry prepends an entry and drops whatever exceeds models.MaxQRHistoryEntries.
func (r *qrHistoryRepository) AddEntry(executor Executor, entry *models.QRHistoryEntry) error {
	return executor.write(func(st *memoryState) error {
		history := make([]models.QRHistoryEntry, 0, len(st.qrHistory)+1)
		history = append(history, *entry)
		history = append(history, st.qrHistory...)
		if len(history) > models.MaxQRHistoryEntries {
			history = history[:models.MaxQRHistoryEntries]
		}
		st.qrHistory = history
		return nil
	})
}

// GetEntries returns the history, newest first.
func (r *qrHistoryRepository) GetEntries(executor Executor) ([]models.QRHistoryEntry, error) {
	entries := []models.QRHistoryEntry{}
	err := executor.read(func(st *memoryState) error {
		entries = append(entries, st.qrHistory...)
		return nil
	})
	return entries, err
}

// DeleteEntry removes one entry.
func (r *qrHistoryRepository) DeleteEntry(executor Executor, id string) error {
	return executor.write(func(st *memoryState) error {
		for i := range st.qrHistory {
			if st.qrHistory[i].ID == id {
				st.qrHistory = append(st.qrHistory[:i], st.qrHistory[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// ClearEntries empties the history.
func (r *qrHistoryRepository) ClearEntries(executor Executor) error {
	return executor.write(func(st *memoryState) error {
		st.qrHistory = nil
		return nil
	})
}
