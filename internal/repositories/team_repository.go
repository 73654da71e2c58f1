package repositories

import (
	"fmt"
	"strings"

	"warehouse_backend/internal/models"
)

// TeamRepository defines the interface for team member storage.
// Emails are not unique; GetMemberByEmail returns the first member with the address.
type TeamRepository interface {
	CreateMember(executor Executor, member *models.TeamMember) error
	GetMemberByID(executor Executor, id string) (*models.TeamMember, error)
	GetMemberByEmail(executor Executor, email string) (*models.TeamMember, error)
	GetMembers(executor Executor) ([]models.TeamMember, error)
	UpdateMember(executor Executor, member *models.TeamMember) error
}

type teamRepository struct{}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository() TeamRepository {
	return &teamRepository{}
}

// CreateMember appends a team member.
func (r *teamRepository) CreateMember(executor Executor, member *models.TeamMember) error {
	return executor.write(func(st *memoryState) error {
		for _, existing := range st.members {
			if existing.ID == member.ID {
				return fmt.Errorf("%w: member id %s", ErrDuplicateKey, member.ID)
			}
		}
		st.members = append(st.members, *member)
		return nil
	})
}

// GetMemberByID retrieves a team member by id.
func (r *teamRepository) GetMemberByID(executor Executor, id string) (*models.TeamMember, error) {
	return r.findMember(executor, func(m models.TeamMember) bool { return m.ID == id })
}

// GetMemberByEmail retrieves a team member by email, ignoring case.
func (r *teamRepository) GetMemberByEmail(executor Executor, email string) (*models.TeamMember, error) {
	email = strings.TrimSpace(email)
	return r.findMember(executor, func(m models.TeamMember) bool { return strings.EqualFold(m.Email, email) })
}

func (r *teamRepository) findMember(executor Executor, match func(models.TeamMember) bool) (*models.TeamMember, error) {
	var found *models.TeamMember
	err := executor.read(func(st *memoryState) error {
		for _, m := range st.members {
			if match(m) {
				found = &m
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// GetMembers lists team members in creation order.
func (r *teamRepository) GetMembers(executor Executor) ([]models.TeamMember, error) {
	members := []models.TeamMember{}
	err := executor.read(func(st *memoryState) error {
		members = append(members, st.members...)
		return nil
	})
	return members, err
}

// UpdateMember replaces the stored member with the same id.
func (r *teamRepository) UpdateMember(executor Executor, member *models.TeamMember) error {
	return executor.write(func(st *memoryState) error {
		for i := range st.members {
			if st.members[i].ID == member.ID {
				st.members[i] = *member
				return nil
			}
		}
		return ErrNotFound
	})
}
