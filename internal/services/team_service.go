// internal/services/team_service.go
package services

import "github.com/Corphon/MangaStudioMCP/internal/store"

// TeamService manages the member roster and the cross-project workload
// view.
type TeamService struct {
	Store    *store.Store
	Schedule *ScheduleService
}

func NewTeamService(st *store.Store, schedule *ScheduleService) *TeamService {
	return &TeamService{Store: st, Schedule: schedule}
}

// Members returns the roster in insertion order.
func (s *TeamService) Members() []string {
	return s.Store.Members()
}

// AddMember adds a member; duplicates are ignored.
func (s *TeamService) AddMember(name string) error {
	return s.Store.AddMember(name)
}

// RemoveMember deletes a member. Tasks still assigned to the name keep it;
// removal is deliberately unguarded.
func (s *TeamService) RemoveMember(name string) error {
	return s.Store.RemoveMember(name)
}

// Workload returns per-assignee task counts across every project.
func (s *TeamService) Workload() []WorkloadEntry {
	return s.Schedule.Workload(s.Store.Projects())
}
