package service

import (
	"context"

	"mentorhub/backend/internal/model"
	apperrors "mentorhub/backend/pkg/errors"
)

// ── Mock PolicyRepository ──

type mockPolicyRepo struct {
	global          *model.Policy
	programs        map[string]*model.PolicyOverride
	periods         map[string]*model.PolicyOverride // "instructorID:period"
	globalCalls     int
	programCalls    int
	periodCalls     int
}

func newMockPolicyRepo() *mockPolicyRepo {
	return &mockPolicyRepo{
		programs: make(map[string]*model.PolicyOverride),
		periods:  make(map[string]*model.PolicyOverride),
	}
}

func (m *mockPolicyRepo) GetGlobal(_ context.Context) (*model.Policy, error) {
	m.globalCalls++
	if m.global == nil {
		return nil, apperrors.ErrNotFound
	}
	p := *m.global
	return &p, nil
}

func (m *mockPolicyRepo) SetGlobal(_ context.Context, policy *model.Policy) error {
	p := *policy
	m.global = &p
	return nil
}

func (m *mockPolicyRepo) GetProgramOverride(_ context.Context, programID string) (*model.PolicyOverride, error) {
	m.programCalls++
	if o, ok := m.programs[programID]; ok {
		return o, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockPolicyRepo) SaveProgramOverride(_ context.Context, programID string, o *model.PolicyOverride) error {
	m.programs[programID] = o
	return nil
}

func (m *mockPolicyRepo) DeleteProgramOverride(_ context.Context, programID string) error {
	delete(m.programs, programID)
	return nil
}

func (m *mockPolicyRepo) GetInstructorPeriodOverride(_ context.Context, instructorID, period string) (*model.PolicyOverride, error) {
	m.periodCalls++
	if o, ok := m.periods[instructorID+":"+period]; ok {
		return o, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockPolicyRepo) SaveInstructorPeriodOverride(_ context.Context, instructorID, period string, o *model.PolicyOverride) error {
	m.periods[instructorID+":"+period] = o
	return nil
}

func (m *mockPolicyRepo) DeleteInstructorPeriodOverride(_ context.Context, instructorID, period string) error {
	delete(m.periods, instructorID+":"+period)
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments []model.Assignment
	listCalls   int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	m.assignments = append(m.assignments, *assignment)
	return nil
}

func (m *mockAssignmentRepo) List(_ context.Context) ([]model.Assignment, error) {
	m.listCalls++
	return append([]model.Assignment(nil), m.assignments...), nil
}

// ── Mock ApplicationRepository ──

type mockApplicationRepo struct {
	applications []model.Application
	listCalls    int
	byStatusCalls int
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{}
}

func (m *mockApplicationRepo) Create(_ context.Context, application *model.Application) error {
	m.applications = append(m.applications, *application)
	return nil
}

func (m *mockApplicationRepo) List(_ context.Context) ([]model.Application, error) {
	m.listCalls++
	return append([]model.Application(nil), m.applications...), nil
}

func (m *mockApplicationRepo) ListByStatus(_ context.Context, statuses []model.ApplicationStatus) ([]model.Application, error) {
	m.byStatusCalls++
	wanted := make(map[model.ApplicationStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}
	var result []model.Application
	for _, a := range m.applications {
		if wanted[a.Status] {
			result = append(result, a)
		}
	}
	return result, nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions     map[string]*model.Session
	statusWrites []string // "sessionID→status" 写入轨迹
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	c := *session
	m.sessions[session.SessionID] = &c
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockSessionRepo) List(_ context.Context) ([]model.Session, error) {
	result := make([]model.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSessionRepo) UpdateStatus(_ context.Context, id string, status model.SessionStatus) error {
	s, ok := m.sessions[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	s.Status = status
	m.statusWrites = append(m.statusWrites, id+"→"+string(status))
	return nil
}
