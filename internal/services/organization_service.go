package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Calebbuffleben/EAD/internal/models"
	"github.com/Calebbuffleben/EAD/internal/repository"
)

type CreateOrganizationInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Website     string `json:"website" binding:"omitempty,url"`
	Logo        string `json:"logo"`
}

type UpdateOrganizationInput struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Logo        *string `json:"logo"`
}

type CreateTeamMemberInput struct {
	ClerkUserID string             `json:"clerkUserId" binding:"required"`
	Email       string             `json:"email" binding:"required,email"`
	Name        string             `json:"name" binding:"required"`
	Role        models.TeacherRole `json:"role" binding:"omitempty,oneof=OWNER ADMIN TEACHER ASSISTANT"`
}

type UpdateTeamMemberInput struct {
	ClerkUserID *string             `json:"clerkUserId" binding:"omitempty,min=1"`
	Email       *string             `json:"email" binding:"omitempty,email"`
	Name        *string             `json:"name" binding:"omitempty,min=1"`
	Role        *models.TeacherRole `json:"role" binding:"omitempty,oneof=OWNER ADMIN TEACHER ASSISTANT"`
	IsActive    *bool               `json:"isActive"`
}

type OrganizationService interface {
	ListOrganizations() ([]*OrganizationListItem, error)
	GetOrganization(id uuid.UUID) (*OrganizationDetail, error)
	CreateOrganization(in CreateOrganizationInput) (*models.TeacherOrganization, error)
	UpdateOrganization(id uuid.UUID, in UpdateOrganizationInput) (*models.TeacherOrganization, error)
	DeleteOrganization(id uuid.UUID) error

	ListTeamMembers(orgID uuid.UUID) ([]*TeamMemberListItem, error)
	GetTeamMember(orgID, memberID uuid.UUID) (*TeamMemberDetail, error)
	CreateTeamMember(orgID uuid.UUID, in CreateTeamMemberInput) (*TeamMemberView, error)
	UpdateTeamMember(orgID, memberID uuid.UUID, in UpdateTeamMemberInput) (*TeamMemberView, error)
	DeleteTeamMember(orgID, memberID uuid.UUID) error
}

type organizationService struct {
	orgs    repository.OrganizationRepository
	members repository.TeamMemberRepository
	courses repository.CourseRepository
}

func NewOrganizationService(
	orgs repository.OrganizationRepository,
	members repository.TeamMemberRepository,
	courses repository.CourseRepository,
) OrganizationService {
	return &organizationService{orgs: orgs, members: members, courses: courses}
}

func (s *organizationService) ListOrganizations() ([]*OrganizationListItem, error) {
	orgs, err := s.orgs.List()
	if err != nil {
		return nil, err
	}

	items := make([]*OrganizationListItem, 0, len(orgs))
	for _, org := range orgs {
		courseCount, err := s.courses.CountByOrganization(org.ID)
		if err != nil {
			return nil, err
		}
		item := &OrganizationListItem{
			TeacherOrganization: *org,
			TeamMembers:         memberSummaries(org.TeamMembers),
			Count:               OrganizationCount{Courses: courseCount},
		}
		item.TeacherOrganization.TeamMembers = nil
		items = append(items, item)
	}
	return items, nil
}

func (s *organizationService) GetOrganization(id uuid.UUID) (*OrganizationDetail, error) {
	org, err := s.orgs.GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("organization %w", ErrNotFound)
		}
		return nil, err
	}

	courses := make([]CourseBrief, 0, len(org.Courses))
	for _, c := range org.Courses {
		purchases, err := s.courses.CountPurchases(c.ID)
		if err != nil {
			return nil, err
		}
		courses = append(courses, CourseBrief{
			ID:          c.ID,
			Title:       c.Title,
			IsPublished: c.IsPublished,
			Count:       PurchaseCount{Purchases: purchases},
		})
	}

	detail := &OrganizationDetail{
		TeacherOrganization: *org,
		TeamMembers:         memberSummaries(org.TeamMembers),
		Courses:             courses,
	}
	detail.TeacherOrganization.TeamMembers = nil
	detail.TeacherOrganization.Courses = nil
	return detail, nil
}

func (s *organizationService) CreateOrganization(in CreateOrganizationInput) (*models.TeacherOrganization, error) {
	org := &models.TeacherOrganization{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Website:     in.Website,
		Logo:        in.Logo,
	}
	if err := s.orgs.Create(org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) UpdateOrganization(id uuid.UUID, in UpdateOrganizationInput) (*models.TeacherOrganization, error) {
	org, err := s.orgs.GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("organization %w", ErrNotFound)
		}
		return nil, err
	}

	// Частичное обновление: незаданные поля не трогаем
	if in.Name != nil {
		org.Name = *in.Name
	}
	if in.Description != nil {
		org.Description = *in.Description
	}
	if in.Website != nil {
		org.Website = *in.Website
	}
	if in.Logo != nil {
		org.Logo = *in.Logo
	}
	org.UpdatedAt = time.Now()
	org.TeamMembers = nil
	org.Courses = nil

	if err := s.orgs.Update(org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) DeleteOrganization(id uuid.UUID) error {
	if _, err := s.orgs.GetByID(id); err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("organization %w", ErrNotFound)
		}
		return err
	}
	courseCount, err := s.courses.CountByOrganization(id)
	if err != nil {
		return err
	}
	if courseCount > 0 {
		return fmt.Errorf("%w: organization still owns courses", ErrConflict)
	}
	return s.orgs.Delete(id)
}

func (s *organizationService) ListTeamMembers(orgID uuid.UUID) ([]*TeamMemberListItem, error) {
	members, err := s.members.ListByOrganization(orgID)
	if err != nil {
		return nil, err
	}

	items := make([]*TeamMemberListItem, 0, len(members))
	for _, m := range members {
		authored, err := s.courses.CountByCreator(m.ID)
		if err != nil {
			return nil, err
		}
		item := &TeamMemberListItem{
			TeacherTeamMember: *m,
			Organization:      orgRef(m.Organization),
			Count:             CourseCount{Courses: authored},
		}
		item.TeacherTeamMember.Organization = nil
		items = append(items, item)
	}
	return items, nil
}

func (s *organizationService) GetTeamMember(orgID, memberID uuid.UUID) (*TeamMemberDetail, error) {
	m, err := s.members.GetInOrganization(orgID, memberID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("team member %w", ErrNotFound)
		}
		return nil, err
	}

	courses := make([]CourseBrief, 0, len(m.Courses))
	for _, c := range m.Courses {
		purchases, err := s.courses.CountPurchases(c.ID)
		if err != nil {
			return nil, err
		}
		courses = append(courses, CourseBrief{
			ID:          c.ID,
			Title:       c.Title,
			IsPublished: c.IsPublished,
			Count:       PurchaseCount{Purchases: purchases},
		})
	}

	ref := orgRef(m.Organization)
	if m.Organization != nil {
		ref.Description = m.Organization.Description
	}
	detail := &TeamMemberDetail{
		TeacherTeamMember: *m,
		Organization:      ref,
		Courses:           courses,
	}
	detail.TeacherTeamMember.Organization = nil
	detail.TeacherTeamMember.Courses = nil
	return detail, nil
}

func (s *organizationService) CreateTeamMember(orgID uuid.UUID, in CreateTeamMemberInput) (*TeamMemberView, error) {
	org, err := s.orgs.GetByID(orgID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("organization %w", ErrNotFound)
		}
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleTeacher
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrConflict, role)
	}

	m := &models.TeacherTeamMember{
		ID:             uuid.New(),
		OrganizationID: orgID,
		ClerkUserID:    in.ClerkUserID,
		Email:          in.Email,
		Name:           in.Name,
		Role:           role,
		IsActive:       true,
	}
	if err := s.members.Create(m); err != nil {
		return nil, err
	}
	return &TeamMemberView{TeacherTeamMember: *m, Organization: OrgRef{ID: org.ID, Name: org.Name}}, nil
}

func (s *organizationService) UpdateTeamMember(orgID, memberID uuid.UUID, in UpdateTeamMemberInput) (*TeamMemberView, error) {
	m, err := s.members.GetInOrganization(orgID, memberID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("team member %w", ErrNotFound)
		}
		return nil, err
	}

	if in.ClerkUserID != nil {
		m.ClerkUserID = *in.ClerkUserID
	}
	if in.Email != nil {
		m.Email = *in.Email
	}
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Role != nil {
		if !in.Role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrConflict, *in.Role)
		}
		m.Role = *in.Role
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	m.UpdatedAt = time.Now()

	ref := orgRef(m.Organization)
	m.Organization = nil
	m.Courses = nil
	if err := s.members.Update(m); err != nil {
		return nil, err
	}
	return &TeamMemberView{TeacherTeamMember: *m, Organization: ref}, nil
}

func (s *organizationService) DeleteTeamMember(orgID, memberID uuid.UUID) error {
	m, err := s.members.GetInOrganization(orgID, memberID)
	if err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("team member %w", ErrNotFound)
		}
		return err
	}
	authored, err := s.courses.CountByCreator(m.ID)
	if err != nil {
		return err
	}
	if authored > 0 {
		return fmt.Errorf("%w: team member authored courses", ErrConflict)
	}
	return s.members.Delete(m.ID)
}
