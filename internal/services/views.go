package services

import (
	"github.com/google/uuid"

	"github.com/Calebbuffleben/EAD/internal/models"
)

// Проекции для ответов API. Списки отдают краткие формы связанных сущностей,
// детальные ручки — полные, плюс счетчики в блоке _count.

type OrgRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Logo        string    `json:"logo,omitempty"`
}

type MemberRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type MemberSummary struct {
	ID       uuid.UUID          `json:"id"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Role     models.TeacherRole `json:"role"`
	IsActive bool               `json:"isActive"`
}

type CourseBrief struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	IsPublished bool          `json:"isPublished"`
	Count       PurchaseCount `json:"_count"`
}

type LessonSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Duration    *int      `json:"duration"`
	IsPublished bool      `json:"isPublished"`
}

type PurchaseCount struct {
	Purchases int64 `json:"purchases"`
}

type CourseCounts struct {
	Chapters  int64 `json:"chapters"`
	Purchases int64 `json:"purchases"`
}

type OrganizationCount struct {
	Courses int64 `json:"courses"`
}

type CourseCount struct {
	Courses int64 `json:"courses"`
}

type OrganizationListItem struct {
	models.TeacherOrganization
	TeamMembers []MemberSummary   `json:"teamMembers"`
	Count       OrganizationCount `json:"_count"`
}

type OrganizationDetail struct {
	models.TeacherOrganization
	TeamMembers []MemberSummary `json:"teamMembers"`
	Courses     []CourseBrief   `json:"courses"`
}

type TeamMemberListItem struct {
	models.TeacherTeamMember
	Organization OrgRef      `json:"organization"`
	Count        CourseCount `json:"_count"`
}

type TeamMemberDetail struct {
	models.TeacherTeamMember
	Organization OrgRef        `json:"organization"`
	Courses      []CourseBrief `json:"courses"`
}

type TeamMemberView struct {
	models.TeacherTeamMember
	Organization OrgRef `json:"organization"`
}

type CourseListItem struct {
	models.Course
	Organization OrgRef       `json:"organization"`
	CreatedBy    MemberRef    `json:"createdBy"`
	Count        CourseCounts `json:"_count"`
}

type CourseView struct {
	models.Course
	Organization OrgRef    `json:"organization"`
	CreatedBy    MemberRef `json:"createdBy"`
}

type ChapterWithLessons struct {
	models.Chapter
	Lessons []LessonSummary `json:"lessons"`
}

type CourseDetail struct {
	models.Course
	Organization OrgRef               `json:"organization"`
	CreatedBy    MemberRef            `json:"createdBy"`
	Chapters     []ChapterWithLessons `json:"chapters"`
	Count        PurchaseCount        `json:"_count"`
}

type CourseRef struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Thumbnail    string      `json:"thumbnail"`
	Organization *OrgNameRef `json:"organization,omitempty"`
}

type OrgNameRef struct {
	Name string `json:"name"`
}

type StudentRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
}

type PurchaseView struct {
	models.CoursePurchase
	Course  *CourseRef  `json:"course,omitempty"`
	Student *StudentRef `json:"student,omitempty"`
}

type StudentListItem struct {
	models.Student
	Count PurchaseCount `json:"_count"`
}

type ChapterRef struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	CourseID uuid.UUID `json:"courseId"`
}

type LessonRef struct {
	ID      uuid.UUID   `json:"id"`
	Title   string      `json:"title"`
	Chapter *ChapterRef `json:"chapter,omitempty"`
}

type ProgressWithLesson struct {
	models.LessonProgress
	Lesson LessonRef `json:"lesson"`
}

type StudentDetail struct {
	models.Student
	Purchases []PurchaseView       `json:"purchases"`
	Progress  []ProgressWithLesson `json:"progress,omitempty"`
}

func orgRef(org *models.TeacherOrganization) OrgRef {
	if org == nil {
		return OrgRef{}
	}
	return OrgRef{ID: org.ID, Name: org.Name, Logo: org.Logo}
}

func memberRef(m *models.TeacherTeamMember) MemberRef {
	if m == nil {
		return MemberRef{}
	}
	return MemberRef{ID: m.ID, Name: m.Name}
}

func memberSummaries(ms []models.TeacherTeamMember) []MemberSummary {
	out := make([]MemberSummary, 0, len(ms))
	for _, m := range ms {
		out = append(out, MemberSummary{ID: m.ID, Name: m.Name, Email: m.Email, Role: m.Role, IsActive: m.IsActive})
	}
	return out
}

func lessonSummaries(ls []models.Lesson) []LessonSummary {
	out := make([]LessonSummary, 0, len(ls))
	for _, l := range ls {
		out = append(out, LessonSummary{ID: l.ID, Title: l.Title, Duration: l.Duration, IsPublished: l.IsPublished})
	}
	return out
}
