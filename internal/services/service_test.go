package services

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Calebbuffleben/EAD/internal/models"
	"github.com/Calebbuffleben/EAD/internal/repository"
)

type env struct {
	orgs     OrganizationService
	courses  CourseService
	students StudentService
}

func setup(t *testing.T) *env {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.TeacherOrganization{},
		&models.TeacherTeamMember{},
		&models.Course{},
		&models.Chapter{},
		&models.Lesson{},
		&models.Student{},
		&models.CoursePurchase{},
		&models.LessonProgress{},
	)
	require.NoError(t, err)

	orgRepo := repository.NewOrganizationRepository(db)
	memberRepo := repository.NewTeamMemberRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	return &env{
		orgs:     NewOrganizationService(orgRepo, memberRepo, courseRepo),
		courses:  NewCourseService(courseRepo, chapterRepo, lessonRepo, purchaseRepo, orgRepo, memberRepo, studentRepo),
		students: NewStudentService(studentRepo, purchaseRepo, progressRepo, lessonRepo),
	}
}

func createOrg(t *testing.T, e *env, name string) *models.TeacherOrganization {
	t.Helper()
	org, err := e.orgs.CreateOrganization(CreateOrganizationInput{Name: name})
	require.NoError(t, err)
	return org
}

func createMember(t *testing.T, e *env, orgID uuid.UUID, email string) *TeamMemberView {
	t.Helper()
	m, err := e.orgs.CreateTeamMember(orgID, CreateTeamMemberInput{
		ClerkUserID: "user_" + email,
		Email:       email,
		Name:        "Member " + email,
	})
	require.NoError(t, err)
	return m
}

func createCourse(t *testing.T, e *env, orgID, memberID uuid.UUID, title string, price float64) *CourseView {
	t.Helper()
	c, err := e.courses.CreateCourse(CreateCourseInput{
		Title:          title,
		Price:          &price,
		OrganizationID: orgID,
		CreatedByID:    memberID,
	})
	require.NoError(t, err)
	return c
}

func createStudent(t *testing.T, e *env, email string) *models.Student {
	t.Helper()
	st, err := e.students.CreateStudent(CreateStudentInput{
		ClerkUserID: "user_" + email,
		Email:       email,
		Name:        "Student " + email,
	})
	require.NoError(t, err)
	return st
}

func TestCreateTeamMember_DefaultsRoleToTeacher(t *testing.T) {
	e := setup(t)
	org := createOrg(t, e, "Academy")

	m := createMember(t, e, org.ID, "alice@example.com")
	assert.Equal(t, models.RoleTeacher, m.Role)
	assert.True(t, m.IsActive)
	assert.Equal(t, org.ID, m.Organization.ID)
}

func TestGetTeamMember_WrongOrganizationIsNotFound(t *testing.T) {
	e := setup(t)
	orgA := createOrg(t, e, "Org A")
	orgB := createOrg(t, e, "Org B")
	m := createMember(t, e, orgA.ID, "bob@example.com")

	_, err := e.orgs.GetTeamMember(orgB.ID, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := e.orgs.GetTeamMember(orgA.ID, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
}

func TestDeleteOrganization_RestrictedWhileCoursesExist(t *testing.T) {
	e := setup(t)
	org := createOrg(t, e, "Academy")
	m := createMember(t, e, org.ID, "carol@example.com")
	createCourse(t, e, org.ID, m.ID, "Go Basics", 19.99)

	err := e.orgs.DeleteOrganization(org.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// После удаления курса организация удаляется вместе с участниками
	courses, err := e.courses.ListCourses(&org.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.NoError(t, e.courses.DeleteCourse(courses[0].ID))
	require.NoError(t, e.orgs.DeleteOrganization(org.ID))

	_, err = e.orgs.GetTeamMember(org.ID, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTeamMember_RestrictedWhileAuthorOfCourses(t *testing.T) {
	e := setup(t)
	org := createOrg(t, e, "Academy")
	m := createMember(t, e, org.ID, "dave@example.com")
	c := createCourse(t, e, org.ID, m.ID, "Go Basics", 0)

	err := e.orgs.DeleteTeamMember(org.ID, m.ID)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, e.courses.DeleteCourse(c.ID))
	require.NoError(t, e.orgs.DeleteTeamMember(org.ID, m.ID))
}

func TestCreateCourse_AuthorMustBelongToOrganization(t *testing.T) {
	e := setup(t)
	orgA := createOrg(t, e, "Org A")
	orgB := createOrg(t, e, "Org B")
	m := createMember(t, e, orgA.ID, "eve@example.com")

	price := 10.0
	_, err := e.courses.CreateCourse(CreateCourseInput{
		Title:          "Stolen Course",
		Price:          &price,
		OrganizationID: orgB.ID,
		CreatedByID:    m.ID,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCoursePrice_ExactTwoDecimals(t *testing.T) {
	e := setup(t)
	org := createOrg(t, e, "Academy")
	m := createMember(t, e, org.ID, "frank@example.com")
	c := createCourse(t, e, org.ID, m.ID, "Go Basics", 19.99)

	assert.True(t, c.Price.Equal(decimal.RequireFromString("19.99")), "got %s", c.Price)

	got, err := e.courses.GetCourse(c.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("19.99")), "got %s", got.Price)
	assert.Equal(t, "19.99", got.Price.String())
}

func TestChapterOrder_AutoAssignedSequentially(t *testing.T) {
	e := setup(t)
	org := createOrg(t, e, "Academy")
	m := createMember(t, e, org.ID, "grace@example.com")
	c := createCourse(t, e, org.ID, m.ID, "Go Basics", 0)

	ch1, err := e.courses.CreateChapter(c.ID, CreateChapterInput{Title: "Intro"})
	require.NoError(t, err)
	ch2, err := e.courses.CreateChapter(c.ID, CreateChapterInput{Title: "Syntax"})
	require.NoError(t, err)

	assert.Equal(t, 1, ch1.Order)
	assert.Equal(t, 2, ch2.Order)
}

func TestChapterOrder_DuplicateIsConflict(t *testing.T) {
	e := setup(t)
	org := createOrg(t, e, "Academy")
	m := createMember(t, e, org.ID, "henry@example.com")
	c := createCourse(t, e, org.ID, m.ID, "Go Basics", 0)

	one := 1
	_, err := e.courses.CreateChapter(c.ID, CreateChapterInput{Title: "Intro", Order: &one})
	require.NoError(t, err)

	_, err = e.courses.CreateChapter(c.ID, CreateChapterInput{Title: "Clash", Order: &one})
	assert.ErrorIs(t, err, ErrConflict)

	// В другом курсе тот же порядок свободен
	c2 := createCourse(t, e, org.ID, m.ID, "Another Course", 0)
	_, err = e.courses.CreateChapter(c2.ID, CreateChapterInput{Title: "Intro", Order: &one})
	assert.NoError(t, err)
}

func TestDeleteChapter_RemovesLessonsAndRenumbers(t *testing.T) {
	e := setup(t)
	org := createOrg(t, e, "Academy")
	m := createMember(t, e, org.ID, "iris@example.com")
	c := createCourse(t, e, org.ID, m.ID, "Go Basics", 0)

	ch1, err := e.courses.CreateChapter(c.ID, CreateChapterInput{Title: "One"})
	require.NoError(t, err)
	ch2, err := e.courses.CreateChapter(c.ID, CreateChapterInput{Title: "Two"})
	require.NoError(t, err)
	ch3, err := e.courses.CreateChapter(c.ID, CreateChapterInput{Title: "Three"})
	require.NoError(t, err)

	l, err := e.courses.CreateLesson(c.ID, ch2.ID, CreateLessonInput{Title: "Orphan"})
	require.NoError(t, err)

	require.NoError(t, e.courses.DeleteChapter(c.ID, ch2.ID))

	chapters, err := e.courses.ListChapters(c.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, ch1.ID, chapters[0].ID)
	assert.Equal(t, 1, chapters[0].Order)
	assert.Equal(t, ch3.ID, chapters[1].ID)
	assert.Equal(t, 2, chapters[1].Order)

	// Уроки удаленной главы пропали вместе с ней
	_, err = e.courses.GetLesson(c.ID, ch2.ID, l.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteLesson_Renumbers(t *testing.T) {
	e := setup(t)
	org := createOrg(t, e, "Academy")
	m := createMember(t, e, org.ID, "jack@example.com")
	c := createCourse(t, e, org.ID, m.ID, "Go Basics", 0)
	ch, err := e.courses.CreateChapter(c.ID, CreateChapterInput{Title: "One"})
	require.NoError(t, err)

	l1, err := e.courses.CreateLesson(c.ID, ch.ID, CreateLessonInput{Title: "A"})
	require.NoError(t, err)
	l2, err := e.courses.CreateLesson(c.ID, ch.ID, CreateLessonInput{Title: "B"})
	require.NoError(t, err)
	l3, err := e.courses.CreateLesson(c.ID, ch.ID, CreateLessonInput{Title: "C"})
	require.NoError(t, err)

	require.NoError(t, e.courses.DeleteLesson(c.ID, ch.ID, l2.ID))

	lessons, err := e.courses.ListLessons(c.ID, ch.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, l1.ID, lessons[0].ID)
	assert.Equal(t, 1, lessons[0].Order)
	assert.Equal(t, l3.ID, lessons[1].ID)
	assert.Equal(t, 2, lessons[1].Order)
}

func TestGetCourse_ChaptersAndLessonsOrdered(t *testing.T) {
	e := setup(t)
	org := createOrg(t, e, "Academy")
	m := createMember(t, e, org.ID, "kate@example.com")
	c := createCourse(t, e, org.ID, m.ID, "Go Basics", 0)

	two, one := 2, 1
	chB, err := e.courses.CreateChapter(c.ID, CreateChapterInput{Title: "B", Order: &two})
	require.NoError(t, err)
	chA, err := e.courses.CreateChapter(c.ID, CreateChapterInput{Title: "A", Order: &one})
	require.NoError(t, err)

	_, err = e.courses.CreateLesson(c.ID, chA.ID, CreateLessonInput{Title: "A2", Order: &two})
	require.NoError(t, err)
	_, err = e.courses.CreateLesson(c.ID, chA.ID, CreateLessonInput{Title: "A1", Order: &one})
	require.NoError(t, err)

	got, err := e.courses.GetCourse(c.ID)
	require.NoError(t, err)
	require.Len(t, got.Chapters, 2)
	assert.Equal(t, chA.ID, got.Chapters[0].ID)
	assert.Equal(t, chB.ID, got.Chapters[1].ID)
	require.Len(t, got.Chapters[0].Lessons, 2)
	assert.Equal(t, "A1", got.Chapters[0].Lessons[0].Title)
	assert.Equal(t, "A2", got.Chapters[0].Lessons[1].Title)
}

func TestPurchaseCourse_Idempotent(t *testing.T) {
	e := setup(t)
	org := createOrg(t, e, "Academy")
	m := createMember(t, e, org.ID, "leo@example.com")
	c := createCourse(t, e, org.ID, m.ID, "Go Basics", 19.99)
	st := createStudent(t, e, "mia@example.com")

	amount := decimal.RequireFromString("19.99")
	first, created, err := e.courses.PurchaseCourse(c.ID, st.ID, amount)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := e.courses.PurchaseCourse(c.ID, st.ID, amount)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.CoursePurchase.ID, second.CoursePurchase.ID)

	purchases, err := e.courses.ListCoursePurchases(c.ID)
	require.NoError(t, err)
	assert.Len(t, purchases, 1)
	assert.True(t, purchases[0].Amount.Equal(amount))
}

func TestDeleteCourse_RestrictedWhilePurchased(t *testing.T) {
	e := setup(t)
	org := createOrg(t, e, "Academy")
	m := createMember(t, e, org.ID, "nina@example.com")
	c := createCourse(t, e, org.ID, m.ID, "Go Basics", 5)
	st := createStudent(t, e, "oscar@example.com")

	_, _, err := e.courses.PurchaseCourse(c.ID, st.ID, decimal.NewFromInt(5))
	require.NoError(t, err)

	err = e.courses.DeleteCourse(c.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRecordProgress_UpsertsSingleRecord(t *testing.T) {
	e := setup(t)
	org := createOrg(t, e, "Academy")
	m := createMember(t, e, org.ID, "pam@example.com")
	c := createCourse(t, e, org.ID, m.ID, "Go Basics", 0)
	ch, err := e.courses.CreateChapter(c.ID, CreateChapterInput{Title: "One"})
	require.NoError(t, err)
	l, err := e.courses.CreateLesson(c.ID, ch.ID, CreateLessonInput{Title: "A"})
	require.NoError(t, err)
	st := createStudent(t, e, "quinn@example.com")

	pr1, err := e.students.RecordProgress(st.ID, l.ID, false)
	require.NoError(t, err)
	assert.False(t, pr1.IsCompleted)
	assert.NotNil(t, pr1.WatchedAt)
	assert.Nil(t, pr1.CompletedAt)

	pr2, err := e.students.RecordProgress(st.ID, l.ID, true)
	require.NoError(t, err)
	assert.Equal(t, pr1.ID, pr2.ID)
	assert.True(t, pr2.IsCompleted)
	assert.NotNil(t, pr2.CompletedAt)

	records, err := e.students.ListProgress(st.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, l.ID, records[0].Lesson.ID)
}

func TestGetStudent_IncludesPurchasesAndProgress(t *testing.T) {
	e := setup(t)
	org := createOrg(t, e, "Academy")
	m := createMember(t, e, org.ID, "rita@example.com")
	c := createCourse(t, e, org.ID, m.ID, "Go Basics", 19.99)
	ch, err := e.courses.CreateChapter(c.ID, CreateChapterInput{Title: "One"})
	require.NoError(t, err)
	l, err := e.courses.CreateLesson(c.ID, ch.ID, CreateLessonInput{Title: "A"})
	require.NoError(t, err)
	st := createStudent(t, e, "sam@example.com")

	_, _, err = e.courses.PurchaseCourse(c.ID, st.ID, decimal.RequireFromString("19.99"))
	require.NoError(t, err)
	_, err = e.students.RecordProgress(st.ID, l.ID, true)
	require.NoError(t, err)

	got, err := e.students.GetStudent(st.ID)
	require.NoError(t, err)
	require.Len(t, got.Purchases, 1)
	require.NotNil(t, got.Purchases[0].Course)
	assert.Equal(t, "Go Basics", got.Purchases[0].Course.Title)
	require.NotNil(t, got.Purchases[0].Course.Organization)
	assert.Equal(t, "Academy", got.Purchases[0].Course.Organization.Name)
	require.Len(t, got.Progress, 1)
	require.NotNil(t, got.Progress[0].Lesson.Chapter)
	assert.Equal(t, c.ID, got.Progress[0].Lesson.Chapter.CourseID)
}

func TestGetStudentByClerkID(t *testing.T) {
	e := setup(t)
	st := createStudent(t, e, "tess@example.com")

	got, err := e.students.GetStudentByClerkID(st.ClerkUserID)
	require.NoError(t, err)
	assert.Equal(t, st.ID, got.ID)

	_, err = e.students.GetStudentByClerkID("user_unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}
