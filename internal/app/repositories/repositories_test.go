package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/madarij/center/internal/app/models"
	"github.com/madarij/center/internal/app/models/dto"
	"github.com/madarij/center/internal/pkg/apperrors"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestStudentRepository_UpdateIfStatus(t *testing.T) {
	ctx := context.Background()
	student := &models.Student{
		ID:                uuid.New(),
		Name:              "Omar",
		Stage:             models.StagePrimary,
		ApplicationStatus: models.StatusFormGiven,
	}

	t.Run("writes when status still matches", func(t *testing.T) {
		mock := newMock(t)
		repo := NewStudentRepository(mock)
		updated := time.Date(2026, 1, 3, 10, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`UPDATE students SET .* WHERE id = \$\d+ AND application_status IN \(\$\d+,\$\d+\) RETURNING updated_at`).
			WillReturnRows(mock.NewRows([]string{"updated_at"}).AddRow(updated))

		err := repo.UpdateIfStatus(ctx, student, models.StatusNew, models.StatusFormGiven)
		require.NoError(t, err)
		assert.Equal(t, updated, student.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports concurrent change when no row matches", func(t *testing.T) {
		mock := newMock(t)
		repo := NewStudentRepository(mock)

		mock.ExpectQuery(`UPDATE students`).
			WillReturnRows(mock.NewRows([]string{"updated_at"}))

		err := repo.UpdateIfStatus(ctx, student, models.StatusFormSubmitted)
		assert.ErrorIs(t, err, apperrors.ErrStudentChanged)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("requires an expected status", func(t *testing.T) {
		repo := NewStudentRepository(newMock(t))
		assert.Error(t, repo.UpdateIfStatus(ctx, student))
	})
}

func TestStudentRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewStudentRepository(mock)

	id, guardianID := uuid.New(), uuid.New()
	now := time.Date(2026, 1, 3, 10, 0, 0, 0, time.UTC)
	cols := append(append([]string{}, studentColumns...), studentGuardianColumns...)

	mock.ExpectQuery(`SELECT s.id, .* FROM students s JOIN guardians g ON g.id = s.guardian_id WHERE s.id = \$1`).
		WithArgs(id.String()).
		WillReturnRows(mock.NewRows(cols).AddRow(
			id, "Omar", nil, nil, models.StagePrimary, guardianID, nil,
			"", models.StatusNew, nil, "", false,
			nil, nil, now, now,
			guardianID, "Khaled", "01012345678", "", "", models.RelationshipFather,
			true, "", now, now,
		))

	s, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Omar", s.Name)
	assert.Equal(t, models.StatusNew, s.ApplicationStatus)
	assert.Nil(t, s.HalqaID)
	require.NotNil(t, s.Guardian)
	assert.Equal(t, "Khaled", s.Guardian.Name)

	mock.ExpectQuery(`FROM students s`).WillReturnRows(mock.NewRows(cols))
	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewRepository_CreateMapsDuplicateToConflict(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewInterviewRepository(mock)

	mock.ExpectQuery(`INSERT INTO interviews`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: oneScheduledInterviewConstraint})

	err := repo.Create(ctx, &models.Interview{StudentID: uuid.New(), Status: models.InterviewScheduled})
	assert.ErrorIs(t, err, apperrors.ErrInterviewAlreadyScheduled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewRepository_MarkReminded(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewInterviewRepository(mock)
	id := uuid.New()

	mock.ExpectExec(`UPDATE interviews SET reminded_at = \$1, updated_at = NOW\(\) WHERE id = \$2 AND reminded_at IS NULL`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE interviews`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	first, err := repo.MarkReminded(ctx, id, time.Now())
	require.NoError(t, err)
	assert.True(t, first)

	second, err := repo.MarkReminded(ctx, id, time.Now())
	require.NoError(t, err)
	assert.False(t, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewNotificationRepository(mock)
	id, recipient := uuid.New(), uuid.New()
	readAt := time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE notifications SET is_read = \$1, read_at = COALESCE\(read_at, \$2\)`).
		WillReturnRows(mock.NewRows(notificationColumns).AddRow(
			id, recipient, models.NotificationSystem, "Hello", "World", nil, nil,
			true, &readAt, models.PriorityLow, nil, readAt,
		))

	n, err := repo.MarkRead(ctx, id, recipient, readAt.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, n.IsRead)
	require.NotNil(t, n.ReadAt)
	assert.Equal(t, readAt, *n.ReadAt)

	mock.ExpectQuery(`UPDATE notifications`).WillReturnRows(mock.NewRows(notificationColumns))
	_, err = repo.MarkRead(ctx, id, uuid.New(), readAt)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_ListByRecipient(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewNotificationRepository(mock)
	recipient := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications WHERE is_read = \$1 AND recipient_id = \$2`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(`SELECT id, .* FROM notifications .* ORDER BY created_at DESC LIMIT 2 OFFSET 0`).
		WillReturnRows(mock.NewRows(notificationColumns).
			AddRow(uuid.New(), recipient, models.NotificationInterviewScheduled, "a", "b", nil, nil, false, nil, models.PriorityHigh, nil, now).
			AddRow(uuid.New(), recipient, models.NotificationInterviewReminder, "c", "d", nil, nil, false, nil, models.PriorityHigh, nil, now))

	list, total, err := repo.ListByRecipient(ctx, recipient, true, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "Mona", "mona@madarij.center", "hash", models.RoleStudentAffairs, true, "").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: usersEmailConstraint})

	err := repo.Create(ctx, &models.User{
		Name: "Mona", Email: "  Mona@Madarij.Center ", Password: "hash",
		Role: models.RoleStudentAffairs, IsActive: true,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListFiltersByRole(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE \(role = \$1\)`).
		WithArgs(models.RoleDirector).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`SELECT id, name, .* FROM users WHERE \(role = \$1\) ORDER BY name ASC`).
		WillReturnRows(mock.NewRows(userColumns).AddRow(
			uuid.New(), "Ahmed", "director@madarij.center", "hash", models.RoleDirector, true, "", nil, now, now))

	users, total, err := repo.List(ctx, dto.UserFilter{Role: models.RoleDirector}, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleDirector, users[0].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffAssignmentRepository_GetUnassigned(t *testing.T) {
	mock := newMock(t)
	repo := NewStaffAssignmentRepository(mock)

	mock.ExpectQuery(`FROM staff_assignments sa`).
		WithArgs(models.DutyInterviewConductor).
		WillReturnRows(mock.NewRows([]string{"duty"}))

	a, err := repo.Get(context.Background(), models.DutyInterviewConductor)
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestHalqaRepository_FindActiveConflicts(t *testing.T) {
	mock := newMock(t)
	repo := NewHalqaRepository(mock)
	teacher, room := uuid.New(), uuid.New()
	now := time.Now()
	cols := append(append([]string{}, halqaColumns...), "student_count")

	mock.ExpectQuery(`FROM halqat h WHERE h.is_active = \$1 AND h.days && \$2 AND \(h.teacher_id = \$3 OR h.classroom_id = \$4\)`).
		WithArgs(true, []string{"saturday", "monday"}, teacher, room).
		WillReturnRows(mock.NewRows(cols).AddRow(
			uuid.New(), "Al-Fajr", room, uuid.New(), uuid.New(), []string{"saturday"}, "14:00", "16:00",
			15, true, "", now, now, 4))

	halqat, err := repo.FindActiveConflicts(context.Background(), teacher, room, []string{"saturday", "monday"})
	require.NoError(t, err)
	require.Len(t, halqat, 1)
	assert.Equal(t, 4, halqat[0].StudentCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
