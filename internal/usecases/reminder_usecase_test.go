package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/usecases"
)

type reminderFixture struct {
	offerings *MockOfferingRepository
	projects  *MockProjectRepository
	chat      *fakeChat
	usecase   *usecases.ReminderUsecase
}

func newReminderFixture() *reminderFixture {
	f := &reminderFixture{
		offerings: new(MockOfferingRepository),
		projects:  new(MockProjectRepository),
		chat:      newFakeChat(),
	}
	f.usecase = usecases.NewReminderUsecase(f.offerings, f.projects, f.chat, usecases.NewAdminPolicy("admin-1"))
	f.usecase.SetClock(func() time.Time { return fixedNow })
	return f
}

// pendingOffering was opened 90 minutes ago with a two hour window.
func (f *reminderFixture) pendingOffering(status entities.OfferingStatus) *entities.Offering {
	project := &entities.Project{ID: uuid.New(), ConfirmationDuration: int64(2 * time.Hour / time.Millisecond)}
	offering := &entities.Offering{
		ID:              uuid.New(),
		ProjectID:       project.ID,
		Status:          status,
		DiscordThreadID: null.StringFrom("th-1"),
		CreatedAt:       fixedNow.Add(-90 * time.Minute),
		Team:            newChatTeam("chan-1", "user-1"),
	}
	f.offerings.On("GetByID", mock.Anything, offering.ID).Return(offering, nil)
	f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
	return offering
}

func TestReminderUsecase_OfferingReminder(t *testing.T) {
	f := newReminderFixture()
	offering := f.pendingOffering(entities.OfferingStatusOffering)

	err := f.usecase.Handle(context.Background(), entities.ReminderJob{
		Kind: entities.ReminderOfferingConfirmation, SubjectID: offering.ID, MinutesBefore: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jangan lupa konfirmasi project mu <@user-1> yaa. \nBatas konfirmasi 30 menit lagi"}, f.chat.contents("th-1"))
}

func TestReminderUsecase_OfferingExpired(t *testing.T) {
	f := newReminderFixture()
	offering := f.pendingOffering(entities.OfferingStatusOffering)
	f.usecase.SetClock(func() time.Time { return fixedNow.Add(time.Hour) })

	err := f.usecase.Handle(context.Background(), entities.ReminderJob{
		Kind: entities.ReminderOfferingConfirmation, SubjectID: offering.ID, MinutesBefore: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Deadline konfirmasi sudah berakhir <@user-1>. \ncc  <@admin-1>"}, f.chat.contents("th-1"))
}

func TestReminderUsecase_OfferingLateOffsetDropped(t *testing.T) {
	f := newReminderFixture()
	offering := f.pendingOffering(entities.OfferingStatusOffering)
	f.usecase.SetClock(func() time.Time { return fixedNow.Add(time.Hour) })

	err := f.usecase.Handle(context.Background(), entities.ReminderJob{
		Kind: entities.ReminderOfferingConfirmation, SubjectID: offering.ID, MinutesBefore: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, f.chat.sent)
}

func TestReminderUsecase_OfferingAlreadyAnswered(t *testing.T) {
	f := newReminderFixture()
	offering := f.pendingOffering(entities.OfferingStatusAccepted)

	err := f.usecase.Handle(context.Background(), entities.ReminderJob{
		Kind: entities.ReminderOfferingConfirmation, SubjectID: offering.ID, MinutesBefore: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, f.chat.sent)
}

func TestReminderUsecase_SubjectDeleted(t *testing.T) {
	f := newReminderFixture()
	id := uuid.New()
	f.projects.On("GetByID", mock.Anything, id).Return(nil, domainerrors.ErrNotFound)

	err := f.usecase.Handle(context.Background(), entities.ReminderJob{
		Kind: entities.ReminderProjectDeadline, SubjectID: id, MinutesBefore: 5,
	})
	require.NoError(t, err)
	assert.Empty(t, f.chat.sent)
}

func TestReminderUsecase_Deadline(t *testing.T) {
	tests := []struct {
		name    string
		status  entities.ProjectStatus
		minutes int
		want    []string
	}{
		{"before deadline", entities.ProjectStatusInProgress, 5, []string{"Deadline project mu <@user-1> kurang 5 menit lagi."}},
		{"deadline reached", entities.ProjectStatusRevision, 0, []string{"Deadline project mu <@user-1> telah selesai. \ncc <@admin-1>"}},
		{"project done", entities.ProjectStatusDone, 5, nil},
		{"project cancelled", entities.ProjectStatusCancelled, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReminderFixture()
			project := &entities.Project{ID: uuid.New(), Status: tt.status}
			f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)
			f.offerings.On("LatestForProject", mock.Anything, project.ID, mock.Anything).Return(&entities.Offering{
				ID:              uuid.New(),
				Status:          entities.OfferingStatusAccepted,
				DiscordThreadID: null.StringFrom("th-1"),
				Team:            newChatTeam("chan-1", "user-1"),
			}, nil)

			err := f.usecase.Handle(context.Background(), entities.ReminderJob{
				Kind: entities.ReminderProjectDeadline, SubjectID: project.ID, MinutesBefore: tt.minutes,
			})
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, f.chat.sent)
				return
			}
			assert.Equal(t, tt.want, f.chat.contents("th-1"))
		})
	}
}

func TestReminderUsecase_ChatFailureIsReturned(t *testing.T) {
	f := newReminderFixture()
	offering := f.pendingOffering(entities.OfferingStatusOffering)
	f.chat.sendErr = errors.New("gateway down")

	err := f.usecase.Handle(context.Background(), entities.ReminderJob{
		Kind: entities.ReminderOfferingConfirmation, SubjectID: offering.ID, MinutesBefore: 30,
	})
	assert.EqualError(t, err, "gateway down")
}
