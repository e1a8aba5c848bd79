package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/usecases"
)

func TestTeamUsecase_Create(t *testing.T) {
	repo := new(MockTeamRepository)
	u := usecases.NewTeamUsecase(repo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Team")).Return(nil)
	userID := "1234"

	team, err := u.Create(context.Background(), &entities.CreateTeamInput{Name: "Rina", DiscordUserID: &userID})
	require.NoError(t, err)
	assert.Equal(t, entities.TeamRoleArtist, team.Role)
	assert.Equal(t, null.StringFrom("1234"), team.DiscordUserID)
	assert.False(t, team.DiscordChannelID.Valid)

	team, err = u.Create(context.Background(), &entities.CreateTeamInput{Name: "Boss", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, entities.TeamRoleAdmin, team.Role)
}

func TestTeamUsecase_Create_Invalid(t *testing.T) {
	u := usecases.NewTeamUsecase(new(MockTeamRepository))

	_, err := u.Create(context.Background(), &entities.CreateTeamInput{Name: ""})
	assert.Error(t, err)

	_, err = u.Create(context.Background(), &entities.CreateTeamInput{Name: "X", Role: "GUEST"})
	appErr, ok := domainerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid role", appErr.Message)
}

func TestTeamUsecase_Update(t *testing.T) {
	repo := new(MockTeamRepository)
	u := usecases.NewTeamUsecase(repo)
	team := &entities.Team{ID: uuid.New(), Name: "Old", BankNumber: null.StringFrom("111"), Role: entities.TeamRoleArtist}
	name := "New"
	channel := "chan-7"

	repo.On("GetByID", mock.Anything, team.ID).Return(team, nil)
	repo.On("Update", mock.Anything, team).Return(nil)

	got, err := u.Update(context.Background(), team.ID, &entities.UpdateTeamInput{Name: &name, DiscordChannelID: &channel})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "chan-7", got.DiscordChannelID.String)
	assert.Equal(t, "111", got.BankNumber.String)
}

func TestTeamUsecase_Delete(t *testing.T) {
	repo := new(MockTeamRepository)
	u := usecases.NewTeamUsecase(repo)
	ok := uuid.New()
	missing := uuid.New()
	repo.On("SoftDelete", mock.Anything, ok).Return(nil)
	repo.On("SoftDelete", mock.Anything, missing).Return(domainerrors.ErrNotFound)

	require.NoError(t, u.Delete(context.Background(), ok))

	err := u.Delete(context.Background(), missing)
	appErr, found := domainerrors.As(err)
	require.True(t, found)
	assert.Equal(t, "Team not found", appErr.Message)
}
