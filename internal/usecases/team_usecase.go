package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"studio-ops.backend/internal/domain/entities"
	domainerrors "studio-ops.backend/internal/domain/errors"
	"studio-ops.backend/internal/domain/repositories"
	"studio-ops.backend/pkg/utils"
)

type TeamUsecase struct {
	teamRepo repositories.TeamRepository
}

func NewTeamUsecase(teamRepo repositories.TeamRepository) *TeamUsecase {
	return &TeamUsecase{teamRepo: teamRepo}
}

func (u *TeamUsecase) List(ctx context.Context, filter entities.TeamFilter) ([]*entities.Team, error) {
	return u.teamRepo.List(ctx, filter)
}

func (u *TeamUsecase) Create(ctx context.Context, input *entities.CreateTeamInput) (*entities.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.BadRequest("Name is required")
	}
	role, err := parseRole(input.Role)
	if err != nil {
		return nil, err
	}
	team := &entities.Team{
		ID:                utils.GenerateUUIDv7(),
		Name:              input.Name,
		DiscordUserID:     null.StringFromPtr(input.DiscordUserID),
		DiscordChannelID:  null.StringFromPtr(input.DiscordChannelID),
		BankNumber:        null.StringFromPtr(input.BankNumber),
		BankAccountHolder: null.StringFromPtr(input.BankAccountHolder),
		BankProvider:      null.StringFromPtr(input.BankProvider),
		Role:              role,
	}
	if err := u.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (u *TeamUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateTeamInput) (*entities.Team, error) {
	team, err := u.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Team not found")
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, domainerrors.BadRequest("Name is required")
		}
		team.Name = *input.Name
	}
	if input.DiscordUserID != nil {
		team.DiscordUserID = null.StringFrom(*input.DiscordUserID)
	}
	if input.DiscordChannelID != nil {
		team.DiscordChannelID = null.StringFrom(*input.DiscordChannelID)
	}
	if input.BankNumber != nil {
		team.BankNumber = null.StringFrom(*input.BankNumber)
	}
	if input.BankAccountHolder != nil {
		team.BankAccountHolder = null.StringFrom(*input.BankAccountHolder)
	}
	if input.BankProvider != nil {
		team.BankProvider = null.StringFrom(*input.BankProvider)
	}
	if input.Role != nil {
		role, err := parseRole(*input.Role)
		if err != nil {
			return nil, err
		}
		team.Role = role
	}
	if err := u.teamRepo.Update(ctx, team); err != nil {
		return nil, notFoundAs(err, "Team not found")
	}
	return team, nil
}

// Delete is a soft delete; payrolls and projects keep pointing at the team.
func (u *TeamUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return notFoundAs(u.teamRepo.SoftDelete(ctx, id), "Team not found")
}

// FindByChatUser resolves the team linked to a chat user.
func (u *TeamUsecase) FindByChatUser(ctx context.Context, chatUserID string) (*entities.Team, error) {
	return u.teamRepo.GetByDiscordUserID(ctx, chatUserID)
}

func parseRole(raw string) (entities.TeamRole, error) {
	if raw == "" {
		return entities.TeamRoleArtist, nil
	}
	role := entities.TeamRole(strings.ToUpper(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", domainerrors.BadRequest("Invalid role")
	}
	return role, nil
}
