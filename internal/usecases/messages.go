package usecases

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"studio-ops.backend/internal/domain/entities"
	"studio-ops.backend/pkg/utils"
)

const (
	selectPlaceholder  = "Select an option"
	maxSelectOptions   = 25
	offeringAcceptVal  = "yes"
	offeringRejectVal  = "no"
	reactionAccepted   = "💰"
	reactionPaid       = "✅"
	projectAttachTitle = "Project Attachments:"
)

// Custom id prefixes routed back from chat components
const (
	OfferingComponentPrefix   = "offering/"
	ChooseTeamComponentPrefix = "choose-team/"
	ExecuteQueryComponentID   = "execute_query"
	CancelQueryComponentID    = "cancel_query"
)

func mention(userID string) string {
	return "<@" + userID + ">"
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func ccAdmin(adminID string) string {
	if adminID == "" {
		return ""
	}
	return "\ncc " + mention(adminID)
}

func offeringBriefMessage(p *entities.Project, deadline string) *entities.ChatMessage {
	return &entities.ChatMessage{Content: fmt.Sprintf(
		"🌟 NEW PROJECT 🌟\n%s\nDL: %s\nRATIO : %s\nCLIENT : %s",
		p.Name, deadline, orNA(p.ImageRatio.String), orNA(p.ClientName.String),
	)}
}

func projectAttachmentsMessage(urls []string) *entities.ChatMessage {
	return &entities.ChatMessage{Content: projectAttachTitle, Files: urls}
}

func confirmationPromptMessage(offeringID uuid.UUID, userID, confirmBy string) *entities.ChatMessage {
	return &entities.ChatMessage{
		Content: fmt.Sprintf("Ready cuy %s ? \nwaktu konfirmasi mu sampai %s yaaa 👀", mention(userID), confirmBy),
		Select: &entities.SelectMenu{
			CustomID:    OfferingComponentPrefix + offeringID.String(),
			Placeholder: selectPlaceholder,
			Options: []entities.SelectOption{
				{Label: "Let's Go 🚀", Value: offeringAcceptVal},
				{Label: "Nggak dulu ❌", Value: offeringRejectVal},
			},
		},
	}
}

// taskMessage numbers the task only when the project auto-numbers tasks.
func taskMessage(task *entities.Task, number int, autoNumber bool) *entities.ChatMessage {
	prefix := ""
	if autoNumber {
		prefix = fmt.Sprintf("%d. ", number)
	}
	files := make([]string, 0, len(task.Attachments))
	for _, a := range task.Attachments {
		files = append(files, a.URL)
	}
	return &entities.ChatMessage{
		Content: fmt.Sprintf("%sFEE : %s\n%s\n ** **", prefix, utils.FormatRupiah(task.Fee), task.Note.String),
		Files:   files,
	}
}

func chooseTeamMessage(projectID uuid.UUID, teams []*entities.Team) *entities.ChatMessage {
	options := make([]entities.SelectOption, 0, len(teams))
	for _, t := range teams {
		if len(options) == maxSelectOptions {
			break
		}
		options = append(options, entities.SelectOption{Label: t.Name, Value: t.ID.String()})
	}
	return &entities.ChatMessage{
		Content: "Kamu mau offer ke siapa nih ? \nJika mau ubah offering lewat dashboard yaaa",
		Select: &entities.SelectMenu{
			CustomID:    ChooseTeamComponentPrefix + projectID.String(),
			Placeholder: selectPlaceholder,
			Options:     options,
		},
	}
}

func acceptedMessage(deadline string) *entities.ChatMessage {
	return &entities.ChatMessage{Content: "Here we go 🚀 \nJangan lupa deadline mu sampai " + deadline}
}

func offeringReminderMessage(userID, remaining string) *entities.ChatMessage {
	return &entities.ChatMessage{Content: fmt.Sprintf(
		"Jangan lupa konfirmasi project mu %s yaa. \nBatas konfirmasi %s lagi", mention(userID), remaining,
	)}
}

func offeringExpiredMessage(userID, adminID string) *entities.ChatMessage {
	content := fmt.Sprintf("Deadline konfirmasi sudah berakhir %s. ", mention(userID))
	if adminID != "" {
		content += "\ncc  " + mention(adminID)
	}
	return &entities.ChatMessage{Content: content}
}

func deadlineReminderMessage(userID string, minutes int) *entities.ChatMessage {
	return &entities.ChatMessage{Content: fmt.Sprintf(
		"Deadline project mu %s kurang %d menit lagi.", mention(userID), minutes,
	)}
}

func deadlineReachedMessage(userID, adminID string) *entities.ChatMessage {
	content := fmt.Sprintf("Deadline project mu %s telah selesai.", mention(userID))
	if adminID != "" {
		content += " " + ccAdmin(adminID)
	}
	return &entities.ChatMessage{Content: content}
}

func projectDoneMessage(userID string) *entities.ChatMessage {
	return &entities.ChatMessage{Content: fmt.Sprintf("Thx guys %s project selesai 🔥🔥🔥", mention(userID))}
}

func projectCancelledMessage(userID string) *entities.ChatMessage {
	return &entities.ChatMessage{Content: fmt.Sprintf("Sorry guys %s project dibatalkan ❌", mention(userID))}
}

func projectRevertedMessage(userID string) *entities.ChatMessage {
	return &entities.ChatMessage{Content: fmt.Sprintf("Sorry guys %s status dikembalikan ke in progress 🙏", mention(userID))}
}
