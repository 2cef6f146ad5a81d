// admin.go implements the group moderation commands. Every command is
// gated on the caller's admin status and targets the author of the
// replied-to message.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) isAdmin(chatID, userID int64) bool {
	member, err := h.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: userID,
		},
	})
	if err != nil {
		h.logger.Error("failed to check admin status",
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return false
	}

	return member.IsAdministrator() || member.IsCreator()
}

// moderationTarget validates the admin/reply preconditions shared by
// all moderation commands and returns the user being acted on.
func (h *Handler) moderationTarget(msg *tgbotapi.Message) *tgbotapi.User {
	if !h.isAdmin(msg.Chat.ID, msg.From.ID) {
		h.send(tgbotapi.NewMessage(msg.Chat.ID, msgAdminOnly))
		return nil
	}

	if msg.ReplyToMessage == nil || msg.ReplyToMessage.From == nil {
		h.send(tgbotapi.NewMessage(msg.Chat.ID, msgReplyRequired))
		return nil
	}

	return msg.ReplyToMessage.From
}

func (h *Handler) handleKick(msg *tgbotapi.Message) {
	target := h.moderationTarget(msg)
	if target == nil {
		return
	}

	member := tgbotapi.ChatMemberConfig{ChatID: msg.Chat.ID, UserID: target.ID}
	if _, err := h.bot.Request(tgbotapi.BanChatMemberConfig{ChatMemberConfig: member}); err != nil {
		h.moderationFailed(msg.Chat.ID, "kick", err)
		return
	}
	// An immediate unban turns the ban into a kick: the user may rejoin.
	if _, err := h.bot.Request(tgbotapi.UnbanChatMemberConfig{ChatMemberConfig: member, OnlyIfBanned: true}); err != nil {
		h.logger.Warn("failed to lift kick ban", zap.Int64("user_id", target.ID), zap.Error(err))
	}

	h.send(tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("%s has been kicked from the group.", target.FirstName)))
}

func (h *Handler) handleBan(msg *tgbotapi.Message) {
	target := h.moderationTarget(msg)
	if target == nil {
		return
	}

	cfg := tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: msg.Chat.ID, UserID: target.ID},
	}
	if _, err := h.bot.Request(cfg); err != nil {
		h.moderationFailed(msg.Chat.ID, "ban", err)
		return
	}

	h.send(tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("%s has been banned from the group.", target.FirstName)))
}

func (h *Handler) handleMute(msg *tgbotapi.Message) {
	target := h.moderationTarget(msg)
	if target == nil {
		return
	}

	cfg := tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: msg.Chat.ID, UserID: target.ID},
		Permissions:      &tgbotapi.ChatPermissions{CanSendMessages: false},
	}
	if _, err := h.bot.Request(cfg); err != nil {
		h.moderationFailed(msg.Chat.ID, "mute", err)
		return
	}

	h.send(tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("%s has been muted.", target.FirstName)))
}

func (h *Handler) handleUnmute(msg *tgbotapi.Message) {
	target := h.moderationTarget(msg)
	if target == nil {
		return
	}

	cfg := tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: msg.Chat.ID, UserID: target.ID},
		Permissions: &tgbotapi.ChatPermissions{
			CanSendMessages:       true,
			CanSendMediaMessages:  true,
			CanSendPolls:          true,
			CanSendOtherMessages:  true,
			CanAddWebPagePreviews: true,
		},
	}
	if _, err := h.bot.Request(cfg); err != nil {
		h.moderationFailed(msg.Chat.ID, "unmute", err)
		return
	}

	h.send(tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("%s has been unmuted.", target.FirstName)))
}

func (h *Handler) handlePromote(msg *tgbotapi.Message) {
	target := h.moderationTarget(msg)
	if target == nil {
		return
	}

	cfg := tgbotapi.PromoteChatMemberConfig{
		ChatMemberConfig:   tgbotapi.ChatMemberConfig{ChatID: msg.Chat.ID, UserID: target.ID},
		CanManageChat:      true,
		CanDeleteMessages:  true,
		CanRestrictMembers: true,
		// Promoted users may not promote others.
		CanPromoteMembers: false,
	}
	if _, err := h.bot.Request(cfg); err != nil {
		h.moderationFailed(msg.Chat.ID, "promote", err)
		return
	}

	h.send(tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("%s has been promoted to admin.", target.FirstName)))
}

func (h *Handler) handleSetDescription(msg *tgbotapi.Message) {
	if !h.isAdmin(msg.Chat.ID, msg.From.ID) {
		h.send(tgbotapi.NewMessage(msg.Chat.ID, msgAdminOnly))
		return
	}

	description := strings.TrimSpace(msg.CommandArguments())
	if description == "" {
		h.send(tgbotapi.NewMessage(msg.Chat.ID, "Please provide a description. Usage: /setdescription <text>"))
		return
	}

	cfg := tgbotapi.SetChatDescriptionConfig{ChatID: msg.Chat.ID, Description: description}
	if _, err := h.bot.Request(cfg); err != nil {
		h.logger.Error("failed to set chat description",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Error(err),
		)
		h.send(tgbotapi.NewMessage(msg.Chat.ID, "Failed to set group description. Ensure I have the necessary permissions."))
		return
	}

	h.send(tgbotapi.NewMessage(msg.Chat.ID, "Group description updated."))
}

func (h *Handler) moderationFailed(chatID int64, action string, err error) {
	h.logger.Error("moderation command failed",
		zap.Int64("chat_id", chatID),
		zap.String("action", action),
		zap.Error(err),
	)
	h.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Failed to %s the user. Ensure I have the necessary permissions.", action)))
}
