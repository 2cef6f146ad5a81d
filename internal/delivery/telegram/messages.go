// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
)

const (
	msgAbout = "*About EduHub Bot*\n" +
		"Version: 1.0.0\n" +
		"Author: EduHub Team\n" +
		"Description: A Telegram bot for educational quizzes and resources.\n" +
		"Source: https://github.com/itzfew/eduhub-bot\n" +
		"Contact: Use /contact to reach the admin."

	msgAdminOnly      = "You must be an admin to use this command."
	msgReplyRequired  = "Please reply to a user’s message to use this command."
	msgPayUnavailable = "Sorry, something went wrong while initiating the payment."
	msgPayDisabled    = "Payments are not configured on this bot."
)

// greetings holds varied responses for plain-text messages.
var greetings = []func(name string) string{
	func(name string) string { return fmt.Sprintf("Hello, %s! Great to see you! 😊", name) },
	func(name string) string { return fmt.Sprintf("Hey %s, what's up? Ready to chat? 🚀", name) },
	func(name string) string { return fmt.Sprintf("Hi %s! Hope you're having an awesome day! 🌟", name) },
	func(name string) string { return fmt.Sprintf("Greetings, %s! How can I make your day even better? 😉", name) },
}

func msgKeyNotFound(key string) string {
	return fmt.Sprintf("❌ No message found for key: %s", key)
}

func msgForwardFailed(key string) string {
	return fmt.Sprintf("❌ Failed to forward message for key: %s", key)
}

func msgPaymentLink(link string) string {
	return "Please complete the payment using this link: " + link
}
