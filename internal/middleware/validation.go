package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Field length limits matching database schema constraints.
const (
	MaxChannelIDLen = 64 // channels.channel_id VARCHAR(64)
	MaxEmailLen     = 254
)

var (
	// channelIDRe matches YouTube channel IDs: alphanumeric, dash, underscore.
	channelIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	emailRe     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateChannelID checks that a channel ID is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", "channelId must be at most 64 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId contains invalid characters"
	}
	return id, ""
}

// ValidateReportID checks that a report ID is a well-formed UUID.
func ValidateReportID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "report id is required"
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", "report id must be a valid UUID"
	}
	return id, ""
}

// ValidateYearMonth checks the report period bounds.
func ValidateYearMonth(year, month int) string {
	if year < 2005 || year > 2100 {
		return "year must be between 2005 and 2100"
	}
	if month < 1 || month > 12 {
		return "month must be between 1 and 12"
	}
	return ""
}

// ValidateEmail checks that an email address is plausibly well-formed.
func ValidateEmail(email string) (string, string) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", "email is required"
	}
	if len(email) > MaxEmailLen || !emailRe.MatchString(email) {
		return "", "email is not valid"
	}
	return email, ""
}
