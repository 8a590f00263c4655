package config

const (
	// MaxExternalIDLength bounds identity-provider subjects used as user ids.
	MaxExternalIDLength = 255

	// MaxEmailLength follows the RFC 5321 path limit.
	MaxEmailLength = 254

	// MaxNameLength is the maximum length for a user's display name.
	MaxNameLength = 255

	// MaxProjectTitleLength is the maximum length for project titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxProjectTitleLength = 255

	MaxDescriptionLength = 10000

	// MaxTagLength is the maximum length of a single project tag.
	MaxTagLength = 64

	// MaxChatTitleLength is the maximum length for chat titles.
	MaxChatTitleLength = 255

	// MaxDocumentNameLength is the maximum length for document names.
	MaxDocumentNameLength = 255

	// MaxStorageKeyLength matches the S3 object key limit (1024 bytes).
	MaxStorageKeyLength = 1024

	MaxStorageURLLength = 2048

	// MaxMessageContentLength caps a single message body.
	MaxMessageContentLength = 100000

	MaxAttachmentsPerMessage = 32

	// MaxAnswerLength caps each free-text questionnaire answer.
	MaxAnswerLength = 20000
)
