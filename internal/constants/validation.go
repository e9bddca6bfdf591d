package constants

// EnvVarSplitLimit is the limit for splitting environment variable strings (KEY=VALUE)
const EnvVarSplitLimit = 2

// Bucket name length limits.
const (
	BucketNameMinLength = 3
	BucketNameMaxLength = 63
)
