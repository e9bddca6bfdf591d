package constants

// DefaultConfigFile is the key=value deployment configuration read when --config is not given.
const DefaultConfigFile = ".env"

// EnvPrefix is the prefix for environment variables overriding CLI options (SITEDEPLOY_BACKEND, ...).
const EnvPrefix = "SITEDEPLOY"

// Required configuration keys.
const (
	RegionKey     = "AWS_REGION"
	DomainNameKey = "DOMAIN_NAME"
	ProfileKey    = "AWS_CLI_PROFILE"
)

// CI indicator variables. Either one set to CITrueValue selects ambient credentials.
const (
	CIEnvVar            = "CI"
	GitHubActionsEnvVar = "GITHUB_ACTIONS"
	CITrueValue         = "true"
)

// LogFilePermissions is the file system permissions for the transcript log file (0600).
const LogFilePermissions = 0o600

// ReportFilePermissions is the file system permissions for the deployment report (0644).
const ReportFilePermissions = 0o644
