package constants

// StorageBackend selects how bucket operations reach the cloud provider.
type StorageBackend string

const (
	// SDKBackend talks to S3 through the AWS SDK for Go v2.
	SDKBackend StorageBackend = "sdk"
	// CLIBackend shells out to the aws command line tool.
	CLIBackend StorageBackend = "cli"
)

// Phase is the point of the pipeline an error happened in.
type Phase string

const (
	// PreProvisioning covers everything before the first mutating cloud call.
	PreProvisioning Phase = "pre-provisioning"
	// PostProvisioning covers bucket configuration, build and upload.
	PostProvisioning Phase = "post-provisioning"
)
