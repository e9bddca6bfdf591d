package constants

// HomeRegion is the only region where bucket creation takes no location constraint.
const HomeRegion = "us-east-1"

// IndexDocument serves both as index and error document so client-side routing works.
const IndexDocument = "index.html"

// Build tool defaults.
const (
	DefaultPackageManager = "npm"
	DefaultBuildDir       = "dist"
	DependencyCacheDir    = "node_modules"
)

// DefaultUploadConcurrency is the number of parallel object uploads within one sync.
const DefaultUploadConcurrency = 8

// DeleteObjectsBatchSize is the maximum number of keys S3 accepts in one DeleteObjects call.
const DeleteObjectsBatchSize = 1000

// StderrTailBytes bounds the diagnostic text kept from a failed subprocess.
const StderrTailBytes = 4096

// PolicyFilePattern is the os.CreateTemp pattern for the bucket policy side-channel file.
const PolicyFilePattern = "sitedeploy-policy-*.json"
