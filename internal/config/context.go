package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/runvoy/sitedeploy/internal/bucket"
	"github.com/runvoy/sitedeploy/internal/constants"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Credentials is the credential mode chosen once per run: a named profile, or ambient
// credentials supplied by the environment (CI runners).
type Credentials struct {
	Profile string
}

// Ambient reports whether no named profile is used.
func (c Credentials) Ambient() bool {
	return c.Profile == ""
}

// Args returns the extra arguments appended to every cloud CLI invocation.
func (c Credentials) Args() []string {
	if c.Ambient() {
		return nil
	}
	return []string{"--profile", c.Profile}
}

// String describes the mode for logs and summaries.
func (c Credentials) String() string {
	if c.Ambient() {
		return "ambient"
	}
	return "profile " + c.Profile
}

// DeployContext holds the values derived from the configuration set. It is built once and
// never modified afterwards.
type DeployContext struct {
	Bucket      string
	DomainName  string
	Region      string
	CI          bool
	Credentials Credentials
}

// WebsiteURL returns the public website URL of the deployment.
func (d *DeployContext) WebsiteURL() string {
	return bucket.WebsiteURL(d.Bucket, d.Region)
}

// requiredVars is validated before any context is derived; the key tags name the
// variables in error messages.
type requiredVars struct {
	Region     string `key:"AWS_REGION" validate:"required"`
	DomainName string `key:"DOMAIN_NAME" validate:"required"`
	Profile    string `key:"AWS_CLI_PROFILE" validate:"required_if=CI false"`
	CI         bool   `key:"-"`
}

var contextValidate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("key")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// NewDeployContext validates the configuration set and derives the deployment context.
// environ is the process environment overlaid with the set (see Environment). Required
// variables and CI indicators are read from the set first and from environ otherwise, so a
// runner that exports AWS_REGION itself needs no entry in the file. The bucket name is the
// domain name, unchanged, and is checked against the bucket naming rules.
func NewDeployContext(set Set, environ map[string]string) (*DeployContext, error) {
	ci, err := DetectCI(environ)
	if err != nil {
		return nil, apperrors.ErrInvalidConfig("failed to detect CI environment", err)
	}

	vars := requiredVars{
		Region:     lookup(set, environ, constants.RegionKey),
		DomainName: lookup(set, environ, constants.DomainNameKey),
		Profile:    lookup(set, environ, constants.ProfileKey),
		CI:         ci,
	}

	if err = contextValidate.Struct(&vars); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return nil, apperrors.ErrInvalidConfig("configuration validation failed", err)
		}
		missing := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			missing = append(missing, fe.Field())
		}
		return nil, apperrors.ErrMissingVariables(missing)
	}

	creds := Credentials{}
	if !ci {
		creds.Profile = vars.Profile
	}

	dc := &DeployContext{
		Bucket:      vars.DomainName,
		DomainName:  vars.DomainName,
		Region:      vars.Region,
		CI:          ci,
		Credentials: creds,
	}

	if err = bucket.ValidateName(dc.Bucket); err != nil {
		return nil, apperrors.ErrInvalidBucketName(dc.Bucket, err)
	}

	return dc, nil
}

// lookup returns the trimmed value of key, file values winning over the environment.
func lookup(set Set, environ map[string]string, key string) string {
	if value, ok := set[key]; ok {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(environ[key])
}
