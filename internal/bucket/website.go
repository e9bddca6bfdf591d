package bucket

import (
	"fmt"
	"slices"
	"strings"
)

// dashRegions still use the legacy s3-website-<region> endpoint form.
var dashRegions = []string{
	"us-east-1",
	"us-west-1",
	"us-west-2",
	"eu-west-1",
	"ap-southeast-1",
	"ap-southeast-2",
	"ap-northeast-1",
	"sa-east-1",
	"us-gov-west-1",
}

// Partition returns the AWS partition a region belongs to.
func Partition(region string) string {
	switch {
	case strings.HasPrefix(region, "cn-"):
		return "aws-cn"
	case strings.HasPrefix(region, "us-gov-"):
		return "aws-us-gov"
	default:
		return "aws"
	}
}

// WebsiteEndpoint returns the S3 static website host for a region,
// e.g. s3-website-us-west-2.amazonaws.com or s3-website.eu-central-1.amazonaws.com.
func WebsiteEndpoint(region string) string {
	domain := "amazonaws.com"
	if Partition(region) == "aws-cn" {
		domain = "amazonaws.com.cn"
	}

	if slices.Contains(dashRegions, region) {
		return fmt.Sprintf("s3-website-%s.%s", region, domain)
	}
	return fmt.Sprintf("s3-website.%s.%s", region, domain)
}

// WebsiteURL returns the public website URL of a bucket.
func WebsiteURL(bucket, region string) string {
	return fmt.Sprintf("http://%s.%s", bucket, WebsiteEndpoint(region))
}
