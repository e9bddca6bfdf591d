package bucket

import (
	"encoding/json"
	"fmt"
)

const policyVersion = "2012-10-17"

// Policy is an S3 bucket policy document.
type Policy struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Statement is a single bucket policy statement.
type Statement struct {
	Sid       string `json:"Sid"`
	Effect    string `json:"Effect"`
	Principal string `json:"Principal"`
	Action    string `json:"Action"`
	Resource  string `json:"Resource"`
}

// PublicReadPolicy returns the policy granting s3:GetObject on every object of the bucket to everyone.
func PublicReadPolicy(bucket, region string) *Policy {
	return &Policy{
		Version: policyVersion,
		Statement: []Statement{
			{
				Sid:       "PublicReadGetObject",
				Effect:    "Allow",
				Principal: "*",
				Action:    "s3:GetObject",
				Resource:  fmt.Sprintf("arn:%s:s3:::%s/*", Partition(region), bucket),
			},
		},
	}
}

// PolicyDocument renders the public-read policy as JSON. The output never carries a byte-order mark.
func PolicyDocument(bucket, region string) ([]byte, error) {
	doc, err := json.Marshal(PublicReadPolicy(bucket, region))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bucket policy: %w", err)
	}
	return doc, nil
}
