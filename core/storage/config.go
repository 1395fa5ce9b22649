package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the host of the storage service. Google Cloud Storage is
	// reached through its S3-compatible endpoint; a local Minio works too.
	Endpoint string `mapstructure:"endpoint" default:"storage.googleapis.com"`
	// AccessKey is the access key ID (an HMAC key on GCS).
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"true"`
	// Bucket is the name of the bucket holding the artwork assets.
	Bucket string `mapstructure:"bucket" default:""`
	// Region is the location of the bucket (e.g. us-east-1). GCS ignores it.
	Region string `mapstructure:"region" default:""`
	// Prefix restricts listings to keys under this prefix. Empty lists the
	// whole bucket.
	Prefix string `mapstructure:"prefix" default:""`
	// PublicBaseURL is the URL prefix under which bucket objects are publicly
	// served. The bucket name is appended to it when building media URLs, so
	// a CDN fronting the bucket can be substituted here.
	PublicBaseURL string `mapstructure:"public_base_url" default:"https://storage.googleapis.com"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
