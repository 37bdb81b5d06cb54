// Package s3tree exposes an S3 (or MinIO) bucket as an objfs object tree.
//
// Object identifiers are bucket keys: the root is the empty identifier,
// folders are key prefixes ending in "/" discovered through delimited
// listings, and files are plain object keys. Every enumeration is a fresh
// ListObjectsV2 and every property fetch goes back to the bucket, so the
// resolver always observes the current bucket state.
package s3tree

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	objfs "github.com/Jumpaku/go-objfs"
)

const listPageSize = 1000

// Config holds the connection settings for a bucket, in the shape commonly
// stored for S3-compatible backends.
type Config struct {
	Endpoint  string `json:"endpoint"`
	Bucket    string `json:"bucket"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Region    string `json:"region"`
}

// Content adapts an S3 bucket to objfs.Content.
type Content struct {
	ctx    context.Context
	client *s3.Client
	bucket string
}

var _ objfs.Content = (*Content)(nil)

// New creates a Content over an existing S3 client. The context is used for
// every remote call issued through this Content.
func New(ctx context.Context, client *s3.Client, bucket string) *Content {
	return &Content{ctx: ctx, client: client, bucket: bucket}
}

// NewFromConfig dials an S3-compatible endpoint with static credentials and
// returns a Content over the configured bucket.
func NewFromConfig(ctx context.Context, cfg Config) (*Content, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				HostnameImmutable: true,
			}, nil
		},
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return New(ctx, client, cfg.Bucket), nil
}

// Root returns a handle to the bucket root.
func (c *Content) Root() *objfs.Object {
	return objfs.NewObject(c, "", c.bucket, objfs.Folder())
}

// Properties implements objfs.Content.
func (c *Content) Properties(id objfs.ObjectID, keys []objfs.PropertyKey) (objfs.PropertyBag, error) {
	key := string(id)
	if err := c.checkExists(key); err != nil {
		return nil, err
	}
	bag := objfs.PropertyBag{}
	for _, k := range keys {
		switch k {
		case objfs.PropertyName:
			bag[k] = c.nameOf(key)
		case objfs.PropertyTypeCode:
			if isFolderKey(key) {
				bag[k] = objfs.TypeCodeFolder
			} else {
				bag[k] = objfs.TypeCodeFile
			}
		case objfs.PropertyParentID:
			if key != "" {
				bag[k] = parentKey(key)
			}
		}
	}
	return bag, nil
}

// checkExists verifies the identifier refers to something in the bucket:
// HeadObject for file keys, a one-key delimited listing for folder prefixes.
// The root always exists.
func (c *Content) checkExists(key string) error {
	if key == "" {
		return nil
	}
	if isFolderKey(key) {
		res, err := c.client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
			Bucket:  aws.String(c.bucket),
			Prefix:  aws.String(key),
			MaxKeys: aws.Int32(1),
		})
		if err != nil {
			return fmt.Errorf("failed to list prefix '%s': %w", key, err)
		}
		if len(res.Contents) == 0 {
			return fmt.Errorf("no such prefix: %s", key)
		}
		return nil
	}
	_, err := c.client.HeadObject(c.ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to head object '%s': %w", key, err)
	}
	return nil
}

func (c *Content) nameOf(key string) string {
	if key == "" {
		return c.bucket
	}
	return path.Base(strings.TrimSuffix(key, "/"))
}

// EnumerateChildren implements objfs.Content with a delimited listing. The
// first page is fetched eagerly; further pages are fetched as the
// enumeration advances.
func (c *Content) EnumerateChildren(id objfs.ObjectID) (objfs.ChildEnumerator, error) {
	e := &enumerator{content: c, prefix: childPrefix(string(id))}
	if err := e.fetchPage(nil); err != nil {
		return nil, err
	}
	return e, nil
}

type enumerator struct {
	content           *Content
	prefix            string
	ids               []objfs.ObjectID
	pos               int
	continuationToken *string
	truncated         bool
}

func (e *enumerator) fetchPage(token *string) error {
	c := e.content
	res, err := c.client.ListObjectsV2(c.ctx, &s3.ListObjectsV2Input{
		Bucket:            aws.String(c.bucket),
		Prefix:            aws.String(e.prefix),
		Delimiter:         aws.String("/"),
		MaxKeys:           aws.Int32(listPageSize),
		ContinuationToken: token,
	})
	if err != nil {
		return fmt.Errorf("failed to list children of '%s': %w", e.prefix, err)
	}
	e.ids = e.ids[:0]
	e.pos = 0
	for _, p := range res.CommonPrefixes {
		e.ids = append(e.ids, objfs.ObjectID(aws.ToString(p.Prefix)))
	}
	for _, obj := range res.Contents {
		key := aws.ToString(obj.Key)
		// The prefix itself may exist as a zero-byte folder marker.
		if key == e.prefix {
			continue
		}
		e.ids = append(e.ids, objfs.ObjectID(key))
	}
	e.truncated = aws.ToBool(res.IsTruncated)
	e.continuationToken = res.NextContinuationToken
	return nil
}

func (e *enumerator) Next() (objfs.ObjectID, error) {
	for e.pos >= len(e.ids) {
		if !e.truncated {
			return "", objfs.Done
		}
		if err := e.fetchPage(e.continuationToken); err != nil {
			return "", err
		}
	}
	id := e.ids[e.pos]
	e.pos++
	return id, nil
}

// isFolderKey reports whether a key names a folder. The root (empty key) is
// a folder; otherwise folders are exactly the keys ending in "/".
func isFolderKey(key string) bool {
	return key == "" || strings.HasSuffix(key, "/")
}

// childPrefix converts an identifier to the listing prefix of its children.
func childPrefix(key string) string {
	if key == "" || strings.HasSuffix(key, "/") {
		return key
	}
	return key + "/"
}

// parentKey returns the identifier of a non-root key's parent: the enclosing
// prefix, or the empty (root) identifier at top level.
func parentKey(key string) string {
	trimmed := strings.TrimSuffix(key, "/")
	i := strings.LastIndex(trimmed, "/")
	if i < 0 {
		return ""
	}
	return trimmed[:i+1]
}
