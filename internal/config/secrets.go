package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"rooftopgarden/internal/logger"
)

// SecretSource, anahtar adına göre gizli değer döndüren kaynak
type SecretSource interface {
	Name() string
	Get(ctx context.Context, key string) (string, error)
}

// SecretResolver, kaynakları sırayla dener; ilk boş olmayan değer kazanır
type SecretResolver struct {
	sources []SecretSource
}

// NewSecretResolver, ortam değişkeni -> secrets dosyası -> AWS Secrets Manager sırasını kurar.
// Dosya yoksa ya da secretID boşsa ilgili kaynak eklenmez.
func NewSecretResolver(ctx context.Context, secretsFile, secretID string) *SecretResolver {
	sources := []SecretSource{envSource{}}

	if secretsFile != "" {
		fs, err := NewFileSource(secretsFile)
		switch {
		case err == nil:
			sources = append(sources, fs)
		case errors.Is(err, os.ErrNotExist):
			logger.Log.Debug("secrets file not found", zap.String("path", secretsFile))
		default:
			logger.Log.Warn("secrets file could not be read", zap.String("path", secretsFile), zap.Error(err))
		}
	}

	if secretID != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			logger.Log.Warn("failed to load aws config, secrets manager disabled", zap.Error(err))
		} else {
			sources = append(sources, NewAWSSource(secretsmanager.NewFromConfig(awsCfg), secretID))
		}
	}

	return &SecretResolver{sources: sources}
}

// NewSecretResolverFrom builds a resolver over explicit sources.
func NewSecretResolverFrom(sources ...SecretSource) *SecretResolver {
	return &SecretResolver{sources: sources}
}

// Lookup returns the first non-empty value for key, or "" when no source has it.
func (r *SecretResolver) Lookup(ctx context.Context, key string) string {
	for _, src := range r.sources {
		val, err := src.Get(ctx, key)
		if err != nil {
			logger.Log.Warn("secret lookup failed", zap.String("source", src.Name()), zap.String("key", key), zap.Error(err))
			continue
		}
		if val != "" {
			logger.Log.Debug("secret resolved", zap.String("source", src.Name()), zap.String("key", key))
			return val
		}
	}
	return ""
}

type envSource struct{}

func (envSource) Name() string { return "env" }

func (envSource) Get(_ context.Context, key string) (string, error) {
	return os.Getenv(key), nil
}

// FileSource, düz anahtar/değer YAML dosyasından okur (.secrets.yaml)
type FileSource struct {
	path   string
	values map[string]string
}

func NewFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &FileSource{path: path, values: values}, nil
}

func (f *FileSource) Name() string { return "file:" + f.path }

func (f *FileSource) Get(_ context.Context, key string) (string, error) {
	return f.values[key], nil
}

// SecretsManagerAPI is the part of the secretsmanager client used here.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSource, tek bir JSON secret'ı bir kez çeker ve önbellekte tutar
type AWSSource struct {
	client   SecretsManagerAPI
	secretID string

	once   sync.Once
	values map[string]string
	err    error
}

func NewAWSSource(client SecretsManagerAPI, secretID string) *AWSSource {
	return &AWSSource{client: client, secretID: secretID}
}

func (a *AWSSource) Name() string { return "secretsmanager:" + a.secretID }

func (a *AWSSource) Get(ctx context.Context, key string) (string, error) {
	a.once.Do(func() {
		a.values, a.err = a.fetch(ctx)
	})
	if a.err != nil {
		return "", a.err
	}
	return a.values[key], nil
}

func (a *AWSSource) fetch(ctx context.Context) (map[string]string, error) {
	out, err := a.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(a.secretID)})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s: %w", a.secretID, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", a.secretID)
	}
	values := map[string]string{}
	if err := json.Unmarshal([]byte(*out.SecretString), &values); err != nil {
		return nil, fmt.Errorf("secret %s is not a JSON object: %w", a.secretID, err)
	}
	return values, nil
}
