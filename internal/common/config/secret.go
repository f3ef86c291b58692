package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsGetter はSecrets Managerからシークレットを取得するインターフェースです
type SecretsGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// dbSecret はRDSが生成するシークレットの形式です
type dbSecret struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

// NewSecretsClient は既定の認証情報でSecrets Managerのクライアントを作成します
func NewSecretsClient(ctx context.Context) (*secretsmanager.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return secretsmanager.NewFromConfig(awsCfg), nil
}

// ApplyDBSecret はシークレットのDB接続情報で設定を上書きします
// シークレットに含まれない項目は既存の設定値を残します
func (c *Config) ApplyDBSecret(ctx context.Context, client SecretsGetter) error {
	if c.DBSecretID == "" {
		return nil
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(c.DBSecretID),
	})
	if err != nil {
		return fmt.Errorf("failed to get secret %s: %w", c.DBSecretID, err)
	}
	if out.SecretString == nil {
		return fmt.Errorf("secret %s has no string value", c.DBSecretID)
	}

	var secret dbSecret
	if err := json.Unmarshal([]byte(*out.SecretString), &secret); err != nil {
		return fmt.Errorf("failed to parse secret %s: %w", c.DBSecretID, err)
	}

	if secret.Host != "" {
		c.DB.Host = secret.Host
	}
	if secret.Port != 0 {
		c.DB.Port = secret.Port
	}
	if secret.Username != "" {
		c.DB.UserName = secret.Username
	}
	if secret.Password != "" {
		c.DB.Password = secret.Password
	}
	if secret.DBName != "" {
		c.DB.DBName = secret.DBName
	}

	return nil
}
