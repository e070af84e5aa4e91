package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"foodhero/internal/yelp"
)

// Config is read from the environment. Required values (YELP_KEY or
// YELP_KEY_PARAMETER, APP_ID) are not checked here; a missing key shows up
// as an authorization failure on the first call that needs it.
type Config struct {
	YelpKey          string
	YelpKeyParameter string
	YelpURL          string
	AppID            string
	AlertsTopicArn   string
	LogLevel         string
	LogFormat        string
}

type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

func Load() *Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("YELP_URL", yelp.DefaultURL)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	return &Config{
		YelpKey:          strings.TrimSpace(v.GetString("YELP_KEY")),
		YelpKeyParameter: strings.TrimSpace(v.GetString("YELP_KEY_PARAMETER")),
		YelpURL:          strings.TrimSpace(v.GetString("YELP_URL")),
		AppID:            strings.TrimSpace(v.GetString("APP_ID")),
		AlertsTopicArn:   strings.TrimSpace(v.GetString("ALERTS_TOPIC_ARN")),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
	}
}

// ResolveYelpKey returns YELP_KEY when set, otherwise reads the SecureString
// named by YELP_KEY_PARAMETER. With neither set it returns "".
func (c *Config) ResolveYelpKey(ctx context.Context, client SSMClient) (string, error) {
	if c.YelpKey != "" {
		return c.YelpKey, nil
	}
	if c.YelpKeyParameter == "" {
		return "", nil
	}
	if client == nil {
		return "", errors.New("YELP_KEY_PARAMETER set but no ssm client")
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(c.YelpKeyParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("ssm GetParameter %s: %w", c.YelpKeyParameter, err)
	}
	if out.Parameter == nil {
		return "", fmt.Errorf("ssm parameter %s has no value", c.YelpKeyParameter)
	}

	c.YelpKey = strings.TrimSpace(aws.ToString(out.Parameter.Value))
	return c.YelpKey, nil
}

// LoadDotEnv loads a .env file for local runs. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
