package app

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"

	"foodhero/internal/alerts"
	"foodhero/internal/config"
	"foodhero/internal/skill"
	"foodhero/internal/yelp"
)

// NewHandler wires the skill from configuration. AWS clients are only built
// when a feature needs them (SSM key lookup, SNS alerts). Failures here are
// logged and the handler is still returned, so a missing key surfaces as an
// authorization error on the first search.
func NewHandler(ctx context.Context, cfg *config.Config, log *zap.Logger) *skill.Handler {
	opts := []skill.Option{skill.WithLogger(log)}

	needsAWS := (cfg.YelpKey == "" && cfg.YelpKeyParameter != "") || cfg.AlertsTopicArn != ""
	if needsAWS {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Error("load aws config", zap.Error(err))
		} else {
			if _, err := cfg.ResolveYelpKey(ctx, ssm.NewFromConfig(awsCfg)); err != nil {
				log.Error("resolve yelp key", zap.Error(err))
			}
			if cfg.AlertsTopicArn != "" {
				opts = append(opts, skill.WithNotifier(alerts.NewNotifier(sns.NewFromConfig(awsCfg), cfg.AlertsTopicArn)))
			}
		}
	}

	if cfg.YelpKey == "" {
		log.Warn("YELP_KEY not configured; searches will be rejected")
	}
	if cfg.AppID == "" {
		log.Warn("APP_ID not configured; application id check disabled")
	}

	return skill.NewHandler(cfg.AppID, yelp.NewClient(cfg.YelpURL, cfg.YelpKey), opts...)
}
