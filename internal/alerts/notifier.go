package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Failure describes one dinner lookup that ended on the fallback message.
type Failure struct {
	RequestID string
	Stage     string
	Err       error
}

// Notifier publishes failures to an SNS topic. With no topic configured
// every call is a no-op.
type Notifier struct {
	client   SNSPublisher
	topicArn string
	now      func() time.Time
}

func NewNotifier(client SNSPublisher, topicArn string) *Notifier {
	return &Notifier{
		client:   client,
		topicArn: strings.TrimSpace(topicArn),
		now:      time.Now,
	}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.client != nil && n.topicArn != ""
}

func (n *Notifier) DinnerFailed(ctx context.Context, f Failure) error {
	if !n.Enabled() {
		return nil
	}

	subject, message := buildMessage(f, n.now().UTC())
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}

func buildMessage(f Failure, at time.Time) (subject string, body string) {
	stage := f.Stage
	if stage == "" {
		stage = "unknown"
	}
	subject = fmt.Sprintf("Food Hero: dinner lookup failed (%s)", stage)

	lines := []string{
		"Food Hero dinner lookup failed",
		"",
		fmt.Sprintf("Stage: %s", stage),
	}
	if f.RequestID != "" {
		lines = append(lines, fmt.Sprintf("RequestId: %s", f.RequestID))
	}
	if f.Err != nil {
		lines = append(lines, fmt.Sprintf("Error: %s", f.Err.Error()))
	}
	lines = append(lines, "", fmt.Sprintf("At: %s", at.Format(time.RFC3339)))

	return subject, strings.Join(lines, "\n")
}
