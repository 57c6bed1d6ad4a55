package repository

import (
	"errors"
	"time"

	"cotacao_service/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// sortableTime keeps a fixed width so timestamps order lexicographically in
// sort keys. RFC3339Nano trims trailing zeros and does not.
const sortableTime = "2006-01-02T15:04:05.000000000Z"

func tableOrDefault(name, def string) string {
	if name != "" {
		return name
	}
	return def
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(sortableTime)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(sortableTime, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t.UTC()
}

func decimalToString(d decimal.Decimal) string {
	return d.String()
}

func decimalFromString(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func stringValue(s string) *types.AttributeValueMemberS {
	return &types.AttributeValueMemberS{Value: s}
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": stringValue(id)}
}

// conditionFailed reports whether err is a failed ConditionExpression, either
// on a single write or as the cancellation reason of a transaction.
func conditionFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return true
	}
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for _, r := range tce.CancellationReasons {
			if aws.ToString(r.Code) == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}

func mapConditionErr(err error) error {
	if conditionFailed(err) {
		return entities.ErrConcurrentModification
	}
	return err
}
