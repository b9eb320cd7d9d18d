package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConcurrentModification is returned when another writer took the version
// this writer tried to commit, and retries were exhausted.
var ErrConcurrentModification = errors.New("s3: concurrent modification detected")

// ErrMalformedRecord is returned for run log items missing required attributes.
var ErrMalformedRecord = errors.New("s3: malformed run log record")

// RunRecord is one committed cohort analysis.
type RunRecord struct {
	Cohort  string
	Version uint64
	// Report is the blob name of the JSON report.
	Report    string
	CreatedAt time.Time
}

// RunLog records cohort runs in DynamoDB. Each cohort has a gap-free,
// monotonically increasing version sequence; conditional writes make
// concurrent writers for the same cohort safe.
//
// Table schema:
//   - Partition key: cohort (string)
//   - Sort key: version (number)
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name tcga-explorer-runs \
//	  --attribute-definitions AttributeName=cohort,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=cohort,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type RunLog struct {
	client     DDBClient
	table      string
	maxRetries int
	now        func() time.Time
}

// NewRunLog creates a run log on the given table.
func NewRunLog(client DDBClient, table string) *RunLog {
	return &RunLog{
		client:     client,
		table:      table,
		maxRetries: 5,
		now:        time.Now,
	}
}

// Record commits report as the next version of cohort and returns that version.
func (l *RunLog) Record(ctx context.Context, cohort, report string) (uint64, error) {
	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		latest, err := l.Latest(ctx, cohort)
		if err != nil {
			return 0, err
		}
		version := latest.Version + 1

		err = l.commit(ctx, RunRecord{
			Cohort:    cohort,
			Version:   version,
			Report:    report,
			CreatedAt: l.now().UTC(),
		})
		if err == nil {
			return version, nil
		}
		if !errors.Is(err, ErrConcurrentModification) {
			return 0, err
		}
	}
	return 0, fmt.Errorf("%w: cohort %s after %d attempts", ErrConcurrentModification, cohort, l.maxRetries+1)
}

// Latest returns the newest record of cohort. A cohort without runs yields a
// zero record with Version 0.
func (l *RunLog) Latest(ctx context.Context, cohort string) (RunRecord, error) {
	resp, err := l.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(l.table),
		KeyConditionExpression: aws.String("cohort = :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: cohort},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return RunRecord{}, fmt.Errorf("s3: query run log: %w", err)
	}
	if len(resp.Items) == 0 {
		return RunRecord{Cohort: cohort}, nil
	}
	return decodeRecord(resp.Items[0])
}

func (l *RunLog) commit(ctx context.Context, rec RunRecord) error {
	_, err := l.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(l.table),
		Item: map[string]types.AttributeValue{
			"cohort":     &types.AttributeValueMemberS{Value: rec.Cohort},
			"version":    &types.AttributeValueMemberN{Value: strconv.FormatUint(rec.Version, 10)},
			"report":     &types.AttributeValueMemberS{Value: rec.Report},
			"created_at": &types.AttributeValueMemberS{Value: rec.CreatedAt.Format(time.RFC3339Nano)},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("s3: commit run log: %w", err)
	}
	return nil
}

func decodeRecord(item map[string]types.AttributeValue) (RunRecord, error) {
	cohort, ok := item["cohort"].(*types.AttributeValueMemberS)
	if !ok {
		return RunRecord{}, fmt.Errorf("%w: cohort", ErrMalformedRecord)
	}
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return RunRecord{}, fmt.Errorf("%w: version", ErrMalformedRecord)
	}
	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return RunRecord{}, fmt.Errorf("%w: version %q", ErrMalformedRecord, versionAttr.Value)
	}

	rec := RunRecord{Cohort: cohort.Value, Version: version}
	if report, ok := item["report"].(*types.AttributeValueMemberS); ok {
		rec.Report = report.Value
	}
	if created, ok := item["created_at"].(*types.AttributeValueMemberS); ok {
		if ts, err := time.Parse(time.RFC3339Nano, created.Value); err == nil {
			rec.CreatedAt = ts
		}
	}
	return rec, nil
}
