package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type item = map[string]types.AttributeValue

// fakeDynamo is an in-memory DynamoDBAPI that understands the handful of
// condition and update expressions the repositories emit.
type fakeDynamo struct {
	mu      sync.Mutex
	tables  map[string]map[string]item
	keys    map[string][]string
	indexes map[string][]string
	err     error
	queries int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		tables: map[string]map[string]item{},
		keys: map[string][]string{
			"quotations":   {"id"},
			"savings":      {"id"},
			"saving_items": {"saving_id", "id"},
		},
		indexes: map[string][]string{
			savingItemsHistoryIndex: {"history_key", "registered_at"},
		},
	}
}

func (f *fakeDynamo) count(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tables[table])
}

func (f *fakeDynamo) keyOf(table string, it item) string {
	parts := make([]string, 0, 2)
	for _, k := range f.keys[table] {
		parts = append(parts, avString(it[k]))
	}
	return strings.Join(parts, "|")
}

func (f *fakeDynamo) get(table string, key item) item {
	return f.tables[table][f.keyOf(table, key)]
}

func (f *fakeDynamo) put(table string, it item) {
	if f.tables[table] == nil {
		f.tables[table] = map[string]item{}
	}
	f.tables[table][f.keyOf(table, it)] = copyItem(it)
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: copyItem(f.get(aws.ToString(in.TableName), in.Key))}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	table := aws.ToString(in.TableName)
	if !evalCondition(aws.ToString(in.ConditionExpression), f.get(table, in.Item), in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
	}
	f.put(table, in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	table := aws.ToString(in.TableName)
	cur := f.get(table, in.Key)
	if !evalCondition(aws.ToString(in.ConditionExpression), cur, in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
	}
	next := applyUpdate(aws.ToString(in.UpdateExpression), cur, in.Key, in.ExpressionAttributeNames, in.ExpressionAttributeValues)
	f.put(table, next)
	return &dynamodb.UpdateItemOutput{Attributes: copyItem(next)}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries++
	if f.err != nil {
		return nil, f.err
	}
	table := aws.ToString(in.TableName)
	keys := f.keys[table]
	if in.IndexName != nil {
		keys = f.indexes[aws.ToString(in.IndexName)]
	}

	lhs, rhs, _ := strings.Cut(aws.ToString(in.KeyConditionExpression), " = ")
	attr := resolveName(lhs, in.ExpressionAttributeNames)
	want := avString(in.ExpressionAttributeValues[rhs])

	var out []item
	for _, it := range f.tables[table] {
		if v, ok := it[attr]; ok && avString(v) == want {
			out = append(out, copyItem(it))
		}
	}
	if len(keys) > 1 {
		sk := keys[1]
		sort.SliceStable(out, func(i, j int) bool { return avString(out[i][sk]) < avString(out[j][sk]) })
	}
	if in.ScanIndexForward != nil && !*in.ScanIndexForward {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	if in.Limit != nil && int(*in.Limit) < len(out) {
		out = out[:*in.Limit]
	}
	return &dynamodb.QueryOutput{Items: out, Count: int32(len(out))}, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	reasons := make([]types.CancellationReason, len(in.TransactItems))
	failed := false
	for i, a := range in.TransactItems {
		ok := true
		switch {
		case a.Put != nil:
			ok = evalCondition(aws.ToString(a.Put.ConditionExpression), f.get(aws.ToString(a.Put.TableName), a.Put.Item), a.Put.ExpressionAttributeNames, a.Put.ExpressionAttributeValues)
		case a.Update != nil:
			ok = evalCondition(aws.ToString(a.Update.ConditionExpression), f.get(aws.ToString(a.Update.TableName), a.Update.Key), a.Update.ExpressionAttributeNames, a.Update.ExpressionAttributeValues)
		}
		reasons[i] = types.CancellationReason{Code: aws.String("None")}
		if !ok {
			reasons[i] = types.CancellationReason{Code: aws.String("ConditionalCheckFailed")}
			failed = true
		}
	}
	if failed {
		return nil, &types.TransactionCanceledException{Message: aws.String("Transaction cancelled"), CancellationReasons: reasons}
	}

	for _, a := range in.TransactItems {
		switch {
		case a.Put != nil:
			f.put(aws.ToString(a.Put.TableName), a.Put.Item)
		case a.Update != nil:
			table := aws.ToString(a.Update.TableName)
			next := applyUpdate(aws.ToString(a.Update.UpdateExpression), f.get(table, a.Update.Key), a.Update.Key, a.Update.ExpressionAttributeNames, a.Update.ExpressionAttributeValues)
			f.put(table, next)
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func evalCondition(expr string, cur item, names map[string]string, values map[string]types.AttributeValue) bool {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return true
	case strings.HasPrefix(expr, "attribute_not_exists("):
		name := resolveName(strings.TrimSuffix(strings.TrimPrefix(expr, "attribute_not_exists("), ")"), names)
		_, ok := cur[name]
		return !ok
	case strings.HasPrefix(expr, "attribute_exists("):
		name := resolveName(strings.TrimSuffix(strings.TrimPrefix(expr, "attribute_exists("), ")"), names)
		_, ok := cur[name]
		return ok
	}
	lhs, rhs, ok := strings.Cut(expr, " = ")
	if !ok {
		panic(fmt.Sprintf("fakeDynamo: unsupported condition %q", expr))
	}
	v, exists := cur[resolveName(lhs, names)]
	return exists && avString(v) == avString(values[rhs])
}

func applyUpdate(expr string, cur, key item, names map[string]string, values map[string]types.AttributeValue) item {
	next := copyItem(cur)
	if next == nil {
		next = copyItem(key)
	}
	for _, clause := range strings.Split(strings.TrimPrefix(expr, "SET "), ", ") {
		lhs, rhs, _ := strings.Cut(clause, " = ")
		attr := resolveName(lhs, names)
		if base, inc, ok := strings.Cut(rhs, " + "); ok {
			a, _ := strconv.Atoi(avString(next[resolveName(base, names)]))
			b, _ := strconv.Atoi(avString(values[inc]))
			next[attr] = &types.AttributeValueMemberN{Value: strconv.Itoa(a + b)}
			continue
		}
		next[attr] = values[rhs]
	}
	return next
}

func resolveName(token string, names map[string]string) string {
	token = strings.TrimSpace(token)
	if n, ok := names[token]; ok {
		return n
	}
	return token
}

func avString(v types.AttributeValue) string {
	switch t := v.(type) {
	case *types.AttributeValueMemberS:
		return t.Value
	case *types.AttributeValueMemberN:
		return t.Value
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

func copyItem(it item) item {
	if it == nil {
		return nil
	}
	out := make(item, len(it))
	for k, v := range it {
		out[k] = v
	}
	return out
}
