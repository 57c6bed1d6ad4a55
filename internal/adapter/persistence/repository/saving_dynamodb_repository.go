package repository

import (
	"context"
	"fmt"
	"sort"

	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/domain/normalize"
	"cotacao_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultSavingsTableName     = "savings"
	defaultSavingItemsTableName = "saving_items"
	savingItemsHistoryIndex     = "history_key-registered_at-index"

	// maxTransactItems is the DynamoDB limit on actions per TransactWriteItems.
	maxTransactItems = 100
)

type savingItem struct {
	ID             string `dynamodbav:"id"`
	QuotationID    string `dynamodbav:"quotation_id"`
	BuyerID        string `dynamodbav:"buyer_id"`
	ApprovedBy     string `dynamodbav:"approved_by"`
	RegisteredAt   string `dynamodbav:"registered_at"`
	ApprovedAt     string `dynamodbav:"approved_at"`
	InitialTotal   string `dynamodbav:"initial_total"`
	FinalTotal     string `dynamodbav:"final_total"`
	Economy        string `dynamodbav:"economy"`
	EconomyPercent string `dynamodbav:"economy_percent"`
	Rounds         int    `dynamodbav:"rounds"`
	PurchaseType   string `dynamodbav:"purchase_type"`
	Status         string `dynamodbav:"status"`
}

type savingLineItem struct {
	SavingID         string `dynamodbav:"saving_id"`
	ID               string `dynamodbav:"id"`
	Position         int    `dynamodbav:"position"`
	HistoryKey       string `dynamodbav:"history_key,omitempty"`
	RegisteredAt     string `dynamodbav:"registered_at"`
	Description      string `dynamodbav:"description"`
	Unit             string `dynamodbav:"unit"`
	Quantity         string `dynamodbav:"quantity"`
	InitialUnitPrice string `dynamodbav:"initial_unit_price"`
	FinalUnitPrice   string `dynamodbav:"final_unit_price"`
	Economy          string `dynamodbav:"economy"`
	EconomyPercent   string `dynamodbav:"economy_percent"`
	SupplierID       string `dynamodbav:"supplier_id"`
	SupplierName     string `dynamodbav:"supplier_name"`
	DeliveryLeadDays int    `dynamodbav:"delivery_lead_days"`
	PaymentTermDays  int    `dynamodbav:"payment_term_days"`
	Freight          string `dynamodbav:"freight"`
	Status           string `dynamodbav:"status"`
}

// SavingDynamoRepository persists SavingRecord entities in DynamoDB.
//
// Table requirements:
//   - savings: PK id (string, equals the quotation id)
//   - saving_items: PK saving_id (string), SK id (string)
//   - saving_items GSI history_key-registered_at-index
//     (PK history_key, SK registered_at, projection ALL)
//
// history_key is only written for approved items of concluded scheduled
// purchases, so the index holds exactly the rows the price history reads.
type SavingDynamoRepository struct {
	ddb             DynamoDBAPI
	quotationsTable string
	savingsTable    string
	itemsTable      string
}

var _ interfaces.ISavingRepository = (*SavingDynamoRepository)(nil)

func NewSavingDynamoRepository(ddb DynamoDBAPI, quotationsTable, savingsTable, itemsTable string) *SavingDynamoRepository {
	return &SavingDynamoRepository{
		ddb:             ddb,
		quotationsTable: tableOrDefault(quotationsTable, defaultQuotationsTableName),
		savingsTable:    tableOrDefault(savingsTable, defaultSavingsTableName),
		itemsTable:      tableOrDefault(itemsTable, defaultSavingItemsTableName),
	}
}

// CreateOnApproval commits the status change, the saving header and its items
// in one transaction. A status that moved or a record that already exists
// cancels everything and returns ErrConcurrentModification.
func (r *SavingDynamoRepository) CreateOnApproval(ctx context.Context, rec entities.SavingRecord, change entities.StatusChange) error {
	if n := len(rec.Items) + 2; n > maxTransactItems {
		return fmt.Errorf("%w: approval needs %d writes, at most %d fit one transaction", entities.ErrValidation, n, maxTransactItems)
	}

	header, err := attributevalue.MarshalMap(toSavingItem(rec))
	if err != nil {
		return err
	}

	actions := make([]types.TransactWriteItem, 0, len(rec.Items)+2)
	actions = append(actions,
		types.TransactWriteItem{Update: statusUpdate(r.quotationsTable, change)},
		types.TransactWriteItem{Put: &types.Put{
			TableName:                aws.String(r.savingsTable),
			Item:                     header,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		}},
	)
	for i, item := range rec.Items {
		av, err := attributevalue.MarshalMap(toSavingLineItem(rec, item, i))
		if err != nil {
			return err
		}
		actions = append(actions, types.TransactWriteItem{Put: &types.Put{
			TableName:                aws.String(r.itemsTable),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		}})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: actions,
	})
	return mapConditionErr(err)
}

func (r *SavingDynamoRepository) GetByQuotationID(ctx context.Context, quotationID string) (entities.SavingRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.savingsTable),
		Key:            idKey(quotationID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.SavingRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.SavingRecord{}, nil
	}

	var it savingItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.SavingRecord{}, err
	}
	rec := fromSavingItem(it)

	lines, err := r.listLines(ctx, rec.ID)
	if err != nil {
		return entities.SavingRecord{}, err
	}
	for _, l := range lines {
		rec.Items = append(rec.Items, fromSavingLineItem(l))
	}
	return rec, nil
}

// FindLatestApproved reads one row of the history index, newest first.
func (r *SavingDynamoRepository) FindLatestApproved(ctx context.Context, nameKey string) (entities.HistoricalPrice, bool, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.itemsTable),
		IndexName:              aws.String(savingItemsHistoryIndex),
		KeyConditionExpression: aws.String("#hk = :hk"),
		ExpressionAttributeNames: map[string]string{
			"#hk": "history_key",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":hk": stringValue(nameKey),
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return entities.HistoricalPrice{}, false, err
	}
	if len(out.Items) == 0 {
		return entities.HistoricalPrice{}, false, nil
	}

	var it savingLineItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.HistoricalPrice{}, false, err
	}
	return entities.HistoricalPrice{
		UnitPrice:    decimalFromString(it.FinalUnitPrice),
		SupplierName: it.SupplierName,
		RegisteredAt: parseTime(it.RegisteredAt),
	}, true, nil
}

func (r *SavingDynamoRepository) listLines(ctx context.Context, savingID string) ([]savingLineItem, error) {
	var (
		lines []savingLineItem
		start map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.itemsTable),
			KeyConditionExpression: aws.String("#sid = :sid"),
			ExpressionAttributeNames: map[string]string{
				"#sid": "saving_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":sid": stringValue(savingID),
			},
			ConsistentRead:    aws.Bool(true),
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it savingLineItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			lines = append(lines, it)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		start = out.LastEvaluatedKey
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Position < lines[j].Position })
	return lines, nil
}

func historyKey(rec entities.SavingRecord, item entities.SavingItem) string {
	if rec.PurchaseType != entities.PurchaseTypeScheduled ||
		rec.Status != entities.SavingStatusConcluded ||
		item.Status != entities.SavingItemStatusApproved {
		return ""
	}
	return normalize.NameKey(item.Description)
}

func toSavingItem(rec entities.SavingRecord) savingItem {
	return savingItem{
		ID:             rec.ID,
		QuotationID:    rec.QuotationID,
		BuyerID:        rec.BuyerID,
		ApprovedBy:     rec.ApprovedBy,
		RegisteredAt:   formatTime(rec.RegisteredAt),
		ApprovedAt:     formatTime(rec.ApprovedAt),
		InitialTotal:   decimalToString(rec.InitialTotal),
		FinalTotal:     decimalToString(rec.FinalTotal),
		Economy:        decimalToString(rec.Economy),
		EconomyPercent: decimalToString(rec.EconomyPercent),
		Rounds:         rec.Rounds,
		PurchaseType:   string(rec.PurchaseType),
		Status:         string(rec.Status),
	}
}

func fromSavingItem(it savingItem) entities.SavingRecord {
	return entities.SavingRecord{
		ID:             it.ID,
		QuotationID:    it.QuotationID,
		BuyerID:        it.BuyerID,
		ApprovedBy:     it.ApprovedBy,
		RegisteredAt:   parseTime(it.RegisteredAt),
		ApprovedAt:     parseTime(it.ApprovedAt),
		InitialTotal:   decimalFromString(it.InitialTotal),
		FinalTotal:     decimalFromString(it.FinalTotal),
		Economy:        decimalFromString(it.Economy),
		EconomyPercent: decimalFromString(it.EconomyPercent),
		Rounds:         it.Rounds,
		PurchaseType:   entities.PurchaseType(it.PurchaseType),
		Status:         entities.SavingStatus(it.Status),
	}
}

func toSavingLineItem(rec entities.SavingRecord, item entities.SavingItem, position int) savingLineItem {
	return savingLineItem{
		SavingID:         rec.ID,
		ID:               item.ID,
		Position:         position,
		HistoryKey:       historyKey(rec, item),
		RegisteredAt:     formatTime(rec.RegisteredAt),
		Description:      item.Description,
		Unit:             item.Unit,
		Quantity:         decimalToString(item.Quantity),
		InitialUnitPrice: decimalToString(item.InitialUnitPrice),
		FinalUnitPrice:   decimalToString(item.FinalUnitPrice),
		Economy:          decimalToString(item.Economy),
		EconomyPercent:   decimalToString(item.EconomyPercent),
		SupplierID:       item.SupplierID,
		SupplierName:     item.SupplierName,
		DeliveryLeadDays: item.DeliveryLeadDays,
		PaymentTermDays:  item.PaymentTermDays,
		Freight:          decimalToString(item.Freight),
		Status:           string(item.Status),
	}
}

func fromSavingLineItem(it savingLineItem) entities.SavingItem {
	return entities.SavingItem{
		ID:               it.ID,
		SavingID:         it.SavingID,
		Description:      it.Description,
		Unit:             it.Unit,
		Quantity:         decimalFromString(it.Quantity),
		InitialUnitPrice: decimalFromString(it.InitialUnitPrice),
		FinalUnitPrice:   decimalFromString(it.FinalUnitPrice),
		Economy:          decimalFromString(it.Economy),
		EconomyPercent:   decimalFromString(it.EconomyPercent),
		SupplierID:       it.SupplierID,
		SupplierName:     it.SupplierName,
		DeliveryLeadDays: it.DeliveryLeadDays,
		PaymentTermDays:  it.PaymentTermDays,
		Freight:          decimalFromString(it.Freight),
		Status:           entities.SavingItemStatus(it.Status),
	}
}
