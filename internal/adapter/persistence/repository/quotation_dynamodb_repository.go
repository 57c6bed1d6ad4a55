package repository

import (
	"context"
	"strconv"

	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQuotationsTableName = "quotations"

type quotationItem struct {
	ID               string         `dynamodbav:"id"`
	BuyerID          string         `dynamodbav:"buyer_id"`
	BuyerName        string         `dynamodbav:"buyer_name"`
	DeliveryLocation string         `dynamodbav:"delivery_location"`
	PurchaseType     string         `dynamodbav:"purchase_type"`
	EmergencyReason  string         `dynamodbav:"emergency_reason,omitempty"`
	Justification    string         `dynamodbav:"justification,omitempty"`
	Status           string         `dynamodbav:"status"`
	StatusReason     string         `dynamodbav:"status_reason,omitempty"`
	Rounds           int            `dynamodbav:"rounds"`
	Version          int            `dynamodbav:"version"`
	Products         []productItem  `dynamodbav:"products"`
	Suppliers        []supplierItem `dynamodbav:"suppliers"`
	CreatedAt        string         `dynamodbav:"created_at"`
	UpdatedAt        string         `dynamodbav:"updated_at"`
}

type productItem struct {
	ID           string `dynamodbav:"id"`
	Name         string `dynamodbav:"name"`
	Unit         string `dynamodbav:"unit"`
	Quantity     string `dynamodbav:"quantity"`
	DeliveryTerm string `dynamodbav:"delivery_term,omitempty"`
}

type supplierItem struct {
	SupplierID      string     `dynamodbav:"supplier_id"`
	SupplierName    string     `dynamodbav:"supplier_name"`
	PaymentTermDays int        `dynamodbav:"payment_term_days"`
	FreightType     string     `dynamodbav:"freight_type,omitempty"`
	FreightValue    string     `dynamodbav:"freight_value"`
	Lines           []lineItem `dynamodbav:"lines"`
}

type lineItem struct {
	ID                string `dynamodbav:"id"`
	ProductID         string `dynamodbav:"product_id"`
	ProductName       string `dynamodbav:"product_name"`
	Quantity          string `dynamodbav:"quantity"`
	UnitPrice         string `dynamodbav:"unit_price"`
	Total             string `dynamodbav:"total"`
	DeliveryLeadDays  int    `dynamodbav:"delivery_lead_days"`
	Difal             string `dynamodbav:"difal"`
	IPI               string `dynamodbav:"ipi"`
	PreviousUnitPrice string `dynamodbav:"previous_unit_price"`
}

// QuotationDynamoRepository persists Quotation aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Products, suppliers and line offers are nested in the quotation item so an
// edit is one conditional put on version.
type QuotationDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IQuotationRepository = (*QuotationDynamoRepository)(nil)

func NewQuotationDynamoRepository(ddb DynamoDBAPI, tableName string) *QuotationDynamoRepository {
	return &QuotationDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tableName, defaultQuotationsTableName),
	}
}

func (r *QuotationDynamoRepository) Create(ctx context.Context, q entities.Quotation) (entities.Quotation, error) {
	av, err := attributevalue.MarshalMap(toQuotationItem(q))
	if err != nil {
		return entities.Quotation{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quotation{}, mapConditionErr(err)
	}
	return q, nil
}

func (r *QuotationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quotation, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quotation{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quotation{}, nil
	}

	var it quotationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quotation{}, err
	}
	return fromQuotationItem(it), nil
}

// Replace overwrites the quotation only if the stored version still equals
// expectedVersion. q.Version must already carry the next version.
func (r *QuotationDynamoRepository) Replace(ctx context.Context, q entities.Quotation, expectedVersion int) (entities.Quotation, error) {
	av, err := attributevalue.MarshalMap(toQuotationItem(q))
	if err != nil {
		return entities.Quotation{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("#version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.Itoa(expectedVersion)},
		},
	})
	if err != nil {
		return entities.Quotation{}, mapConditionErr(err)
	}
	return q, nil
}

// UpdateStatus moves the quotation from change.From to change.To. Zero
// matched rows (another writer got there first) is ErrConcurrentModification.
func (r *QuotationDynamoRepository) UpdateStatus(ctx context.Context, change entities.StatusChange) (entities.Quotation, error) {
	u := statusUpdate(r.tableName, change)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 u.TableName,
		Key:                       u.Key,
		ConditionExpression:       u.ConditionExpression,
		UpdateExpression:          u.UpdateExpression,
		ExpressionAttributeNames:  u.ExpressionAttributeNames,
		ExpressionAttributeValues: u.ExpressionAttributeValues,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Quotation{}, mapConditionErr(err)
	}
	if len(out.Attributes) == 0 {
		return entities.Quotation{}, nil
	}

	var it quotationItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quotation{}, err
	}
	return fromQuotationItem(it), nil
}

// statusUpdate is the compare-and-swap on status shared by plain transitions
// and the approval transaction.
func statusUpdate(table string, change entities.StatusChange) *types.Update {
	expr := "SET #status = :to, #status_reason = :reason, #updated_at = :now, #version = #version + :one"
	if change.NewRound {
		expr += ", #rounds = #rounds + :one"
	}
	names := map[string]string{
		"#status":        "status",
		"#status_reason": "status_reason",
		"#updated_at":    "updated_at",
		"#version":       "version",
	}
	if change.NewRound {
		names["#rounds"] = "rounds"
	}

	return &types.Update{
		TableName:                aws.String(table),
		Key:                      idKey(change.QuotationID),
		ConditionExpression:      aws.String("#status = :from"),
		UpdateExpression:         aws.String(expr),
		ExpressionAttributeNames: names,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from":   stringValue(string(change.From)),
			":to":     stringValue(string(change.To)),
			":reason": stringValue(change.Reason),
			":now":    stringValue(formatTime(change.At)),
			":one":    &types.AttributeValueMemberN{Value: "1"},
		},
	}
}

func toQuotationItem(q entities.Quotation) quotationItem {
	it := quotationItem{
		ID:               q.ID,
		BuyerID:          q.BuyerID,
		BuyerName:        q.BuyerName,
		DeliveryLocation: q.DeliveryLocation,
		PurchaseType:     string(q.PurchaseType),
		EmergencyReason:  q.EmergencyReason,
		Justification:    q.Justification,
		Status:           string(q.Status),
		StatusReason:     q.StatusReason,
		Rounds:           q.Rounds,
		Version:          q.Version,
		Products:         make([]productItem, 0, len(q.Products)),
		Suppliers:        make([]supplierItem, 0, len(q.Suppliers)),
		CreatedAt:        formatTime(q.CreatedAt),
		UpdatedAt:        formatTime(q.UpdatedAt),
	}
	for _, p := range q.Products {
		it.Products = append(it.Products, productItem{
			ID:           p.ID,
			Name:         p.Name,
			Unit:         p.Unit,
			Quantity:     decimalToString(p.Quantity),
			DeliveryTerm: p.DeliveryTerm,
		})
	}
	for _, s := range q.Suppliers {
		si := supplierItem{
			SupplierID:      s.SupplierID,
			SupplierName:    s.SupplierName,
			PaymentTermDays: s.PaymentTermDays,
			FreightType:     string(s.FreightType),
			FreightValue:    decimalToString(s.FreightValue),
			Lines:           make([]lineItem, 0, len(s.Lines)),
		}
		for _, l := range s.Lines {
			si.Lines = append(si.Lines, lineItem{
				ID:                l.ID,
				ProductID:         l.ProductID,
				ProductName:       l.ProductName,
				Quantity:          decimalToString(l.Quantity),
				UnitPrice:         decimalToString(l.UnitPrice),
				Total:             decimalToString(l.Total),
				DeliveryLeadDays:  l.DeliveryLeadDays,
				Difal:             decimalToString(l.Taxes.Difal),
				IPI:               decimalToString(l.Taxes.IPI),
				PreviousUnitPrice: decimalToString(l.PreviousUnitPrice),
			})
		}
		it.Suppliers = append(it.Suppliers, si)
	}
	return it
}

func fromQuotationItem(it quotationItem) entities.Quotation {
	q := entities.Quotation{
		ID:               it.ID,
		BuyerID:          it.BuyerID,
		BuyerName:        it.BuyerName,
		DeliveryLocation: it.DeliveryLocation,
		PurchaseType:     entities.PurchaseType(it.PurchaseType),
		EmergencyReason:  it.EmergencyReason,
		Justification:    it.Justification,
		Status:           entities.QuotationStatus(it.Status),
		StatusReason:     it.StatusReason,
		Rounds:           it.Rounds,
		Version:          it.Version,
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}
	for _, p := range it.Products {
		q.Products = append(q.Products, entities.Product{
			ID:           p.ID,
			Name:         p.Name,
			Unit:         p.Unit,
			Quantity:     decimalFromString(p.Quantity),
			DeliveryTerm: p.DeliveryTerm,
		})
	}
	for _, si := range it.Suppliers {
		s := entities.SupplierOffer{
			SupplierID:      si.SupplierID,
			SupplierName:    si.SupplierName,
			PaymentTermDays: si.PaymentTermDays,
			FreightType:     entities.FreightType(si.FreightType),
			FreightValue:    decimalFromString(si.FreightValue),
		}
		for _, l := range si.Lines {
			s.Lines = append(s.Lines, entities.LineOffer{
				ID:                l.ID,
				ProductID:         l.ProductID,
				ProductName:       l.ProductName,
				SupplierID:        si.SupplierID,
				Quantity:          decimalFromString(l.Quantity),
				UnitPrice:         decimalFromString(l.UnitPrice),
				Total:             decimalFromString(l.Total),
				DeliveryLeadDays:  l.DeliveryLeadDays,
				Taxes:             entities.TaxAddOns{Difal: decimalFromString(l.Difal), IPI: decimalFromString(l.IPI)},
				PreviousUnitPrice: decimalFromString(l.PreviousUnitPrice),
			})
		}
		q.Suppliers = append(q.Suppliers, s)
	}
	return q
}

