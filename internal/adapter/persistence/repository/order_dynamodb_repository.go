package repository

import (
	"context"
	"errors"
	"time"

	"loja_checkout/internal/domain/entities"
	"loja_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName = "orders"
	ordersPaymentIDIndex   = "payment_id-index"

	// Guard items share the orders table under a prefixed key; their
	// conditional put is what makes payment_id unique at the storage layer.
	paymentGuardKeyPrefix = "payment#"
)

// ErrPaymentIDExists means an order for this payment id was already written,
// possibly by another process instance.
var ErrPaymentIDExists = errors.New("order already exists for payment id")

type orderAddressItem struct {
	Street     string `dynamodbav:"street,omitempty"`
	Number     string `dynamodbav:"number,omitempty"`
	Complement string `dynamodbav:"complement,omitempty"`
	District   string `dynamodbav:"district,omitempty"`
	City       string `dynamodbav:"city,omitempty"`
	State      string `dynamodbav:"state,omitempty"`
	ZipCode    string `dynamodbav:"zip_code,omitempty"`
}

type orderCustomerItem struct {
	Name     string           `dynamodbav:"name"`
	Email    string           `dynamodbav:"email"`
	Document string           `dynamodbav:"document"`
	Phone    string           `dynamodbav:"phone,omitempty"`
	Address  orderAddressItem `dynamodbav:"address,omitempty"`
}

type orderCardDetailsItem struct {
	Brand        string `dynamodbav:"brand"`
	MaskedNumber string `dynamodbav:"masked_number"`
	HolderName   string `dynamodbav:"holder_name"`
}

type orderPixDetailsItem struct {
	QRCode        string `dynamodbav:"qr_code,omitempty"`
	CopyPasteCode string `dynamodbav:"copy_paste_code,omitempty"`
	ExpiresAt     string `dynamodbav:"expires_at,omitempty"`
}

type orderItem struct {
	ID            string                `dynamodbav:"id"`
	Customer      orderCustomerItem     `dynamodbav:"customer"`
	ProductID     string                `dynamodbav:"product_id"`
	PaymentID     string                `dynamodbav:"payment_id"`
	PaymentMethod string                `dynamodbav:"payment_method"`
	PaymentStatus string                `dynamodbav:"payment_status"`
	Amount        float64               `dynamodbav:"amount"`
	CardDetails   *orderCardDetailsItem `dynamodbav:"card_details,omitempty"`
	PixDetails    *orderPixDetailsItem  `dynamodbav:"pix_details,omitempty"`
	CreatedAt     string                `dynamodbav:"created_at"`
	UpdatedAt     string                `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: payment_id-index (PK: payment_id)
//
// Insert writes the order together with a payment-id guard item in one
// transaction; the guard's conditional put rejects a second order for the
// same payment id even across process restarts.

type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) Insert(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	guard := map[string]types.AttributeValue{
		"id":       &types.AttributeValueMemberS{Value: paymentGuardKeyPrefix + o.PaymentID},
		"order_id": &types.AttributeValueMemberS{Value: o.ID},
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                guard,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                av,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			for _, reason := range canceled.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return entities.Order{}, ErrPaymentIDExists
				}
			}
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) GetByPaymentID(ctx context.Context, paymentID string) (entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersPaymentIDIndex),
		KeyConditionExpression: aws.String("payment_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: paymentID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Items) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.OrderPaymentStatus) (entities.Order, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "payment_status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var notFound *types.ConditionalCheckFailedException
		if errors.As(err, &notFound) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func (r *OrderDynamoRepository) DeleteByMethod(ctx context.Context, method entities.PaymentMethod) error {
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.tableName),
			FilterExpression: aws.String("payment_method = :m"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":m": &types.AttributeValueMemberS{Value: string(method)},
			},
			ProjectionExpression: aws.String("id"),
			ExclusiveStartKey:    startKey,
		})
		if err != nil {
			return err
		}

		for _, raw := range out.Items {
			idAttr, ok := raw["id"].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}
			if err := r.Delete(ctx, idAttr.Value); err != nil {
				return err
			}
		}

		if len(out.LastEvaluatedKey) == 0 {
			return nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func toOrderItem(o entities.Order) orderItem {
	it := orderItem{
		ID: o.ID,
		Customer: orderCustomerItem{
			Name:     o.Customer.Name,
			Email:    o.Customer.Email,
			Document: o.Customer.Document,
			Phone:    o.Customer.Phone,
			Address: orderAddressItem{
				Street:     o.Customer.Address.Street,
				Number:     o.Customer.Address.Number,
				Complement: o.Customer.Address.Complement,
				District:   o.Customer.Address.District,
				City:       o.Customer.Address.City,
				State:      o.Customer.Address.State,
				ZipCode:    o.Customer.Address.ZipCode,
			},
		},
		ProductID:     o.ProductID,
		PaymentID:     o.PaymentID,
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		Amount:        o.Amount,
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:     o.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if o.CardDetails != nil {
		it.CardDetails = &orderCardDetailsItem{
			Brand:        o.CardDetails.Brand,
			MaskedNumber: o.CardDetails.MaskedNumber,
			HolderName:   o.CardDetails.HolderName,
		}
	}
	if o.PixDetails != nil {
		it.PixDetails = &orderPixDetailsItem{
			QRCode:        o.PixDetails.QRCode,
			CopyPasteCode: o.PixDetails.CopyPasteCode,
		}
		if !o.PixDetails.ExpiresAt.IsZero() {
			it.PixDetails.ExpiresAt = o.PixDetails.ExpiresAt.UTC().Format(time.RFC3339Nano)
		}
	}
	return it
}

func fromOrderItem(it orderItem) entities.Order {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	o := entities.Order{
		ID: it.ID,
		Customer: entities.Customer{
			Name:     it.Customer.Name,
			Email:    it.Customer.Email,
			Document: it.Customer.Document,
			Phone:    it.Customer.Phone,
			Address: entities.Address{
				Street:     it.Customer.Address.Street,
				Number:     it.Customer.Address.Number,
				Complement: it.Customer.Address.Complement,
				District:   it.Customer.Address.District,
				City:       it.Customer.Address.City,
				State:      it.Customer.Address.State,
				ZipCode:    it.Customer.Address.ZipCode,
			},
		},
		ProductID:     it.ProductID,
		PaymentID:     it.PaymentID,
		PaymentMethod: entities.PaymentMethod(it.PaymentMethod),
		PaymentStatus: entities.OrderPaymentStatus(it.PaymentStatus),
		Amount:        it.Amount,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
	if it.CardDetails != nil {
		o.CardDetails = &entities.CardDetails{
			Brand:        it.CardDetails.Brand,
			MaskedNumber: it.CardDetails.MaskedNumber,
			HolderName:   it.CardDetails.HolderName,
		}
	}
	if it.PixDetails != nil {
		expiresAt, _ := time.Parse(time.RFC3339Nano, it.PixDetails.ExpiresAt)
		o.PixDetails = &entities.PixDetails{
			QRCode:        it.PixDetails.QRCode,
			CopyPasteCode: it.PixDetails.CopyPasteCode,
			ExpiresAt:     expiresAt,
		}
	}
	return o
}
