package mongodb

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/supermarket/internal/domain/models"
)

type itemDocument struct {
	Code           int64                `bson:"_id"`
	Name           string               `bson:"item_name"`
	Description    string               `bson:"description"`
	UnitPrice      primitive.Decimal128 `bson:"unit_price"`
	QuantityOnHand int                  `bson:"quantity_on_hand"`
}

type salesDocument struct {
	ID            string               `bson:"_id"`
	TransactionID string               `bson:"transaction_id"`
	ItemCode      int64                `bson:"item_code"`
	ItemName      string               `bson:"item_name"`
	UnitPrice     primitive.Decimal128 `bson:"unit_price"`
	Quantity      int                  `bson:"quantity"`
	Timestamp     time.Time            `bson:"timestamp"`
}

type billLineDocument struct {
	ItemCode  int64                `bson:"item_code"`
	Name      string               `bson:"name"`
	Quantity  int                  `bson:"quantity"`
	UnitPrice primitive.Decimal128 `bson:"unit_price"`
}

type billDocument struct {
	SequenceID    int64                 `bson:"_id"`
	TransactionID string                `bson:"transaction_id"`
	Items         []billLineDocument    `bson:"items"`
	TotalCost     primitive.Decimal128  `bson:"total_cost"`
	ClientTotal   *primitive.Decimal128 `bson:"client_total,omitempty"`
	Date          time.Time             `bson:"date"`
}

type dailyReportDocument struct {
	Date          time.Time                       `bson:"date"`
	Revenue       primitive.Decimal128            `bson:"revenue"`
	UnitsSold     int                             `bson:"units_sold"`
	EntryCount    int                             `bson:"entry_count"`
	Transactions  int                             `bson:"transactions"`
	PerItemTotals map[string]primitive.Decimal128 `bson:"per_item_totals"`
	CreatedAt     time.Time                       `bson:"created_at"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("convert %s to decimal128: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("convert decimal128 %s: %w", d, err)
	}
	return v, nil
}

func newItemDocument(item models.Item) (itemDocument, error) {
	price, err := toDecimal128(item.UnitPrice)
	if err != nil {
		return itemDocument{}, err
	}
	return itemDocument{
		Code:           item.Code,
		Name:           item.Name,
		Description:    item.Description,
		UnitPrice:      price,
		QuantityOnHand: item.QuantityOnHand,
	}, nil
}

func (d itemDocument) model() (models.Item, error) {
	price, err := fromDecimal128(d.UnitPrice)
	if err != nil {
		return models.Item{}, err
	}
	return models.Item{
		Code:           d.Code,
		Name:           d.Name,
		Description:    d.Description,
		UnitPrice:      price,
		QuantityOnHand: d.QuantityOnHand,
	}, nil
}

func newSalesDocument(entry models.SalesLedgerEntry) (salesDocument, error) {
	price, err := toDecimal128(entry.UnitPrice)
	if err != nil {
		return salesDocument{}, err
	}
	return salesDocument{
		ID:            entry.ID,
		TransactionID: entry.TransactionID,
		ItemCode:      entry.ItemCode,
		ItemName:      entry.ItemName,
		UnitPrice:     price,
		Quantity:      entry.Quantity,
		Timestamp:     entry.Timestamp.UTC(),
	}, nil
}

func (d salesDocument) model() (models.SalesLedgerEntry, error) {
	price, err := fromDecimal128(d.UnitPrice)
	if err != nil {
		return models.SalesLedgerEntry{}, err
	}
	return models.SalesLedgerEntry{
		ID:            d.ID,
		TransactionID: d.TransactionID,
		ItemCode:      d.ItemCode,
		ItemName:      d.ItemName,
		UnitPrice:     price,
		Quantity:      d.Quantity,
		Timestamp:     d.Timestamp,
	}, nil
}

func newBillDocument(bill models.Bill) (billDocument, error) {
	total, err := toDecimal128(bill.TotalCost)
	if err != nil {
		return billDocument{}, err
	}

	doc := billDocument{
		SequenceID:    bill.SequenceID,
		TransactionID: bill.TransactionID,
		Items:         make([]billLineDocument, 0, len(bill.Items)),
		TotalCost:     total,
		Date:          bill.Date.UTC(),
	}
	if bill.ClientTotal != nil {
		clientTotal, err := toDecimal128(*bill.ClientTotal)
		if err != nil {
			return billDocument{}, err
		}
		doc.ClientTotal = &clientTotal
	}
	for _, line := range bill.Items {
		price, err := toDecimal128(line.UnitPrice)
		if err != nil {
			return billDocument{}, err
		}
		doc.Items = append(doc.Items, billLineDocument{
			ItemCode:  line.ItemCode,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: price,
		})
	}
	return doc, nil
}

func (d billDocument) model() (models.Bill, error) {
	total, err := fromDecimal128(d.TotalCost)
	if err != nil {
		return models.Bill{}, err
	}

	bill := models.Bill{
		SequenceID:    d.SequenceID,
		TransactionID: d.TransactionID,
		Items:         make([]models.BillLineItem, 0, len(d.Items)),
		TotalCost:     total,
		Date:          d.Date,
	}
	if d.ClientTotal != nil {
		clientTotal, err := fromDecimal128(*d.ClientTotal)
		if err != nil {
			return models.Bill{}, err
		}
		bill.ClientTotal = &clientTotal
	}
	for _, line := range d.Items {
		price, err := fromDecimal128(line.UnitPrice)
		if err != nil {
			return models.Bill{}, err
		}
		bill.Items = append(bill.Items, models.BillLineItem{
			ItemCode:  line.ItemCode,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: price,
		})
	}
	return bill, nil
}

func newDailyReportDocument(report models.DailySalesReport) (dailyReportDocument, error) {
	revenue, err := toDecimal128(report.Revenue)
	if err != nil {
		return dailyReportDocument{}, err
	}

	totals := make(map[string]primitive.Decimal128, len(report.PerItemTotals))
	for name, total := range report.PerItemTotals {
		v, err := toDecimal128(total)
		if err != nil {
			return dailyReportDocument{}, err
		}
		totals[name] = v
	}

	return dailyReportDocument{
		Date:          report.Date.UTC(),
		Revenue:       revenue,
		UnitsSold:     report.UnitsSold,
		EntryCount:    report.EntryCount,
		Transactions:  report.Transactions,
		PerItemTotals: totals,
		CreatedAt:     report.CreatedAt.UTC(),
	}, nil
}

// windowFilter translates a SalesFilter into a match on the timestamp field.
func windowFilter(filter models.SalesFilter) bson.M {
	match := bson.M{}
	bounds := bson.M{}
	if filter.From != nil {
		bounds["$gte"] = filter.From.UTC()
	}
	if filter.To != nil {
		bounds["$lt"] = filter.To.UTC()
	}
	if len(bounds) > 0 {
		match["timestamp"] = bounds
	}
	return match
}
