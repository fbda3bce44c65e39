package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/devmarket/internal/client/market"
)

func (a *App) Categories(ctx context.Context) error {
	cats, err := a.market.ListCategories(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name, c.Code})
	}
	renderTable(a.out, []string{"ID", "Name", "Code"}, rows)
	return nil
}

func (a *App) Models(ctx context.Context, args []string) error {
	categoryID, err := parseID(args, 0, "models <category_id>")
	if err != nil {
		return err
	}
	models, err := a.market.ListDeviceModels(ctx, categoryID)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(models))
	for _, m := range models {
		rows = append(rows, []string{strconv.FormatInt(m.ID, 10), m.Name, m.StorageSpec, m.Color, m.BasePrice})
	}
	renderTable(a.out, []string{"ID", "Name", "Storage", "Color", "Base price"}, rows)
	return nil
}

// Products lists products on sale, optionally only one seller's.
func (a *App) Products(ctx context.Context, args []string) error {
	var sellerID int64
	if len(args) > 0 {
		id, err := parseID(args, 0, "products [seller_id]")
		if err != nil {
			return err
		}
		sellerID = id
	}

	products, err := a.market.ListProducts(ctx, sellerID)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10), p.Title, p.SellingPrice, p.EstimatedPrice, p.QualityGrade, p.Status,
		})
	}
	renderTable(a.out, []string{"ID", "Title", "Price", "Estimate", "Grade", "Status"}, rows)
	return nil
}

func (a *App) Product(ctx context.Context, args []string) error {
	id, err := parseID(args, 0, "product <id>")
	if err != nil {
		return err
	}
	p, err := a.market.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	fields := []kv{
		{"id", strconv.FormatInt(p.ID, 10)},
		{"title", p.Title},
		{"price", p.SellingPrice},
		{"estimate", p.EstimatedPrice},
		{"grade", p.QualityGrade},
		{"status", p.Status},
	}
	if p.Location != "" {
		fields = append(fields, kv{"location", p.Location})
	}
	if tag, ok := p.ConditionData["market_tag"].(string); ok {
		fields = append(fields, kv{"market", tag})
	}
	fields = append(fields, kv{"description", p.Description})
	renderFields(a.out, fields)
	return nil
}

// Valuate prices a device model from questionnaire choice ids.
func (a *App) Valuate(ctx context.Context, args []string) error {
	const usage = "valuate <device_model_id> <choice_id>..."
	modelID, err := parseID(args, 0, usage)
	if err != nil {
		return err
	}
	choices := make([]int64, 0, len(args)-1)
	for i := 1; i < len(args); i++ {
		id, err := parseID(args, i, usage)
		if err != nil {
			return err
		}
		choices = append(choices, id)
	}

	v, err := a.market.Valuate(ctx, market.ValuationRequest{DeviceModelID: modelID, ChoiceIDs: choices})
	if err != nil {
		return err
	}
	success(a.out, "Estimated price: %s %s", v.EstimatedPrice, v.Currency)
	if v.Message != "" {
		fmt.Fprintln(a.out, v.Message)
	}
	return nil
}

func (a *App) Orders(ctx context.Context) error {
	orders, err := a.market.ListOrders(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			strconv.FormatInt(o.ID, 10), o.OrderNo, strconv.FormatInt(o.Product, 10), o.Amount, o.Status,
		})
	}
	renderTable(a.out, []string{"ID", "Order no", "Product", "Amount", "Status"}, rows)
	return nil
}

func (a *App) Buy(ctx context.Context, args []string) error {
	productID, err := parseID(args, 0, "buy <product_id>")
	if err != nil {
		return err
	}
	t, err := a.market.CreateTrade(ctx, productID)
	if err != nil {
		return err
	}
	success(a.out, "Order %s %s.", t.OrderNo, t.Status)
	return nil
}

func (a *App) Confirm(ctx context.Context, args []string) error {
	orderID, err := parseID(args, 0, "confirm <order_id>")
	if err != nil {
		return err
	}
	c, err := a.market.ConfirmReceipt(ctx, orderID)
	if err != nil {
		return err
	}
	success(a.out, "Order %d: %s. %s", orderID, c.Status, c.Message)
	return nil
}
