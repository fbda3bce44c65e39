package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/devmarket/internal/client/market"
	"github.com/dmitrijs2005/devmarket/internal/client/services"
)

// Sell walks the seller through the draft workflow: device facts and photos,
// automatic grading and price estimate, then title, description and price.
func (a *App) Sell(ctx context.Context) error {
	in, err := a.askListingInput()
	if err != nil {
		return err
	}

	res, err := a.listing.CreateListing(ctx, in, a.askListingDetails)
	if err != nil {
		if res != nil && res.DraftKey != "" {
			fmt.Fprintln(a.out, hintStyle.Render(fmt.Sprintf("Draft %s was left unpublished.", res.DraftKey)))
		}
		return err
	}

	success(a.out, "Published product %d.", res.Publish.ProductID)
	renderFields(a.out, []kv{
		{"estimate", fmt.Sprintf("%s - %s", res.Publish.EstimatedMin, res.Publish.EstimatedMax)},
		{"market", res.Publish.MarketTag},
		{"value score", strconv.FormatFloat(res.Publish.ValueScore, 'f', 1, 64)},
	})
	return nil
}

func (a *App) askListingInput() (services.ListingInput, error) {
	var in services.ListingInput

	s, err := a.ask("Category id (see 'categories')")
	if err != nil {
		return in, err
	}
	if in.CategoryID, err = parseID([]string{s}, 0, "category id"); err != nil {
		return in, err
	}

	s, err = a.ask("Device model id (see 'models <category_id>')")
	if err != nil {
		return in, err
	}
	if in.DeviceModelID, err = parseID([]string{s}, 0, "device model id"); err != nil {
		return in, err
	}

	s, err = a.ask("Years used")
	if err != nil {
		return in, err
	}
	years, err := strconv.ParseFloat(s, 64)
	if err != nil || years < 0 {
		return in, fmt.Errorf("%q is not a valid number of years", s)
	}
	in.YearsUsed = years

	s, err = a.ask("Original price")
	if err != nil {
		return in, err
	}
	if in.OriginalPrice, err = parseNumber(s); err != nil {
		return in, err
	}

	s, err = GetMultiline(a.reader, fmt.Sprintf(
		"Photos, one per line: local paths or s3://bucket/key (up to %d, the first is the main photo)",
		market.MaxDraftImages), a.out)
	if err != nil {
		return in, err
	}
	for _, line := range strings.Split(s, "\n") {
		if ref := strings.TrimSpace(line); ref != "" {
			in.Images = append(in.Images, ref)
		}
	}
	if len(in.Images) > market.MaxDraftImages {
		fmt.Fprintln(a.out, hintStyle.Render(fmt.Sprintf("Only the first %d photos will be used.", market.MaxDraftImages)))
	}
	return in, nil
}

// askListingDetails shows the grading and estimate, then asks for the final
// listing text and price.
func (a *App) askListingDetails(_ context.Context, an *market.AnalyzeResponse, est *market.EstimateResponse) (services.ListingDetails, error) {
	var d services.ListingDetails

	defects := "none"
	if len(an.Defects) > 0 {
		defects = strings.Join(an.Defects, ", ")
	}
	fmt.Fprintln(a.out, titleStyle.Render("Assessment"))
	renderFields(a.out, []kv{
		{"grade", fmt.Sprintf("%s (score %.2f)", an.GradeLabel, an.GradeScore)},
		{"defects", defects},
		{"estimate", fmt.Sprintf("%s - %s (mid %s)", est.EstimatedMin, est.EstimatedMax, est.EstimatedMid)},
	})

	var err error
	if d.Title, err = a.ask("Title"); err != nil {
		return d, err
	}
	if d.Title == "" {
		return d, fmt.Errorf("title must not be empty")
	}
	if d.Description, err = GetMultiline(a.reader, "Description", a.out); err != nil {
		return d, err
	}

	s, err := a.ask(fmt.Sprintf("Selling price (suggested %s)", est.EstimatedMid))
	if err != nil {
		return d, err
	}
	if s == "" {
		s = est.EstimatedMid
	}
	if d.SellingPrice, err = parseNumber(s); err != nil {
		return d, err
	}
	return d, nil
}
