package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/devmarket/internal/client/market"
	"github.com/dmitrijs2005/devmarket/internal/client/media"
	"github.com/dmitrijs2005/devmarket/internal/client/models"
	"github.com/dmitrijs2005/devmarket/internal/logging"
)

var ErrNoImages = errors.New("at least one image is required")

// DraftAPI is the draft half of market.Client.
type DraftAPI interface {
	InitDraft(ctx context.Context, req market.DraftInitRequest) (*market.DraftInitResponse, error)
	UploadDraftImages(ctx context.Context, draftKey string, images []models.Image) ([]market.UploadImageResponse, error)
	AnalyzeDraft(ctx context.Context, draftKey string) (*market.AnalyzeResponse, error)
	EstimateDraft(ctx context.Context, draftKey string, req market.EstimateRequest) (*market.EstimateResponse, error)
	PublishDraft(ctx context.Context, draftKey string, req market.PublishRequest) (*market.PublishResponse, error)
}

// ListingInput is what the seller knows up front.
type ListingInput struct {
	CategoryID    int64
	DeviceModelID int64
	YearsUsed     float64
	OriginalPrice json.Number
	// Images are references understood by media.Source. Only the first
	// market.MaxDraftImages are used; the first one becomes the main image.
	Images []string
}

// ListingDetails are chosen by the seller after seeing the estimate.
type ListingDetails struct {
	Title        string
	Description  string
	SellingPrice json.Number
}

// DetailsFunc asks the seller for the final text and price.
type DetailsFunc func(ctx context.Context, analysis *market.AnalyzeResponse, estimate *market.EstimateResponse) (ListingDetails, error)

// ListingResult collects every step's response.
type ListingResult struct {
	DraftKey string
	Uploads  []market.UploadImageResponse
	Analysis *market.AnalyzeResponse
	Estimate *market.EstimateResponse
	Publish  *market.PublishResponse
}

// StepError names the workflow step that failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return e.Step + ": " + e.Err.Error() }
func (e *StepError) Unwrap() error { return e.Err }

const (
	StepInit     = "init draft"
	StepImages   = "open images"
	StepUpload   = "upload images"
	StepAnalyze  = "analyze draft"
	StepEstimate = "estimate draft"
	StepDetails  = "listing details"
	StepPublish  = "publish draft"
)

type ListingService interface {
	CreateListing(ctx context.Context, in ListingInput, details DetailsFunc) (*ListingResult, error)
}

type listingService struct {
	drafts DraftAPI
	source media.Source
	log    logging.Logger
}

func NewListingService(drafts DraftAPI, source media.Source, log logging.Logger) ListingService {
	if log == nil {
		log = logging.Discard()
	}
	return &listingService{drafts: drafts, source: source, log: log.With("component", "listing")}
}

// CreateListing runs init, upload, analyze, estimate and publish in order.
// The first failure stops the workflow; the returned *StepError names the
// step, and the partial result is returned alongside it.
func (s *listingService) CreateListing(ctx context.Context, in ListingInput, details DetailsFunc) (*ListingResult, error) {
	if len(in.Images) == 0 {
		return nil, &StepError{Step: StepImages, Err: ErrNoImages}
	}

	res := &ListingResult{}
	fail := func(step string, err error) (*ListingResult, error) {
		s.log.Warn(ctx, "listing step failed", "step", step, "draft_key", res.DraftKey, "error", err)
		return res, &StepError{Step: step, Err: err}
	}

	initResp, err := s.drafts.InitDraft(ctx, market.DraftInitRequest{
		CategoryID:    in.CategoryID,
		DeviceModelID: in.DeviceModelID,
		YearsUsed:     in.YearsUsed,
		OriginalPrice: in.OriginalPrice,
	})
	if err != nil {
		return fail(StepInit, err)
	}
	res.DraftKey = initResp.DraftKey
	log := s.log.With("draft_key", res.DraftKey)
	log.Info(ctx, "draft created")

	refs := in.Images
	if len(refs) > market.MaxDraftImages {
		log.Warn(ctx, "extra images ignored", "given", len(refs), "max", market.MaxDraftImages)
		refs = refs[:market.MaxDraftImages]
	}
	images := make([]models.Image, 0, len(refs))
	for _, ref := range refs {
		img, err := s.source.Open(ctx, ref)
		if err != nil {
			return fail(StepImages, err)
		}
		images = append(images, img)
	}

	res.Uploads, err = s.drafts.UploadDraftImages(ctx, res.DraftKey, images)
	if err != nil {
		return fail(StepUpload, err)
	}
	log.Info(ctx, "images uploaded", "count", len(res.Uploads))

	res.Analysis, err = s.drafts.AnalyzeDraft(ctx, res.DraftKey)
	if err != nil {
		return fail(StepAnalyze, err)
	}

	res.Estimate, err = s.drafts.EstimateDraft(ctx, res.DraftKey, market.EstimateRequest{
		CategoryID:    in.CategoryID,
		YearsUsed:     in.YearsUsed,
		OriginalPrice: in.OriginalPrice,
		GradeLabel:    res.Analysis.GradeLabel,
		Defects:       res.Analysis.Defects,
	})
	if err != nil {
		return fail(StepEstimate, err)
	}
	log.Info(ctx, "draft estimated", "min", res.Estimate.EstimatedMin, "max", res.Estimate.EstimatedMax)

	d, err := details(ctx, res.Analysis, res.Estimate)
	if err != nil {
		return fail(StepDetails, err)
	}

	res.Publish, err = s.drafts.PublishDraft(ctx, res.DraftKey, market.PublishRequest{
		CategoryID:    in.CategoryID,
		DeviceModelID: in.DeviceModelID,
		YearsUsed:     in.YearsUsed,
		OriginalPrice: in.OriginalPrice,
		GradeLabel:    res.Analysis.GradeLabel,
		Defects:       res.Analysis.Defects,
		Title:         d.Title,
		Description:   d.Description,
		SellingPrice:  d.SellingPrice,
	})
	if err != nil {
		return fail(StepPublish, err)
	}

	log.Info(ctx, "listing published", "product_id", res.Publish.ProductID)
	return res, nil
}

