package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/lehigh-university-libraries/ocr-bench/internal/engine"
	"github.com/lehigh-university-libraries/ocr-bench/internal/models"
	"github.com/lehigh-university-libraries/ocr-bench/internal/utils"
)

type textractAPI interface {
	AnalyzeDocument(ctx context.Context, params *textract.AnalyzeDocumentInput, optFns ...func(*textract.Options)) (*textract.AnalyzeDocumentOutput, error)
}

// TextractEngine runs synchronous AWS Textract AnalyzeDocument on every page
// and keeps the LINE blocks.
type TextractEngine struct {
	client textractAPI
	dpi    int
}

// NewTextract builds a client for region. Static keys are used when given,
// otherwise the default AWS credential chain applies.
func NewTextract(ctx context.Context, region, accessKey, secretKey string, dpi int) (*TextractEngine, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &TextractEngine{client: textract.NewFromConfig(cfg), dpi: dpi}, nil
}

func (e *TextractEngine) Run(ctx context.Context, item string, _ models.Kind) (engine.Output, error) {
	pages, cleanup, err := utils.PageImages(ctx, item, e.dpi)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var lines []string
	for _, page := range pages {
		data, err := os.ReadFile(page)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", page, err)
		}
		out, err := e.client.AnalyzeDocument(ctx, &textract.AnalyzeDocumentInput{
			Document:     &types.Document{Bytes: data},
			FeatureTypes: []types.FeatureType{types.FeatureTypeTables, types.FeatureTypeForms},
		})
		if err != nil {
			return nil, fmt.Errorf("textract analyze %s: %w", page, err)
		}
		for _, block := range out.Blocks {
			if block.BlockType == types.BlockTypeLine {
				lines = append(lines, aws.ToString(block.Text))
			}
		}
	}

	return engine.OCRResult{
		Text:  strings.Join(lines, "\n"),
		Pages: len(pages),
	}, nil
}
