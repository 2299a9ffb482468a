package exports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/olivecrm/olivecrm/internal/logging"
	"github.com/olivecrm/olivecrm/internal/server/barrels"
	sc "github.com/olivecrm/olivecrm/internal/server/config"
	"github.com/olivecrm/olivecrm/internal/server/models"
	"github.com/olivecrm/olivecrm/internal/server/sales"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const downloadValidity = 15 * time.Minute

// Result is a presigned download URL and how long it stays valid.
type Result struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

type Service struct {
	barrels *barrels.Service
	sales   *sales.Service
	config  *sc.Config
	log     logging.Logger
}

func NewService(barrelService *barrels.Service, saleService *sales.Service, config *sc.Config, log logging.Logger) *Service {
	return &Service{
		barrels: barrelService,
		sales:   saleService,
		config:  config,
		log:     log,
	}
}

func storageKey(kind string) string {
	d := time.Now()
	return fmt.Sprintf("exports/%d/%02d/%s-%v.csv", d.Year(), d.Month(), kind, uuid.New())
}

func (s *Service) s3Clients(ctx context.Context) (*s3.Client, *s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3.AccessKey,
			s.config.S3.SecretKey,
			"",
		)))
	if err != nil {
		return nil, nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3.BaseEndpoint)
		}
	})

	return client, newS3PresignClient(client), nil
}

// upload stores the CSV under a fresh key and presigns a GET for it.
func (s *Service) upload(ctx context.Context, kind string, data []byte) (*Result, error) {
	client, presignClient, err := s.s3Clients(ctx)
	if err != nil {
		return nil, fmt.Errorf("error configuring object storage: %w", err)
	}

	bucket := s.config.S3.Bucket
	key := storageKey(kind)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(downloadValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning export url: %w", err)
	}

	s.log.Info(ctx, "export uploaded", "kind", kind, "key", key, "bytes", len(data))

	return &Result{URL: req.URL, ExpiresIn: int64(downloadValidity.Seconds())}, nil
}

// ExportBarrels writes every barrel to CSV and returns a download URL.
func (s *Service) ExportBarrels(ctx context.Context) (*Result, error) {
	all, err := s.barrels.All(ctx)
	if err != nil {
		return nil, err
	}
	return s.upload(ctx, "barrels", barrelsCSV(all))
}

// ExportSales writes every sale to CSV and returns a download URL.
func (s *Service) ExportSales(ctx context.Context) (*Result, error) {
	all, err := s.sales.All(ctx)
	if err != nil {
		return nil, err
	}
	return s.upload(ctx, "sales", salesCSV(all))
}

func barrelsCSV(all []models.Barrel) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"id", "barrel_number", "capacity", "current_volume", "filling_date", "emptying_date", "location", "notes"})
	for _, b := range all {
		_ = w.Write([]string{
			strconv.FormatInt(b.ID, 10),
			b.BarrelNumber,
			formatFloat(b.Capacity),
			formatFloat(b.CurrentVolume),
			formatDate(b.FillingDate),
			formatDate(b.EmptyingDate),
			b.Location,
			b.Notes,
		})
	}
	w.Flush()
	return buf.Bytes()
}

func salesCSV(all []models.Sale) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"id", "customer_name", "product", "quantity", "price", "discount", "tax", "total", "status", "payment_method", "order_date"})
	for _, s := range all {
		_ = w.Write([]string{
			s.ID,
			s.CustomerName,
			s.Product,
			formatFloat(s.Quantity),
			formatFloat(s.Price),
			formatFloat(s.Discount),
			formatFloat(s.Tax),
			formatFloat(s.Total),
			s.Status,
			s.PaymentMethod,
			s.OrderDate.Format(time.RFC3339),
		})
	}
	w.Flush()
	return buf.Bytes()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
