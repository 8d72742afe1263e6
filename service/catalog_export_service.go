package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"stride-store/models"
	"stride-store/repository"
	"stride-store/utils"
)

// CatalogExportService renders the published products into a printable PDF
// catalog using a headless browser.
type CatalogExportService struct {
	products repository.ProductRepositoryInterface
	drive    DriveServiceInterface
	log      logrus.FieldLogger
}

// NewCatalogExportService creates a new CatalogExportService
func NewCatalogExportService(products repository.ProductRepositoryInterface, drive DriveServiceInterface, log logrus.FieldLogger) *CatalogExportService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CatalogExportService{
		products: products,
		drive:    drive,
		log:      log,
	}
}

// detectChromePath detects the path to a Chrome/Chromium executable.
// Checks CHROME_PATH env var first, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

type catalogEntry struct {
	Name        string
	Brand       string
	Price       string
	ImageBase64 string
}

type catalogData struct {
	GeneratedAt string
	Entries     []catalogEntry
}

var catalogTemplate = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 24px; }
  h1 { font-size: 22px; }
  .meta { color: #666; font-size: 11px; margin-bottom: 16px; }
  .grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px; }
  .card { border: 1px solid #ddd; border-radius: 6px; padding: 10px; page-break-inside: avoid; }
  .card img { width: 100%; height: 180px; object-fit: cover; border-radius: 4px; }
  .brand { color: #888; font-size: 11px; }
  .name { font-weight: bold; font-size: 13px; margin: 4px 0; }
  .price { font-size: 14px; }
</style>
</head>
<body>
<h1>Catálogo de Produtos</h1>
<div class="meta">Gerado em {{.GeneratedAt}}</div>
<div class="grid">
{{range .Entries}}
  <div class="card">
    {{if .ImageBase64}}<img src="data:image/jpeg;base64,{{.ImageBase64}}">{{end}}
    <div class="brand">{{.Brand}}</div>
    <div class="name">{{.Name}}</div>
    <div class="price">{{.Price}}</div>
  </div>
{{end}}
</div>
</body>
</html>`))

// ExportPDF renders all published products into a PDF catalog.
func (s *CatalogExportService) ExportPDF(ctx context.Context) ([]byte, error) {
	products, err := s.products.Filter(ctx, repository.ProductFilterParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no published products to export")
	}

	data := catalogData{
		GeneratedAt: time.Now().Format("02/01/2006 15:04"),
		Entries:     make([]catalogEntry, 0, len(products)),
	}
	for _, p := range products {
		entry := catalogEntry{
			Name:  p.Name,
			Brand: p.Brand,
			Price: utils.FormatBRL(p.PriceCents),
		}
		img, err := s.fetchThumbnail(p)
		if err != nil {
			// A missing image does not block the export.
			s.log.WithError(err).WithField("product", p.ID).Warn("catalog export: no image for product")
		} else {
			entry.ImageBase64 = base64.StdEncoding.EncodeToString(img)
		}
		data.Entries = append(data.Entries, entry)
	}

	htmlFile, err := s.writeCatalogHTML(data)
	if err != nil {
		return nil, err
	}
	defer os.Remove(htmlFile)

	return s.printToPDF(ctx, htmlFile)
}

// fetchThumbnail returns optimized JPEG bytes for the product image, from
// Drive when the product was imported, otherwise over plain HTTP.
func (s *CatalogExportService) fetchThumbnail(p models.Product) ([]byte, error) {
	var raw []byte
	var err error

	switch {
	case p.DriveFileID != "":
		raw, err = s.drive.DownloadImage(p.DriveFileID)
	case p.Image != "":
		raw, err = fetchImageURL(p.Image)
	default:
		return nil, fmt.Errorf("product has no image")
	}
	if err != nil {
		return nil, err
	}

	return OptimizeImage(raw, ImageSizeThumb)
}

func fetchImageURL(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s *CatalogExportService) writeCatalogHTML(data catalogData) (string, error) {
	f, err := os.CreateTemp("", "catalog-*.html")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()

	if err := catalogTemplate.Execute(f, data); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to render catalog template: %w", err)
	}
	return f.Name(), nil
}

func (s *CatalogExportService) printToPDF(ctx context.Context, htmlFile string) ([]byte, error) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	opts = append(opts, chromedp.NoSandbox)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, 60*time.Second)
	defer cancelTimeout()

	absPath, err := filepath.Abs(htmlFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+absPath),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // A4
				WithPaperHeight(11.69). // A4
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print catalog PDF: %w", err)
	}

	s.log.WithField("bytes", len(pdf)).Info("catalog PDF generated")
	return pdf, nil
}
