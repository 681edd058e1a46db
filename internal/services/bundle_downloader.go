package services

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codyseavey/lookout/internal/models"
)

// BundleDownloader mirrors Data Dragon bundles into a local directory so a
// BundleDocumentSource can serve catalogs without network access.
type BundleDownloader struct {
	baseURL string
	dir     string
	client  *http.Client
}

func NewBundleDownloader(baseURL, dir string) *BundleDownloader {
	return &BundleDownloader{
		baseURL: strings.TrimRight(baseURL, "/"),
		dir:     dir,
		// Set bundles carry card art and run to hundreds of megabytes.
		client: &http.Client{Timeout: 10 * time.Minute},
	}
}

// Download fetches the core bundle and every set bundle for one locale and
// version. Bundles already on disk are not downloaded again.
func (d *BundleDownloader) Download(ctx context.Context, locale models.Locale, version models.Version) error {
	verDir := filepath.Join(d.dir, version.Path())

	coreDir := filepath.Join(verDir, "core")
	if err := d.fetchBundle(ctx, version, fmt.Sprintf("core-%s.zip", locale), coreDir, globalsPath(locale, version)); err != nil {
		return fmt.Errorf("failed to download core bundle: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(d.dir, filepath.FromSlash(globalsPath(locale, version))))
	if err != nil {
		return fmt.Errorf("failed to read globals file: %w", err)
	}
	var globals ddGlobals
	if err := json.Unmarshal(data, &globals); err != nil {
		return fmt.Errorf("failed to parse globals: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(2)
	for _, s := range globals.Sets {
		key := setKey(s.NameRef)
		g.Go(func() error {
			name := fmt.Sprintf("%s-lite-%s.zip", key, locale)
			err := d.fetchBundle(gctx, version, name, filepath.Join(verDir, key), setPath(key, locale, version))
			if errors.Is(err, ErrDocumentNotFound) {
				log.Printf("Warning: no bundle published for %s, skipping", s.NameRef)
				return nil
			}
			return err
		})
	}
	return g.Wait()
}

// fetchBundle downloads one zip into destDir unless marker already exists.
func (d *BundleDownloader) fetchBundle(ctx context.Context, version models.Version, name, destDir, marker string) error {
	if _, err := os.Stat(filepath.Join(d.dir, filepath.FromSlash(marker))); err == nil {
		return nil
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create bundle directory: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", d.baseURL, version.Path(), name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download of %s failed with status: %d", name, resp.StatusCode)
	}

	zipFile, err := os.CreateTemp(destDir, "bundle-*.zip")
	if err != nil {
		return fmt.Errorf("failed to create zip file: %w", err)
	}
	zipPath := zipFile.Name()
	defer os.Remove(zipPath)

	if _, err := io.Copy(zipFile, resp.Body); err != nil {
		zipFile.Close()
		return fmt.Errorf("failed to write zip file: %w", err)
	}
	if err := zipFile.Close(); err != nil {
		return fmt.Errorf("failed to write zip file: %w", err)
	}

	if err := extractZip(zipPath, destDir); err != nil {
		return fmt.Errorf("failed to extract %s: %w", name, err)
	}
	log.Printf("Extracted %s into %s", name, destDir)
	return nil
}

func extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		fpath := filepath.Join(destDir, f.Name)

		// Check for ZipSlip vulnerability
		if !strings.HasPrefix(fpath, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("invalid file path: %s", fpath)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fpath), 0755); err != nil {
			return err
		}
		if err := writeZipEntry(f, fpath); err != nil {
			return err
		}
	}
	return nil
}

func writeZipEntry(f *zip.File, fpath string) error {
	outFile, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer outFile.Close()

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(outFile, rc)
	return err
}
