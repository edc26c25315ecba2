package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ordatech/procost/internal/storage"
	"github.com/urfave/cli/v2"
)

func archiveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "from-archive",
			Usage: "Download seed CSV files from the document archive bucket first",
		},
		&cli.StringFlag{
			Name:    "archive-endpoint",
			EnvVars: []string{"ARCHIVE_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "archive-access-key",
			EnvVars: []string{"ARCHIVE_ACCESS_KEY"},
		},
		&cli.StringFlag{
			Name:    "archive-secret-key",
			EnvVars: []string{"ARCHIVE_SECRET_KEY"},
		},
		&cli.StringFlag{
			Name:    "archive-bucket",
			EnvVars: []string{"ARCHIVE_BUCKET"},
		},
		&cli.StringFlag{
			Name:    "archive-region",
			EnvVars: []string{"ARCHIVE_REGION"},
		},
		&cli.BoolFlag{
			Name:    "archive-use-ssl",
			Value:   true,
			EnvVars: []string{"ARCHIVE_USE_SSL"},
		},
		&cli.StringFlag{
			Name:    "archive-prefix",
			Usage:   "Object key prefix holding the seed CSV files",
			Value:   "seeds",
			EnvVars: []string{"ARCHIVE_SEED_PREFIX"},
		},
		&cli.StringFlag{
			Name:    "archive-download-dir",
			Usage:   "Local directory for downloaded seed files",
			Value:   "./data/tmp/archive",
			EnvVars: []string{"ARCHIVE_DOWNLOAD_DIR"},
		},
	}
}

type archiveDownloader struct {
	client  storage.ObjectStorage
	destDir string
}

func newArchiveDownloader(c *cli.Context) (*archiveDownloader, error) {
	cfg := storage.ArchiveConfig{
		Endpoint:  c.String("archive-endpoint"),
		AccessKey: c.String("archive-access-key"),
		SecretKey: c.String("archive-secret-key"),
		Bucket:    c.String("archive-bucket"),
		Region:    c.String("archive-region"),
		UseSSL:    c.Bool("archive-use-ssl"),
	}

	client, err := storage.NewArchiveClient(cfg)
	if err != nil {
		return nil, err
	}

	destDir := c.String("archive-download-dir")
	if destDir == "" {
		destDir = "./data/tmp/archive"
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure download dir %s: %w", destDir, err)
	}

	return &archiveDownloader{
		client:  client,
		destDir: destDir,
	}, nil
}

// downloadSeeds pulls every CSV under the prefix into the local download dir
// and returns that directory.
func (d *archiveDownloader) downloadSeeds(ctx context.Context, prefix string) (string, error) {
	listPrefix := strings.TrimSpace(prefix)
	objects, err := d.client.ListObjects(ctx, listPrefix)
	if err != nil {
		return "", fmt.Errorf("failed to list archive objects for prefix %s: %w", listPrefix, err)
	}

	var keys []string
	for _, obj := range objects {
		if strings.HasSuffix(strings.ToLower(obj.Key), ".csv") {
			keys = append(keys, obj.Key)
		}
	}
	if len(keys) == 0 {
		return "", fmt.Errorf("no CSV files found for prefix %s", listPrefix)
	}
	sort.Strings(keys)

	for _, key := range keys {
		localPath := filepath.Join(d.destDir, filepath.Base(key))
		if err := d.client.DownloadObject(ctx, key, localPath); err != nil {
			return "", err
		}
	}

	return d.destDir, nil
}
