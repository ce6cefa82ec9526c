package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/bookmarks-export/internal/applebooks"
	"github.com/mrlokans/bookmarks-export/internal/entities"
	"github.com/mrlokans/bookmarks-export/internal/exporters"
	"github.com/mrlokans/bookmarks-export/internal/store"
)

// ErrNoAnnotations is returned by Run when nothing is left to export. No
// output file is written in that case.
var ErrNoAnnotations = errors.New("no matching annotations")

// ExportRequest describes one export run.
type ExportRequest struct {
	Stores    applebooks.StorePaths
	Filter    applebooks.FilterConfig
	Format    string
	OutputDir string
}

// ExportService wires the Apple Books pipeline to the exporters.
type ExportService struct {
	opener  store.Opener
	locator StoreLocator
}

func NewExportService(opener store.Opener, locator StoreLocator) *ExportService {
	return &ExportService{opener: opener, locator: locator}
}

// Collect locates the stores, reads every annotation and applies the filter.
// Books left without annotations are dropped.
func (s *ExportService) Collect(ctx context.Context, stores applebooks.StorePaths, filter applebooks.FilterConfig) ([]entities.Book, ExportResult, error) {
	var result ExportResult

	paths, err := s.locator.Find(stores)
	if err != nil {
		return nil, result, err
	}
	result.Stores = paths

	rows, err := applebooks.QueryRawAnnotations(ctx, s.opener, paths)
	if err != nil {
		return nil, result, err
	}

	books := applebooks.GroupByBook(rows)
	result.BooksFound = len(books)
	for _, book := range books {
		result.AnnotationsFound += len(book.Annotations)
	}

	filtered := applebooks.FilterBooks(books, filter)
	result.BooksExported = len(filtered)
	for _, book := range filtered {
		result.AnnotationsExported += len(book.Annotations)
	}

	return filtered, result, nil
}

// Run performs a full export. The format is validated before any store is
// touched.
func (s *ExportService) Run(ctx context.Context, req ExportRequest) (ExportResult, error) {
	exporter, err := exporters.ForFormat(req.Format)
	if err != nil {
		return ExportResult{}, err
	}
	return s.RunWith(ctx, req, exporter)
}

// RunWith is Run with an explicit exporter.
func (s *ExportService) RunWith(ctx context.Context, req ExportRequest, exporter BookExporter) (ExportResult, error) {
	books, result, err := s.Collect(ctx, req.Stores, req.Filter)
	if err != nil {
		return result, err
	}

	if len(books) == 0 {
		return result, ErrNoAnnotations
	}

	files, err := exporter.Export(books, req.OutputDir)
	if err != nil {
		return result, fmt.Errorf("failed to export: %w", err)
	}
	result.Files = files

	return result, nil
}
