package scrape

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"judgments/internal"
	"judgments/internal/config"
	"judgments/internal/logger"
	"judgments/internal/pipeline"
	"judgments/internal/portal"
	"judgments/internal/storage"
)

const lastRunKey = "scrape.last_run"

// Portal is the part of portal.Client the service drives.
type Portal interface {
	FetchGroup(ctx context.Context, group string, fn func(portal.Page) error) error
	Download(ctx context.Context, rawURL string) ([]byte, error)
}

type Service struct {
	db        *storage.DB
	portal    Portal
	cfg       config.Config
	log       *logger.Logger
	assembler *pipeline.Assembler
	now       func() time.Time
}

func NewService(db *storage.DB, cfg config.Config, log *logger.Logger) *Service {
	return NewServiceWithPortal(db, cfg, log, portal.NewClient(cfg, log))
}

func NewServiceWithPortal(db *storage.DB, cfg config.Config, log *logger.Logger, p Portal) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		db:        db,
		portal:    p,
		cfg:       cfg,
		log:       log,
		assembler: pipeline.NewAssembler(log),
		now:       time.Now,
	}
}

type Options struct {
	Groups     []string
	OutputPath string
}

type Result struct {
	RunID      int
	Status     string
	Pages      int
	Records    int
	Failed     int
	OutputPath string
	ExportErr  error
}

// Run scrapes every group, persists each page as it arrives and exports the
// collected records once at the end. A group that fails is logged and the
// next one is tried; cancellation stops fetching but still exports what was
// collected.
func (s *Service) Run(ctx context.Context, opts Options) (Result, error) {
	groups := opts.Groups
	if len(groups) == 0 {
		groups = s.cfg.JudiciaryGroups
	}
	if len(groups) == 0 {
		groups = portal.DefaultGroups()
	}

	runID, err := s.db.CreateRun(traceID())
	if err != nil {
		return Result{}, fmt.Errorf("create run: %w", err)
	}
	log := s.log.With("run", runID)
	res := Result{RunID: runID, Status: "completed"}

	coll := &internal.Collection{}
	for _, group := range groups {
		err := s.portal.FetchGroup(ctx, group, func(page portal.Page) error {
			before := coll.Len()
			batch := s.assembler.AssembleBatch(coll, page.Records)
			res.Pages++
			res.Failed += len(batch.Failures)
			log.Info("page assembled", "group", group, "page", page.Number, "records", batch.Appended, "failed", len(batch.Failures))
			return s.db.InsertCases(runID, group, coll.Since(before))
		})
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Warn("scrape interrupted", "group", group, "err", err)
			res.Status = "cancelled"
			break
		}
		log.Error("group failed", "group", group, "err", err)
		res.Status = "partial"
	}
	res.Records = coll.Len()

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = pipeline.ExportFileName(s.cfg.OutputDir, s.now())
	}
	var stored *string
	if err := pipeline.ExportCollectionToXLSX(coll, outputPath); err != nil {
		log.Error("export failed", "path", outputPath, "err", err)
		res.ExportErr = err
	} else {
		res.OutputPath = outputPath
		stored = &outputPath
		log.Info("exported", "path", outputPath, "records", coll.Len())
	}

	if err := s.db.FinishRun(runID, res.Status, res.Records, res.Failed, stored); err != nil {
		return res, fmt.Errorf("finish run: %w", err)
	}
	_ = s.db.SetMetadata(lastRunKey, s.now().UTC().Format(time.RFC3339))
	return res, nil
}

type AttachmentResult struct {
	Downloaded int
	Extracted  int
	Failed     int
}

// ExtractAttachments downloads the judgment files of a run and stores their
// text. Attachments that already have text are skipped.
func (s *Service) ExtractAttachments(ctx context.Context, runID, limit int) (AttachmentResult, error) {
	if limit <= 0 {
		limit = 100
	}
	refs, err := s.db.ListAttachmentURLs(runID, pipeline.AttachmentOrigin, limit)
	if err != nil {
		return AttachmentResult{}, err
	}

	res := AttachmentResult{}
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		blob, err := s.portal.Download(ctx, ref.URL)
		if err != nil {
			s.log.Warn("download failed", "url", ref.URL, "err", err)
			res.Failed++
			continue
		}
		res.Downloaded++

		text, err := pipeline.ExtractPDFText(blob)
		if err != nil {
			s.log.Warn("pdf text failed", "url", ref.URL, "err", err)
			res.Failed++
			continue
		}
		if err := s.db.UpsertDocument(ref.URL, ref.CaseNumber, text, len(blob)); err != nil {
			return res, err
		}
		res.Extracted++
	}
	return res, nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
