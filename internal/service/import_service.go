package service

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"fleet-admin/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ImportService runs the organ update pipeline: header mapping, per-row
// parse and validation, reference resolution, reconciliation against
// the entity store, bounded-concurrency apply, then summary and audit.
// One run lives entirely inside one request; only the audit record
// survives it.
type ImportService struct {
	organs       OrganStore
	refs         ReferenceStore
	runs         ImportRunStore
	logger       *logrus.Logger
	applyWorkers int
}

func NewImportService(organs OrganStore, refs ReferenceStore, runs ImportRunStore, logger *logrus.Logger, applyWorkers int) *ImportService {
	if applyWorkers < 1 {
		applyWorkers = 1
	}
	return &ImportService{
		organs:       organs,
		refs:         refs,
		runs:         runs,
		logger:       logger,
		applyWorkers: applyWorkers,
	}
}

// rowOutcome carries one body row through the pipeline. Each outcome
// is owned by a single goroutine per stage, so no locking is needed.
type rowOutcome struct {
	rec      models.CandidateRecord
	findings []models.ImportError
	blocked  bool
	entityID int64
	applied  bool
}

// Run executes one import against the given raw sheet rows (header row
// first). Row-scoped failures are accumulated, never thrown; only
// format-level problems return an error and abort before any row is
// processed.
func (s *ImportService) Run(ctx context.Context, tenantID, userID int64, fileName string, rows [][]string) (*models.ImportResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet has no header row")
	}

	headerMap := BuildHeaderMap(rows[0], OrganHeaderRules())
	if _, ok := headerMap[FieldNom]; !ok {
		return nil, fmt.Errorf("required column Nom not found in header row")
	}
	if _, ok := headerMap[FieldTypeOrgane]; !ok {
		return nil, fmt.Errorf("required column Type organe not found in header row")
	}

	resolver, err := PreloadReferences(ctx, s.refs, tenantID, models.RefOrganTypes, models.RefSites)
	if err != nil {
		return nil, fmt.Errorf("failed to preload reference tables: %w", err)
	}

	body := rows[1:]
	outcomes := s.parseAndValidate(body, headerMap, resolver)
	s.reconcileAndApply(ctx, outcomes, resolver, tenantID)

	result := s.summarize(outcomes)
	s.recordRun(tenantID, userID, fileName, result)

	return result, nil
}

// parseAndValidate fans the body rows out over a bounded pool. Rows
// share no mutable state, so each goroutine writes only its own slot.
func (s *ImportService) parseAndValidate(body [][]string, headerMap HeaderMap, resolver *ReferenceResolver) []*rowOutcome {
	validator := NewValidator(OrganFieldSpecs(), resolver)
	outcomes := make([]*rowOutcome, len(body))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range body {
		i := i
		g.Go(func() error {
			rec := ParseRow(body[i], headerMap, i)
			findings := validator.Validate(rec)
			outcomes[i] = &rowOutcome{
				rec:      rec,
				findings: findings,
				blocked:  HasBlocking(findings),
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// reconcileAndApply resolves each valid row against the store and
// executes the update. Applies are serialized per entity id; distinct
// entities run concurrently up to the worker bound. A context expiry
// stops further dispatch but rows already dispatched drain normally.
func (s *ImportService) reconcileAndApply(ctx context.Context, outcomes []*rowOutcome, resolver *ReferenceResolver, tenantID int64) {
	reconciler := NewReconciler(s.organs, resolver, tenantID)
	applier := NewApplier(s.organs, tenantID)
	locks := newKeyedLocks()

	var g errgroup.Group
	g.SetLimit(s.applyWorkers)
	for _, out := range outcomes {
		if out.blocked {
			continue
		}
		if ctx.Err() != nil {
			out.findings = append(out.findings, models.ImportError{
				Row:      out.rec.SheetRow(),
				Field:    "Nom",
				Value:    out.rec.Fields[FieldNom],
				Message:  "import timed out before this row was processed",
				Severity: models.SeverityError,
			})
			out.blocked = true
			continue
		}

		out := out
		g.Go(func() error {
			match, diff, errs := reconciler.Reconcile(ctx, out.rec)
			if len(errs) > 0 {
				out.findings = append(out.findings, errs...)
				out.blocked = true
				return nil
			}

			out.entityID = match.EntityID
			locks.Lock(match.EntityID)
			err := applier.Apply(ctx, match.EntityID, diff)
			locks.Unlock(match.EntityID)
			if err != nil {
				out.findings = append(out.findings, models.ImportError{
					Row:      out.rec.SheetRow(),
					Field:    "Nom",
					Value:    out.rec.Fields[FieldNom],
					Message:  fmt.Sprintf("failed to update organ: %v", err),
					Severity: models.SeverityError,
				})
				out.blocked = true
				return nil
			}

			out.applied = true
			return nil
		})
	}
	_ = g.Wait()
}

// summarize folds the drained outcome stream in one pass. Every row
// lands in exactly one of updated or errors; warnings never change
// that identity.
func (s *ImportService) summarize(outcomes []*rowOutcome) *models.ImportResult {
	summary := models.ImportSummary{Total: len(outcomes)}
	var allFindings []models.ImportError
	var updatedIDs []int64

	for _, out := range outcomes {
		allFindings = append(allFindings, out.findings...)
		if hasWarning(out.findings) {
			summary.Warnings++
		}
		if out.blocked {
			summary.Errors++
			continue
		}
		summary.Updated++
		updatedIDs = append(updatedIDs, out.entityID)
	}

	message := fmt.Sprintf("Import completed: %d updated, %d errors", summary.Updated, summary.Errors)
	if summary.Total == 0 {
		message = "Import completed: spreadsheet contained no data rows"
	}

	return &models.ImportResult{
		Success: summary.Errors == 0,
		Message: message,
		Data:    updatedIDs,
		Errors:  allFindings,
		Summary: summary,
	}
}

// recordRun persists the audit record. It runs on its own deadline so
// the trail is written even when the caller's context already expired.
func (s *ImportService) recordRun(tenantID, userID int64, fileName string, result *models.ImportResult) {
	run := &models.ImportRun{
		TenantID:    tenantID,
		UserID:      userID,
		RunCode:     fmt.Sprintf("IMP-%s", uuid.New().String()[:8]),
		FileName:    fileName,
		FileType:    strings.TrimPrefix(filepath.Ext(fileName), "."),
		TotalRows:   result.Summary.Total,
		CreatedRows: result.Summary.Created,
		UpdatedRows: result.Summary.Updated,
		ErrorRows:   result.Summary.Errors,
		WarningRows: result.Summary.Warnings,
		Status:      runStatus(result.Summary),
		Details: models.ImportRunDetails{
			UpdatedIDs: result.Data,
			Errors:     result.Errors,
		}.Encode(),
	}
	if run.Status == models.ImportStatusFailed {
		run.ErrorMessage = result.Message
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.runs.Create(ctx, run); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"run_code":  run.RunCode,
		}).Error("failed to record import run")
	}
}

func hasWarning(findings []models.ImportError) bool {
	for _, f := range findings {
		if f.Severity == models.SeverityWarning {
			return true
		}
	}
	return false
}

func runStatus(summary models.ImportSummary) string {
	switch {
	case summary.Errors == 0:
		return models.ImportStatusSuccess
	case summary.Updated == 0:
		return models.ImportStatusFailed
	default:
		return models.ImportStatusPartial
	}
}
