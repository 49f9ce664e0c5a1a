package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ledgerbook/internal/dto"
	"ledgerbook/internal/extract"
	"ledgerbook/internal/mapping"
	"ledgerbook/internal/models"
	"ledgerbook/internal/normalize"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCurrency = "USD"

// ExtractionError reports a file whose tables could not be recovered
// automatically. It carries the extraction result so the API can hand the
// raw material back to the user for manual mapping.
type ExtractionError struct {
	Result extract.Result
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("table extraction failed: %s", e.Result.Reason)
}

// PostImportHook runs after a batch commits. Hook failures are logged and
// never propagated; the import itself already succeeded.
type PostImportHook struct {
	Name string
	Run  func(ctx context.Context, importID uuid.UUID) error
}

type ImportService struct {
	imports      ImportStore
	transactions TransactionStore
	hooks        []PostImportHook
	previewRows  int
	logger       *zap.Logger
}

func NewImportService(
	imports ImportStore,
	transactions TransactionStore,
	previewRows int,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		imports:      imports,
		transactions: transactions,
		previewRows:  previewRows,
		logger:       logger,
	}
}

// AddHook registers a post-commit step, e.g. rule categorization or
// merchant canonicalization.
func (s *ImportService) AddHook(hook PostImportHook) {
	s.hooks = append(s.hooks, hook)
}

// Preview parses headers plus the first rows of a CSV without touching the
// database. First step of the column-mapping wizard.
func (s *ImportService) Preview(filename string, content []byte) (*dto.CSVPreviewResponse, error) {
	preview, err := extract.PreviewCSV(content, s.previewRows)
	if err != nil {
		return nil, err
	}
	return &dto.CSVPreviewResponse{
		Filename:           filename,
		Headers:            preview.Headers,
		Rows:               preview.Rows,
		TotalRowsPreviewed: preview.TotalRowsPreviewed,
		TotalRows:          preview.TotalRows,
	}, nil
}

// ImportPreset ingests a CSV through a source-type preset (generic, chase,
// bofa, amex). Unknown source types map through the generic preset; the
// caller's label is kept on the batch as given.
func (s *ImportService) ImportPreset(ctx context.Context, filename string, content []byte, sourceType string) (*dto.ImportResponse, error) {
	fileHash := normalize.FileHash(content)
	if resp, err := s.existingImport(ctx, fileHash); resp != nil || err != nil {
		return resp, err
	}

	headers, rows, err := extract.DecodeCSV(content)
	if err != nil {
		return nil, err
	}

	m, err := mapping.ResolvePreset(sourceType, headers)
	if err != nil {
		return nil, err
	}

	batch := newBatch(filename, fileHash, sourceType, nil)
	return s.runImport(ctx, batch, rows, m)
}

// ImportWithMapping ingests a CSV using an explicit user-supplied column
// mapping. The mapping is stored on the batch for audit.
func (s *ImportService) ImportWithMapping(ctx context.Context, filename string, content []byte, m mapping.ColumnMapping) (*dto.ImportResponse, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	fileHash := normalize.FileHash(content)
	if resp, err := s.existingImport(ctx, fileHash); resp != nil || err != nil {
		return resp, err
	}

	headers, rows, err := extract.DecodeCSV(content)
	if err != nil {
		return nil, err
	}
	if err := m.CheckHeaders(headers); err != nil {
		return nil, err
	}

	batch := newBatch(filename, fileHash, models.SourceCustom, &m)
	return s.runImport(ctx, batch, rows, m)
}

// ImportDocument extracts tables from a PDF (or line-oriented text file)
// and ingests the rows with an explicit mapping against the extracted
// headers.
func (s *ImportService) ImportDocument(ctx context.Context, filename string, content []byte, m mapping.ColumnMapping) (*dto.ImportResponse, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var extraction extract.Result
	if strings.HasSuffix(strings.ToLower(filename), ".txt") {
		extraction = extract.ExtractTxt(content)
	} else {
		extraction = extract.ExtractPDF(content)
	}
	if extraction.Status != extract.StatusPreview {
		return nil, &ExtractionError{Result: extraction}
	}

	fileHash := normalize.FileHash(content)
	if resp, err := s.existingImport(ctx, fileHash); resp != nil || err != nil {
		return resp, err
	}

	if err := m.CheckHeaders(extraction.Headers); err != nil {
		return nil, err
	}

	batch := newBatch(filename, fileHash, models.SourcePDF, &m)
	return s.runImport(ctx, batch, extraction.Rows, m)
}

// paypalSkipTypes lists transaction types that move money between PayPal
// and a bank account rather than paying anyone. Hand-curated and likely
// incomplete; the trailing "withdrawal" substring check catches variants.
var paypalSkipTypes = map[string]bool{
	"general withdrawal - bank account": true,
	"withdrawal to bank account":        true,
	"transfer to bank account":          true,
	"transfer from paypal to bank":      true,
	"general credit card withdrawal":    true,
}

// ImportPayPal ingests a PayPal activity export. The column layout is
// fixed, so no mapping is accepted: only completed debit rows that are not
// bank withdrawals survive the filters.
func (s *ImportService) ImportPayPal(ctx context.Context, filename string, content []byte) (*dto.ImportResponse, error) {
	fileHash := normalize.FileHash(content)
	if resp, err := s.existingImport(ctx, fileHash); resp != nil || err != nil {
		return resp, err
	}

	_, rows, err := extract.DecodeCSV(content)
	if err != nil {
		return nil, err
	}

	batch := newBatch(filename, fileHash, models.SourcePayPal, nil)
	now := time.Now()

	var pending []*models.Transaction
	var stats rowStats
	batchSeen := make(map[string]bool)

	for _, row := range rows {
		status := strings.TrimSpace(row["Status"])
		balanceImpact := strings.TrimSpace(row["Balance Impact"])
		txType := strings.ToLower(strings.TrimSpace(row["Type"]))

		if status != "Completed" || balanceImpact != "Debit" {
			stats.skippedFiltered++
			continue
		}
		if paypalSkipTypes[txType] || strings.Contains(txType, "withdrawal") {
			stats.skippedFiltered++
			continue
		}

		rawDate := strings.TrimSpace(row["Date"])
		name := strings.TrimSpace(row["Name"])
		subject := strings.TrimSpace(row["Subject"])
		netStr := strings.TrimSpace(row["Net"])
		currency := strings.TrimSpace(row["Currency"])
		if currency == "" {
			currency = defaultCurrency
		}

		if rawDate == "" || netStr == "" {
			stats.skippedParse++
			continue
		}

		var rawDesc string
		switch {
		case subject != "" && !strings.EqualFold(subject, name):
			if name != "" {
				rawDesc = name + " - " + subject
			} else {
				rawDesc = subject
			}
		case name != "":
			rawDesc = name
		case txType != "":
			rawDesc = txType
		default:
			rawDesc = "PayPal Payment"
		}

		amount, err := normalize.ParseAmount(netStr)
		if err != nil {
			stats.skippedParse++
			continue
		}
		postedDate := normalize.ParseDate(rawDate)

		var merchant *string
		if name != "" {
			merchant = &name
		}

		tx, ok, err := s.buildTransaction(ctx, batch.ID, postedDate, rawDesc, amount, currency, merchant, batchSeen, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			stats.skippedDuplicate++
			continue
		}
		pending = append(pending, tx)
		stats.inserted++
	}

	return s.commitImport(ctx, batch, pending, stats)
}

// List returns all batches, newest first, with their row counts.
func (s *ImportService) List(ctx context.Context) ([]*dto.ImportBatchResponse, error) {
	batches, err := s.imports.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ImportBatchResponse, len(batches))
	for i, batch := range batches {
		count, err := s.imports.CountTransactions(ctx, batch.ID)
		if err != nil {
			return nil, err
		}
		responses[i] = &dto.ImportBatchResponse{
			ID:               batch.ID.String(),
			Filename:         batch.Filename,
			FileHash:         batch.FileHash,
			SourceType:       batch.SourceType,
			ColumnMapping:    batch.ColumnMapping,
			AccountLabel:     batch.AccountLabel,
			AccountType:      batch.AccountType,
			Notes:            batch.Notes,
			TransactionCount: count,
			CreatedAt:        batch.CreatedAt.Format(time.RFC3339),
		}
	}
	return responses, nil
}

// UpdateAccountMeta patches a batch's account label, type, and notes.
func (s *ImportService) UpdateAccountMeta(ctx context.Context, id uuid.UUID, req dto.PatchImportRequest) error {
	batch, err := s.imports.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if batch == nil {
		return ErrNotFound
	}
	if req.AccountLabel == nil && req.AccountType == nil && req.Notes == nil {
		return nil
	}
	return s.imports.UpdateAccountMeta(ctx, id, req.AccountLabel, req.AccountType, req.Notes)
}

// ListTransactions returns the rows of one batch.
func (s *ImportService) ListTransactions(ctx context.Context, importID uuid.UUID) ([]*dto.TransactionResponse, error) {
	batch, err := s.imports.GetByID(ctx, importID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, ErrNotFound
	}

	transactions, err := s.transactions.ListByImport(ctx, importID)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.TransactionResponse, len(transactions))
	for i, tx := range transactions {
		responses[i] = toTransactionResponse(tx)
	}
	return responses, nil
}

// rowStats tracks skip causes separately even though the public counter
// reports a single skipped total.
type rowStats struct {
	inserted         int
	skippedParse     int
	skippedFiltered  int
	skippedDuplicate int
}

func (st rowStats) skipped() int {
	return st.skippedParse + st.skippedFiltered + st.skippedDuplicate
}

func newBatch(filename, fileHash, sourceType string, m *mapping.ColumnMapping) *models.ImportBatch {
	return &models.ImportBatch{
		ID:            uuid.New(),
		Filename:      filename,
		FileHash:      fileHash,
		SourceType:    sourceType,
		ColumnMapping: m,
		CreatedAt:     time.Now(),
	}
}

// existingImport resolves a byte-identical re-upload to the already stored
// batch: inserted=0, skipped=row count. Returns (nil, nil) for new files.
func (s *ImportService) existingImport(ctx context.Context, fileHash string) (*dto.ImportResponse, error) {
	existing, err := s.imports.GetByFileHash(ctx, fileHash)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	count, err := s.imports.CountTransactions(ctx, existing.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("duplicate file upload resolved to existing import",
		zap.String("import_id", existing.ID.String()),
		zap.String("file_hash", fileHash),
	)
	return &dto.ImportResponse{
		ID:            existing.ID.String(),
		Filename:      existing.Filename,
		FileHash:      existing.FileHash,
		SourceType:    existing.SourceType,
		ColumnMapping: existing.ColumnMapping,
		AccountLabel:  existing.AccountLabel,
		AccountType:   existing.AccountType,
		CreatedAt:     existing.CreatedAt.Format(time.RFC3339),
		Inserted:      0,
		Skipped:       count,
	}, nil
}

// runImport processes mapped rows and commits the batch atomically.
func (s *ImportService) runImport(ctx context.Context, batch *models.ImportBatch, rows []extract.RawRow, m mapping.ColumnMapping) (*dto.ImportResponse, error) {
	now := time.Now()
	batchSeen := make(map[string]bool)

	var pending []*models.Transaction
	var stats rowStats

	for _, row := range rows {
		rawDate := strings.TrimSpace(row[m.PostedDate])
		rawDesc := strings.TrimSpace(row[m.DescriptionRaw])
		if rawDate == "" || rawDesc == "" {
			stats.skippedParse++
			continue
		}

		var amount float64
		var err error
		if m.AmountType == mapping.AmountSplit {
			var debitVal, creditVal string
			if m.Debit != "" {
				debitVal = row[m.Debit]
			}
			if m.Credit != "" {
				creditVal = row[m.Credit]
			}
			amount, err = normalize.ParseSplitAmount(debitVal, creditVal)
		} else {
			rawAmount := strings.TrimSpace(row[m.Amount])
			if rawAmount == "" {
				stats.skippedParse++
				continue
			}
			amount, err = normalize.ParseAmount(rawAmount)
		}
		if err != nil {
			stats.skippedParse++
			continue
		}

		postedDate := normalize.ParseDate(rawDate)

		currency := defaultCurrency
		if m.Currency != "" {
			if cv := strings.TrimSpace(row[m.Currency]); cv != "" {
				currency = cv
			}
		}

		merchant := resolveMerchant(row, m, rawDesc)

		tx, ok, err := s.buildTransaction(ctx, batch.ID, postedDate, rawDesc, amount, currency, merchant, batchSeen, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			stats.skippedDuplicate++
			continue
		}
		pending = append(pending, tx)
		stats.inserted++
	}

	return s.commitImport(ctx, batch, pending, stats)
}

// resolveMerchant prefers an explicit merchant column when it is distinct
// from the description column; otherwise the merchant is extracted from the
// description text.
func resolveMerchant(row extract.RawRow, m mapping.ColumnMapping, rawDesc string) *string {
	if m.Merchant != "" && m.Merchant != m.DescriptionRaw {
		if explicit := strings.TrimSpace(row[m.Merchant]); explicit != "" {
			return &explicit
		}
	}
	if candidate := normalize.ExtractMerchantCandidate(rawDesc); candidate != "" {
		return &candidate
	}
	return nil
}

// buildTransaction constructs one pending row, returning ok=false when the
// fingerprint is already present in this batch or a previous import.
func (s *ImportService) buildTransaction(
	ctx context.Context,
	importID uuid.UUID,
	postedDate, rawDesc string,
	amount float64,
	currency string,
	merchant *string,
	batchSeen map[string]bool,
	now time.Time,
) (*models.Transaction, bool, error) {
	fingerprint := normalize.Fingerprint(postedDate, rawDesc, amount)

	if batchSeen[fingerprint] {
		return nil, false, nil
	}
	exists, err := s.transactions.ExistsByFingerprint(ctx, fingerprint)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, false, nil
	}
	batchSeen[fingerprint] = true

	return &models.Transaction{
		ID:              uuid.New(),
		ImportID:        importID,
		PostedDate:      postedDate,
		DescriptionRaw:  normalize.SanitizeUTF8(rawDesc),
		DescriptionNorm: normalize.NormalizeDescription(rawDesc),
		AmountCents:     normalize.ToCents(amount),
		Currency:        currency,
		Merchant:        merchant,
		FingerprintHash: fingerprint,
		TransactionType: models.TypeNormal,
		CreatedAt:       now,
	}, true, nil
}

// commitImport persists the batch and its rows in one transaction, then
// runs post-import hooks best-effort.
func (s *ImportService) commitImport(ctx context.Context, batch *models.ImportBatch, pending []*models.Transaction, stats rowStats) (*dto.ImportResponse, error) {
	if err := s.imports.CreateWithTransactions(ctx, batch, pending); err != nil {
		return nil, err
	}

	s.logger.Info("import committed",
		zap.String("import_id", batch.ID.String()),
		zap.String("filename", batch.Filename),
		zap.String("source_type", batch.SourceType),
		zap.Int("inserted", stats.inserted),
		zap.Int("skipped_parse", stats.skippedParse),
		zap.Int("skipped_filtered", stats.skippedFiltered),
		zap.Int("skipped_duplicate", stats.skippedDuplicate),
	)

	for _, hook := range s.hooks {
		if err := hook.Run(ctx, batch.ID); err != nil {
			s.logger.Warn("post-import hook failed",
				zap.String("hook", hook.Name),
				zap.String("import_id", batch.ID.String()),
				zap.Error(err),
			)
		}
	}

	return &dto.ImportResponse{
		ID:            batch.ID.String(),
		Filename:      batch.Filename,
		FileHash:      batch.FileHash,
		SourceType:    batch.SourceType,
		ColumnMapping: batch.ColumnMapping,
		AccountLabel:  batch.AccountLabel,
		AccountType:   batch.AccountType,
		CreatedAt:     batch.CreatedAt.Format(time.RFC3339),
		Inserted:      stats.inserted,
		Skipped:       stats.skipped(),
	}, nil
}
