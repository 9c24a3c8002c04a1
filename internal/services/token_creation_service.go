package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"

	"launchpad-backend/internal/contracts"
	"launchpad-backend/internal/metrics"
	"launchpad-backend/internal/models"
	"launchpad-backend/internal/utils"
	"launchpad-backend/internal/wallet"
)

// ErrSubmissionInFlight is returned when an account already has a submission
// running. One submission per account at a time, no queueing.
var ErrSubmissionInFlight = errors.New("a submission is already in flight for this account")

// MaxNameLength bounds the token name
const MaxNameLength = 64

// MaxSymbolLength bounds the token symbol
const MaxSymbolLength = 16

// MaxDescriptionLength bounds the optional description
const MaxDescriptionLength = 256

// TokenDecimals is fixed by policy for every created token
const TokenDecimals = 18

// LogoURIScheme prefixes the content identifier to form the metadata URI
const LogoURIScheme = "ipfs"

// TokenCreationRequest is the user's intent to create a token
type TokenCreationRequest struct {
	Name           string
	Symbol         string
	Supply         string // human units, converted exactly to 18 decimals
	Description    string
	DisableMinting bool
	Logo           *LogoAsset
	LogoIssue      string // why the supplied logo failed validation, if it did
}

// SubmissionOutcome is the terminal result of one submission attempt
type SubmissionOutcome struct {
	SubmissionID   string                  `json:"submission_id"`
	Status         models.SubmissionStatus `json:"status"`
	Stage          models.SubmissionStage  `json:"stage"`
	WalletRequired bool                    `json:"wallet_required,omitempty"`
	TokenAddress   string                  `json:"token_address,omitempty"`
	TxHash         string                  `json:"tx_hash,omitempty"`
	LogoURI        string                  `json:"logo_uri,omitempty"`
	FeeWei         string                  `json:"fee_wei,omitempty"`
	ErrorMessage   string                  `json:"error,omitempty"`
	Violations     []string                `json:"violations,omitempty"`
}

// LogoPublisher pins validated logo bytes and returns a content identifier
type LogoPublisher interface {
	PinFile(ctx context.Context, data []byte, name string) (string, error)
}

// ChainBackend is the chain access the orchestrator needs beyond the
// read-only preflight view
type ChainBackend interface {
	ChainReader
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	WaitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	ChainID() *big.Int
}

// SubmissionRecorder persists stage transitions and terminal outcomes.
// Implementations must tolerate being called with a record they have not
// seen before (upsert semantics).
type SubmissionRecorder interface {
	RecordSubmission(record *models.SubmissionRecord)
}

// StageNotifier pushes live stage transitions to interested listeners
type StageNotifier interface {
	NotifyStage(submissionID string, stage models.SubmissionStage)
	NotifyOutcome(outcome *SubmissionOutcome)
}

// TokenCreationService sequences validation, logo publication, fee
// computation, balance preflight, and the factory transaction
type TokenCreationService struct {
	chain     ChainBackend
	publisher LogoPublisher
	fees      *FeeService
	preflight *PreflightService
	factory   common.Address
	gasLimit  uint64

	recorder SubmissionRecorder // optional
	notifier StageNotifier      // optional

	mu       sync.Mutex
	inflight map[common.Address]struct{}
}

func NewTokenCreationService(
	chain ChainBackend,
	publisher LogoPublisher,
	fees *FeeService,
	preflight *PreflightService,
	factory common.Address,
	gasLimit uint64,
) *TokenCreationService {
	return &TokenCreationService{
		chain:     chain,
		publisher: publisher,
		fees:      fees,
		preflight: preflight,
		factory:   factory,
		gasLimit:  gasLimit,
		inflight:  make(map[common.Address]struct{}),
	}
}

// SetRecorder installs the optional persistence hook
func (s *TokenCreationService) SetRecorder(recorder SubmissionRecorder) {
	s.recorder = recorder
}

// SetNotifier installs the optional live-push hook
func (s *TokenCreationService) SetNotifier(notifier StageNotifier) {
	s.notifier = notifier
}

// Submit runs one token-creation attempt end to end. A nil wallet is not a
// failure: the caller must prompt the user to connect and try again. At most
// one submission per account runs at a time. No step is retried; every
// failure is terminal for the attempt.
func (s *TokenCreationService) Submit(ctx context.Context, req *TokenCreationRequest, w wallet.Wallet) (*SubmissionOutcome, error) {
	if w == nil {
		return &SubmissionOutcome{WalletRequired: true}, nil
	}

	account := w.Address()
	if !s.acquire(account) {
		return nil, ErrSubmissionInFlight
	}
	defer s.release(account)

	return s.run(ctx, req, w, account), nil
}

func (s *TokenCreationService) acquire(account common.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[account]; busy {
		return false
	}
	s.inflight[account] = struct{}{}
	return true
}

func (s *TokenCreationService) release(account common.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, account)
}

func (s *TokenCreationService) run(ctx context.Context, req *TokenCreationRequest, w wallet.Wallet, account common.Address) *SubmissionOutcome {
	metrics.SubmissionsStarted.Inc()

	submissionID := uuid.NewString()
	record := &models.SubmissionRecord{
		ID:             submissionID,
		Requester:      account.Hex(),
		TokenName:      req.Name,
		TokenSymbol:    req.Symbol,
		InitialSupply:  req.Supply,
		DisableMinting: req.DisableMinting,
		Status:         models.StatusPending,
	}

	log.Printf("🚀 Submission %s started: %q (%s) by %s", submissionID, req.Name, req.Symbol, account.Hex())

	// Validating
	s.enterStage(record, models.StageValidating)
	supplyUnits, violations := s.validate(req)
	if len(violations) > 0 {
		return s.fail(record, &ValidationError{Violations: violations})
	}

	// Uploading
	s.enterStage(record, models.StageUploading)
	started := time.Now()
	contentID, err := s.publisher.PinFile(ctx, req.Logo.Data, req.Name)
	if err != nil {
		return s.fail(record, &UploadError{Err: err})
	}
	metrics.LogoUploadDuration.Observe(time.Since(started).Seconds())
	logoURI := LogoURIScheme + "://" + contentID
	record.LogoURI = logoURI

	// Fee computation is synchronous and infallible
	quote := s.fees.Quote(req.DisableMinting)
	record.FeeWei = quote.TotalWei

	// Preflight
	s.enterStage(record, models.StagePreflight)
	preflight, err := s.preflight.Check(ctx, account, quote.Total)
	if err != nil {
		return s.fail(record, err)
	}

	// Signing
	s.enterStage(record, models.StageSigning)
	signedTx, err := s.buildAndSign(ctx, req, w, account, supplyUnits, quote.Total, preflight)
	if err != nil {
		if errors.Is(err, wallet.ErrSignatureRejected) {
			return s.cancel(record)
		}
		return s.fail(record, &TransactionError{Reason: classifyTransactionFailure(err), Err: err})
	}
	record.TxHash = signedTx.Hash().Hex()

	// Submitting
	s.enterStage(record, models.StageSubmitting)
	if err := s.chain.SendTransaction(ctx, signedTx); err != nil {
		return s.fail(record, &TransactionError{
			TxHash: record.TxHash,
			Reason: classifyTransactionFailure(err),
			Err:    err,
		})
	}
	metrics.TransactionsSubmitted.Inc()
	log.Printf("📤 Submission %s broadcast as %s", submissionID, record.TxHash)

	// Confirming
	s.enterStage(record, models.StageConfirming)
	receipt, err := s.chain.WaitMined(ctx, signedTx.Hash())
	if err != nil {
		return s.fail(record, &ConfirmationError{
			TxHash: record.TxHash,
			Reason: "no receipt before deadline",
			Err:    err,
		})
	}

	if receipt.Status == types.ReceiptStatusFailed {
		return s.fail(record, &TransactionError{
			TxHash: record.TxHash,
			Reason: s.revertReason(receipt),
		})
	}

	tokenAddress, err := contracts.ExtractTokenAddress(receipt, s.factory)
	if err != nil {
		// mined fine but the expected event is missing: a reportable
		// inconsistency, never silently ignored
		return s.fail(record, &ConfirmationError{
			TxHash: record.TxHash,
			Reason: "token creation event missing from receipt",
			Err:    err,
		})
	}

	record.TokenAddress = tokenAddress.Hex()
	record.Stage = models.StageCompleted
	record.Status = models.StatusSucceeded
	s.persist(record)
	metrics.SubmissionsTerminal.WithLabelValues(string(record.Status), string(record.Stage)).Inc()

	log.Printf("✅ Submission %s confirmed: token %s", submissionID, record.TokenAddress)

	outcome := &SubmissionOutcome{
		SubmissionID: submissionID,
		Status:       models.StatusSucceeded,
		Stage:        models.StageCompleted,
		TokenAddress: record.TokenAddress,
		TxHash:       record.TxHash,
		LogoURI:      logoURI,
		FeeWei:       quote.TotalWei,
	}
	s.notifyOutcome(outcome)
	return outcome
}

// validate collects every violation instead of stopping at the first
func (s *TokenCreationService) validate(req *TokenCreationRequest) (*big.Int, []string) {
	var violations []string

	name := strings.TrimSpace(req.Name)
	if name == "" {
		violations = append(violations, "token name is required")
	} else if len(name) > MaxNameLength {
		violations = append(violations, fmt.Sprintf("token name must be at most %d characters", MaxNameLength))
	}

	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		violations = append(violations, "token symbol is required")
	} else if len(symbol) > MaxSymbolLength {
		violations = append(violations, fmt.Sprintf("token symbol must be at most %d characters", MaxSymbolLength))
	}

	if len(req.Description) > MaxDescriptionLength {
		violations = append(violations, fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength))
	}

	var supplyUnits *big.Int
	if strings.TrimSpace(req.Supply) == "" {
		violations = append(violations, "initial supply is required")
	} else {
		parsed, err := utils.ParseUnits(req.Supply, TokenDecimals)
		switch {
		case err != nil:
			violations = append(violations, "initial supply must be a valid decimal number")
		case parsed.Sign() <= 0:
			violations = append(violations, "initial supply must be greater than zero")
		default:
			supplyUnits = parsed
		}
	}

	if req.Logo == nil {
		if req.LogoIssue != "" {
			violations = append(violations, req.LogoIssue)
		} else {
			violations = append(violations, "a validated logo image is required")
		}
	}

	return supplyUnits, violations
}

// buildAndSign constructs the legacy createToken transaction carrying the
// fee as value with the fixed manual gas limit, then asks the wallet to sign
func (s *TokenCreationService) buildAndSign(
	ctx context.Context,
	req *TokenCreationRequest,
	w wallet.Wallet,
	account common.Address,
	supplyUnits *big.Int,
	feeTotal *big.Int,
	preflight *PreflightResult,
) (*types.Transaction, error) {
	data, err := contracts.PackCreateToken(req.Name, req.Symbol, supplyUnits, req.DisableMinting)
	if err != nil {
		return nil, err
	}

	nonce, err := s.chain.PendingNonceAt(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nonce: %w", err)
	}

	gasPrice := preflight.GasPrice
	if !preflight.GasPriceKnown || gasPrice.Sign() == 0 {
		// preflight ran without a price; this query must succeed now
		gasPrice, err = s.chain.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch gas price: %w", err)
		}
	}

	tx := types.NewTransaction(nonce, s.factory, feeTotal, s.gasLimit, gasPrice, data)
	return w.SignTx(tx, s.chain.ChainID())
}

// revertReason gives the best human explanation a bare receipt allows
func (s *TokenCreationService) revertReason(receipt *types.Receipt) string {
	if receipt.GasUsed >= s.gasLimit {
		return "execution ran out of gas"
	}
	return "contract reverted: verify the deployment fee matches the factory's current fee"
}

func (s *TokenCreationService) enterStage(record *models.SubmissionRecord, stage models.SubmissionStage) {
	record.Stage = stage
	s.persist(record)
	if s.notifier != nil {
		s.notifier.NotifyStage(record.ID, stage)
	}
}

func (s *TokenCreationService) persist(record *models.SubmissionRecord) {
	if s.recorder != nil {
		s.recorder.RecordSubmission(record)
	}
}

func (s *TokenCreationService) notifyOutcome(outcome *SubmissionOutcome) {
	if s.notifier != nil {
		s.notifier.NotifyOutcome(outcome)
	}
}

// fail finalizes the record at the stage the error names and builds the
// terminal outcome for the caller
func (s *TokenCreationService) fail(record *models.SubmissionRecord, cause error) *SubmissionOutcome {
	stage := StageOf(cause)
	record.Stage = stage
	record.Status = models.StatusFailed
	record.ErrorMessage = cause.Error()
	s.persist(record)
	metrics.SubmissionsTerminal.WithLabelValues(string(record.Status), string(stage)).Inc()

	log.Printf("❌ Submission %s failed at %s: %v", record.ID, stage, cause)

	outcome := &SubmissionOutcome{
		SubmissionID: record.ID,
		Status:       models.StatusFailed,
		Stage:        stage,
		TxHash:       record.TxHash,
		LogoURI:      record.LogoURI,
		FeeWei:       record.FeeWei,
		ErrorMessage: cause.Error(),
	}
	var vErr *ValidationError
	if errors.As(cause, &vErr) {
		outcome.Violations = vErr.Violations
	}
	s.notifyOutcome(outcome)
	return outcome
}

// cancel records a user-declined signature. Distinct from failure: nothing
// went wrong, the user changed their mind.
func (s *TokenCreationService) cancel(record *models.SubmissionRecord) *SubmissionOutcome {
	record.Status = models.StatusCancelled
	record.ErrorMessage = "signature request declined"
	s.persist(record)
	metrics.SubmissionsTerminal.WithLabelValues(string(record.Status), string(record.Stage)).Inc()

	log.Printf("🚫 Submission %s cancelled by user at %s", record.ID, record.Stage)

	outcome := &SubmissionOutcome{
		SubmissionID: record.ID,
		Status:       models.StatusCancelled,
		Stage:        record.Stage,
		LogoURI:      record.LogoURI,
		FeeWei:       record.FeeWei,
		ErrorMessage: "signature request declined",
	}
	s.notifyOutcome(outcome)
	return outcome
}
