package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"

	"launchpad-backend/internal/clients"
	"launchpad-backend/internal/config"
	"launchpad-backend/internal/db"
	"launchpad-backend/internal/events"
	"launchpad-backend/internal/models"
	"launchpad-backend/internal/services"
	"launchpad-backend/internal/wallet"
)

// ServiceContainer wires the launchpad services together
type ServiceContainer struct {
	// Database
	DB *gorm.DB

	// Clients
	ChainClient  *clients.ChainClient
	PinataClient *clients.PinataClient

	// Core Services
	FeeService      *services.FeeService
	Preflight       *services.PreflightService
	TokenCreation   *services.TokenCreationService
	SubmissionStore *services.SubmissionStore

	// Push & Events
	PushService    *services.PushService
	EventPublisher *events.Publisher

	// Signing
	Signer wallet.Wallet
}

// Global service container instance
var Container *ServiceContainer
var containerOnce sync.Once

// InitializeContainer builds the container once from the loaded config
func InitializeContainer() (*ServiceContainer, error) {
	var initErr error

	containerOnce.Do(func() {
		log.Println("🚀 Initializing Service Container...")

		container := &ServiceContainer{
			DB: db.DB,
		}

		if err := container.initCoreServices(); err != nil {
			initErr = fmt.Errorf("failed to initialize core services: %w", err)
			return
		}

		// Event publishing is optional, log but don't fail
		if err := container.initEventServices(); err != nil {
			log.Printf("⚠️ Event services initialization skipped or failed: %v", err)
		}

		Container = container
		log.Println("✅ Service Container initialized successfully")
	})

	return Container, initErr
}

func (c *ServiceContainer) initCoreServices() error {
	log.Println("🔧 Initializing Core Services...")

	cfg := config.AppConfig
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}

	// Chain client (required for submitting transactions)
	chainClient, err := clients.NewChainClient(&cfg.Chain)
	if err != nil {
		return fmt.Errorf("failed to connect to chain: %w", err)
	}
	c.ChainClient = chainClient

	// Pinata client
	c.PinataClient = clients.NewPinataClient(
		cfg.Pinata.BaseURL,
		cfg.Pinata.JWT,
		time.Duration(cfg.Pinata.Timeout)*time.Second,
	)

	// Fee service
	c.FeeService, err = services.NewFeeService(&cfg.Fees)
	if err != nil {
		return fmt.Errorf("failed to initialize fee service: %w", err)
	}

	// Preflight
	c.Preflight = services.NewPreflightService(c.ChainClient, cfg.Chain.GasLimit)

	// Server signing key (optional: without it submissions report wallet_required)
	if cfg.Chain.PrivateKey != "" {
		signer, err := wallet.NewPrivateKeyWallet(cfg.Chain.PrivateKey)
		if err != nil {
			return fmt.Errorf("failed to load signing key: %w", err)
		}
		c.Signer = signer
		log.Printf("🔑 Signing account: %s", signer.Address().Hex())
	} else {
		log.Printf("⚠️ No signing key configured; submissions will request a wallet connection")
	}

	// Orchestrator
	c.TokenCreation = services.NewTokenCreationService(
		c.ChainClient,
		c.PinataClient,
		c.FeeService,
		c.Preflight,
		common.HexToAddress(cfg.Chain.FactoryAddress),
		cfg.Chain.GasLimit,
	)

	// Push service for live stage updates
	c.PushService = services.NewPushService()
	c.TokenCreation.SetNotifier(c)

	// Persistence (optional: only when a database is connected)
	if c.DB != nil {
		c.SubmissionStore = services.NewSubmissionStore(c.DB)
		c.TokenCreation.SetRecorder(c.SubmissionStore)
	} else {
		log.Printf("⚠️ No database configured; submissions will not be persisted")
	}

	log.Println("✅ Core Services initialized")
	return nil
}

func (c *ServiceContainer) initEventServices() error {
	if config.AppConfig == nil || config.AppConfig.NATS.URL == "" {
		return fmt.Errorf("NATS not configured")
	}

	log.Println("📡 Initializing Event Services...")

	publisher, err := events.NewPublisher(config.AppConfig.NATS.URL, config.AppConfig.NATS.SubjectPrefix)
	if err != nil {
		return fmt.Errorf("failed to initialize NATS publisher: %w", err)
	}
	c.EventPublisher = publisher

	log.Println("✅ Event Services initialized")
	return nil
}

// NotifyStage implements services.StageNotifier by fanning out to websocket
// subscribers
func (c *ServiceContainer) NotifyStage(submissionID string, stage models.SubmissionStage) {
	c.PushService.NotifyStage(submissionID, stage)
}

// NotifyOutcome forwards terminal outcomes to websocket subscribers and, when
// configured, to NATS
func (c *ServiceContainer) NotifyOutcome(outcome *services.SubmissionOutcome) {
	c.PushService.NotifyOutcome(outcome)
	if c.EventPublisher != nil {
		c.EventPublisher.PublishOutcome(outcome)
	}
}

// Cleanup releases external connections
func (c *ServiceContainer) Cleanup() {
	log.Println("🧹 Cleaning up Service Container...")

	if c.EventPublisher != nil {
		c.EventPublisher.Close()
	}
	if c.ChainClient != nil {
		c.ChainClient.Close()
	}

	log.Println("✅ Service Container cleaned up")
}
