package models

import (
	"time"
)

// SubmissionStage identifies the pipeline step a submission is in (or the
// step where it ended)
type SubmissionStage string

const (
	StageValidating SubmissionStage = "validating"
	StageUploading  SubmissionStage = "uploading"
	StagePreflight  SubmissionStage = "preflight"
	StageSigning    SubmissionStage = "signing"
	StageSubmitting SubmissionStage = "submitting"
	StageConfirming SubmissionStage = "confirming"
	StageCompleted  SubmissionStage = "completed"
)

// SubmissionStatus is the terminal outcome of a submission
type SubmissionStatus string

const (
	StatusPending   SubmissionStatus = "pending"
	StatusSucceeded SubmissionStatus = "succeeded"
	StatusFailed    SubmissionStatus = "failed"
	StatusCancelled SubmissionStatus = "cancelled"
)

// SubmissionRecord persists one token-creation attempt
type SubmissionRecord struct {
	ID             string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Requester      string           `gorm:"type:varchar(42);index" json:"requester"`
	TokenName      string           `gorm:"type:varchar(64)" json:"token_name"`
	TokenSymbol    string           `gorm:"type:varchar(16)" json:"token_symbol"`
	InitialSupply  string           `gorm:"type:varchar(80)" json:"initial_supply"`
	DisableMinting bool             `json:"disable_minting"`
	LogoURI        string           `gorm:"type:varchar(255)" json:"logo_uri"`
	FeeWei         string           `gorm:"type:varchar(80)" json:"fee_wei"`
	Stage          SubmissionStage  `gorm:"type:varchar(20);index" json:"stage"`
	Status         SubmissionStatus `gorm:"type:varchar(20);index" json:"status"`
	TxHash         string           `gorm:"type:varchar(66);index" json:"tx_hash,omitempty"`
	TokenAddress   string           `gorm:"type:varchar(42);index" json:"token_address,omitempty"`
	ErrorMessage   string           `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TableName overrides the default table name
func (SubmissionRecord) TableName() string {
	return "token_submissions"
}
